package model

import (
	"time"

	"gorm.io/gorm"

	"game_store/internal/validation"
)

// Category 商品分类。名称大小写不敏感唯一（NOCASE 唯一索引兜底）。
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name string `gorm:"type:varchar(100) collate nocase;not null;uniqueIndex" json:"name"`

	// 删除分类时级联清理关联行，商品本身不受影响。
	ProductCategories []ProductCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Category) TableName() string { return "categories" }

// Validate 完整执行分类的全部规则，返回字段错误映射。
func (c *Category) Validate(tx *gorm.DB) (validation.FieldErrors, error) {
	errs := validation.Run(
		validation.Rule{Field: "name", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(c.Name)
		}},
	)
	if !validation.Blank(c.Name) {
		taken, err := validation.Taken(tx, &Category{}, "name", c.Name, c.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("name", validation.MsgTaken)
		}
	}
	return errs, nil
}
