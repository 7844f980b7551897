package model

import (
	"time"

	"gorm.io/gorm"

	"game_store/internal/validation"
)

// Product 店面商品，目前只承载游戏（has one 自 Game）。
// 与 Category 的多对多关系经由显式的 ProductCategory 连接实体。
type Product struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name        string  `gorm:"type:varchar(200) collate nocase;not null;uniqueIndex" json:"name"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Image       string  `gorm:"size:512;not null" json:"image"`
	GameID      uint    `gorm:"index" json:"game_id"`

	ProductCategories []ProductCategory `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Product) TableName() string { return "products" }

// Validate 完整执行商品的全部规则。
func (p *Product) Validate(tx *gorm.DB) (validation.FieldErrors, error) {
	errs := validation.Run(
		validation.Rule{Field: "name", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(p.Name)
		}},
		validation.Rule{Field: "description", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(p.Description)
		}},
		validation.Rule{Field: "price", Message: validation.MsgGreaterThanZero, Check: func() bool {
			return p.Price > 0
		}},
		validation.Rule{Field: "image", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(p.Image)
		}},
	)
	if !validation.Blank(p.Name) {
		taken, err := validation.Taken(tx, &Product{}, "name", p.Name, p.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("name", validation.MsgTaken)
		}
	}
	return errs, nil
}
