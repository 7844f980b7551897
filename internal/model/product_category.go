package model

import (
	"gorm.io/gorm"

	"game_store/internal/validation"
)

// ProductCategory 商品与分类的连接行。
type ProductCategory struct {
	ID         uint `gorm:"primarykey" json:"id"`
	ProductID  uint `gorm:"not null;index" json:"product_id"`
	CategoryID uint `gorm:"not null;index" json:"category_id"`
}

func (ProductCategory) TableName() string { return "product_categories" }

// Validate 两侧引用都必填。
func (pc *ProductCategory) Validate(tx *gorm.DB) (validation.FieldErrors, error) {
	errs := validation.Run(
		validation.Rule{Field: "product", Message: validation.MsgBlank, Check: func() bool {
			return pc.ProductID != 0
		}},
		validation.Rule{Field: "category", Message: validation.MsgBlank, Check: func() bool {
			return pc.CategoryID != 0
		}},
	)
	return errs, nil
}
