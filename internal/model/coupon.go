package model

import (
	"time"

	"gorm.io/gorm"

	"game_store/internal/validation"
)

// Coupon 优惠券。纯数据记录，不含核销逻辑。
type Coupon struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Code          string       `gorm:"type:varchar(64) collate nocase;not null;uniqueIndex" json:"code"`
	Status        CouponStatus `gorm:"not null" json:"status"`
	DiscountValue float64      `gorm:"not null" json:"discount_value"`
	DueDate       time.Time    `gorm:"not null" json:"due_date"`
}

func (Coupon) TableName() string { return "coupons" }

// Validate 完整执行优惠券的全部规则。
// due_date 以本次校验时刻的 time.Now() 为基准做严格"未来"比较：
// 等于当前时刻视为违规，长事务里也不会退回到事务开始时间。
func (c *Coupon) Validate(tx *gorm.DB) (validation.FieldErrors, error) {
	now := time.Now()
	errs := validation.Run(
		validation.Rule{Field: "code", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(c.Code)
		}},
		validation.Rule{Field: "status", Message: validation.MsgBlank, Check: func() bool {
			return c.Status != 0
		}},
		validation.Rule{Field: "status", Message: validation.MsgNotIncluded, Check: func() bool {
			return c.Status == 0 || c.Status.Valid()
		}},
		validation.Rule{Field: "discount_value", Message: validation.MsgGreaterThanZero, Check: func() bool {
			return c.DiscountValue > 0
		}},
		validation.Rule{Field: "due_date", Message: validation.MsgBlank, Check: func() bool {
			return !c.DueDate.IsZero()
		}},
		validation.Rule{Field: "due_date", Message: validation.MsgFutureDate, Check: func() bool {
			return c.DueDate.IsZero() || c.DueDate.After(now)
		}},
	)
	if !validation.Blank(c.Code) {
		taken, err := validation.Taken(tx, &Coupon{}, "code", c.Code, c.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("code", validation.MsgTaken)
		}
	}
	return errs, nil
}
