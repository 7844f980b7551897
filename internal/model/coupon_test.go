package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game_store/internal/validation"
)

func TestCouponValid(t *testing.T) {
	db := newTestDB(t)
	c := validCoupon()
	errs, err := c.Validate(db)
	require.NoError(t, err)
	assert.False(t, errs.Any())
}

func TestCouponPresence(t *testing.T) {
	db := newTestDB(t)
	var c Coupon
	errs, err := c.Validate(db)
	require.NoError(t, err)
	assert.Contains(t, errs["code"], validation.MsgBlank)
	assert.Contains(t, errs["status"], validation.MsgBlank)
	assert.Contains(t, errs["discount_value"], validation.MsgGreaterThanZero)
	assert.Contains(t, errs["due_date"], validation.MsgBlank)
}

func TestCouponStatusMembership(t *testing.T) {
	db := newTestDB(t)
	c := validCoupon()
	c.Status = CouponStatus(9)
	errs, err := c.Validate(db)
	require.NoError(t, err)
	assert.Contains(t, errs["status"], validation.MsgNotIncluded)
}

func TestCouponDiscountValueBound(t *testing.T) {
	db := newTestDB(t)
	c := validCoupon()
	c.DiscountValue = -1
	errs, err := c.Validate(db)
	require.NoError(t, err)
	assert.Contains(t, errs["discount_value"], validation.MsgGreaterThanZero)
}

func TestCouponCodeUniquenessCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	existing := validCoupon()
	existing.Code = "ABC"
	require.NoError(t, db.Create(&existing).Error)

	dup := validCoupon()
	dup.Code = "abc"
	errs, err := dup.Validate(db)
	require.NoError(t, err)
	assert.Contains(t, errs["code"], validation.MsgTaken)

	// 更新时自身的 code 不算占用
	errs, err = existing.Validate(db)
	require.NoError(t, err)
	assert.False(t, errs.Any())
}

func TestCouponDueDateBoundary(t *testing.T) {
	db := newTestDB(t)

	c := validCoupon()
	c.DueDate = time.Now().Add(-time.Second)
	errs, err := c.Validate(db)
	require.NoError(t, err)
	assert.Contains(t, errs["due_date"], validation.MsgFutureDate)

	// 等于"当前时刻"不是未来：校验在赋值之后执行，now 必然已经越过
	c.DueDate = time.Now()
	errs, err = c.Validate(db)
	require.NoError(t, err)
	assert.Contains(t, errs["due_date"], validation.MsgFutureDate)

	c.DueDate = time.Now().Add(time.Second)
	errs, err = c.Validate(db)
	require.NoError(t, err)
	assert.NotContains(t, errs, "due_date")
}
