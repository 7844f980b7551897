package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"game_store/internal/audit"
	"game_store/internal/model"
	"game_store/internal/store"
	"game_store/internal/validation"
)

// assignCoupon 按允许清单套用原始属性，清单外的键静默丢弃。
// 单个字段值解析失败记为该字段的 "is invalid"。
func assignCoupon(coupon *model.Coupon, attrs map[string]json.RawMessage) validation.FieldErrors {
	errs := validation.FieldErrors{}
	for field, raw := range attrs {
		var err error
		switch field {
		case "code":
			err = setString(&coupon.Code, raw)
		case "status":
			err = setCouponStatus(&coupon.Status, raw)
		case "discount_value":
			err = setFloat(&coupon.DiscountValue, raw)
		case "due_date":
			err = setTime(&coupon.DueDate, raw)
		default:
			continue
		}
		if err != nil {
			errs.Add(field, validation.MsgInvalid)
		}
	}
	return errs
}

// listCoupons 查询优惠券列表，支持 page/length 分页。
func listCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		coupons := []model.Coupon{}
		err := db.Scopes(
			store.Paginate(queryInt(c, "page"), queryInt(c, "length")),
		).Find(&coupons).Error
		if err != nil {
			renderServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"coupons": coupons})
	}
}

// createCoupon 新建优惠券。
func createCoupon(db *gorm.DB, rec audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, ok := entityParams(c, "coupon")
		if !ok {
			return
		}
		var coupon model.Coupon
		errs, err := store.Save(db, &coupon, "code", assignCoupon(&coupon, attrs))
		if err != nil {
			renderServerError(c, err)
			return
		}
		if errs.Any() {
			renderUnprocessable(c, errs)
			return
		}
		recordAudit(c, rec, "create", "coupon", coupon.ID)
		c.JSON(http.StatusOK, gin.H{"coupon": coupon})
	}
}

// updateCoupon 按提交的部分字段更新已有优惠券。
func updateCoupon(db *gorm.DB, rec audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var coupon model.Coupon
		if err := db.First(&coupon, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Status(http.StatusNotFound)
				return
			}
			renderServerError(c, err)
			return
		}
		attrs, ok := entityParams(c, "coupon")
		if !ok {
			return
		}
		errs, err := store.Save(db, &coupon, "code", assignCoupon(&coupon, attrs))
		if err != nil {
			renderServerError(c, err)
			return
		}
		if errs.Any() {
			renderUnprocessable(c, errs)
			return
		}
		recordAudit(c, rec, "update", "coupon", coupon.ID)
		c.JSON(http.StatusOK, gin.H{"coupon": coupon})
	}
}

// destroyCoupon 删除优惠券。
func destroyCoupon(db *gorm.DB, rec audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var coupon model.Coupon
		if err := db.First(&coupon, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Status(http.StatusNotFound)
				return
			}
			renderServerError(c, err)
			return
		}
		if err := store.Delete(db, &coupon); err != nil {
			renderServerError(c, err)
			return
		}
		recordAudit(c, rec, "destroy", "coupon", coupon.ID)
		c.Status(http.StatusNoContent)
	}
}
