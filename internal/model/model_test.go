package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Category{}, &Coupon{}, &User{}, &SystemRequirement{}, &Game{}, &Product{}, &ProductCategory{},
	))
	return db
}

func validCoupon() Coupon {
	return Coupon{
		Code:          "PROMO10",
		Status:        CouponActive,
		DiscountValue: 10,
		DueDate:       time.Now().Add(24 * time.Hour),
	}
}

func validUser() User {
	profile := ProfileAdmin
	return User{
		Name:     "Jane",
		Email:    "jane@example.com",
		Profile:  &profile,
		Password: "secret123",
	}
}

func validSystemRequirement() SystemRequirement {
	return SystemRequirement{
		Name:              "Basic",
		OperationalSystem: "Windows 11",
		Storage:           "500gb",
		Processor:         "AMD Ryzen 5",
		Memory:            "8gb",
		VideoBoard:        "GTX 1060",
	}
}
