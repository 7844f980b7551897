package model

import (
	"regexp"
	"time"

	"gorm.io/gorm"

	"game_store/internal/auth"
	"game_store/internal/validation"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// User 后台账号。profile 用指针区分"未赋值"（admin 的枚举值恰好是 0）。
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name           string       `gorm:"size:100;not null" json:"name"`
	Email          string       `gorm:"type:varchar(255) collate nocase;not null;uniqueIndex" json:"email"`
	Profile        *UserProfile `gorm:"not null" json:"profile"`
	PasswordDigest string       `gorm:"size:255;not null" json:"-"`

	// 明文口令只在请求期存在，入库前由 BeforeSave 散列进 PasswordDigest。
	Password             string `gorm:"-" json:"-"`
	PasswordConfirmation string `gorm:"-" json:"-"`
}

func (User) TableName() string { return "users" }

// BeforeSave 在写库前把明文口令散列为 bcrypt 摘要。
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Password != "" {
		digest, err := auth.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.PasswordDigest = digest
	}
	return nil
}

// Validate 完整执行用户的全部规则。
// 口令规则承自认证层：新建必填、至少 6 位、确认值需一致。
func (u *User) Validate(tx *gorm.DB) (validation.FieldErrors, error) {
	errs := validation.Run(
		validation.Rule{Field: "name", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(u.Name)
		}},
		validation.Rule{Field: "email", Message: validation.MsgBlank, Check: func() bool {
			return !validation.Blank(u.Email)
		}},
		validation.Rule{Field: "email", Message: validation.MsgInvalid, Check: func() bool {
			return validation.Blank(u.Email) || emailPattern.MatchString(u.Email)
		}},
		validation.Rule{Field: "profile", Message: validation.MsgBlank, Check: func() bool {
			return u.Profile != nil
		}},
		validation.Rule{Field: "profile", Message: validation.MsgNotIncluded, Check: func() bool {
			return u.Profile == nil || u.Profile.Valid()
		}},
		validation.Rule{Field: "password", Message: validation.MsgBlank, Check: func() bool {
			return u.Password != "" || u.PasswordDigest != ""
		}},
		validation.Rule{Field: "password", Message: validation.MsgTooShort, Check: func() bool {
			return u.Password == "" || len(u.Password) >= 6
		}},
		validation.Rule{Field: "password_confirmation", Message: validation.MsgConfirmation, Check: func() bool {
			return u.PasswordConfirmation == "" || u.PasswordConfirmation == u.Password
		}},
	)
	if !validation.Blank(u.Email) {
		taken, err := validation.Taken(tx, &User{}, "email", u.Email, u.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("email", validation.MsgTaken)
		}
	}
	return errs, nil
}
