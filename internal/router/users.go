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

// assignUser 按允许清单套用原始属性，清单外的键静默丢弃。
// 口令散列与确认值比对都交给模型层（BeforeSave / Validate）。
func assignUser(user *model.User, attrs map[string]json.RawMessage) validation.FieldErrors {
	errs := validation.FieldErrors{}
	for field, raw := range attrs {
		var err error
		switch field {
		case "name":
			err = setString(&user.Name, raw)
		case "email":
			err = setString(&user.Email, raw)
		case "profile":
			err = setProfile(&user.Profile, raw)
		case "password":
			err = setString(&user.Password, raw)
		case "password_confirmation":
			err = setString(&user.PasswordConfirmation, raw)
		default:
			continue
		}
		if err != nil {
			errs.Add(field, validation.MsgInvalid)
		}
	}
	return errs
}

// listUsers 查询用户列表，支持 search 与 page/length。
func listUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		users := []model.User{}
		err := db.Scopes(
			store.SearchByName(c.Query("search")),
			store.Paginate(queryInt(c, "page"), queryInt(c, "length")),
		).Find(&users).Error
		if err != nil {
			renderServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// showUser 返回单个用户。
func showUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var user model.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Status(http.StatusNotFound)
				return
			}
			renderServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// createUser 新建用户。
func createUser(db *gorm.DB, rec audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, ok := entityParams(c, "user")
		if !ok {
			return
		}
		var user model.User
		errs, err := store.Save(db, &user, "email", assignUser(&user, attrs))
		if err != nil {
			renderServerError(c, err)
			return
		}
		if errs.Any() {
			renderUnprocessable(c, errs)
			return
		}
		recordAudit(c, rec, "create", "user", user.ID)
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// updateUser 按提交的部分字段更新已有用户。
func updateUser(db *gorm.DB, rec audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var user model.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Status(http.StatusNotFound)
				return
			}
			renderServerError(c, err)
			return
		}
		attrs, ok := entityParams(c, "user")
		if !ok {
			return
		}
		errs, err := store.Save(db, &user, "email", assignUser(&user, attrs))
		if err != nil {
			renderServerError(c, err)
			return
		}
		if errs.Any() {
			renderUnprocessable(c, errs)
			return
		}
		recordAudit(c, rec, "update", "user", user.ID)
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// destroyUser 删除用户。
func destroyUser(db *gorm.DB, rec audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var user model.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Status(http.StatusNotFound)
				return
			}
			renderServerError(c, err)
			return
		}
		if err := store.Delete(db, &user); err != nil {
			renderServerError(c, err)
			return
		}
		recordAudit(c, rec, "destroy", "user", user.ID)
		c.Status(http.StatusNoContent)
	}
}
