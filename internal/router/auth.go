package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"game_store/internal/auth"
	"game_store/internal/config"
	"game_store/internal/model"
)

// signIn 用邮箱+口令换取访问令牌。
// 账号不存在与口令不符同样返回 401 空响应体，不泄露差异。
func signIn(db *gorm.DB, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBadRequest(c)
			return
		}

		var user model.User
		if err := db.Where("LOWER(email) = LOWER(?)", req.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Status(http.StatusUnauthorized)
				return
			}
			renderServerError(c, err)
			return
		}
		if !auth.CheckPassword(user.PasswordDigest, req.Password) {
			c.Status(http.StatusUnauthorized)
			return
		}

		profile := ""
		if user.Profile != nil {
			profile = user.Profile.String()
		}
		token, err := auth.IssueToken(user.ID, user.Email, profile, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			renderServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}
