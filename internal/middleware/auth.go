package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"game_store/internal/auth"
	"game_store/internal/model"
)

// CurrentUserKey 是认证后写入 gin 上下文的调用者身份键。
const CurrentUserKey = "current_user"

// Authenticate 校验 Authorization: Bearer 令牌并加载调用者。
// 任何缺失/无效/过期令牌一律 401 空响应体；通过后把 *model.User
// 显式放入上下文，后续 handler 不再触碰任何全局请求状态。
func Authenticate(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// 令牌有效但账号已被删除时同样视为未认证；
		// 查库本身失败是系统故障，不能伪装成 401。
		var user model.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			log.Error().Err(err).Msg("authenticate: load user")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(CurrentUserKey, &user)
		c.Next()
	}
}

// CurrentUser 取出认证中间件写入的调用者。
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
