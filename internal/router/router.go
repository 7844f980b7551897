package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"game_store/internal/audit"
	"game_store/internal/config"
	"game_store/internal/middleware"
	"game_store/internal/validation"
)

// Deps 聚合路由依赖。Redis 为 nil 时登录接口不挂限流，
// Audit 为 nil 时审计事件直接丢弃。
type Deps struct {
	DB    *gorm.DB
	Redis *rd.Client
	Audit audit.Recorder
	Cfg   config.AppConfig
}

// Setup 注册全部 HTTP 路由。
func Setup(r *gin.Engine, d Deps) {
	if d.Audit == nil {
		d.Audit = audit.Nop{}
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	// 认证入口：令牌签发本身不要求登录态
	signInChain := make([]gin.HandlerFunc, 0, 2)
	if d.Redis != nil {
		signInChain = append(signInChain,
			middleware.RedisRateLimit(d.Redis, "sign_in", d.Cfg.SignInRateLimit, d.Cfg.SignInRateWindow))
	}
	signInChain = append(signInChain, signIn(d.DB, d.Cfg))
	r.POST("/auth/v1/sign_in", signInChain...)

	// 后台接口：每个 handler 执行前先解析出调用者身份
	admin := r.Group("/admin/v1", middleware.Authenticate(d.DB, d.Cfg.JWTSecret))
	admin.GET("/home", home())

	admin.GET("/categories", listCategories(d.DB))
	admin.POST("/categories", createCategory(d.DB, d.Audit))
	admin.PATCH("/categories/:id", updateCategory(d.DB, d.Audit))
	admin.PUT("/categories/:id", updateCategory(d.DB, d.Audit))
	admin.DELETE("/categories/:id", destroyCategory(d.DB, d.Audit))

	admin.GET("/coupons", listCoupons(d.DB))
	admin.POST("/coupons", createCoupon(d.DB, d.Audit))
	admin.PATCH("/coupons/:id", updateCoupon(d.DB, d.Audit))
	admin.PUT("/coupons/:id", updateCoupon(d.DB, d.Audit))
	admin.DELETE("/coupons/:id", destroyCoupon(d.DB, d.Audit))

	admin.GET("/users", listUsers(d.DB))
	admin.GET("/users/:id", showUser(d.DB))
	admin.POST("/users", createUser(d.DB, d.Audit))
	admin.PATCH("/users/:id", updateUser(d.DB, d.Audit))
	admin.PUT("/users/:id", updateUser(d.DB, d.Audit))
	admin.DELETE("/users/:id", destroyUser(d.DB, d.Audit))

	admin.GET("/system_requirements", listSystemRequirements(d.DB))
	admin.POST("/system_requirements", createSystemRequirement(d.DB, d.Audit))
	admin.PATCH("/system_requirements/:id", updateSystemRequirement(d.DB, d.Audit))
	admin.PUT("/system_requirements/:id", updateSystemRequirement(d.DB, d.Audit))
	admin.DELETE("/system_requirements/:id", destroySystemRequirement(d.DB, d.Audit))
}

// home 登录态连通性检查。
func home() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "game store admin api"})
	}
}

// entityParams 绑定请求体并取出实体键下的原始属性集。
// 实体键缺失（或显式为 null）等价于"未提交任何属性"，与空请求体同义。
func entityParams(c *gin.Context, key string) (map[string]json.RawMessage, bool) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, true
		}
		renderBadRequest(c)
		return nil, false
	}
	raw, ok := body[key]
	if !ok || isNull(raw) {
		return nil, true
	}
	var attrs map[string]json.RawMessage
	if err := json.Unmarshal(raw, &attrs); err != nil {
		renderBadRequest(c)
		return nil, false
	}
	return attrs, true
}

// pathID 解析 :id。非法值与未命中同样按 404 处理。
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Status(http.StatusNotFound)
		return 0, false
	}
	return uint(id), true
}

// queryInt 读取整数查询参数，缺失或非法时返回 0。
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

// recordAudit 以当前调用者身份记录一条变更事件。
func recordAudit(c *gin.Context, rec audit.Recorder, action, entity string, id uint) {
	actor := ""
	if u := middleware.CurrentUser(c); u != nil {
		actor = u.Email
	}
	rec.Record(c.Request.Context(), audit.NewEvent(actor, action, entity, id))
}

// renderUnprocessable 输出统一的校验失败信封。
func renderUnprocessable(c *gin.Context, errs validation.FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{"fields": errs}})
}

// renderBadRequest 请求体不可解析时的响应（同样走 errors.fields 信封）。
func renderBadRequest(c *gin.Context) {
	errs := validation.FieldErrors{}
	errs.Add("base", validation.MsgInvalid)
	c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"fields": errs}})
}

// renderServerError 兜底真正意外的系统故障：记日志、空响应体。
func renderServerError(c *gin.Context, err error) {
	log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected failure")
	c.Status(http.StatusInternalServerError)
}
