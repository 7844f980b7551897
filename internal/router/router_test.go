package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"game_store/internal/auth"
	"game_store/internal/config"
	"game_store/internal/model"
)

type env struct {
	r     *gin.Engine
	db    *gorm.DB
	cfg   config.AppConfig
	token string
}

// newEnv 起一套完整路由 + 内存库，并以引导管理员签好令牌。
func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Category{}, &model.Coupon{}, &model.User{}, &model.SystemRequirement{},
		&model.Game{}, &model.Product{}, &model.ProductCategory{},
	))

	cfg := config.AppConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}

	profile := model.ProfileAdmin
	admin := model.User{Name: "Login Admin", Email: "login@example.com", Profile: &profile, Password: "secret123"}
	require.NoError(t, db.Create(&admin).Error)
	token, err := auth.IssueToken(admin.ID, admin.Email, "admin", cfg.JWTSecret, cfg.TokenTTL)
	require.NoError(t, err)

	r := gin.New()
	Setup(r, Deps{DB: db, Cfg: cfg})

	return &env{r: r, db: db, cfg: cfg, token: token}
}

// do 发送一次 JSON 请求；token 为空则不带 Authorization 头。
func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

// bodyJSON 解析响应体为通用 map。
func bodyJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// fieldErrors 取出 errors.fields 映射。
func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := bodyJSON(t, w)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, "response has no errors key: %s", w.Body.String())
	fields, ok := errs["fields"].(map[string]any)
	require.True(t, ok, "errors has no fields key: %s", w.Body.String())
	return fields
}

// objectKeys 断言响应里实体对象恰好只暴露公开投影的字段。
func objectKeys(t *testing.T, obj map[string]any, expected ...string) {
	t.Helper()
	require.Len(t, obj, len(expected), "unexpected fields in %v", obj)
	for _, k := range expected {
		require.Contains(t, obj, k)
	}
}

func count(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}
