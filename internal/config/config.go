package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig 聚合运行时配置，尽量通过环境变量注入，避免硬编码。
type AppConfig struct {
	HTTPAddr string
	DBPath   string

	// Redis 仅用于登录接口限流，地址留空则不挂限流中间件。
	RedisAddr string
	RedisDB   int

	// JWT 签发参数
	JWTSecret string
	TokenTTL  time.Duration

	// 登录接口限流
	SignInRateLimit  int
	SignInRateWindow time.Duration

	// 审计事件 Kafka 地址（逗号分隔）与 Topic，留空则丢弃事件。
	KafkaBrokers []string
	AuditTopic   string

	// 用户表为空时播种的引导管理员
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load 读取并校验配置，缺失时使用默认值。
// 先尝试加载 .env（不存在则忽略），再读环境变量。
func Load() (AppConfig, error) {
	_ = godotenv.Load()

	cfg := AppConfig{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DBPath:           getEnv("DB_PATH", "game_store.db"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisDB:          0,
		JWTSecret:        getEnv("JWT_SECRET", ""),
		TokenTTL:         24 * time.Hour,
		SignInRateLimit:  10,
		SignInRateWindow: time.Minute,
		KafkaBrokers:     splitCSV(getEnv("KAFKA_BROKERS", "")),
		AuditTopic:       getEnv("AUDIT_TOPIC", "game-store-admin-audit"),
		AdminName:        getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:       getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
	}

	if cfg.JWTSecret == "" {
		return AppConfig{}, fmt.Errorf("JWT_SECRET must not be empty")
	}

	redisDB, err := getEnvInt("REDIS_DB", cfg.RedisDB)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	ttlHour, err := getEnvInt("TOKEN_TTL_HOUR", int(cfg.TokenTTL.Hours()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid TOKEN_TTL_HOUR: %w", err)
	}
	if ttlHour <= 0 {
		return AppConfig{}, fmt.Errorf("TOKEN_TTL_HOUR must be > 0")
	}
	cfg.TokenTTL = time.Duration(ttlHour) * time.Hour

	rateLimit, err := getEnvInt("SIGN_IN_RATE_LIMIT", cfg.SignInRateLimit)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid SIGN_IN_RATE_LIMIT: %w", err)
	}
	if rateLimit <= 0 {
		return AppConfig{}, fmt.Errorf("SIGN_IN_RATE_LIMIT must be > 0")
	}
	cfg.SignInRateLimit = rateLimit

	rateWindowSec, err := getEnvInt("SIGN_IN_RATE_WINDOW_SEC", int(cfg.SignInRateWindow.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid SIGN_IN_RATE_WINDOW_SEC: %w", err)
	}
	if rateWindowSec <= 0 {
		return AppConfig{}, fmt.Errorf("SIGN_IN_RATE_WINDOW_SEC must be > 0")
	}
	cfg.SignInRateWindow = time.Duration(rateWindowSec) * time.Second

	if len(cfg.KafkaBrokers) > 0 && cfg.AuditTopic == "" {
		return AppConfig{}, fmt.Errorf("AUDIT_TOPIC must not be empty when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// getEnv 读取字符串环境变量，若为空则返回默认值。
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// getEnvInt 读取整数环境变量，若为空则返回默认值。
func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

// splitCSV 将逗号分隔字符串解析为字符串切片。
func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
