package main

import (
	"os"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"game_store/internal/audit"
	"game_store/internal/config"
	"game_store/internal/model"
	"game_store/internal/router"
)

func main() {
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	// 连接 SQLite，自动建表。
	// TranslateError 让唯一索引冲突以 gorm.ErrDuplicatedKey 浮出，
	// store 层据此把预检竞态转换为字段级唯一性错误。
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal().Err(err).Msg("db open")
	}
	if err := db.AutoMigrate(
		&model.Category{},
		&model.Coupon{},
		&model.User{},
		&model.SystemRequirement{},
		&model.Game{},
		&model.Product{},
		&model.ProductCategory{},
	); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	if err := seedAdmin(db, cfg); err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}

	var rdb *rd.Client
	if cfg.RedisAddr != "" {
		rdb = rd.NewClient(&rd.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	}

	var recorder audit.Recorder = audit.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		k := audit.NewKafka(cfg.KafkaBrokers, cfg.AuditTopic, log.Logger)
		defer k.Close()
		recorder = k
	}

	r := gin.Default()
	router.Setup(r, router.Deps{DB: db, Redis: rdb, Audit: recorder, Cfg: cfg})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("http server")
	}
}

// seedAdmin 在用户表为空时播种引导管理员，保证第一枚令牌可被签发。
func seedAdmin(db *gorm.DB, cfg config.AppConfig) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.AdminPassword == "" {
		log.Warn().Msg("users table empty and ADMIN_PASSWORD unset, skipping admin seed")
		return nil
	}
	profile := model.ProfileAdmin
	admin := model.User{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Profile:  &profile,
		Password: cfg.AdminPassword,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info().Str("email", admin.Email).Msg("seeded bootstrap admin")
	return nil
}
