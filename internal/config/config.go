package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	applog "phonelister/internal/log"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	LogLevel     string
	TemplatesDir string
	DisplayTZ    string
	AdminKeyHash string // bcrypt hash; empty means X-ADMIN: 1 is enough
	RedisAddr    string
	NATSURL      string
	LockTTL      time.Duration
	LogLimit     int
}

func Load() Config {
	// .env is optional; real environment wins over it
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DSN", "phonelister.db") // sqlite file in project root
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TEMPLATES_DIR", "./web/templates")
	v.SetDefault("DISPLAY_TZ", "Asia/Kolkata")
	v.SetDefault("ADMIN_KEY_HASH", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("NATS_URL", "")
	v.SetDefault("LOCK_TTL", "10s")
	v.SetDefault("LOG_LIMIT", 200)

	cfg := Config{
		Port:         v.GetString("PORT"),
		DBDSN:        v.GetString("DB_DSN"),
		LogFile:      v.GetString("LOG_FILE"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		TemplatesDir: v.GetString("TEMPLATES_DIR"),
		DisplayTZ:    v.GetString("DISPLAY_TZ"),
		AdminKeyHash: v.GetString("ADMIN_KEY_HASH"),
		RedisAddr:    v.GetString("REDIS_ADDR"),
		NATSURL:      v.GetString("NATS_URL"),
		LockTTL:      v.GetDuration("LOCK_TTL"),
		LogLimit:     v.GetInt("LOG_LIMIT"),
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 10 * time.Second
	}
	if cfg.LogLimit <= 0 {
		cfg.LogLimit = 200
	}

	applog.Logger().WithFields(map[string]any{
		"port":          cfg.Port,
		"db_dsn":        cfg.DBDSN,
		"log_file":      cfg.LogFile,
		"templates_dir": cfg.TemplatesDir,
		"display_tz":    cfg.DisplayTZ,
		"admin_hashed":  cfg.AdminKeyHash != "",
		"redis":         cfg.RedisAddr != "",
		"nats":          cfg.NATSURL != "",
	}).Info("config loaded")
	return cfg
}
