package main

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"phonelister/internal/config"
	"phonelister/internal/events"
	"phonelister/internal/http/handlers"
	applog "phonelister/internal/log"
	"phonelister/internal/locks"
	"phonelister/internal/repos"
)

func main() {
	cfg := config.Load()
	applog.SetLevel(cfg.LogLevel)

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.Logger().WithError(err).Warn("log file unavailable, using stdout only")
		} else {
			defer f.Close()
			mw := io.MultiWriter(os.Stdout, f)
			applog.SetOutput(mw)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		applog.Logger().WithError(err).Fatal("open database")
	}
	defer db.Close()

	var locker locks.Locker = locks.NewLocal()
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rl, err := locks.NewRedis(ctx, cfg.RedisAddr, cfg.LockTTL)
		cancel()
		if err != nil {
			applog.Logger().WithError(err).Fatal("connect redis")
		}
		locker = rl
	}

	var pub events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		nc, err := events.NewNATS(cfg.NATSURL)
		if err != nil {
			applog.Logger().WithError(err).Fatal("connect nats")
		}
		defer nc.Close()
		pub = nc
	}

	engine := html.New(cfg.TemplatesDir, ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    4 << 20, // CSV uploads
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization,X-ADMIN",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/healthz")
		},
	}))

	deps := handlers.NewDeps(db, cfg, locker, pub)
	handlers.Routes(app, deps, cfg)

	if err := app.Listen(":" + cfg.Port); err != nil {
		applog.Logger().WithError(err).Fatal("server stopped")
	}
}
