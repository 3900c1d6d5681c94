package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	glog "github.com/labstack/gommon/log"

	"github.com/iliyamo/periodical-store/internal/config"
	"github.com/iliyamo/periodical-store/internal/database"
	"github.com/iliyamo/periodical-store/internal/queue"
	"github.com/iliyamo/periodical-store/internal/router"
	"github.com/iliyamo/periodical-store/internal/service"
	"github.com/iliyamo/periodical-store/internal/utils"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if cfg.Seed.Enabled {
		hash := func(plain string) (string, error) { return utils.HashPassword(plain, cfg.BcryptCost) }
		if err := database.Seed(context.Background(), db, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, hash); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	rdb := config.NewRedisClient(cfg.Redis) // nil when Redis is unreachable

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pub service.Publisher = service.NopPublisher{}
	if cfg.Queue.Enabled {
		pub = service.NewAMQPPublisher(cfg.Queue.URL)
		go func() {
			if err := queue.StartOrderConsumer(ctx, cfg.Queue.URL, cfg.Queue.LogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("order consumer stopped: %v", err)
			}
		}()
	}

	e := router.New(router.Deps{Cfg: cfg, DB: db, Redis: rdb, Publisher: pub})
	e.Logger.SetLevel(logLevel(cfg.Log.Level))

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DB.Driver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func logLevel(s string) glog.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return glog.DEBUG
	case "warn":
		return glog.WARN
	case "error":
		return glog.ERROR
	case "off":
		return glog.OFF
	default:
		return glog.INFO
	}
}
