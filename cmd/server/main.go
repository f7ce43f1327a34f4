package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coinvest/config"
	"coinvest/internal/cache"
	"coinvest/internal/database"
	"coinvest/internal/router"
	"coinvest/pkg/cloudinary"
	"coinvest/pkg/mailer"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Server.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		logrus.Fatalf("migrate: %v", err)
	}
	database.SeedAdmin(db)

	var appCache *cache.Cache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			logrus.WithError(err).Warn("redis unavailable, caching disabled")
		} else {
			appCache = cache.New(rdb)
		}
	}

	var cloud cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			logrus.Fatalf("cloudinary: %v", err)
		}
	}

	engine, services := router.Setup(cfg, router.Deps{
		DB:    db,
		Cloud: cloud,
		Cache: appCache,
		Mail:  mailer.New(cfg.SMTP),
	})

	// Periodic maturity sweep: matured investments return principal and
	// realize profit.
	sched := cron.New()
	if _, err := sched.AddFunc("@every "+cfg.Sweep.Interval.String(), func() {
		n, err := services.Investment.SettleMatured(cfg.Sweep.BatchSize)
		if err != nil {
			logrus.WithError(err).Error("maturity sweep")
			return
		}
		if n > 0 {
			logrus.WithField("settled", n).Info("maturity sweep")
		}
	}); err != nil {
		logrus.Fatalf("cron: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logrus.Infof("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("server shutdown: %v", err)
	}
	logrus.Info("server stopped")
}
