package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lucaromano98/debiti-stop/internal/cache"
	"github.com/lucaromano98/debiti-stop/internal/config"
	"github.com/lucaromano98/debiti-stop/internal/database"
	"github.com/lucaromano98/debiti-stop/internal/handlers"
	"github.com/lucaromano98/debiti-stop/internal/server"
	"github.com/lucaromano98/debiti-stop/internal/storage"
)

func main() {
	cfg := config.Load()

	zapCfg := zap.NewProductionConfig()
	if cfg.LogLevel != "" {
		if lvl, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
			zapCfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}
	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	db := database.Init(cfg.DBDSN, cfg.AdminUsername, cfg.AdminPassword)

	var contatori cache.Contatori = cache.Noop{}
	if cfg.RedisAddr != "" {
		if c, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword); err == nil {
			contatori = c
			logger.Info("redis cache abilitata", zap.String("addr", cfg.RedisAddr))
		} else {
			logger.Warn("redis non raggiungibile, cache disabilitata", zap.Error(err))
		}
	}
	defer contatori.Close()

	store := storage.NewLocale(cfg.MediaRoot)
	h := handlers.New(db, store, logger, contatori)

	r := server.NewRouter(cfg, db, h)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
