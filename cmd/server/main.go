package main

import (
	"net/http"
	"os"
	"time"

	"LinguaVoice/internal/clean"
	handlers "LinguaVoice/internal/handler"
	"LinguaVoice/internal/pipeline"
	"LinguaVoice/internal/speech"
	"LinguaVoice/internal/store"
	"LinguaVoice/pkg/config"
	"LinguaVoice/pkg/logger"
	"LinguaVoice/pkg/metrics"
	"LinguaVoice/pkg/scheduler"
	"LinguaVoice/pkg/stores"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}
	cfg := config.GlobalConfig

	logger.Init(cfg.Log)
	defer logger.Sync()

	gin.SetMode(cfg.Mode)

	db, err := store.Open(cfg.DBDriver, cfg.DSN)
	if err != nil {
		logger.Error("could not open database", zap.Error(err))
		os.Exit(1)
	}
	if err := db.Init(); err != nil {
		logger.Error("could not initialize database", zap.Error(err))
		os.Exit(1)
	}

	blobs, err := stores.NewStore(cfg.StoreBackend, ".")
	if err != nil {
		logger.Error("could not initialize object store", zap.Error(err))
		os.Exit(1)
	}

	var engines *speech.Engines
	if cfg.ProcessingEnabled && cfg.LLMApiKey != "" {
		engines = speech.NewOpenAIEngines(speech.Options{
			APIKey:    cfg.LLMApiKey,
			BaseURL:   cfg.LLMBaseURL,
			STTModel:  cfg.STTModel,
			ChatModel: cfg.LLMModel,
			TTSModel:  cfg.TTSModel,
			TTSVoice:  cfg.TTSVoice,
		})
		logger.Info("speech engines ready", zap.String("mode", "live"))
	} else {
		engines = speech.NewStubEngines()
		logger.Warn("speech engines unavailable, serving sample results", zap.String("mode", "stub"))
	}

	m := metrics.New()
	pipe := pipeline.New(engines, blobs, m)

	engine := gin.New()
	engine.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		logger.Error("panic recovered", zap.Any("error", err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	engine.MaxMultipartMemory = cfg.MaxUploadSize

	h := handlers.NewHandlers(db, blobs, pipe, m, !engines.Stub)
	h.Register(engine)

	if cfg.CleanEnabled {
		cron := scheduler.NewCron(nil)
		cleaner := clean.New(blobs, time.Duration(cfg.CleanMaxAge)*24*time.Hour)
		if _, err := cron.Add(cfg.CleanSchedule, cleaner); err != nil {
			logger.Error("could not schedule cleanup", zap.Error(err))
			os.Exit(1)
		}
		cron.Start()
		defer cron.Stop()
		logger.Info("cleanup scheduled",
			zap.String("schedule", cfg.CleanSchedule), zap.Int("max_age_days", cfg.CleanMaxAge))
	}

	logger.Info("server starting", zap.String("addr", cfg.Addr))
	if err := engine.Run(cfg.Addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
