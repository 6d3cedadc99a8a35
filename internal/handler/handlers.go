package handlers

import (
	"path/filepath"

	"LinguaVoice/internal/pipeline"
	"LinguaVoice/internal/store"
	"LinguaVoice/pkg/config"
	"LinguaVoice/pkg/logger"
	"LinguaVoice/pkg/metrics"
	"LinguaVoice/pkg/middleware"
	"LinguaVoice/pkg/stores"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	store *store.Store
	blobs stores.Store
	pipe  *pipeline.Pipeline
	m     *metrics.Metrics

	// processing is false when the stub engines are serving requests.
	processing bool
}

func NewHandlers(st *store.Store, blobs stores.Store, pipe *pipeline.Pipeline, m *metrics.Metrics, processing bool) *Handlers {
	return &Handlers{store: st, blobs: blobs, pipe: pipe, m: m, processing: processing}
}

func (h *Handlers) Register(engine *gin.Engine) {
	engine.Use(middleware.CORS())
	if h.m != nil {
		engine.Use(metrics.Middleware(h.m))
		engine.GET("/metrics", gin.WrapH(h.m.Handler()))
	}

	upload := []gin.HandlerFunc{h.handleUpload}
	if rate := config.GlobalConfig.UploadRate; rate != "" {
		limiter, err := middleware.NewRateLimiter(rate)
		if err != nil {
			logger.Warn("invalid upload rate, limiter disabled",
				zap.String("rate", rate), zap.Error(err))
		} else {
			upload = append([]gin.HandlerFunc{limiter.Middleware()}, upload...)
		}
	}

	engine.GET("/", h.handleHome)
	engine.GET("/login", h.staticPage("login.html"))
	engine.GET("/signup", h.staticPage("signup.html"))
	engine.GET("/translate", h.staticPage("translate.html"))

	engine.POST("/register", h.handleRegister)
	engine.POST("/auth", h.handleAuth)

	engine.POST("/upload", upload...)
	engine.GET("/stream_audio/:session_id", h.handleStreamAudio)
	engine.GET("/download_audio/:session_id", h.handleDownloadAudio)

	engine.GET("/languages", h.handleLanguages)
	engine.GET("/source_languages", h.handleSourceLanguages)
	engine.GET("/voice_options", h.handleVoiceOptions)
	engine.GET("/history", h.handleHistory)

	system := engine.Group("/system")
	{
		system.GET("/health", h.HealthCheck)
	}
}

func (h *Handlers) staticPage(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.File(filepath.Join(config.GlobalConfig.StaticDir, name))
	}
}
