package config

import (
	"log"
	"os"

	"LinguaVoice/pkg/logger"
	"LinguaVoice/pkg/util"
)

type Config struct {
	Addr     string `env:"ADDR"`
	Mode     string `env:"MODE"`
	DBDriver string `env:"DB_DRIVER"`
	DSN      string `env:"DSN"`
	Log      logger.LogConfig

	UploadDir     string `env:"UPLOAD_DIR"`
	OutputDir     string `env:"OUTPUT_DIR"`
	StaticDir     string `env:"STATIC_DIR"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE"`
	StoreBackend  string `env:"STORE_BACKEND"`
	UploadRate    string `env:"UPLOAD_RATE"` // e.g. "30-M"; empty disables limiting

	// Speech engine settings. Processing runs against the real engines only
	// when enabled and an API key is present; otherwise the stub engines
	// keep the API demo-able.
	ProcessingEnabled bool   `env:"PROCESSING_ENABLED"`
	LLMApiKey         string `env:"LLM_API_KEY"`
	LLMBaseURL        string `env:"LLM_BASE_URL"`
	LLMModel          string `env:"LLM_MODEL"`
	STTModel          string `env:"STT_MODEL"`
	TTSModel          string `env:"TTS_MODEL"`
	TTSVoice          string `env:"TTS_VOICE"`

	CleanEnabled  bool   `env:"CLEAN_ENABLED"`
	CleanSchedule string `env:"CLEAN_SCHEDULE"`
	CleanMaxAge   int    `env:"CLEAN_MAX_AGE_DAYS"`
}

var GlobalConfig *Config

func Load() error {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if err := util.LoadEnv(env); err != nil {
		log.Printf("Failed to load .env file: %v", err)
	}

	GlobalConfig = &Config{
		Addr:     util.GetEnvDefault("ADDR", ":5000"),
		Mode:     util.GetEnvDefault("MODE", "debug"),
		DBDriver: util.GetEnvDefault("DB_DRIVER", "sqlite"),
		DSN:      util.GetEnvDefault("DSN", "linguavoice.db"),
		Log: logger.LogConfig{
			Level:      util.GetEnv("LOG_LEVEL"),
			Filename:   util.GetEnv("LOG_FILENAME"),
			MaxSize:    int(util.GetIntEnv("LOG_MAX_SIZE")),
			MaxAge:     int(util.GetIntEnv("LOG_MAX_AGE")),
			MaxBackups: int(util.GetIntEnv("LOG_MAX_BACKUPS")),
		},
		UploadDir:         util.GetEnvDefault("UPLOAD_DIR", "uploads"),
		OutputDir:         util.GetEnvDefault("OUTPUT_DIR", "output_audio"),
		StaticDir:         util.GetEnvDefault("STATIC_DIR", "static"),
		MaxUploadSize:     maxUploadSize(),
		StoreBackend:      util.GetEnvDefault("STORE_BACKEND", "local"),
		UploadRate:        util.GetEnv("UPLOAD_RATE"),
		ProcessingEnabled: util.GetBoolEnv("PROCESSING_ENABLED"),
		LLMApiKey:         util.GetEnv("LLM_API_KEY"),
		LLMBaseURL:        util.GetEnv("LLM_BASE_URL"),
		LLMModel:          util.GetEnvDefault("LLM_MODEL", "gpt-4o-mini"),
		STTModel:          util.GetEnvDefault("STT_MODEL", "whisper-1"),
		TTSModel:          util.GetEnvDefault("TTS_MODEL", "tts-1"),
		TTSVoice:          util.GetEnvDefault("TTS_VOICE", "alloy"),
		CleanEnabled:      util.GetBoolEnv("CLEAN_ENABLED"),
		CleanSchedule:     util.GetEnvDefault("CLEAN_SCHEDULE", "0 3 * * *"),
		CleanMaxAge:       int(util.GetIntEnv("CLEAN_MAX_AGE_DAYS")),
	}
	return nil
}

func maxUploadSize() int64 {
	if v := util.GetIntEnv("MAX_UPLOAD_SIZE"); v > 0 {
		return v
	}
	return 50 * 1024 * 1024
}
