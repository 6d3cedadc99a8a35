package handlers

import (
	"net/http"

	"LinguaVoice/internal/catalog"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) handleHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":              "LinguaVoice API",
		"version":              "5.0",
		"status":               "running",
		"processing_available": h.processing,
		"supported_formats":    allowedExtensions,
		"supported_languages":  len(catalog.SupportedLanguages()),
		"features": []string{
			"speech recognition",
			"text translation",
			"voice synthesis",
			"translation history",
		},
	})
}

// HealthCheck reports service liveness and database reachability.
func (h *Handlers) HealthCheck(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	if sqlDB, err := h.store.DB().DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"processing": h.processing,
	})
}
