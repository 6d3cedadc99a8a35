package handlers

import (
	"net/http"

	"LinguaVoice/internal/catalog"
	"LinguaVoice/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) handleLanguages(c *gin.Context) {
	languages := catalog.SupportedLanguages()
	c.JSON(http.StatusOK, gin.H{
		"languages": languages,
		"total":     len(languages),
	})
}

func (h *Handlers) handleSourceLanguages(c *gin.Context) {
	languages := catalog.SourceLanguageOptions()
	c.JSON(http.StatusOK, gin.H{
		"languages": languages,
		"total":     len(languages),
	})
}

func (h *Handlers) handleVoiceOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"voice_options": gin.H{
			models.VoiceStandard: "Standard Speed",
			models.VoiceSlow:     "Slow & Clear",
			models.VoiceFast:     "Fast Speech",
		},
		"default": models.VoiceStandard,
	})
}
