package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"LinguaVoice/internal/catalog"
	"LinguaVoice/internal/models"
	"LinguaVoice/pkg/logger"
	"LinguaVoice/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handlers) lookupAudio(c *gin.Context) (*models.Translation, bool) {
	sessionID := c.Param("session_id")
	record, err := h.store.FindTranslationBySession(sessionID)
	if err != nil {
		logger.Error("translation lookup failed", zap.String("session", sessionID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	if record == nil || record.TranslatedAudioPath == "" {
		response.Error(c, http.StatusNotFound, "Audio file not found")
		return nil, false
	}
	exists, err := h.blobs.Exists(record.TranslatedAudioPath)
	if err != nil || !exists {
		response.Error(c, http.StatusNotFound, "Audio file not found")
		return nil, false
	}
	return record, true
}

func (h *Handlers) handleStreamAudio(c *gin.Context) {
	record, ok := h.lookupAudio(c)
	if !ok {
		return
	}
	h.serveAudio(c, record, "inline", "voice_"+record.SessionID+".mp3")
}

func (h *Handlers) handleDownloadAudio(c *gin.Context) {
	record, ok := h.lookupAudio(c)
	if !ok {
		return
	}
	source := record.DetectedSourceLanguage
	if source == "" || source == "unknown" {
		source = record.SourceLanguage
	}
	name := fmt.Sprintf("voice_translation_%s_to_%s_%s.mp3",
		catalog.DisplayName(source), catalog.DisplayName(record.TargetLanguage), record.SessionID)
	h.serveAudio(c, record, "attachment", name)
}

func (h *Handlers) serveAudio(c *gin.Context, record *models.Translation, disposition, filename string) {
	body, size, err := h.blobs.Read(record.TranslatedAudioPath)
	if err != nil {
		response.Error(c, http.StatusNotFound, "Audio file not found")
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	if seeker, ok := body.(io.ReadSeeker); ok {
		c.Header("Content-Type", "audio/mpeg")
		http.ServeContent(c.Writer, c.Request, filename, time.Time{}, seeker)
		return
	}
	c.DataFromReader(http.StatusOK, size, "audio/mpeg", body, nil)
}
