package handlers

import (
	"net/http"

	"LinguaVoice/pkg/logger"
	"LinguaVoice/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handlers) handleHistory(c *gin.Context) {
	entries, err := h.store.RecentHistory(100)
	if err != nil {
		logger.Error("history query failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Could not load history")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"history": entries,
		"total":   len(entries),
	})
}
