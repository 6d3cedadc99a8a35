package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"LinguaVoice/internal/catalog"
	"LinguaVoice/internal/models"
	"LinguaVoice/internal/pipeline"
	"LinguaVoice/pkg/config"
	"LinguaVoice/pkg/logger"
	"LinguaVoice/pkg/response"
	"LinguaVoice/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedExtensions = []string{"mp3", "wav", "mp4", "avi", "mov", "m4a", "ogg", "webm", "flac"}

func extensionAllowed(name string) bool {
	ext := util.FileExt(name)
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (h *Handlers) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No file provided")
		return
	}
	if file.Filename == "" {
		response.Error(c, http.StatusBadRequest, "No file selected")
		return
	}
	if !extensionAllowed(file.Filename) {
		response.Error(c, http.StatusBadRequest,
			fmt.Sprintf("File type not supported. Allowed formats: %s", strings.Join(allowedExtensions, ", ")))
		return
	}
	if file.Size > config.GlobalConfig.MaxUploadSize {
		response.Error(c, http.StatusRequestEntityTooLarge, "File exceeds the maximum upload size")
		return
	}

	sourceLanguage := c.DefaultPostForm("source_language", "auto")
	targetLanguage := catalog.Normalize(c.DefaultPostForm("target_language", "en"))
	voiceType := c.DefaultPostForm("voice_type", models.VoiceStandard)
	if sourceLanguage != "auto" {
		sourceLanguage = catalog.Normalize(sourceLanguage)
	}

	sessionID := uuid.New().String()
	filename := util.SanitizeFilename(file.Filename)
	uploadKey := fmt.Sprintf("uploads/%s_%s", sessionID, filename)

	src, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No file provided")
		return
	}
	defer src.Close()

	fileSize, err := h.blobs.Write(uploadKey, src)
	if err != nil {
		logger.Error("could not persist upload", zap.String("session", sessionID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Could not save uploaded file")
		return
	}
	logger.Info("file saved",
		zap.String("session", sessionID), zap.String("key", uploadKey), zap.Int64("bytes", fileSize))
	if h.m != nil {
		h.m.RecordUpload(targetLanguage, voiceType)
	}

	result := h.pipe.Process(c.Request.Context(), pipeline.Request{
		SessionID:      sessionID,
		UploadKey:      uploadKey,
		Filename:       filename,
		SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage,
		VoiceType:      voiceType,
	})

	record := models.Translation{
		SessionID:              sessionID,
		OriginalFilename:       filename,
		OriginalAudioPath:      uploadKey,
		SourceLanguage:         sourceLanguage,
		DetectedSourceLanguage: result.DetectedSourceLanguage,
		TargetLanguage:         targetLanguage,
		OriginalText:           result.OriginalText,
		TranslatedText:         result.TranslatedText,
		AudioPath:              uploadKey,
		TranslatedAudioPath:    result.TranslatedAudioKey,
		TranslatedAudioURL:     result.TranslatedAudioURL,
		FileSize:               fileSize,
		ProcessingTime:         result.ProcessingTime,
		ConfidenceScore:        result.ConfidenceScore,
		VoiceType:              voiceType,
		AudioDuration:          result.AudioDuration,
	}
	if err := h.store.InsertTranslation(&record); err != nil {
		logger.Error("could not save translation record",
			zap.String("session", sessionID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Could not save translation record")
		return
	}

	var audioURL, downloadURL interface{}
	if result.AudioAvailable() {
		audioURL = result.TranslatedAudioURL
		downloadURL = "/download_audio/" + sessionID
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                   "success",
		"session_id":               sessionID,
		"original_text":            result.OriginalText,
		"translated_text":          result.TranslatedText,
		"source_language":          sourceLanguage,
		"detected_source_language": result.DetectedSourceLanguage,
		"target_language":          targetLanguage,
		"confidence_score":         result.ConfidenceScore,
		"audio_available":          result.AudioAvailable(),
		"audio_url":                audioURL,
		"audio_duration":           result.AudioDuration,
		"voice_type":               voiceType,
		"processing_time":          result.ProcessingTime,
		"file_size":                fileSize,
		"download_url":             downloadURL,
	})
}
