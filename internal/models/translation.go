package models

import "time"

const (
	VoiceStandard = "standard"
	VoiceSlow     = "slow"
	VoiceFast     = "fast"
)

// Translation is one upload-to-voice session. Rows are append-only: written
// once at the end of an upload request, then only read back by the history,
// stream and download endpoints. SessionID deliberately carries no unique
// constraint; lookups take the newest row for a session.
type Translation struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	SessionID              string    `gorm:"column:session_id;size:64;not null" json:"session_id"`
	OriginalFilename       string    `json:"original_filename"`
	OriginalAudioPath      string    `json:"-"`
	SourceLanguage         string    `gorm:"default:en" json:"source_language"`
	DetectedSourceLanguage string    `json:"detected_source_language"`
	TargetLanguage         string    `json:"target_language"`
	OriginalText           string    `gorm:"type:text" json:"original_text"`
	TranslatedText         string    `gorm:"type:text" json:"translated_text"`
	AudioPath              string    `json:"-"`
	TranslatedAudioPath    string    `json:"-"`
	TranslatedAudioURL     string    `gorm:"column:translated_audio_url" json:"translated_audio_url"`
	FileSize               int64     `json:"file_size"`
	ProcessingTime         float64   `json:"processing_time"`
	ConfidenceScore        float64   `gorm:"default:0" json:"confidence_score"`
	VoiceType              string    `gorm:"size:32;default:standard" json:"voice_type"`
	AudioDuration          float64   `gorm:"default:0" json:"audio_duration"`
	CreatedAt              time.Time `json:"created_at"`
}

func (Translation) TableName() string { return "translations" }

// HistoryEntry is the projection returned by the history endpoint: no row id
// and no filesystem paths.
type HistoryEntry struct {
	SessionID              string    `gorm:"column:session_id" json:"session_id"`
	OriginalFilename       string    `json:"original_filename"`
	SourceLanguage         string    `json:"source_language"`
	DetectedSourceLanguage string    `json:"detected_source_language"`
	TargetLanguage         string    `json:"target_language"`
	OriginalText           string    `json:"original_text"`
	TranslatedText         string    `json:"translated_text"`
	TranslatedAudioURL     string    `gorm:"column:translated_audio_url" json:"translated_audio_url"`
	FileSize               int64     `json:"file_size"`
	ProcessingTime         float64   `json:"processing_time"`
	ConfidenceScore        float64   `json:"confidence_score"`
	VoiceType              string    `json:"voice_type"`
	AudioDuration          float64   `json:"audio_duration"`
	CreatedAt              time.Time `json:"created_at"`
}
