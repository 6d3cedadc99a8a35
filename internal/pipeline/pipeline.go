// Package pipeline runs one uploaded media file through speech recognition,
// translation and voice synthesis. Every step degrades in place: a failed
// step leaves a sentinel text or no audio behind and the request as a whole
// still succeeds.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"LinguaVoice/internal/catalog"
	"LinguaVoice/internal/speech"
	"LinguaVoice/pkg/logger"
	"LinguaVoice/pkg/metrics"
	"LinguaVoice/pkg/stores"

	"go.uber.org/zap"
)

const (
	// transcriptionFailurePrefix marks transcription results that carry an
	// error message instead of speech.
	transcriptionFailurePrefix = "Could not"
	// translationFailurePrefix marks translation results the synthesizer
	// must not speak.
	translationFailurePrefix = "Translation failed"

	detectionFailedText   = "Could not detect language or extract text from audio"
	translationSkippedMsg = "Translation failed due to language detection issues"

	// minCandidateLength is the shortest transcription accepted as a
	// detection candidate.
	minCandidateLength = 5
	// earlyStopConfidence short-circuits the detection probe.
	earlyStopConfidence = 0.8
	// givenSourceConfidence is reported when the caller names the source.
	givenSourceConfidence = 0.9

	// Long inputs are translated in fixed-size chunks; engines reject
	// inputs past a few thousand characters.
	chunkThreshold = 5000
	chunkSize      = 4000

	// synthesisTextLimit caps what is handed to the synthesizer.
	synthesisTextLimit = 1000

	outputKeyPrefix = "output_audio"
)

// detectionProbeOrder is the fixed candidate list for auto-detection.
var detectionProbeOrder = []string{
	"en", "es", "fr", "de", "it", "pt", "ru", "ja", "ko", "zh-cn", "ar", "hi",
}

// Request describes one upload already persisted to blob storage.
type Request struct {
	SessionID      string
	UploadKey      string
	Filename       string
	SourceLanguage string // concrete code or "auto"
	TargetLanguage string
	VoiceType      string
}

// Result carries everything the upload handler persists and returns.
type Result struct {
	OriginalText           string
	TranslatedText         string
	DetectedSourceLanguage string
	ConfidenceScore        float64
	TranslatedAudioKey     string
	TranslatedAudioURL     string
	AudioDuration          float64
	ProcessingTime         float64
}

// AudioAvailable reports whether synthesis produced audio.
func (r Result) AudioAvailable() bool { return r.TranslatedAudioKey != "" }

type Pipeline struct {
	engines *speech.Engines
	blobs   stores.Store
	metrics *metrics.Metrics
}

func New(engines *speech.Engines, blobs stores.Store, m *metrics.Metrics) *Pipeline {
	return &Pipeline{engines: engines, blobs: blobs, metrics: m}
}

// Process runs the full pipeline synchronously. It never returns an error:
// collaborator failures are folded into the result as sentinel text or
// missing audio.
func (p *Pipeline) Process(ctx context.Context, req Request) Result {
	start := time.Now()

	res := p.resolveSource(ctx, req)
	p.translateStep(ctx, req, &res)
	p.synthesizeStep(ctx, req, &res)

	res.ProcessingTime = time.Since(start).Seconds()
	return res
}

// resolveSource transcribes the upload, probing candidate languages when the
// caller asked for auto-detection.
func (p *Pipeline) resolveSource(ctx context.Context, req Request) Result {
	stepStart := time.Now()
	res := Result{}

	if req.SourceLanguage != "auto" {
		locale := catalog.SpeechLocale(req.SourceLanguage)
		text, err := p.transcribe(ctx, req, locale)
		if err != nil {
			logger.Warn("transcription failed",
				zap.String("session", req.SessionID), zap.Error(err))
			text = fmt.Sprintf("%s understand audio in %s", transcriptionFailurePrefix, locale)
		}
		res.OriginalText = text
		res.DetectedSourceLanguage = req.SourceLanguage
		res.ConfidenceScore = givenSourceConfidence
		p.recordStep("transcription", stepStart, err != nil)
		return res
	}

	bestText := ""
	bestLang := ""
	bestConfidence := 0.0
	for _, candidate := range detectionProbeOrder {
		locale := catalog.SpeechLocale(candidate)
		text, err := p.transcribe(ctx, req, locale)
		if err != nil {
			continue
		}
		trimmed := strings.TrimSpace(text)
		if len([]rune(trimmed)) <= minCandidateLength ||
			strings.HasPrefix(trimmed, transcriptionFailurePrefix) {
			continue
		}
		confidence := lengthConfidence(trimmed)
		if confidence > bestConfidence {
			bestConfidence = confidence
			bestText = text
			bestLang = candidate
		}
		if confidence > earlyStopConfidence {
			break
		}
	}

	if bestText != "" {
		res.OriginalText = bestText
		res.DetectedSourceLanguage = bestLang
		res.ConfidenceScore = bestConfidence
	} else {
		res.OriginalText = detectionFailedText
		res.DetectedSourceLanguage = "unknown"
		res.ConfidenceScore = 0.0
	}
	p.recordStep("detection", stepStart, bestText == "")
	return res
}

func (p *Pipeline) translateStep(ctx context.Context, req Request, res *Result) {
	stepStart := time.Now()
	detected := res.DetectedSourceLanguage

	switch {
	case detected == req.TargetLanguage:
		res.TranslatedText = res.OriginalText
		return
	case detected == "unknown" || res.OriginalText == "" ||
		strings.HasPrefix(res.OriginalText, transcriptionFailurePrefix):
		res.TranslatedText = translationSkippedMsg
		return
	}

	translated, err := p.translate(ctx, res.OriginalText, detected, req.TargetLanguage)
	if err != nil {
		logger.Warn("translation failed",
			zap.String("session", req.SessionID), zap.Error(err))
		res.TranslatedText = fmt.Sprintf("%s: %v", translationFailurePrefix, err)
		p.recordStep("translation", stepStart, true)
		return
	}
	res.TranslatedText = translated
	p.recordStep("translation", stepStart, false)
}

// translate splits long inputs into fixed-size chunks, translates them
// independently and joins the parts with single spaces. Chunk joins may land
// mid-sentence; that is an accepted approximation.
func (p *Pipeline) translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	runes := []rune(text)
	if len(runes) <= chunkThreshold {
		return p.engines.Translator.Translate(ctx, text, sourceLang, targetLang)
	}

	var parts []string
	for offset := 0; offset < len(runes); offset += chunkSize {
		end := offset + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		translated, err := p.engines.Translator.Translate(ctx, string(runes[offset:end]), sourceLang, targetLang)
		if err != nil {
			return "", err
		}
		parts = append(parts, translated)
	}
	return strings.Join(parts, " "), nil
}

func (p *Pipeline) synthesizeStep(ctx context.Context, req Request, res *Result) {
	if res.TranslatedText == "" ||
		strings.HasPrefix(res.TranslatedText, translationFailurePrefix) {
		return
	}
	stepStart := time.Now()

	text := res.TranslatedText
	if runes := []rune(text); len(runes) > synthesisTextLimit {
		text = string(runes[:synthesisTextLimit]) + "..."
	}

	synthesis, err := p.engines.Synthesizer.Synthesize(ctx, text,
		catalog.SynthesisCode(req.TargetLanguage), voiceSpeed(req.VoiceType))
	if err != nil {
		logger.Warn("voice synthesis failed",
			zap.String("session", req.SessionID), zap.Error(err))
		p.recordStep("synthesis", stepStart, true)
		return
	}
	defer synthesis.Audio.Close()

	key := fmt.Sprintf("%s/voice_%s.mp3", outputKeyPrefix, req.SessionID)
	if _, err := p.blobs.Write(key, synthesis.Audio); err != nil {
		logger.Warn("could not persist synthesized audio",
			zap.String("session", req.SessionID), zap.Error(err))
		p.recordStep("synthesis", stepStart, true)
		return
	}

	res.TranslatedAudioKey = key
	res.TranslatedAudioURL = "/stream_audio/" + req.SessionID
	res.AudioDuration = synthesis.Duration
	if res.AudioDuration == 0 {
		res.AudioDuration = p.probeDuration(key)
	}
	p.recordStep("synthesis", stepStart, false)
}

func (p *Pipeline) transcribe(ctx context.Context, req Request, locale string) (string, error) {
	audio, _, err := p.blobs.Read(req.UploadKey)
	if err != nil {
		return "", err
	}
	defer audio.Close()
	return p.engines.Recognizer.Recognize(ctx, audio, req.Filename, locale)
}

func (p *Pipeline) probeDuration(key string) float64 {
	audio, _, err := p.blobs.Read(key)
	if err != nil {
		return 0
	}
	defer audio.Close()
	seconds, err := mp3Duration(audio)
	if err != nil {
		logger.Warn("could not measure audio duration", zap.String("key", key), zap.Error(err))
		return 0
	}
	return seconds
}

func (p *Pipeline) recordStep(step string, start time.Time, failed bool) {
	if p.metrics != nil {
		p.metrics.RecordPipelineStep(step, time.Since(start), failed)
	}
}

// lengthConfidence maps transcription length onto [0,1]. A heuristic, not a
// statistical certainty measure.
func lengthConfidence(text string) float64 {
	confidence := float64(len([]rune(text))) / 100.0
	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}

func voiceSpeed(voiceType string) float64 {
	switch voiceType {
	case "slow":
		return 0.75
	case "fast":
		return 1.25
	default:
		return 1.0
	}
}
