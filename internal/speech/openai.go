package speech

import (
	"context"
	"fmt"
	"io"
	"strings"

	"LinguaVoice/pkg/errors"

	openai "github.com/sashabaranov/go-openai"
)

// Options configures the OpenAI-compatible engines.
type Options struct {
	APIKey   string
	BaseURL  string
	STTModel string
	// ChatModel drives translation.
	ChatModel string
	TTSModel  string
	TTSVoice  string
}

// NewOpenAIEngines builds the real engine set on a shared API client.
func NewOpenAIEngines(opts Options) *Engines {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	client := openai.NewClientWithConfig(cfg)

	return &Engines{
		Recognizer:  &openaiRecognizer{client: client, model: opts.STTModel},
		Translator:  &openaiTranslator{client: client, model: opts.ChatModel},
		Synthesizer: &openaiSynthesizer{client: client, model: opts.TTSModel, voice: opts.TTSVoice},
	}
}

type openaiRecognizer struct {
	client *openai.Client
	model  string
}

func (r *openaiRecognizer) Recognize(ctx context.Context, audio io.Reader, filename, locale string) (string, error) {
	// The transcription API takes a bare ISO 639-1 code, not a full locale.
	lang, _, _ := strings.Cut(locale, "-")
	resp, err := r.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    r.model,
		Reader:   audio,
		FilePath: filename,
		Language: lang,
	})
	if err != nil {
		return "", errors.Wrapf(err, "transcribe %s", locale)
	}
	return resp.Text, nil
}

type openaiTranslator struct {
	client *openai.Client
	model  string
}

func (t *openaiTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following text from %s to %s. Return ONLY the translated text without any explanations or quotes: %s",
		sourceLang, targetLang, text)

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       t.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a translation engine."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "translate text")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no translation generated")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

type openaiSynthesizer struct {
	client *openai.Client
	model  string
	voice  string
}

func (s *openaiSynthesizer) Synthesize(ctx context.Context, text, langCode string, speed float64) (Synthesis, error) {
	if speed <= 0 {
		speed = 1.0
	}
	// The voice carries the accent; langCode stays informational here.
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.SpeechVoice(s.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          speed,
	})
	if err != nil {
		return Synthesis{}, errors.Wrapf(err, "synthesize %s", langCode)
	}
	return Synthesis{Audio: resp}, nil
}
