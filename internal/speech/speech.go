// Package speech defines the three external capabilities the media pipeline
// orchestrates: speech recognition, text translation and voice synthesis.
// Real engines talk to an OpenAI-compatible API; stub engines keep the HTTP
// surface demo-able without credentials. Which set runs is an explicit
// configuration choice made once at startup.
package speech

import (
	"context"
	"io"
)

// Recognizer transcribes one uploaded media file.
type Recognizer interface {
	// Recognize extracts text from audio. The locale is a speech-engine tag
	// such as "en-US"; filename hints the container format.
	Recognize(ctx context.Context, audio io.Reader, filename, locale string) (string, error)
}

// Translator converts text between languages.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Synthesis is rendered speech plus the metadata the engine already knows.
type Synthesis struct {
	Audio io.ReadCloser
	// Duration in seconds when the engine knows it; 0 means the caller
	// should probe the audio itself.
	Duration float64
}

// Synthesizer renders text to speech.
type Synthesizer interface {
	// Synthesize renders text in the given language. Speed 1.0 is normal
	// delivery; 0.75 and 1.25 map to the slow and fast voice types.
	Synthesize(ctx context.Context, text, langCode string, speed float64) (Synthesis, error)
}

// Engines bundles one implementation of each capability.
type Engines struct {
	Recognizer  Recognizer
	Translator  Translator
	Synthesizer Synthesizer

	// Stub is true when the canned engines are in use.
	Stub bool
}
