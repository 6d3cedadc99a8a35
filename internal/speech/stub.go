package speech

import (
	"context"
	"io"
	"strings"
)

// Stub engines return canned material so the whole API stays usable with no
// speech credentials configured. They are a demo aid, not a quality- or
// privacy-preserving substitute for the real engines.

// stubDuration is the reported length of the placeholder audio.
const stubDuration = 3.5

var sampleTexts = map[string]string{
	"en": "This is sample English text extracted from the audio file.",
	"es": "Este es un texto de muestra en español extraído del archivo de audio.",
	"fr": "Ceci est un exemple de texte français extrait du fichier audio.",
	"de": "Dies ist ein Beispieltext auf Deutsch aus der Audiodatei.",
	"hi": "यह ऑडियो फाइल से निकाला गया हिंदी नमूना पाठ है।",
}

var sampleTranslations = map[string]string{
	"hi": "यह ऑडियो फाइल से निकाला गया नमूना पाठ है।",
	"es": "Este es un texto de muestra extraído del archivo de audio.",
	"fr": "Ceci est un exemple de texte extrait du fichier audio.",
	"de": "Dies ist ein Beispieltext aus der Audiodatei.",
	"it": "Questo è un testo di esempio estratto dal file audio.",
	"pt": "Este é um texto de amostra extraído do arquivo de áudio.",
	"ru": "Это образец текста, извлеченный из аудиофайла.",
	"ja": "これは音声ファイルから抽出されたサンプルテキストです。",
	"ko": "이것은 오디오 파일에서 추출한 샘플 텍스트입니다.",
	"zh": "这是从音频文件中提取的示例文本。",
	"ar": "هذا نص نموذجي مستخرج من ملف الصوت.",
	"th": "นี่คือข้อความตัวอย่างที่แยกออกมาจากไฟล์เสียง",
	"vi": "Đây là văn bản mẫu được trích xuất từ tệp âm thanh.",
	"id": "Ini adalah contoh teks yang diekstrak dari file audio.",
	"nl": "Dit is een voorbeeldtekst geëxtraheerd uit het audiobestand.",
	"sv": "Detta är en exempeltext extraherad från ljudfilen.",
	"tr": "Bu, ses dosyasından çıkarılan örnek bir metindir.",
	"pl": "To jest przykładowy tekst wyodrębniony z pliku audio.",
	"cs": "Toto je ukázkový text extrahovaný ze zvukového souboru.",
	"hu": "Ez egy minta szöveg a hangfájlból kivonva.",
	"ro": "Acesta este un text de probă extras din fișierul audio.",
}

const defaultSampleTranslation = "Sample translated text"

// NewStubEngines builds the canned engine set.
func NewStubEngines() *Engines {
	return &Engines{
		Recognizer:  &stubRecognizer{},
		Translator:  &stubTranslator{},
		Synthesizer: &stubSynthesizer{},
		Stub:        true,
	}
}

type stubRecognizer struct{}

// Recognize answers with the canned sample for the asked language, falling
// back to the English sample for languages without one. It never fails, so
// the detection probe always resolves a candidate.
func (r *stubRecognizer) Recognize(_ context.Context, _ io.Reader, _, locale string) (string, error) {
	asked, _, _ := strings.Cut(locale, "-")
	if sample, ok := sampleTexts[asked]; ok {
		return sample, nil
	}
	return sampleTexts["en"], nil
}

type stubTranslator struct{}

func (t *stubTranslator) Translate(_ context.Context, _ string, _, targetLang string) (string, error) {
	if sample, ok := sampleTranslations[targetLang]; ok {
		return sample, nil
	}
	return defaultSampleTranslation, nil
}

type stubSynthesizer struct{}

func (s *stubSynthesizer) Synthesize(_ context.Context, _, _ string, _ float64) (Synthesis, error) {
	return Synthesis{
		Audio:    io.NopCloser(strings.NewReader("Mock audio file")),
		Duration: stubDuration,
	}, nil
}

