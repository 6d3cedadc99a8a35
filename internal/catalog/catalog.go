package catalog

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/text/language"
)

// Language is one supported language with its localized display name.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LanguageMap is an ordered code→name mapping. It marshals to a JSON object
// preserving catalog order, which plain Go maps cannot.
type LanguageMap []Language

func (m LanguageMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(l.Code)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(l.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var supported = LanguageMap{
	{"en", "English"},
	{"es", "Spanish (Español)"},
	{"fr", "French (Français)"},
	{"de", "German (Deutsch)"},
	{"it", "Italian (Italiano)"},
	{"pt", "Portuguese (Português)"},
	{"pt-br", "Portuguese Brazilian (Português Brasil)"},
	{"ru", "Russian (Русский)"},
	{"ja", "Japanese (日本語)"},
	{"ko", "Korean (한국어)"},
	{"zh", "Chinese Simplified (简体中文)"},
	{"zh-cn", "Chinese Simplified (简体中文)"},
	{"zh-tw", "Chinese Traditional (繁體中文)"},
	{"ar", "Arabic (العربية)"},
	{"nl", "Dutch (Nederlands)"},
	{"sv", "Swedish (Svenska)"},
	{"no", "Norwegian (Norsk)"},
	{"da", "Danish (Dansk)"},
	{"fi", "Finnish (Suomi)"},
	{"pl", "Polish (Polski)"},
	{"cs", "Czech (Čeština)"},
	{"sk", "Slovak (Slovenčina)"},
	{"hu", "Hungarian (Magyar)"},
	{"ro", "Romanian (Română)"},
	{"bg", "Bulgarian (Български)"},
	{"hr", "Croatian (Hrvatski)"},
	{"sr", "Serbian (Српски)"},
	{"sl", "Slovenian (Slovenščina)"},
	{"et", "Estonian (Eesti)"},
	{"lv", "Latvian (Latviešu)"},
	{"lt", "Lithuanian (Lietuvių)"},
	{"el", "Greek (Ελληνικά)"},
	{"tr", "Turkish (Türkçe)"},
	{"uk", "Ukrainian (Українська)"},
	{"hi", "Hindi (हिंदी)"},
	{"bn", "Bengali (বাংলা)"},
	{"te", "Telugu (తెలుగు)"},
	{"mr", "Marathi (मराठी)"},
	{"ta", "Tamil (தமிழ்)"},
	{"gu", "Gujarati (ગુજરાતી)"},
	{"kn", "Kannada (ಕನ್ನಡ)"},
	{"ml", "Malayalam (മലയാളം)"},
	{"pa", "Punjabi (ਪੰਜਾਬੀ)"},
	{"ur", "Urdu (اردو)"},
	{"th", "Thai (ไทย)"},
	{"vi", "Vietnamese (Tiếng Việt)"},
	{"id", "Indonesian (Bahasa Indonesia)"},
	{"ms", "Malay (Bahasa Melayu)"},
	{"tl", "Filipino (Tagalog)"},
	{"my", "Myanmar (မြန်မာ)"},
	{"km", "Khmer (ខ្មែរ)"},
	{"he", "Hebrew (עברית)"},
	{"fa", "Persian (فارسی)"},
	{"sw", "Swahili (Kiswahili)"},
	{"af", "Afrikaans"},
	{"is", "Icelandic (Íslenska)"},
	{"ca", "Catalan (Català)"},
	{"eu", "Basque (Euskera)"},
}

var speechLocales = map[string]string{
	"en": "en-US", "es": "es-ES", "fr": "fr-FR", "de": "de-DE", "it": "it-IT",
	"pt": "pt-PT", "pt-br": "pt-BR", "ru": "ru-RU", "ja": "ja-JP", "ko": "ko-KR",
	"zh": "zh-CN", "zh-cn": "zh-CN", "zh-tw": "zh-TW", "ar": "ar-SA",
	"nl": "nl-NL", "sv": "sv-SE", "no": "nb-NO", "da": "da-DK", "fi": "fi-FI",
	"pl": "pl-PL", "cs": "cs-CZ", "sk": "sk-SK", "hu": "hu-HU", "ro": "ro-RO",
	"bg": "bg-BG", "hr": "hr-HR", "sl": "sl-SI", "et": "et-EE", "lv": "lv-LV",
	"lt": "lt-LT", "el": "el-GR", "tr": "tr-TR", "uk": "uk-UA",
	"hi": "hi-IN", "bn": "bn-IN", "te": "te-IN", "mr": "mr-IN", "ta": "ta-IN",
	"gu": "gu-IN", "kn": "kn-IN", "ml": "ml-IN", "pa": "pa-IN", "ur": "ur-PK",
	"th": "th-TH", "vi": "vi-VN", "id": "id-ID", "ms": "ms-MY", "tl": "tl-PH",
	"my": "my-MM", "km": "km-KH", "he": "he-IL", "fa": "fa-IR", "af": "af-ZA",
	"sw": "sw-KE", "is": "is-IS", "ca": "ca-ES", "eu": "eu-ES",
}

var synthesisCodes = map[string]string{
	"zh": "zh-cn", "zh-cn": "zh-cn", "zh-tw": "zh-tw", "pt": "pt", "pt-br": "pt-br",
}

var (
	names   map[string]string
	matcher language.Matcher
)

func init() {
	names = make(map[string]string, len(supported))
	tags := make([]language.Tag, 0, len(supported))
	for _, l := range supported {
		names[l.Code] = l.Name
		if tag, err := language.Parse(l.Code); err == nil {
			tags = append(tags, tag)
		} else {
			tags = append(tags, language.Und)
		}
	}
	matcher = language.NewMatcher(tags)
}

// DisplayName returns the human-readable name for a code, or a generic
// label for codes outside the catalog.
func DisplayName(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return "Unknown"
}

// SpeechLocale maps a catalog code to a speech-recognition locale tag.
// Unknown codes synthesize "<code>-US".
func SpeechLocale(code string) string {
	if locale, ok := speechLocales[code]; ok {
		return locale
	}
	return code + "-US"
}

// SynthesisCode maps a catalog code to a synthesis-engine tag, defaulting
// to identity.
func SynthesisCode(code string) string {
	if tts, ok := synthesisCodes[code]; ok {
		return tts
	}
	return code
}

// IsSupported reports whether a code is in the catalog.
func IsSupported(code string) bool {
	_, ok := names[code]
	return ok
}

// Normalize resolves regioned or differently-cased codes onto the catalog
// (e.g. "PT-BR" → "pt-br"). Codes it cannot place are returned unchanged.
func Normalize(code string) string {
	lower := strings.ToLower(code)
	if _, ok := names[lower]; ok {
		return lower
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if _, idx, conf := matcher.Match(tag); conf >= language.High {
		return supported[idx].Code
	}
	return code
}

// SupportedLanguages returns the ordered catalog.
func SupportedLanguages() LanguageMap {
	out := make(LanguageMap, len(supported))
	copy(out, supported)
	return out
}

// SourceLanguageOptions returns the catalog with the synthetic auto-detect
// entry first.
func SourceLanguageOptions() LanguageMap {
	out := make(LanguageMap, 0, len(supported)+1)
	out = append(out, Language{Code: "auto", Name: "🌍 Auto-Detect Language"})
	return append(out, supported...)
}
