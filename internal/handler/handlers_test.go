package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"LinguaVoice/internal/pipeline"
	"LinguaVoice/internal/speech"
	"LinguaVoice/internal/store"
	"LinguaVoice/pkg/config"
	"LinguaVoice/pkg/stores"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.GlobalConfig = &config.Config{
		StaticDir:     "static",
		MaxUploadSize: 50 * 1024 * 1024,
	}

	db, err := store.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Init())

	blobs, err := stores.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	engines := speech.NewStubEngines()
	pipe := pipeline.New(engines, blobs, nil)

	engine := gin.New()
	NewHandlers(db, blobs, pipe, nil, false).Register(engine)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, engine *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	var body map[string]any
	if strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func uploadFile(t *testing.T, engine *gin.Engine, filename string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("pretend media content"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestUpload(t *testing.T) {
	engine := newTestServer(t)

	t.Run("full roundtrip", func(t *testing.T) {
		w := uploadFile(t, engine, "clip.mp3", map[string]string{
			"source_language": "en",
			"target_language": "fr",
			"voice_type":      "fast",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)

		assert.Equal(t, "success", body["status"])
		sid, _ := body["session_id"].(string)
		require.NotEmpty(t, sid)
		assert.Equal(t, "This is sample English text extracted from the audio file.", body["original_text"])
		assert.Equal(t, "Ceci est un exemple de texte extrait du fichier audio.", body["translated_text"])
		assert.Equal(t, "en", body["detected_source_language"])
		assert.Equal(t, "fr", body["target_language"])
		assert.Equal(t, 0.9, body["confidence_score"])
		assert.Equal(t, true, body["audio_available"])
		assert.Equal(t, "/stream_audio/"+sid, body["audio_url"])
		assert.Equal(t, 3.5, body["audio_duration"])
		assert.Equal(t, "fast", body["voice_type"])
		assert.Equal(t, float64(len("pretend media content")), body["file_size"])
		assert.Equal(t, "/download_audio/"+sid, body["download_url"])

		t.Run("stream", func(t *testing.T) {
			w, _ := getJSON(t, engine, "/stream_audio/"+sid)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "Mock audio file", w.Body.String())
			assert.Contains(t, w.Header().Get("Content-Type"), "audio/mpeg")
			assert.Contains(t, w.Header().Get("Content-Disposition"), "inline")
		})

		t.Run("download", func(t *testing.T) {
			w, _ := getJSON(t, engine, "/download_audio/"+sid)
			assert.Equal(t, http.StatusOK, w.Code)
			disposition := w.Header().Get("Content-Disposition")
			assert.Contains(t, disposition, "attachment")
			assert.Contains(t, disposition, "voice_translation_English_to_French")
			assert.Contains(t, disposition, sid+".mp3")
		})
	})

	t.Run("no file", func(t *testing.T) {
		w := uploadFile(t, engine, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No file provided", decode(t, w)["error"])
	})

	t.Run("unsupported extension", func(t *testing.T) {
		w := uploadFile(t, engine, "notes.txt", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["error"], "File type not supported")
	})

	t.Run("auto detection over stub engines", func(t *testing.T) {
		w := uploadFile(t, engine, "clip.wav", map[string]string{
			"source_language": "auto",
			"target_language": "de",
		})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.NotEqual(t, "unknown", body["detected_source_language"])
		assert.NotEmpty(t, body["original_text"])
	})
}

func TestStreamAudioNotFound(t *testing.T) {
	engine := newTestServer(t)

	w, body := getJSON(t, engine, "/stream_audio/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Audio file not found", body["error"])

	w, body = getJSON(t, engine, "/download_audio/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Audio file not found", body["error"])
}

func TestRegister(t *testing.T) {
	engine := newTestServer(t)

	t.Run("success", func(t *testing.T) {
		w := postJSON(t, engine, "/register", gin.H{
			"email": " New@Example.com ", "password": "secret99", "name": "New User",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Account created successfully!", body["message"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "new@example.com", user["email"])
		assert.Equal(t, "user", user["role"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := postJSON(t, engine, "/register", gin.H{
			"email": "new@example.com", "password": "secret99", "name": "Again",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email already registered", decode(t, w)["error"])
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name string
			body gin.H
			want string
		}{
			{"missing fields", gin.H{"email": "a@b.c"}, "All fields are required"},
			{"short password", gin.H{"email": "a@b.c", "password": "12345", "name": "A"}, "Password must be at least 6 characters"},
			{"bad email", gin.H{"email": "not-an-email", "password": "123456", "name": "A"}, "Please enter a valid email address"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				w := postJSON(t, engine, "/register", tc.body)
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, tc.want, decode(t, w)["error"])
			})
		}
	})
}

func TestAuth(t *testing.T) {
	engine := newTestServer(t)

	t.Run("seeded account signs in", func(t *testing.T) {
		w := postJSON(t, engine, "/auth", gin.H{"email": "user@linguavoice.com", "password": "user123"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "user@linguavoice.com", user["email"])
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(t, engine, "/auth", gin.H{"email": "user@linguavoice.com", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", decode(t, w)["error"])
	})

	t.Run("missing credentials", func(t *testing.T) {
		w := postJSON(t, engine, "/auth", gin.H{"email": "user@linguavoice.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email and password are required", decode(t, w)["error"])
	})
}

func TestCatalogEndpoints(t *testing.T) {
	engine := newTestServer(t)

	t.Run("languages", func(t *testing.T) {
		w, body := getJSON(t, engine, "/languages")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(58), body["total"])
		langs := body["languages"].(map[string]any)
		assert.Equal(t, "English", langs["en"])
	})

	t.Run("source languages include auto", func(t *testing.T) {
		w, body := getJSON(t, engine, "/source_languages")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(59), body["total"])
		langs := body["languages"].(map[string]any)
		assert.Contains(t, langs["auto"], "Auto-Detect")
		// the synthetic entry must serialize first
		assert.True(t, strings.Index(w.Body.String(), `"auto"`) < strings.Index(w.Body.String(), `"en"`))
	})

	t.Run("voice options", func(t *testing.T) {
		w, body := getJSON(t, engine, "/voice_options")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "standard", body["default"])
		opts := body["voice_options"].(map[string]any)
		assert.Len(t, opts, 3)
		assert.Equal(t, "Slow & Clear", opts["slow"])
	})
}

func TestHistory(t *testing.T) {
	engine := newTestServer(t)

	w, body := getJSON(t, engine, "/history")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["total"])

	for i := 0; i < 2; i++ {
		resp := uploadFile(t, engine, fmt.Sprintf("clip%d.mp3", i), map[string]string{
			"source_language": "en",
			"target_language": "es",
		})
		require.Equal(t, http.StatusOK, resp.Code)
	}

	w, body = getJSON(t, engine, "/history")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["total"])
	entries := body["history"].([]any)
	require.Len(t, entries, 2)
	first := entries[0].(map[string]any)
	assert.NotEmpty(t, first["session_id"])
	assert.Equal(t, "es", first["target_language"])
	_, hasID := first["id"]
	assert.False(t, hasID, "history entries carry no row ids")
}

func TestHome(t *testing.T) {
	engine := newTestServer(t)

	w, body := getJSON(t, engine, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5.0", body["version"])
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, false, body["processing_available"])
	assert.Equal(t, float64(58), body["supported_languages"])
}

func TestHealth(t *testing.T) {
	engine := newTestServer(t)

	w, body := getJSON(t, engine, "/system/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestCORSPreflight(t *testing.T) {
	engine := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
