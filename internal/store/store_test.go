package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"LinguaVoice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())
	return s
}

func TestInitSeedsDefaultAccounts(t *testing.T) {
	s := newTestStore(t)

	for _, tc := range []struct {
		email    string
		password string
		role     string
	}{
		{"superadmin@linguavoice.com", "super123", models.RoleSuperAdmin},
		{"admin@linguavoice.com", "admin123", models.RoleAdmin},
		{"user@linguavoice.com", "user123", models.RoleUser},
	} {
		user, err := s.Authenticate(tc.email, models.HashPassword(tc.password))
		require.NoError(t, err)
		require.NotNil(t, user, tc.email)
		assert.Equal(t, tc.role, user.Role)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db")
	s, err := Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, s.Init())

	record := models.Translation{SessionID: "keep-me", TargetLanguage: "fr"}
	require.NoError(t, s.InsertTranslation(&record))

	// a second startup against the same file must not touch existing data
	s2, err := Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, s2.Init())

	found, err := s2.FindTranslationBySession("keep-me")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "fr", found.TargetLanguage)

	var count int64
	require.NoError(t, s2.DB().Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(3), count, "seeding must not duplicate accounts")
}

func TestInitRebuildsLegacyTable(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db")
	s, err := Open("sqlite", dsn)
	require.NoError(t, err)

	// legacy 13-column layout: the mapped 12-column prefix plus created_at
	require.NoError(t, s.db.Exec(`
CREATE TABLE translations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	original_filename TEXT,
	original_audio_path TEXT,
	source_language TEXT,
	detected_source_language TEXT,
	target_language TEXT,
	original_text TEXT,
	translated_text TEXT,
	audio_path TEXT,
	translated_audio_path TEXT,
	translated_audio_url TEXT,
	created_at DATETIME
)`).Error)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.db.Exec(`
INSERT INTO translations (session_id, original_filename, source_language, target_language,
	original_text, translated_text, created_at)
VALUES ('legacy-1', 'old.mp3', 'es', 'en', 'hola', 'hello', ?)`, created).Error)

	require.NoError(t, s.Init())

	cols, err := s.tableColumns("translations")
	require.NoError(t, err)
	assert.True(t, sameColumnSet(cols, requiredColumns))

	found, err := s.FindTranslationBySession("legacy-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "old.mp3", found.OriginalFilename)
	assert.Equal(t, "hello", found.TranslatedText)
	assert.Equal(t, models.VoiceStandard, found.VoiceType, "missing columns get defaults")
	assert.Equal(t, int64(0), found.FileSize)
	assert.Equal(t, created.Year(), found.CreatedAt.Year(), "original timestamp survives")
}

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateUser("new@example.com", models.HashPassword("secret99"), "New User")
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = s.CreateUser("new@example.com", models.HashPassword("other"), "Imposter")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthenticate(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateUser("auth@example.com", models.HashPassword("secret99"), "Auth User")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := s.Authenticate("auth@example.com", models.HashPassword("secret99"))
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "Auth User", user.Name)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		wrongPass, err := s.Authenticate("auth@example.com", models.HashPassword("nope"))
		require.NoError(t, err)
		unknown, err2 := s.Authenticate("nobody@example.com", models.HashPassword("secret99"))
		require.NoError(t, err2)
		assert.Nil(t, wrongPass)
		assert.Nil(t, unknown)
	})
}

func TestFindTranslationBySession(t *testing.T) {
	s := newTestStore(t)

	missing, err := s.FindTranslationBySession("no-such-session")
	require.NoError(t, err)
	assert.Nil(t, missing)

	first := models.Translation{SessionID: "dup", TranslatedText: "first"}
	second := models.Translation{SessionID: "dup", TranslatedText: "second"}
	require.NoError(t, s.InsertTranslation(&first))
	require.NoError(t, s.InsertTranslation(&second))

	found, err := s.FindTranslationBySession("dup")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "second", found.TranslatedText, "newest row wins")
}

func TestRecentHistory(t *testing.T) {
	s := newTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		record := models.Translation{
			SessionID:      fmt.Sprintf("sess-%d", i),
			TranslatedText: fmt.Sprintf("text %d", i),
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.InsertTranslation(&record))
	}

	entries, err := s.RecentHistory(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "sess-4", entries[0].SessionID, "newest first")
	assert.Equal(t, "sess-2", entries[2].SessionID)

	all, err := s.RecentHistory(0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestSameColumnSet(t *testing.T) {
	assert.True(t, sameColumnSet([]string{"b", "a"}, []string{"a", "b"}))
	assert.False(t, sameColumnSet([]string{"a"}, []string{"a", "b"}))
	assert.False(t, sameColumnSet([]string{"a", "c"}, []string{"a", "b"}))
}
