package clean

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"LinguaVoice/pkg/stores"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, s *stores.LocalStore, key string, age time.Duration) {
	t.Helper()
	_, err := s.Write(key, strings.NewReader("x"))
	require.NoError(t, err)
	if age > 0 {
		old := time.Now().Add(-age)
		require.NoError(t, os.Chtimes(s.Path(key), old, old))
	}
}

func TestCleanerRemovesAgedObjects(t *testing.T) {
	s, err := stores.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	write(t, s, "uploads/old_clip.mp3", 48*time.Hour)
	write(t, s, "uploads/fresh_clip.mp3", 0)
	write(t, s, "output_audio/voice_old.mp3", 48*time.Hour)
	write(t, s, "other/untouched.txt", 48*time.Hour)

	New(s, 24*time.Hour).Run(context.Background())

	for key, want := range map[string]bool{
		"uploads/old_clip.mp3":       false,
		"uploads/fresh_clip.mp3":     true,
		"output_audio/voice_old.mp3": false,
		"other/untouched.txt":        true,
	} {
		exists, err := s.Exists(key)
		require.NoError(t, err)
		assert.Equal(t, want, exists, key)
	}
}

func TestCleanerDisabledWithoutRetention(t *testing.T) {
	s, err := stores.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	write(t, s, "uploads/old_clip.mp3", 48*time.Hour)

	New(s, 0).Run(context.Background())

	exists, err := s.Exists("uploads/old_clip.mp3")
	require.NoError(t, err)
	assert.True(t, exists)
}
