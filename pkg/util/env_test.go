package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte(`
# server settings
ADDR=:6000
MODE="release"
EMPTY_LINE_ABOVE=yes
NOT_A_PAIR
`), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("MODE", "debug") // existing values win
	os.Unsetenv("ADDR")
	os.Unsetenv("EMPTY_LINE_ABOVE")

	require.NoError(t, LoadEnv("test"))
	assert.Equal(t, ":6000", os.Getenv("ADDR"))
	assert.Equal(t, "debug", os.Getenv("MODE"))
	assert.Equal(t, "yes", os.Getenv("EMPTY_LINE_ABOVE"))

	assert.Error(t, LoadEnv("missing-but-no-dot-env-either"))
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("UTIL_TEST_STR", "hello")
	t.Setenv("UTIL_TEST_INT", "42")
	t.Setenv("UTIL_TEST_BOOL", "true")

	assert.Equal(t, "hello", GetEnv("UTIL_TEST_STR"))
	assert.Equal(t, "hello", GetEnvDefault("UTIL_TEST_STR", "other"))
	assert.Equal(t, "fallback", GetEnvDefault("UTIL_TEST_UNSET", "fallback"))
	assert.Equal(t, int64(42), GetIntEnv("UTIL_TEST_INT"))
	assert.Equal(t, int64(0), GetIntEnv("UTIL_TEST_UNSET"))
	assert.True(t, GetBoolEnv("UTIL_TEST_BOOL"))
	assert.False(t, GetBoolEnv("UTIL_TEST_UNSET"))
}
