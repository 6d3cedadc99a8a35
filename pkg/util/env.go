package util

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
)

// LoadEnv reads .env.<env> (falling back to .env) and exports every
// KEY=VALUE pair that is not already present in the environment.
func LoadEnv(env string) error {
	candidates := []string{fmt.Sprintf(".env.%s", env), ".env"}
	for _, name := range candidates {
		f, err := os.Open(name)
		if err != nil {
			continue
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			key, value, found := strings.Cut(line, "=")
			if !found {
				continue
			}
			key = strings.TrimSpace(key)
			value = strings.Trim(strings.TrimSpace(value), `"'`)
			if _, exists := os.LookupEnv(key); !exists {
				os.Setenv(key, value)
			}
		}
		return scanner.Err()
	}
	return fmt.Errorf("no env file found for %s", env)
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetIntEnv(key string) int64 {
	return cast.ToInt64(os.Getenv(key))
}

func GetBoolEnv(key string) bool {
	return cast.ToBool(os.Getenv(key))
}
