package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeys holds the remote service credentials loaded from the environment.
type APIKeys struct {
	Gemini string
	OpenAI string
}

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are not an error; the variables may be set system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("load %s: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// GetAPIKeys reads the API keys from the environment.
func GetAPIKeys() *APIKeys {
	return &APIKeys{
		Gemini: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		OpenAI: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
	}
}

// KeyForEngine returns the credential the given engine needs, or an error
// telling the user which variable to set.
func (k *APIKeys) KeyForEngine(engine string) (string, error) {
	switch engine {
	case "gemini":
		if k.Gemini == "" {
			return "", fmt.Errorf("GEMINI_API_KEY not set; add it to your environment or .env file")
		}
		return k.Gemini, nil
	case "whisper":
		if k.OpenAI == "" {
			return "", fmt.Errorf("OPENAI_API_KEY not set; add it to your environment or .env file")
		}
		return k.OpenAI, nil
	default:
		return "", fmt.Errorf("unknown engine %q", engine)
	}
}
