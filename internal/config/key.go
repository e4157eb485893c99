package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const keyFile = "api_key"

func keyPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, keyFile), nil
}

// OpenAIKey returns OPENAI_API_KEY, or else the key stored with SaveKey.
// An empty string means no key is configured.
func (c *Config) OpenAIKey() string {
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		return v
	}
	path, err := keyPath()
	if err != nil {
		return ""
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// SaveKey stores key in the user config directory, readable only by the user.
func SaveKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("empty API key")
	}
	path, err := keyPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(key), 0o600); err != nil {
		return "", fmt.Errorf("write API key: %w", err)
	}
	return path, nil
}

// DeleteKey removes the stored key. Deleting a missing key is not an error.
func DeleteKey() error {
	path, err := keyPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete API key: %w", err)
	}
	return nil
}
