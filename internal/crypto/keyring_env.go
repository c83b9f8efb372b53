package crypto

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var errReadOnly = errors.New("keyring is read-only")

// envKeyring reads the key from FOMODUCT_DB_KEY
type envKeyring struct{}

func (k *envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return "", fmt.Errorf("%w: %s not set", ErrKeyNotFound, EnvKey)
	}
	return key, nil
}

func (k *envKeyring) SetKey(string) error { return errReadOnly }
func (k *envKeyring) DeleteKey() error { return errReadOnly }

// IsAvailable is false so the chain never tries to write here
func (k *envKeyring) IsAvailable() bool { return false }

// fileKeyring keeps the key in a 0600 file next to the database
type fileKeyring struct {
	path string
}

func (k *fileKeyring) GetKey() (string, error) {
	data, err := os.ReadFile(k.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w in %s", ErrKeyNotFound, k.path)
		}
		return "", fmt.Errorf("failed to read key file: %w", err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrKeyNotFound, k.path)
	}
	return key, nil
}

func (k *fileKeyring) SetKey(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(k.path), 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := os.WriteFile(k.path, []byte(key+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

func (k *fileKeyring) DeleteKey() error {
	if err := os.Remove(k.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w in %s", ErrKeyNotFound, k.path)
		}
		return fmt.Errorf("failed to delete key file: %w", err)
	}
	return nil
}

func (k *fileKeyring) IsAvailable() bool {
	return k.path != ""
}
