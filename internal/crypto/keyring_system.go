package crypto

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// systemKeyring stores the key in the OS keyring (Keychain, Secret Service,
// Windows Credential Manager)
type systemKeyring struct{}

// GetKey retrieves the encryption key from the system keyring
func (k *systemKeyring) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w in system keyring", ErrKeyNotFound)
		}
		return "", fmt.Errorf("failed to retrieve key from system keyring: %w", err)
	}

	if key == "" {
		return "", errors.New("encryption key is empty")
	}

	return key, nil
}

// SetKey stores the encryption key in the system keyring
func (k *systemKeyring) SetKey(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if err := keyring.Set(ServiceName, KeyName, key); err != nil {
		return fmt.Errorf("failed to store key in system keyring: %w", err)
	}

	return nil
}

// DeleteKey removes the encryption key from the system keyring
func (k *systemKeyring) DeleteKey() error {
	err := keyring.Delete(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w in system keyring", ErrKeyNotFound)
		}
		return fmt.Errorf("failed to delete key from system keyring: %w", err)
	}

	return nil
}

// IsAvailable checks if the system keyring is accessible
func (k *systemKeyring) IsAvailable() bool {
	// Test availability by attempting a dummy operation
	// We use a test key that we immediately delete
	testKey := "__fomoduct_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}

	_ = keyring.Delete(ServiceName, testKey)
	return true
}
