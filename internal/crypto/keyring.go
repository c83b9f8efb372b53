package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned when no source holds an encryption key
var ErrKeyNotFound = errors.New("encryption key not found")

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(key string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "fomoduct"
	KeyName     = "db-encryption-key"

	// EnvKey overrides every other key source when set
	EnvKey = "FOMODUCT_DB_KEY"
)

// NewKeyring returns the best available keyring implementation. keyFile is
// the last-resort location on platforms without a reliable system keyring.
func NewKeyring(keyFile string) Keyring {
	return newPlatformKeyring(keyFile)
}

// GenerateKey returns a random 256-bit key, hex encoded
func GenerateKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GetOrCreateKey returns the stored key, generating and storing a new one
// when none exists. created reports whether a new key was made. A source
// that fails to answer could still hold the key, so a lookup error only
// leads to a new key when fresh is set, meaning no data encrypted under an
// older key can exist yet.
func GetOrCreateKey(k Keyring, fresh bool) (key string, created bool, err error) {
	key, err = k.GetKey()
	if err == nil {
		return key, false, nil
	}
	if !errors.Is(err, ErrKeyNotFound) && !fresh {
		return "", false, err
	}

	key, err = GenerateKey()
	if err != nil {
		return "", false, err
	}
	if err := k.SetKey(key); err != nil {
		return "", false, fmt.Errorf("failed to store encryption key: %w", err)
	}
	return key, true, nil
}

// chainKeyring consults several keyrings in order
type chainKeyring struct {
	rings []Keyring
}

func (c *chainKeyring) GetKey() (string, error) {
	var errs []error
	for _, r := range c.rings {
		key, err := r.GetKey()
		if err == nil && key != "" {
			return key, nil
		}
		if err != nil && !errors.Is(err, ErrKeyNotFound) {
			// Keep looking: a later source may still hold the key
			errs = append(errs, err)
		}
	}
	// Not found only when every source said so
	if len(errs) > 0 {
		return "", fmt.Errorf("failed to read encryption key: %w", errors.Join(errs...))
	}
	return "", ErrKeyNotFound
}

func (c *chainKeyring) SetKey(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	var errs []error
	for _, r := range c.rings {
		if !r.IsAvailable() {
			continue
		}
		if err := r.SetKey(key); err != nil {
			errs = append(errs, err)
			continue
		}
		return nil
	}
	if len(errs) == 0 {
		return errors.New("no writable keyring available")
	}
	return errors.Join(errs...)
}

func (c *chainKeyring) DeleteKey() error {
	var errs []error
	for _, r := range c.rings {
		if err := r.DeleteKey(); err != nil && !errors.Is(err, ErrKeyNotFound) && !errors.Is(err, errReadOnly) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *chainKeyring) IsAvailable() bool {
	for _, r := range c.rings {
		if r.IsAvailable() {
			return true
		}
	}
	return false
}
