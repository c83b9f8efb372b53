//go:build darwin

package crypto

// The Keychain is always present on macOS, so no key file is used
func newPlatformKeyring(keyFile string) Keyring {
	return &chainKeyring{rings: []Keyring{
		&envKeyring{},
		&systemKeyring{},
	}}
}
