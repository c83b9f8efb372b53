//go:build !linux && !darwin

package notify

// NewDesktop always fails; callers fall back to the bell
func NewDesktop() (Notifier, error) {
	return nil, ErrUnsupported
}
