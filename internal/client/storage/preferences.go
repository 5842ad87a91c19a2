package storage

import "context"

// PreferenceStorage defines interface for storing small client preferences
// (for example, the last email used to log in)
type PreferenceStorage interface {
	// SetPreference stores value under key
	SetPreference(ctx context.Context, key, value string) error

	// GetPreference returns value for key
	// Returns ErrPreferenceNotFound if key is not set
	GetPreference(ctx context.Context, key string) (string, error)
}

// Preference keys
const (
	PrefLastEmail = "last_email"
)
