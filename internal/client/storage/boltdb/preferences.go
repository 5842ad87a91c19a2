package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/balancio/internal/client/storage"
)

// SetPreference stores preference value
func (s *Storage) SetPreference(ctx context.Context, key, value string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPreferences)
		if bucket == nil {
			return fmt.Errorf("preferences bucket not found")
		}

		if err := bucket.Put([]byte(key), []byte(value)); err != nil {
			return fmt.Errorf("failed to save preference %s: %w", key, err)
		}

		return nil
	})
}

// GetPreference retrieves preference value
// Returns storage.ErrPreferenceNotFound if key is not set
func (s *Storage) GetPreference(ctx context.Context, key string) (string, error) {
	var value string

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPreferences)
		if bucket == nil {
			return fmt.Errorf("preferences bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrPreferenceNotFound
		}
		value = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}

	return value, nil
}
