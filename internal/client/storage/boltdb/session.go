package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/balancio/internal/client/storage"
)

// Слоты сессии в bucket session
var (
	keyToken        = []byte("token")
	keyRefreshToken = []byte("refresh_token")
	keyCurrentUser  = []byte("current_user")
)

// SaveSession stores all session slots in a single transaction
func (s *Storage) SaveSession(ctx context.Context, session *storage.SessionData) error {
	if session == nil {
		return fmt.Errorf("session is nil")
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		slots := []struct {
			key   []byte
			value []byte
		}{
			{keyToken, []byte(session.Token)},
			{keyRefreshToken, []byte(session.RefreshToken)},
			{keyCurrentUser, session.User},
		}

		// Пустое значение удаляет слот, чтобы не оставить данные предыдущей сессии
		for _, slot := range slots {
			if len(slot.value) == 0 {
				if err := bucket.Delete(slot.key); err != nil {
					return fmt.Errorf("failed to clear %s: %w", slot.key, err)
				}
				continue
			}
			if err := bucket.Put(slot.key, slot.value); err != nil {
				return fmt.Errorf("failed to save %s: %w", slot.key, err)
			}
		}

		return nil
	})
}

// GetSession retrieves stored session slots
func (s *Storage) GetSession(ctx context.Context) (*storage.SessionData, error) {
	var session *storage.SessionData

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		token := bucket.Get(keyToken)
		user := bucket.Get(keyCurrentUser)
		if token == nil && user == nil {
			return storage.ErrSessionNotFound
		}

		// Значения валидны только внутри транзакции, поэтому копируем
		session = &storage.SessionData{
			Token:        string(token),
			RefreshToken: string(bucket.Get(keyRefreshToken)),
		}
		if user != nil {
			session.User = append([]byte(nil), user...)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// SaveUser replaces serialized user slot
func (s *Storage) SaveUser(ctx context.Context, user []byte) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if len(user) == 0 {
			return bucket.Delete(keyCurrentUser)
		}
		if err := bucket.Put(keyCurrentUser, user); err != nil {
			return fmt.Errorf("failed to save current user: %w", err)
		}
		return nil
	})
}

// DeleteSession removes all session slots (logout)
func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		// Delete на отсутствующем ключе ничего не делает
		for _, key := range [][]byte{keyToken, keyRefreshToken, keyCurrentUser} {
			if err := bucket.Delete(key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}

		return nil
	})
}
