// File: services/booking/store.go
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pristine/models"

	"github.com/go-redis/redis/v8"
)

const (
	sessionPrefix     = "wizard:"
	sessionLockPrefix = "wizardLock:"
	bookingIdxPrefix  = "wizardBooking:"
)

// WizardStore persists wizard sessions in Redis with a TTL. It also maintains
// a bookingID → sessionID index so the redirect return route can find the
// session it belongs to, and a per-session lock that admits one mutating
// request at a time.
type WizardStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWizardStore creates a store on the given Redis client.
func NewWizardStore(client *redis.Client, ttl time.Duration) *WizardStore {
	return &WizardStore{client: client, ttl: ttl}
}

// Save writes the session back, refreshing its TTL.
func (s *WizardStore) Save(ctx context.Context, session *models.WizardSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	if err := s.client.Set(ctx, sessionPrefix+session.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}
	return nil
}

// Get retrieves a session. A missing or expired session yields
// ErrSessionNotFound; any other failure is an infrastructure error.
func (s *WizardStore) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	data, err := s.client.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}
	var session models.WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse wizard session: %w", err)
	}
	return &session, nil
}

// Delete drops a session and its booking index entry.
func (s *WizardStore) Delete(ctx context.Context, session *models.WizardSession) error {
	keys := []string{sessionPrefix + session.SessionID}
	if session.Booking != nil {
		keys = append(keys, bookingIdxPrefix+session.Booking.ID)
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}
	return nil
}

// IndexBooking records which session created a booking.
func (s *WizardStore) IndexBooking(ctx context.Context, bookingID, sessionID string) error {
	if err := s.client.Set(ctx, bookingIdxPrefix+bookingID, sessionID, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to index booking session: %w", err)
	}
	return nil
}

// SessionForBooking resolves the session that created a booking, if it still
// exists.
func (s *WizardStore) SessionForBooking(ctx context.Context, bookingID string) (string, error) {
	sessionID, err := s.client.Get(ctx, bookingIdxPrefix+bookingID).Result()
	if err != nil {
		return "", fmt.Errorf("no wizard session recorded for booking %s: %w", bookingID, err)
	}
	return sessionID, nil
}

// AcquireLock takes the per-session mutation lock. It returns a
// SessionInFlightError when another request already holds it.
func (s *WizardStore) AcquireLock(ctx context.Context, sessionID string) error {
	ok, err := s.client.SetNX(ctx, sessionLockPrefix+sessionID, "1", 30*time.Second).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire session lock: %w", err)
	}
	if !ok {
		return &SessionInFlightError{SessionID: sessionID}
	}
	return nil
}

// ReleaseLock releases the per-session mutation lock.
func (s *WizardStore) ReleaseLock(ctx context.Context, sessionID string) {
	s.client.Del(ctx, sessionLockPrefix+sessionID)
}
