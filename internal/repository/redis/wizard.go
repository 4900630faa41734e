// Package redis implements session-scoped stores backed by Redis: the quote
// wizard session store and the login rate limiter.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightshield/insurance-portal/internal/core/port"
	"github.com/brightshield/insurance-portal/internal/repository"
)

// WizardStore persists quote-wizard sessions as JSON values with a TTL.
type WizardStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewWizardStore constructs a Redis-backed wizard session store.
func NewWizardStore(client *redis.Client, keyPrefix string) *WizardStore {
	if keyPrefix == "" {
		keyPrefix = "portal:wizard"
	}
	return &WizardStore{client: client, keyPrefix: keyPrefix}
}

func (s *WizardStore) key(id string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, id)
}

// Put stores the session, refreshing its TTL.
func (s *WizardStore) Put(ctx context.Context, session port.WizardSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal wizard session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get loads a session by id.
func (s *WizardStore) Get(ctx context.Context, id string) (*port.WizardSession, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var session port.WizardSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal wizard session: %w", err)
	}
	return &session, nil
}

// Delete removes a session. Missing keys are not an error.
func (s *WizardStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

var _ port.WizardStore = (*WizardStore)(nil)
