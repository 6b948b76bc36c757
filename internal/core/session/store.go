// Package session holds the client's single authentication session: the
// Store that persists it and the Gate that mutates it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

// Persistence slot keys.
const (
	KeyAuthToken = "authToken"
	KeyUserData  = "userData"
)

// Store reads and writes the session through a persistence slot.
type Store struct {
	slot ports.SessionSlot
	log  zerolog.Logger
}

// NewStore returns a Store backed by slot.
func NewStore(slot ports.SessionSlot, log zerolog.Logger) *Store {
	return &Store{slot: slot, log: log}
}

// Load returns the persisted session. Missing, unreadable or malformed data
// yields a logged-out session; Load never fails.
func (s *Store) Load(ctx context.Context) domain.Session {
	token, ok, err := s.slot.Get(ctx, KeyAuthToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("session token unreadable, starting logged out")
		return domain.LoggedOut()
	}
	if !ok || token == "" {
		return domain.LoggedOut()
	}

	blob, ok, err := s.slot.Get(ctx, KeyUserData)
	if err != nil {
		s.log.Warn().Err(err).Msg("session identity unreadable, starting logged out")
		return domain.LoggedOut()
	}
	if !ok {
		return domain.LoggedOut()
	}

	id, err := decodeIdentity(blob)
	if err != nil {
		s.log.Warn().Err(err).Msg("ignoring persisted session")
		return domain.LoggedOut()
	}
	return domain.LoggedIn(id, token)
}

// Save overwrites the persisted session with sess. A logged-out session
// clears the slot, and so does a failed write.
func (s *Store) Save(ctx context.Context, sess domain.Session) error {
	if !sess.Authenticated || sess.Identity == nil {
		return s.Clear(ctx)
	}

	blob, err := json.Marshal(sess.Identity)
	if err != nil {
		return fmt.Errorf("%w: encode identity: %v", domain.ErrPersistence, err)
	}
	err = s.slot.Set(ctx, KeyUserData, string(blob))
	if err == nil {
		err = s.slot.Set(ctx, KeyAuthToken, sess.Token)
	}
	if err != nil {
		// A half-written pair would load as a mix of two sessions.
		if cerr := s.Clear(ctx); cerr != nil {
			s.log.Warn().Err(cerr).Msg("session slot left partially written")
		}
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Clear removes both session keys.
func (s *Store) Clear(ctx context.Context) error {
	err := errors.Join(
		s.slot.Delete(ctx, KeyAuthToken),
		s.slot.Delete(ctx, KeyUserData),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func decodeIdentity(blob string) (domain.Identity, error) {
	var id *domain.Identity
	if err := json.Unmarshal([]byte(blob), &id); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrMalformedSession, err)
	}
	if id == nil || !id.Complete() {
		return domain.Identity{}, fmt.Errorf("%w: incomplete identity", domain.ErrMalformedSession)
	}
	return *id, nil
}
