package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/listing"
	"github.com/storerating/store-rating/internal/core/ports"
)

// MsgLoadFailed is shown when the store list cannot be fetched.
const MsgLoadFailed = "Failed to load stores. Please try again later."

// StoreListView holds the stores fetched for the session identity.
type StoreListView struct {
	fetch  ports.StoreFetcher
	submit ports.RatingSubmitter
	log    zerolog.Logger

	mu      sync.RWMutex
	records []domain.Store
	message string
}

// NewStoreListView returns an empty store list; call Load to populate it.
func NewStoreListView(fetch ports.StoreFetcher, submit ports.RatingSubmitter, log zerolog.Logger) *StoreListView {
	return &StoreListView{fetch: fetch, submit: submit, log: log, records: []domain.Store{}}
}

// Load replaces the records. On failure the list becomes empty and Message
// explains why.
func (v *StoreListView) Load(ctx context.Context) error {
	records, err := v.fetch.FetchStores(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.log.Warn().Err(err).Msg("fetch stores failed")
		v.records = []domain.Store{}
		v.message = MsgLoadFailed
		return fmt.Errorf("load stores: %w", err)
	}
	if records == nil {
		records = []domain.Store{}
	}
	v.records = records
	v.message = ""
	return nil
}

// Visible returns the loaded records narrowed by both filters.
func (v *StoreListView) Visible(nameFilter, addressFilter string) []domain.Store {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return listing.Filter(v.records, nameFilter, addressFilter)
}

// Message is the last user-visible problem, or "".
func (v *StoreListView) Message() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.message
}

// Rate submits the score and, once accepted, shows it on the record.
func (v *StoreListView) Rate(ctx context.Context, storeID string, score int) error {
	if !domain.ValidScore(score) {
		return domain.ErrInvalidScore
	}
	if err := v.submit.SubmitRating(ctx, storeID, score); err != nil {
		return fmt.Errorf("submit rating: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	updated, err := listing.ApplyUserRating(v.records, storeID, score)
	if err != nil {
		return err
	}
	v.records = updated
	return nil
}
