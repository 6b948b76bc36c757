// Package listing shapes store records for display to the current viewer.
package listing

import (
	"strings"

	"github.com/storerating/store-rating/internal/core/domain"
)

// Contains reports whether field contains filter, ignoring case. An empty
// filter always matches.
func Contains(field, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(filter))
}

// Filter returns the records whose name contains nameFilter and whose
// address contains addressFilter, in their original order.
func Filter(records []domain.Store, nameFilter, addressFilter string) []domain.Store {
	out := make([]domain.Store, 0, len(records))
	for _, r := range records {
		if Contains(r.Name, nameFilter) && Contains(r.Address, addressFilter) {
			out = append(out, r)
		}
	}
	return out
}

// ApplyUserRating returns a copy of records in which the record with id
// carries score as the viewer's rating. Nothing else changes. It only
// reconciles local state after the rating was accepted remotely.
func ApplyUserRating(records []domain.Store, id string, score int) ([]domain.Store, error) {
	if !domain.ValidScore(score) {
		return nil, domain.ErrInvalidScore
	}
	out := make([]domain.Store, len(records))
	copy(out, records)
	for i := range out {
		if out[i].ID == id {
			s := score
			out[i].UserRating = &s
		}
	}
	return out, nil
}
