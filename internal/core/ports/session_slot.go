package ports

import "context"

// SessionSlot is the durable key-value storage behind the client session.
// Get reports ok=false for a missing key.
type SessionSlot interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
