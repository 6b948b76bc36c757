package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
	done  chan struct{}
	want  int
}

func (r *recorder) Recompute(_ context.Context, storeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, storeID)
	if len(r.calls) == r.want {
		close(r.done)
	}
	return nil
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, &recorder{}, nil, zerolog.Nop())
	for _, id := range []string{"s1", "s2", "665f1c2e9b1d4a0012345678"} {
		first := d.shardIndex(id)
		if first < 0 || first >= 4 {
			t.Fatalf("shard %d out of range", first)
		}
		if again := d.shardIndex(id); again != first {
			t.Errorf("shard for %q changed: %d then %d", id, first, again)
		}
	}
}

func TestDispatcher_PerStoreOrder(t *testing.T) {
	rec := &recorder{done: make(chan struct{}), want: 3}
	d := NewDispatcher(3, rec, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for range 3 {
		d.Schedule("s1")
	}

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("recomputes did not run")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, id := range rec.calls {
		if id != "s1" {
			t.Errorf("unexpected store %q", id)
		}
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recorder{}, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("workers = %d, want %d", len(d.workers), defaultWorkers)
	}
}
