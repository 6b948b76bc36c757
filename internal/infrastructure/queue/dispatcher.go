package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Recomputer refreshes the overall rating of one store.
type Recomputer interface {
	Recompute(ctx context.Context, storeID string) error
}

// Observer receives queue telemetry. A nil Observer is allowed.
type Observer interface {
	QueueDepth(delta float64)
	Processed(d time.Duration, err error)
}

// Dispatcher routes aggregate jobs to a fixed set of workers by hashing the
// store id, so recomputes of the same store run one at a time and in order.
type Dispatcher struct {
	workers []chan string
	svc     Recomputer
	obs     Observer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, svc Recomputer, obs Observer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		svc:     svc,
		obs:     obs,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Schedule queues a recompute for storeID. When the shard is full the job
// is dropped; the next rating for that store schedules a fresh one.
func (d *Dispatcher) Schedule(storeID string) {
	select {
	case d.workers[d.shardIndex(storeID)] <- storeID:
		if d.obs != nil {
			d.obs.QueueDepth(1)
		}
	default:
		d.log.Warn().Str("store_id", storeID).Msg("aggregate queue full, dropping recompute")
	}
}

func (d *Dispatcher) shardIndex(storeID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(storeID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case storeID := <-ch:
			start := time.Now()
			err := d.svc.Recompute(ctx, storeID)
			if d.obs != nil {
				d.obs.QueueDepth(-1)
				d.obs.Processed(time.Since(start), err)
			}
			if err != nil {
				d.log.Error().Err(err).
					Str("store_id", storeID).
					Int("worker_id", id).
					Msg("aggregate recompute failed")
			}
		}
	}
}
