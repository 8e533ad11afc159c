package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/abodeconnect/marketplace-api/internal/api/metrics"
	"github.com/abodeconnect/marketplace-api/internal/core/domain"
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans listing events out to a fixed set of workers. Events are
// sharded by listing ID so that the events of one listing are handled in the
// order they were emitted.
type Dispatcher struct {
	workers []chan domain.ListingEvent
	handler ports.ListingEventHandler
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, handler ports.ListingEventHandler, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ListingEvent, numWorkers),
		handler: handler,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ListingEvent, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands an event to the worker owning its listing. It never blocks:
// when that worker's channel is full the event is dropped and counted.
func (d *Dispatcher) Enqueue(ev domain.ListingEvent) {
	idx := d.shardIndex(ev.ListingID)
	select {
	case d.workers[idx] <- ev:
		metrics.ListingEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ListingEventsDroppedTotal.Inc()
		d.log.Warn().
			Str("event_id", ev.ID).
			Str("listing_id", ev.ListingID).
			Int("worker_id", idx).
			Msg("dispatcher saturated, listing event dropped")
	}
}

// shardIndex maps a listing ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(listingID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(listingID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ListingEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ch:
			metrics.ListingEventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			if err := d.handler.Handle(ctx, ev); err != nil {
				d.log.Error().Err(err).
					Str("event_id", ev.ID).
					Str("listing_id", ev.ListingID).
					Int("worker_id", id).
					Msg("listing event handling failed")
			}
			metrics.ListingEventDuration.WithLabelValues(string(ev.Type)).Observe(time.Since(start).Seconds())
		}
	}
}
