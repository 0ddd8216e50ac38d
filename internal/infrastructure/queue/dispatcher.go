package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/fixflow/maintenance-system/internal/core/domain"
	"github.com/fixflow/maintenance-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on the report id, so events for one report are written in order.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	audits  ports.AuditRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, audits ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		audits:  audits,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event for the worker owning its report id. Recording is
// best effort: a full shard drops the event with a warning rather than
// blocking the request that produced it.
func (d *Dispatcher) Record(ev domain.AuditEvent) {
	select {
	case d.workers[d.shardIndex(ev.ReportID)] <- ev:
	default:
		d.log.Warn().Str("report_id", ev.ReportID).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a report id deterministically to a worker index.
func (d *Dispatcher) shardIndex(reportID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(reportID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := d.audits.Insert(ctx, &ev); err != nil {
				d.log.Error().Err(err).
					Str("report_id", ev.ReportID).
					Int("worker_id", id).
					Msg("audit insert failed")
			}
		}
	}
}
