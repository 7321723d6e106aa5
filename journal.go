package gestures

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/ports"
)

const defaultJournalBuffer = 256

// journalRecorder writes entries to a Journal on a background goroutine so
// observer callbacks never wait on storage.
type journalRecorder struct {
	journal ports.Journal
	logger  *slog.Logger
	queue   chan domain.JournalEntry
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func newJournalRecorder(j ports.Journal, size int, logger *slog.Logger) *journalRecorder {
	if size <= 0 {
		size = defaultJournalBuffer
	}
	r := &journalRecorder{
		journal: j,
		logger:  logger,
		queue:   make(chan domain.JournalEntry, size),
		done:    make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *journalRecorder) loop() {
	defer close(r.done)
	for entry := range r.queue {
		if err := r.journal.Append(context.Background(), entry); err != nil {
			r.logger.Warn("failed to append journal entry",
				"surface", entry.Surface,
				"value", entry.Value,
				"error", err,
			)
		}
	}
}

// record enqueues an entry without blocking.
func (r *journalRecorder) record(entry domain.JournalEntry) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.queue <- entry:
	default:
		r.logger.Warn("journal queue full, entry dropped", "surface", entry.Surface, "value", entry.Value)
	}
}

// Close stops accepting entries and waits for the queue to drain or ctx to end.
func (r *journalRecorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// journalingObserver forwards callbacks to the host observer and records
// terminal and extra gestures.
type journalingObserver struct {
	next    ports.Observer
	rec     *journalRecorder
	surface string
	sched   ports.Scheduler
}

func (o *journalingObserver) OnDirectionChanged(chain domain.Chain) {
	o.next.OnDirectionChanged(chain)
}

func (o *journalingObserver) OnMouseGesture(chain domain.Chain) {
	o.rec.record(domain.JournalEntry{Surface: o.surface, Kind: domain.EntryGesture, Value: chain.String(), At: o.sched.Now()})
	o.next.OnMouseGesture(chain)
}

func (o *journalingObserver) OnExtraGesture(reason string) {
	o.rec.record(domain.JournalEntry{Surface: o.surface, Kind: domain.EntryExtra, Value: reason, At: o.sched.Now()})
	o.next.OnExtraGesture(reason)
}
