package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/today/pkg/models"
)

// DefaultKey is the fixed key the task list blob is stored under.
const DefaultKey = "tasks"

// defaultWriteTimeout bounds a single background write.
const defaultWriteTimeout = 10 * time.Second

// EventLogger records persistence events. It has the same shape as
// core.EventLogger.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

type flushWaiter struct {
	seq uint64
	ch  chan struct{}
}

// Persister writes task list snapshots to a KeyValueStore on a background
// goroutine. Save never blocks the caller and never reports an error;
// failures are logged and dropped.
//
// Snapshots are written in submission order. Each write is a full
// overwrite, so a snapshot that is replaced by a newer one before the
// worker reaches it is skipped.
type Persister struct {
	kv           KeyValueStore
	key          string
	logger       *log.Logger
	events       EventLogger
	writeTimeout time.Duration

	mu        sync.Mutex
	pending   []byte
	pendSeq   uint64
	submitted uint64
	completed uint64
	waiters   []flushWaiter
	closed    bool

	wake     chan struct{}
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewPersister starts the background writer for key. logger and events may
// be nil.
func NewPersister(kv KeyValueStore, key string, logger *log.Logger, events EventLogger) *Persister {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Persister{
		kv:           kv,
		key:          key,
		logger:       logger,
		events:       events,
		writeTimeout: defaultWriteTimeout,
		wake:         make(chan struct{}, 1),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	go p.run()
	return p
}

// Key returns the storage key snapshots are written under.
func (p *Persister) Key() string { return p.key }

// Load reads and decodes the stored list. A missing or empty blob yields an
// empty list and no error.
func (p *Persister) Load(ctx context.Context) ([]models.Task, error) {
	data, found, err := p.kv.Get(ctx, p.key)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if !found || len(data) == 0 {
		return nil, nil
	}
	tasks, err := DecodeTasks(data)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	return tasks, nil
}

// Save schedules a full overwrite of the stored blob with tasks. The slice
// is encoded before Save returns, so the caller may mutate it afterwards.
func (p *Persister) Save(tasks []models.Task) {
	data, err := EncodeTasks(tasks)
	if err != nil {
		p.logger.Error("dropping snapshot", "err", err)
		p.logEvent("persist.failed", map[string]any{"error": err.Error()})
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.logger.Warn("save after close ignored", "tasks", len(tasks))
		return
	}
	p.submitted++
	p.pending = data
	p.pendSeq = p.submitted
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every snapshot submitted before the call has been
// written or superseded, or ctx is done.
func (p *Persister) Flush(ctx context.Context) error {
	p.mu.Lock()
	target := p.submitted
	if p.completed >= target {
		p.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	p.waiters = append(p.waiters, flushWaiter{seq: target, ch: ch})
	p.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("flushing tasks: %w", ctx.Err())
	}
}

// Close flushes outstanding snapshots and stops the writer. Saves issued
// after Close are ignored. Close does not close the KeyValueStore.
func (p *Persister) Close(ctx context.Context) error {
	flushErr := p.Flush(ctx)

	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.stopOnce.Do(func() { close(p.stop) })

	select {
	case <-p.done:
	case <-ctx.Done():
		return fmt.Errorf("closing persister: %w", ctx.Err())
	}
	return flushErr
}

func (p *Persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.drain()
		case <-p.stop:
			p.drain()
			return
		}
	}
}

func (p *Persister) drain() {
	for {
		p.mu.Lock()
		if p.pending == nil {
			p.mu.Unlock()
			return
		}
		data, seq := p.pending, p.pendSeq
		p.pending = nil
		p.mu.Unlock()

		p.write(data, seq)

		p.mu.Lock()
		p.completed = seq
		remaining := p.waiters[:0]
		for _, w := range p.waiters {
			if w.seq <= seq {
				close(w.ch)
				continue
			}
			remaining = append(remaining, w)
		}
		p.waiters = remaining
		p.mu.Unlock()
	}
}

func (p *Persister) write(data []byte, seq uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	if err := p.kv.Set(ctx, p.key, data); err != nil {
		p.logger.Error("persisting tasks failed", "key", p.key, "seq", seq, "err", err)
		p.logEvent("persist.failed", map[string]any{"key": p.key, "seq": seq, "error": err.Error()})
		return
	}
	p.logger.Debug("persisted tasks", "key", p.key, "seq", seq, "bytes", len(data))
}

func (p *Persister) logEvent(eventType string, data map[string]any) {
	if p.events == nil {
		return
	}
	if err := p.events.LogEvent(eventType, data); err != nil {
		p.logger.Debug("recording event failed", "type", eventType, "err", err)
	}
}
