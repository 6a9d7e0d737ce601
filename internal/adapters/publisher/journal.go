package publisher

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/shared"
)

const segmentLayout = "2006-01-02T15-04-05Z"

// Journal appends events as JSON lines to zstd-compressed segment files.
// A new segment starts whenever the clock crosses a RotateEvery boundary;
// the closed segment's path is handed to the rotate hook.
type Journal struct {
	dir         string
	prefix      string
	rotateEvery time.Duration
	clock       shared.Clock
	onRotate    func(path string)

	mu      sync.Mutex
	segment time.Time
	path    string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
	hooks   sync.WaitGroup
}

// JournalOption configures a Journal
type JournalOption func(*Journal)

// WithJournalClock sets the clock that decides segment boundaries
func WithJournalClock(clock shared.Clock) JournalOption {
	return func(j *Journal) {
		j.clock = clock
	}
}

// WithRotateHook is called with each closed segment, off the publishing path
func WithRotateHook(fn func(path string)) JournalOption {
	return func(j *Journal) {
		j.onRotate = fn
	}
}

// NewJournal creates a journal writing "<prefix>-<segment start>.jsonl.zst" files under dir
func NewJournal(dir, prefix string, rotateEvery time.Duration, opts ...JournalOption) *Journal {
	if rotateEvery <= 0 {
		rotateEvery = time.Hour
	}
	j := &Journal{
		dir:         dir,
		prefix:      prefix,
		rotateEvery: rotateEvery,
	}
	for _, opt := range opts {
		opt(j)
	}
	j.clock = shared.OrRealClock(j.clock)
	return j
}

// Publish implements events.Publisher. Lines are flushed before it returns.
func (j *Journal) Publish(ctx context.Context, evts ...events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	segment := j.clock.Now().UTC().Truncate(j.rotateEvery)
	if j.w == nil || !segment.Equal(j.segment) {
		if err := j.rotateLocked(segment); err != nil {
			return err
		}
	}

	for _, e := range evts {
		line, err := events.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", e.EventType(), err)
		}
		if _, err := j.w.Write(line); err != nil {
			return fmt.Errorf("failed to write journal: %w", err)
		}
		if err := j.w.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write journal: %w", err)
		}
	}
	if err := j.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush journal: %w", err)
	}
	return j.enc.Flush()
}

// Path returns the segment currently being written, if any
func (j *Journal) Path() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.path
}

// Close finishes the open segment and waits for rotate hooks to return
func (j *Journal) Close() error {
	j.mu.Lock()
	err := j.closeLocked()
	j.mu.Unlock()

	j.hooks.Wait()
	return err
}

func (j *Journal) rotateLocked(segment time.Time) error {
	if err := j.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create journal dir: %w", err)
	}

	path := filepath.Join(j.dir, fmt.Sprintf("%s-%s.jsonl.zst", j.prefix, segment.Format(segmentLayout)))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open journal segment: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	j.f = f
	j.enc = enc
	j.w = bufio.NewWriterSize(enc, 64*1024)
	j.segment = segment
	j.path = path
	return nil
}

func (j *Journal) closeLocked() error {
	if j.f == nil {
		return nil
	}

	var firstErr error
	if err := j.w.Flush(); err != nil {
		firstErr = err
	}
	if err := j.enc.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := j.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	closed := j.path
	j.f, j.enc, j.w, j.path = nil, nil, nil, ""

	if firstErr != nil {
		return fmt.Errorf("failed to close journal segment %s: %w", closed, firstErr)
	}
	if j.onRotate != nil {
		j.hooks.Add(1)
		go func() {
			defer j.hooks.Done()
			j.onRotate(closed)
		}()
	}
	return nil
}
