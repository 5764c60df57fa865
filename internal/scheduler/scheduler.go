package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/quaketrack/rbfetch/internal/domain"
	"github.com/quaketrack/rbfetch/internal/logger"
)

// Fetcher downloads and stores one window, returning where the data landed.
// The scheduler only branches on the error; the path and size feed the
// archive index.
type Fetcher interface {
	FetchStore(ctx context.Context, win domain.Window) (path string, bytes int64, err error)
}

// Checkpoint persists the cursor between runs.
type Checkpoint interface {
	Load() (time.Time, error)
	Save(t time.Time) error
}

// Recorder indexes archived windows. Optional; recording failures never
// block the loop.
type Recorder interface {
	SaveWindow(rec *domain.ArchivedWindow) error
}

type Options struct {
	Window time.Duration // duration of one download unit
	Retry  time.Duration // delay before retrying a failed window
	RunID  string
	Stream string
}

// Scheduler owns the advancing time cursor. It requests windows in strictly
// increasing order, commits the cursor only after a window is durably
// stored, and retries a failed window forever without advancing past it.
type Scheduler struct {
	fetch    Fetcher
	ckpt     Checkpoint
	recorder Recorder
	clock    Clock
	log      *logger.Logger
	opts     Options

	mu     sync.Mutex
	cursor time.Time // start of the next window; read by the status API
}

func New(fetch Fetcher, ckpt Checkpoint, opts Options, log *logger.Logger) *Scheduler {
	return &Scheduler{
		fetch: fetch,
		ckpt:  ckpt,
		clock: realClock{},
		log:   log,
		opts:  opts,
	}
}

// SetRecorder attaches the archive index.
func (s *Scheduler) SetRecorder(r Recorder) {
	s.recorder = r
}

// Run executes the download loop until ctx is cancelled. It never returns
// for any other reason: every failure mode is retried.
func (s *Scheduler) Run(ctx context.Context) error {
	start, end := s.resume()
	s.setCursor(start)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		elapsed := end.Sub(start)
		if elapsed < s.opts.Window {
			// Not enough new time has accumulated for a full window.
			// Wake exactly when one becomes due.
			wait := s.opts.Window - elapsed
			s.log.Info("Sleeping for %.1f minutes...", wait.Minutes())
			if err := s.clock.Sleep(ctx, wait); err != nil {
				return err
			}
			end = s.clock.Now()
			continue
		}

		// A full window is due. Clamp to exactly one window per cycle so
		// request size stays bounded during catch-up.
		win := domain.Window{Start: start, End: start.Add(s.opts.Window)}
		s.log.Info("--- Starting new download cycle ---")

		path, bytes, err := s.fetch.FetchStore(ctx, win)
		if err == nil {
			if saveErr := s.ckpt.Save(win.End); saveErr != nil {
				// Treated exactly like a fetch failure: the window stays
				// pending and the deterministic filename makes the
				// re-issued write overwrite, not duplicate.
				s.log.Error("Cannot persist cursor: %v", saveErr)
				err = saveErr
			}
		}

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Info("Retrying in %.1f minutes...", s.opts.Retry.Minutes())
			if err := s.clock.Sleep(ctx, s.opts.Retry); err != nil {
				return err
			}
			continue
		}

		s.record(win, path, bytes)
		start = win.End
		end = s.clock.Now()
		s.setCursor(start)
		// No sleep on success: backlog windows are fetched back-to-back
		// until start catches up to within one window of now.
	}
}

// resume seeds the loop from the persisted cursor, falling back to a single
// window ending now when no usable cursor exists.
func (s *Scheduler) resume() (start, end time.Time) {
	end = s.clock.Now()

	cur, err := s.ckpt.Load()
	if err != nil {
		s.log.Warn("Cannot process the saved cursor (%v), continuing from the current time", err)
		return end.Add(-s.opts.Window), end
	}

	s.log.Info("Resuming from cursor %s", cur.Format(time.RFC3339))
	return cur, end
}

func (s *Scheduler) record(win domain.Window, path string, bytes int64) {
	if s.recorder == nil {
		return
	}
	rec := &domain.ArchivedWindow{
		RunID:      s.opts.RunID,
		Stream:     s.opts.Stream,
		Window:     win,
		Path:       path,
		Bytes:      bytes,
		RecordedAt: s.clock.Now(),
	}
	if err := s.recorder.SaveWindow(rec); err != nil {
		s.log.Warn("Could not index window %s: %v", win, err)
	}
}

func (s *Scheduler) setCursor(t time.Time) {
	s.mu.Lock()
	s.cursor = t
	s.mu.Unlock()
}

// Status is a point-in-time snapshot for the status API.
type Status struct {
	RunID   string        `json:"run_id"`
	Stream  string        `json:"stream"`
	Cursor  time.Time     `json:"cursor"`
	Backlog time.Duration `json:"backlog"`
	Window  time.Duration `json:"window"`
	Retry   time.Duration `json:"retry"`
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	cursor := s.cursor
	s.mu.Unlock()

	var backlog time.Duration
	if !cursor.IsZero() {
		if d := s.clock.Now().Sub(cursor); d > 0 {
			backlog = d
		}
	}
	return Status{
		RunID:   s.opts.RunID,
		Stream:  s.opts.Stream,
		Cursor:  cursor,
		Backlog: backlog,
		Window:  s.opts.Window,
		Retry:   s.opts.Retry,
	}
}
