package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"img2base/internal/logging"
	"img2base/internal/payload"
	"img2base/internal/services"
	"img2base/internal/status"
	"img2base/internal/worker"
)

// Clipboard receives the embed on Copy.
type Clipboard interface {
	WriteText(text string) error
}

// Notifier surfaces a failure to the user, the way a modal error dialog would.
type Notifier interface {
	Notify(err error)
}

// View is what the front end shows: the embed text and the status line.
type View struct {
	Text   string
	Status string
}

// Event is a user action delivered to the foreground loop.
type Event interface {
	event()
}

// Drop is a drag-and-drop transfer onto the display.
type Drop struct {
	Transfer payload.Transfer
}

// Copy puts the displayed embed on the clipboard.
type Copy struct{}

// Clear empties the display.
type Clear struct{}

// DropFailed reports a drop whose payload could not be built, such as an
// image that failed to decode before it reached the queue.
type DropFailed struct {
	Err error
}

// Inspect hands the current view to Fn on the foreground goroutine.
type Inspect struct {
	Fn func(View)
}

func (Drop) event()       {}
func (Copy) event()       {}
func (Clear) event()      {}
func (Inspect) event()    {}
func (DropFailed) event() {}

// Options configures a Session.
type Options struct {
	Clipboard Clipboard
	Notifier  Notifier
	// Render is called on the foreground goroutine after every view change.
	Render func(View)
	// AutoCopy copies every successful embed to the clipboard.
	AutoCopy bool
	Logger   *slog.Logger
	Now      func() time.Time
}

// Session is the foreground half of the program. It owns the display buffer
// and status line; only the goroutine calling Run (or Handle/Deliver) mutates
// them, and the background worker reaches it only through Results.
type Session struct {
	queue     *worker.Queue
	clipboard Clipboard
	notifier  Notifier
	render    func(View)
	autoCopy  bool
	logger    *slog.Logger
	now       func() time.Time

	view View
}

// New binds a session to a worker queue.
func New(queue *worker.Queue, opts Options) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		queue:     queue,
		clipboard: opts.Clipboard,
		notifier:  opts.Notifier,
		render:    opts.Render,
		autoCopy:  opts.AutoCopy,
		logger:    logging.NewComponentLogger(opts.Logger, "session"),
		now:       now,
		view:      View{Status: status.Ready},
	}
}

// View returns the current display contents.
func (s *Session) View() View {
	return s.view
}

// Run is the foreground event loop. It applies user events and worker results
// until events is closed or ctx is cancelled, then closes the queue intake and
// delivers the results of every job still queued before returning.
func (s *Session) Run(ctx context.Context, events <-chan Event) error {
	results := s.queue.Results()
	for events != nil {
		select {
		case <-ctx.Done():
			events = nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.Handle(ev)
		case res, ok := <-results:
			if !ok {
				return nil
			}
			s.Deliver(res)
		}
	}

	s.queue.Close()
	for res := range results {
		s.Deliver(res)
	}
	return ctx.Err()
}

// Handle applies a single user event.
func (s *Session) Handle(ev Event) {
	switch e := ev.(type) {
	case Drop:
		s.drop(e.Transfer)
	case Copy:
		s.copyText()
	case Clear:
		s.update(View{Status: status.Line(s.now(), status.ClearedText)})
	case DropFailed:
		s.logger.Warn("drop failed", logging.String(logging.FieldErrorKind, services.Kind(e.Err)), logging.Error(e.Err))
		s.fail(e.Err)
	case Inspect:
		if e.Fn != nil {
			e.Fn(s.view)
		}
	}
}

// Deliver applies a finished job to the display.
func (s *Session) Deliver(res worker.Result) {
	if res.Err != nil {
		s.fail(res.Err)
		return
	}
	s.update(View{Text: res.Markdown, Status: status.Line(s.now(), status.EncodingSucceeded)})
	if s.autoCopy {
		s.copyText()
	}
}

func (s *Session) drop(t payload.Transfer) {
	if !payload.CanImport(t.Flavors...) {
		s.reject(services.Wrap(services.ErrUnsupportedFlavor, "session", "drop",
			fmt.Sprintf("flavors %v", t.Flavors), nil))
		return
	}
	job, err := s.queue.Submit(t)
	if err != nil {
		s.reject(err)
		return
	}
	s.logger.Debug("drop accepted",
		logging.String(logging.FieldJobID, job.ID),
		logging.String(logging.FieldSourceKind, string(job.Kind)),
	)
}

// reject reports a drop that never became a background job.
func (s *Session) reject(err error) {
	if services.Synchronous(err) {
		s.logger.Info("drop rejected", logging.String(logging.FieldErrorKind, services.Kind(err)))
	} else {
		s.logger.Warn("drop not queued", logging.Error(err))
	}
	if errors.Is(err, services.ErrEmptyInput) {
		s.notify(err)
		s.update(View{Status: status.Line(s.now(), status.FileListEmpty)})
		return
	}
	s.fail(err)
}

func (s *Session) copyText() {
	clip := s.clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}
	if err := clip.WriteText(s.view.Text); err != nil {
		s.logger.Warn("clipboard write failed", logging.Error(err))
		s.notify(err)
		s.update(View{Text: s.view.Text, Status: status.ErrorLine(err)})
		return
	}
	s.update(View{Text: s.view.Text, Status: status.Line(s.now(), status.CopiedToClipboard)})
}

func (s *Session) fail(err error) {
	s.notify(err)
	s.update(View{Status: status.ErrorLine(err)})
}

func (s *Session) notify(err error) {
	if s.notifier != nil {
		s.notifier.Notify(err)
	}
}

func (s *Session) update(v View) {
	s.view = v
	if s.render != nil {
		s.render(v)
	}
}
