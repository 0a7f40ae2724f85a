package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// fillSpinner animates while a grid is being filled and shows how many
// cells are covered. Progress may be called from any goroutine.
type fillSpinner struct {
	label    string
	out      io.Writer
	interval time.Duration

	filled atomic.Int64
	total  atomic.Int64

	ctx      context.Context
	cancel   context.CancelFunc
	started  atomic.Bool
	stopped  chan struct{}
	stopOnce sync.Once

	mu    sync.Mutex
	width int // visible width of the last line written
}

// newFillSpinner returns a spinner writing to out. It stops by itself when
// ctx is cancelled.
func newFillSpinner(ctx context.Context, out io.Writer, label string) *fillSpinner {
	ctx, cancel := context.WithCancel(ctx)
	return &fillSpinner{
		label:    label,
		out:      out,
		interval: 80 * time.Millisecond,
		ctx:      ctx,
		cancel:   cancel,
		stopped:  make(chan struct{}),
	}
}

// Progress records filled of total cells. It matches pipeline.Options.Progress.
func (s *fillSpinner) Progress(filled, total int) {
	s.total.Store(int64(total))
	s.filled.Store(int64(filled))
}

// status is the text after the spinner frame.
func (s *fillSpinner) status() string {
	total := s.total.Load()
	if total <= 0 {
		return s.label
	}
	filled := min(s.filled.Load(), total)
	return fmt.Sprintf("%s %3d%% (%d/%d cells)", s.label, filled*100/total, filled, total)
}

// Start begins the animation.
func (s *fillSpinner) Start() {
	s.started.Store(true)
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *fillSpinner) draw(frame string) {
	text := s.status()
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(text))
	s.width = 2 + len([]rune(text))
}

// Stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *fillSpinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		if s.started.Load() {
			<-s.stopped
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.width > 0 {
			fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
			s.width = 0
		}
	})
}

// StopWithError stops the spinner and prints message as an error.
func (s *fillSpinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}
