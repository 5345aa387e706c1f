package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/stipple/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a one-line status on stderr with the elapsed time.
// While following a pipeline it also receives compile and render events and
// rewrites the status from them, e.g. "Rendering svg, png · 214 items".
type Spinner struct {
	out    io.Writer
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	status  string
	items   int
	start   time.Time
	width   int
	running bool
	stopped chan struct{}
}

// newSpinner creates a spinner that stops when ctx is cancelled.
func newSpinner(ctx context.Context, status string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     os.Stderr,
		ctx:     sctx,
		cancel:  cancel,
		status:  status,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. Calling Start twice has no effect.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running, s.start = true, time.Now()
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// Follow routes pipeline events to the spinner until the returned function
// is called, which restores the previous hooks.
func (s *Spinner) Follow() (restore func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(s)
	return func() { observability.SetPipelineHooks(prev) }
}

// Stop ends the animation and clears the line. It is safe to call without
// Start and more than once.
func (s *Spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if running {
		<-s.stopped
	}
	s.clearLine()
}

// StopWithError stops the spinner and reports message with the elapsed time.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s after %s", message, formatElapsed(s.Elapsed()))
}

// Cancelled reports whether the spinner's context ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// Elapsed returns the time since Start, or zero if it never started.
func (s *Spinner) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.start.IsZero() {
		return 0
	}
	return time.Since(s.start)
}

// Status returns the current status text.
func (s *Spinner) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.line()
}

func (s *Spinner) setStatus(status string, items int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	if items >= 0 {
		s.items = items
	}
}

// line formats the status; s.mu must be held.
func (s *Spinner) line() string {
	if s.items > 0 {
		return s.status + " · " + plural(s.items, "item")
	}
	return s.status
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text := fmt.Sprintf("%s %s", s.line(), formatElapsed(time.Since(s.start)))
	s.width = max(s.width, len(text)+2)
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(text))
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
	s.width = 0
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// =============================================================================
// observability.PipelineHooks
// =============================================================================

func (s *Spinner) OnCompileStart(_ context.Context, groups, _ int) {
	s.setStatus("Compiling "+plural(groups, "group"), 0)
}

func (s *Spinner) OnCompileComplete(_ context.Context, items int, _ bool, _ time.Duration, _ error) {
	s.setStatus("Compiled", items)
}

func (s *Spinner) OnRenderStart(_ context.Context, formats []string) {
	s.setStatus("Rendering "+strings.Join(formats, ", "), -1)
}

func (s *Spinner) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, _ error) {
	s.setStatus("Rendered "+strings.Join(formats, ", "), -1)
}
