package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/stipple/pkg/observability"
)

func quietSpinner(ctx context.Context, status string) (*Spinner, *bytes.Buffer) {
	var buf bytes.Buffer
	s := newSpinner(ctx, status)
	s.out = &buf
	return s, &buf
}

func TestSpinnerStops(t *testing.T) {
	tests := []struct {
		name  string
		start bool
		stop  func(*Spinner)
	}{
		{"stop", true, (*Spinner).Stop},
		{"stop twice", true, func(s *Spinner) { s.Stop(); s.Stop() }},
		{"error", true, func(s *Spinner) { s.StopWithError("Render failed") }},
		{"never started", false, (*Spinner).Stop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := quietSpinner(context.Background(), "Building arc")
			if tt.start {
				s.Start()
				time.Sleep(20 * time.Millisecond)
			}

			done := make(chan struct{})
			go func() {
				tt.stop(s)
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("spinner did not stop")
			}
		})
	}
}

func TestSpinnerFollowsPipeline(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	s, _ := quietSpinner(context.Background(), "Building arc")
	restore := s.Follow()

	ctx := context.Background()
	hooks := observability.Pipeline()
	hooks.OnCompileStart(ctx, 3, 12)
	if got := s.Status(); got != "Compiling 3 groups" {
		t.Errorf("Status() = %q, want %q", got, "Compiling 3 groups")
	}
	hooks.OnCompileComplete(ctx, 214, false, time.Millisecond, nil)
	hooks.OnRenderStart(ctx, []string{"svg", "png"})
	if got := s.Status(); got != "Rendering svg, png · 214 items" {
		t.Errorf("Status() = %q, want %q", got, "Rendering svg, png · 214 items")
	}

	restore()
	observability.Pipeline().OnRenderStart(ctx, []string{"pdf"})
	if got := s.Status(); strings.Contains(got, "pdf") {
		t.Errorf("restored hooks still reach the spinner: %q", got)
	}
}

func TestSpinnerDrawsElapsed(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Running Graphviz")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Running Graphviz") {
		t.Errorf("output %q lacks the status", out)
	}
	if !regexp.MustCompile(`Running Graphviz \d+\.\ds`).MatchString(out) {
		t.Errorf("output %q lacks the elapsed time", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("line not cleared on stop: %q", out)
	}
	if s.Elapsed() < 200*time.Millisecond {
		t.Errorf("Elapsed() = %v, want at least 200ms", s.Elapsed())
	}
}

func TestSpinnerFollowsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	s, _ := quietSpinner(ctx, "Running Graphviz")
	s.Start()
	if s.Cancelled() {
		t.Fatal("spinner cancelled before its context")
	}

	<-ctx.Done()
	deadline := time.Now().Add(time.Second)
	for !s.Cancelled() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !s.Cancelled() {
		t.Error("spinner should report cancellation once its context is done")
	}
	s.Stop()
}
