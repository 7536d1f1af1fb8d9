package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDraws(t *testing.T) {
	var buf syncBuffer
	s := newSpinnerWriter(context.Background(), &buf, true, "Building graph...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Building graph...") {
		t.Errorf("spinner output %q should contain the message", buf.String())
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerDisabledIsSilent(t *testing.T) {
	var buf syncBuffer
	s := newSpinnerWriter(context.Background(), &buf, false, "quiet")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	if got := buf.String(); got != "" {
		t.Errorf("disabled spinner wrote %q", got)
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWriter(ctx, &syncBuffer{}, true, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s := newSpinnerWriter(ctx, &syncBuffer{}, true, "Testing with timeout...")
	s.Start()
	time.Sleep(60 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerWriter(context.Background(), &syncBuffer{}, true, "Testing idempotent stop...")
	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinnerWriter(context.Background(), &syncBuffer{}, true, "never started")
	s.Stop()
}

func TestSpinnerStopWithMessage(t *testing.T) {
	out := captureStdout(t)

	s := newSpinnerWriter(context.Background(), &syncBuffer{}, false, "Rendering...")
	s.Start()
	s.StopWithSuccess("Done!")

	s = newSpinnerWriter(context.Background(), &syncBuffer{}, false, "Rendering...")
	s.Start()
	s.StopWithError("Failed!")

	if got := out.String(); !strings.Contains(got, "Done!") || !strings.Contains(got, "Failed!") {
		t.Errorf("output = %q", got)
	}
}
