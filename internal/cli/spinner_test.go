package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerTo(ctx, &bytes.Buffer{}, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerTo(ctx, &bytes.Buffer{}, "Testing with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopBeforeStart(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "never started")
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that was never started")
	}
}

func TestSpinnerNonTerminalWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "quiet")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal writer", buf.String())
	}
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	out := captureStdout(t)
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Testing success...")
	s.Start()
	s.StopWithSuccess("Done!")

	if !bytes.Contains(out.Bytes(), []byte("Done!")) {
		t.Errorf("output %q missing success message", out.String())
	}
}

func TestSpinnerStopWithError(t *testing.T) {
	out := captureStdout(t)
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Testing error...")
	s.Start()
	s.StopWithError("Failed!")

	if !bytes.Contains(out.Bytes(), []byte("Failed!")) {
		t.Errorf("output %q missing error message", out.String())
	}
}

// captureStdout redirects the print helpers into a buffer for the duration
// of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}
