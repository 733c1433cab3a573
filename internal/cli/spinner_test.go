package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	sp := startSpinner(context.Background(), &buf, "Laying out 7 visible nodes as svg")
	sp.setMessage("Writing 2 files")
	sp.stop()

	out := buf.String()
	for _, want := range []string{"Laying out 7 visible nodes as svg", "Writing 2 files"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner should leave a cleared line, got %q", out)
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	sp := startSpinner(ctx, &buf, "Rendering png")
	cancel()

	select {
	case <-sp.done:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after cancellation")
	}

	// Nothing is drawn once the line is cleared.
	n := buf.Len()
	sp.setMessage("late")
	if buf.Len() != n {
		t.Errorf("setMessage after stop wrote %q", buf.String()[n:])
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	sp := startSpinner(context.Background(), &bytes.Buffer{}, "Laying out")
	sp.stop()
	sp.stop()
}

func TestSpinnerFail(t *testing.T) {
	var line, status bytes.Buffer
	sp := startSpinner(context.Background(), &line, "Rendering graphviz")
	sp.fail(&status, "Render failed: %s", "dot not found")

	if got := status.String(); !strings.Contains(got, "✗") || !strings.Contains(got, "Render failed: dot not found") {
		t.Errorf("status = %q", got)
	}
}
