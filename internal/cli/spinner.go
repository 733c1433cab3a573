package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a single status line while a map is laid out and
// drawn. It clears its line when stopped or when ctx is cancelled.
type spinner struct {
	w      io.Writer
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	message string
	frame   int
	width   int // widest line drawn so far
	stopped bool
	start   time.Time
}

// startSpinner draws the first frame and keeps animating until stop.
func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		w:       w,
		cancel:  cancel,
		done:    make(chan struct{}),
		message: message,
		start:   time.Now(),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		s.mu.Lock()
		s.draw()
		s.frame++
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.stopped = true
			s.clear()
			s.mu.Unlock()
			return
		case <-ticker.C:
		}
	}
}

// draw writes the current frame. The caller holds s.mu.
func (s *spinner) draw() {
	if s.stopped {
		return
	}
	frame := spinnerFrames[s.frame%len(spinnerFrames)]
	line := StyleHighlight.Render(frame) + " " + StyleDim.Render(s.message)
	if elapsed := time.Since(s.start); elapsed >= time.Second {
		line += StyleDim.Render(fmt.Sprintf(" %ds", int(elapsed.Seconds())))
	}
	pad := s.width - lipgloss.Width(line)
	s.width = max(s.width, lipgloss.Width(line))
	fmt.Fprint(s.w, "\r"+line+strings.Repeat(" ", max(pad, 0)))
}

// clear blanks the spinner line. The caller holds s.mu.
func (s *spinner) clear() {
	fmt.Fprint(s.w, "\r"+strings.Repeat(" ", s.width)+"\r")
}

// setMessage replaces the status text and redraws at once.
func (s *spinner) setMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	s.draw()
}

// stop ends the animation and waits for the line to be cleared. It is safe
// to call more than once.
func (s *spinner) stop() {
	s.cancel()
	<-s.done
}

// fail stops the spinner and reports msg as a failed status line on w.
func (s *spinner) fail(w io.Writer, format string, args ...any) {
	s.stop()
	say(w, markFail, format, args...)
}
