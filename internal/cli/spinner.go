package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status line on statusOut while routes are evaluated.
// Once a second has passed the line also shows the elapsed time.
type spinner struct {
	ctx     context.Context
	message string
	start   time.Time

	quit    chan struct{}
	done    chan struct{}
	stopped sync.Once

	// width of the last line drawn; owned by the animation goroutine until
	// done is closed.
	width int
}

// startSpinner draws message until stop is called or ctx is cancelled.
func startSpinner(ctx context.Context, message string) *spinner {
	s := &spinner{
		ctx:     ctx,
		message: message,
		start:   time.Now(),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-s.quit:
			return
		case <-ticker.C:
			line := spinnerLine(spinnerFrames[i%len(spinnerFrames)], s.message, time.Since(s.start))
			s.clear()
			fmt.Fprint(statusOut, line)
			s.width = lipgloss.Width(line)
		}
	}
}

// spinnerLine renders one animation frame.
func spinnerLine(frame, message string, elapsed time.Duration) string {
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(message)
	if elapsed >= time.Second {
		line += " " + StyleDim.Render(elapsed.Truncate(time.Second).String())
	}
	return line
}

func (s *spinner) clear() {
	if s.width > 0 {
		fmt.Fprint(statusOut, "\r"+strings.Repeat(" ", s.width)+"\r")
		s.width = 0
	}
}

// stop ends the animation and erases the status line. It may be called more
// than once.
func (s *spinner) stop() {
	s.stopped.Do(func() { close(s.quit) })
	<-s.done
	s.clear()
}

// fail stops the spinner and reports message as an error.
func (s *spinner) fail(message string) {
	s.stop()
	printError("%s", message)
}

// interrupted reports whether the spinner ended because ctx was cancelled.
func (s *spinner) interrupted() bool {
	return s.ctx.Err() != nil
}
