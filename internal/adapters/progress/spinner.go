package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// SpinnerSink reports compilation progress with a terminal spinner
type SpinnerSink struct {
	spinner *spinner.Spinner
	out     io.Writer
	running bool
	started time.Time
}

// NewSpinnerSink creates a spinner-based progress sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Spinner {
		r.spinner.Suffix = " " + r.describe(event)
		if !r.running {
			r.running = true
			r.started = time.Now()
			// the spinner stays silent when out is not a terminal
			r.spinner.Start()
		}
		return
	}

	if r.running {
		r.running = false
		r.spinner.Stop()
		if event.Message != "" {
			elapsed := time.Since(r.started).Round(time.Millisecond)
			fmt.Fprintf(r.out, "%s %s (%s)\n", color.GreenString("✓"), event.Message, elapsed)
		}
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.pause(func() {
		color.New(color.FgCyan).Fprintln(r.out, message)
	})
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.pause(func() {
		color.New(color.FgRed).Fprintln(r.out, message)
	})
}

// pause stops the spinner while fn prints so lines don't interleave
func (r *SpinnerSink) pause(fn func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	fn()
	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerSink) describe(event usecase.ProgressEvent) string {
	if event.Total > 1 {
		return fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, event.Message)
	}
	return event.Message
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
