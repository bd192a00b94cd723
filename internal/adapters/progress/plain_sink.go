package progress

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// PlainSink drops progress events but still prints messages, for
// non-interactive and JSON output
type PlainSink struct {
	out io.Writer
}

// NewPlainSink creates a sink that writes messages to stderr
func NewPlainSink() *PlainSink {
	return &PlainSink{out: os.Stderr}
}

// OnProgress does nothing with progress events
func (n *PlainSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {}

// Info prints an info message
func (n *PlainSink) Info(message string) {
	color.New(color.FgCyan).Fprintln(n.out, message)
}

// Error prints an error message
func (n *PlainSink) Error(message string) {
	color.New(color.FgRed).Fprintln(n.out, message)
}

var _ usecase.ProgressSink = (*PlainSink)(nil)
