package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/solart/internal/usecase"
)

func TestSpinnerSink(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	sink := newSpinnerSink(&buf)
	ctx := context.Background()

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "compiling", Current: 1, Total: 2, Message: "Compiling A.sol", Spinner: true})
	assert.True(t, sink.running)
	assert.Equal(t, " [1/2] Compiling A.sol", sink.spinner.Suffix)

	sink.Error("gone.sol: No such file or directory")

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "compiled", Current: 2, Total: 2, Message: "Compiled 2 files"})
	assert.False(t, sink.running)

	out := buf.String()
	assert.Contains(t, out, "gone.sol: No such file or directory\n")
	assert.Contains(t, out, "✓ Compiled 2 files (")
}

func TestPlainSink(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	sink := &PlainSink{out: &buf}
	sink.OnProgress(context.Background(), usecase.ProgressEvent{Message: "ignored", Spinner: true})
	sink.Info("watching contracts")
	sink.Error("failed")

	assert.Equal(t, "watching contracts\nfailed\n", buf.String())
}
