package solc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/domain/config"
)

// stdinPath tells solc to read the source from stdin
const stdinPath = "-"

var versionRegexp = regexp.MustCompile(`[0-9]+\.[0-9]+\.[0-9]+`)

// Compiler runs the solc executable
type Compiler struct {
	log     *slog.Logger
	solc    string
	timeout time.Duration
}

// NewCompiler creates a compiler using the configured solc executable
func NewCompiler(cfg *config.RuntimeConfig, log *slog.Logger) *Compiler {
	solc := cfg.Solc
	if solc == "" {
		solc = "solc"
	}
	return &Compiler{
		log:     log.With("component", "Compiler"),
		solc:    solc,
		timeout: cfg.Timeout,
	}
}

// Compile runs solc for one input and returns its captured output. Stdout and
// stderr are kept apart; stderr only carries diagnostics and is logged.
func (c *Compiler) Compile(ctx context.Context, input domain.CompilerInput, kinds domain.OutputKinds) (*domain.CompilerOutput, error) {
	if kinds.Empty() {
		return nil, domain.ErrNoOutputKinds
	}

	args := kinds.Flags()
	if input.IsStdin() {
		args = append(args, stdinPath)
	} else {
		args = append(args, input.Path)
	}

	var stdin *strings.Reader
	if input.IsStdin() {
		stdin = strings.NewReader(input.Source)
	}

	stdout, stderr, err := c.run(ctx, args, stdin)
	if err != nil {
		return nil, err
	}
	return &domain.CompilerOutput{Stdout: stdout, Stderr: stderr}, nil
}

// Version returns the semantic version reported by solc --version
func (c *Compiler) Version(ctx context.Context) (string, error) {
	stdout, _, err := c.run(ctx, []string{"--version"}, nil)
	if err != nil {
		return "", err
	}
	version := versionRegexp.FindString(stdout)
	if version == "" {
		return "", fmt.Errorf("%w: no version in %q", domain.ErrFormat, strings.TrimSpace(stdout))
	}
	return version, nil
}

func (c *Compiler) run(ctx context.Context, args []string, stdin *strings.Reader) (string, string, error) {
	path, err := exec.LookPath(c.solc)
	if err != nil {
		return "", "", &domain.ProcessError{
			Tool: c.solc,
			Err:  fmt.Errorf("%w: %w", domain.ErrCompilerNotFound, err),
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	c.log.Debug("running solc", "path", path, "args", args)

	cmd := exec.CommandContext(ctx, path, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	duration := time.Since(start)
	c.logStderr(stderr.String())

	if err != nil {
		procErr := &domain.ProcessError{Tool: c.solc, Stderr: stderr.String(), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			procErr.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			procErr.Err = ctxErr
		}
		c.log.Debug("solc failed", "error", err, "duration", duration)
		return "", "", procErr
	}

	c.log.Debug("solc completed", "duration", duration, "stdout_bytes", stdout.Len())
	return stdout.String(), stderr.String(), nil
}

// logStderr surfaces compiler warnings without mixing them into the parsed output
func (c *Compiler) logStderr(stderr string) {
	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			c.log.Warn(line, "source", "solc")
		}
	}
}
