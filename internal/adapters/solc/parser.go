package solc

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/domain/models"
)

// bytecode and abi payloads are single lines that easily exceed bufio's default
const maxLineSize = 64 * 1024 * 1024

// Parse parses the complete stdout of one solc run. Either every section is
// parsed or an error is returned; there are no partial results.
func Parse(output string, kinds domain.OutputKinds) ([]*models.Contract, error) {
	return ParseReader(strings.NewReader(output), kinds)
}

// ParseReader is Parse over a reader
func ParseReader(r io.Reader, kinds domain.OutputKinds) ([]*models.Contract, error) {
	scanner, err := NewScanner(kinds)
	if err != nil {
		return nil, err
	}

	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for lines.Scan() {
		if err := scanner.Advance(lines.Text()); err != nil {
			return nil, err
		}
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("failed to read solc output: %w", err)
	}

	return scanner.Finish()
}

// OutputParser parses solc output for the build use cases
type OutputParser struct {
	log *slog.Logger
}

// NewOutputParser creates a new output parser
func NewOutputParser(log *slog.Logger) *OutputParser {
	return &OutputParser{
		log: log.With("component", "OutputParser"),
	}
}

// Parse parses the output of a compiler run made with kinds
func (p *OutputParser) Parse(output string, kinds domain.OutputKinds) ([]*models.Contract, error) {
	contracts, err := Parse(output, kinds)
	if err != nil {
		p.log.Debug("failed to parse solc output", "kinds", kinds.String(), "error", err)
		return nil, err
	}
	p.log.Debug("parsed solc output", "kinds", kinds.String(), "contracts", len(contracts))
	return contracts, nil
}
