package solc

import (
	"fmt"
	"strings"

	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/domain/abi"
	"github.com/trebuchet-org/solart/internal/domain/models"
)

// Labels printed by solc in its human readable output
const (
	LabelGasEstimation = "Gas estimation:"
	LabelConstruction  = "construction:"
	LabelExternal      = "external:"
	LabelInternal      = "internal:"
	LabelBinary        = "Binary:"
	LabelABI           = "Contract JSON ABI"

	headerMarker   = "======="
	headerExpected = "======= <path>:<ContractName> ======="
)

// State is the position of the Scanner within a contract section
type State int

const (
	StateStart State = iota
	StateExpectHeader
	StateExpectGasLabel
	StateExpectConstructionLabel
	StateExpectConstructionLine
	StateExpectExternalLabel
	StateCollectGasLines
	StateExpectBinaryLabel
	StateExpectBinaryLine
	StateExpectABILabel
	StateExpectABILine
	StateFailed
)

var stateNames = map[State]string{
	StateStart:                   "Start",
	StateExpectHeader:            "ExpectHeader",
	StateExpectGasLabel:          "ExpectGasLabel",
	StateExpectConstructionLabel: "ExpectConstructionLabel",
	StateExpectConstructionLine:  "ExpectConstructionLine",
	StateExpectExternalLabel:     "ExpectExternalLabel",
	StateCollectGasLines:         "CollectGasLines",
	StateExpectBinaryLabel:       "ExpectBinaryLabel",
	StateExpectBinaryLine:        "ExpectBinaryLine",
	StateExpectABILabel:          "ExpectABILabel",
	StateExpectABILine:           "ExpectABILine",
	StateFailed:                  "Failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// section accumulates the raw fragments of the contract being scanned
type section struct {
	name     string
	bin      string
	abiJSON  string
	gas      *models.GasEstimates
	gasRows  map[string]string
	finished bool
}

// Scanner is a single pass state machine over solc's text output. Lines are
// fed one at a time with Advance, and Finish returns the parsed contracts.
// The first error is sticky: a failed Scanner rejects all further input.
type Scanner struct {
	kinds     domain.OutputKinds
	state     State
	line      int
	current   *section
	contracts []*models.Contract
	err       error
}

// NewScanner creates a scanner for output produced with the given kinds.
// The kinds must match the flags the compiler was invoked with.
func NewScanner(kinds domain.OutputKinds) (*Scanner, error) {
	if kinds.Empty() {
		return nil, domain.ErrNoOutputKinds
	}
	return &Scanner{kinds: kinds, state: StateStart}, nil
}

// State returns the current scanner state
func (s *Scanner) State() State {
	return s.state
}

// Advance consumes the next line of output
func (s *Scanner) Advance(line string) error {
	if s.err != nil {
		return s.err
	}
	s.line++

	// A line may be looked at by several states before one consumes it.
	for {
		consumed, err := s.step(line)
		if err != nil {
			s.fail(err)
			return s.err
		}
		if consumed {
			return nil
		}
	}
}

// Finish signals the end of output. It fails if the output stopped in the
// middle of a section, otherwise it returns the contracts in output order.
func (s *Scanner) Finish() ([]*models.Contract, error) {
	if s.err != nil {
		return nil, s.err
	}

	switch s.state {
	case StateStart, StateExpectHeader:
		// end of output, or a trailing blank line after the last section
	case StateCollectGasLines:
		if s.gasTerminator() != "" {
			s.fail(s.eofError())
			return nil, s.err
		}
		if err := s.endGas(); err != nil {
			s.fail(err)
			return nil, s.err
		}
	default:
		s.fail(s.eofError())
		return nil, s.err
	}

	contracts := s.contracts
	if contracts == nil {
		contracts = []*models.Contract{}
	}
	return contracts, nil
}

func (s *Scanner) fail(err error) {
	s.err = err
	s.state = StateFailed
	s.contracts = nil
}

func (s *Scanner) step(line string) (bool, error) {
	trimmed := strings.TrimSpace(line)

	switch s.state {
	case StateStart:
		if trimmed != "" {
			return false, s.mismatch("", line)
		}
		s.state = StateExpectHeader
		return true, nil

	case StateExpectHeader:
		name, ok := parseHeader(trimmed)
		if !ok {
			return false, s.mismatch(headerExpected, line)
		}
		s.current = &section{name: name}
		if s.kinds.Gas {
			s.state = StateExpectGasLabel
			return true, nil
		}
		return true, s.afterGas()

	case StateExpectGasLabel:
		return true, s.expectLabel(trimmed, line, LabelGasEstimation, StateExpectConstructionLabel)

	case StateExpectConstructionLabel:
		return true, s.expectLabel(trimmed, line, LabelConstruction, StateExpectConstructionLine)

	case StateExpectConstructionLine:
		gas := models.NewGasEstimates(parseConstruction(trimmed))
		s.current.gas = &gas
		s.state = StateExpectExternalLabel
		return true, nil

	case StateExpectExternalLabel:
		if err := s.expectLabel(trimmed, line, LabelExternal, StateCollectGasLines); err != nil {
			return false, err
		}
		s.current.gasRows = s.current.gas.External
		return true, nil

	case StateCollectGasLines:
		if trimmed == s.gasTerminator() {
			// lookahead: the line belongs to whatever follows the gas block
			return false, s.endGas()
		}
		if trimmed == LabelInternal {
			s.current.gasRows = s.current.gas.Internal
			return true, nil
		}
		name, cost, ok := parseGasRow(trimmed)
		if !ok {
			return false, s.mismatch("<function>(<args>): <cost>", line)
		}
		s.current.gasRows[name] = cost
		return true, nil

	case StateExpectBinaryLabel:
		return true, s.expectLabel(trimmed, line, LabelBinary, StateExpectBinaryLine)

	case StateExpectBinaryLine:
		s.current.bin = trimmed
		return true, s.afterBin()

	case StateExpectABILabel:
		return true, s.expectLabel(trimmed, line, LabelABI, StateExpectABILine)

	case StateExpectABILine:
		s.current.abiJSON = trimmed
		return true, s.endSection()
	}

	return false, fmt.Errorf("solc scanner in unexpected state %s", s.state)
}

func (s *Scanner) expectLabel(trimmed, line, label string, next State) error {
	if trimmed != label {
		return s.mismatch(label, line)
	}
	s.state = next
	return nil
}

// gasTerminator is the line that ends the gas block, which depends on the
// sections that follow it. Without bin and abi a blank separator ends it.
func (s *Scanner) gasTerminator() string {
	switch {
	case s.kinds.Bin:
		return LabelBinary
	case s.kinds.ABI:
		return LabelABI
	default:
		return ""
	}
}

func (s *Scanner) endGas() error {
	s.current.gasRows = nil
	return s.afterGas()
}

func (s *Scanner) afterGas() error {
	if s.kinds.Bin {
		s.state = StateExpectBinaryLabel
		return nil
	}
	return s.afterBin()
}

func (s *Scanner) afterBin() error {
	if s.kinds.ABI {
		s.state = StateExpectABILabel
		return nil
	}
	return s.endSection()
}

// endSection turns the accumulated fragments into a Contract
func (s *Scanner) endSection() error {
	sec := s.current
	s.current = nil
	s.state = StateStart

	var entries abi.ABI
	if s.kinds.ABI {
		decoded, err := abi.Decode([]byte(sec.abiJSON))
		if err != nil {
			return fmt.Errorf("contract %s: %w", sec.name, err)
		}
		entries = decoded
	}

	var opts []models.Option
	if sec.gas != nil {
		opts = append(opts, models.WithGasEstimates(*sec.gas))
	}
	contract, err := models.NewContract(sec.name, entries, sec.bin, opts...)
	if err != nil {
		return fmt.Errorf("contract %s: %w", sec.name, err)
	}
	s.contracts = append(s.contracts, contract)
	return nil
}

func (s *Scanner) mismatch(expected, actual string) error {
	return &domain.FormatError{Line: s.line, Expected: expected, Actual: actual}
}

func (s *Scanner) eofError() error {
	return &domain.FormatError{Line: s.line + 1, Expected: s.expectation(), EOF: true}
}

// expectation describes the line the current state is waiting for
func (s *Scanner) expectation() string {
	switch s.state {
	case StateExpectGasLabel:
		return LabelGasEstimation
	case StateExpectConstructionLabel:
		return LabelConstruction
	case StateExpectConstructionLine:
		return "<cost> = <total>"
	case StateExpectExternalLabel:
		return LabelExternal
	case StateCollectGasLines:
		return s.gasTerminator()
	case StateExpectBinaryLabel:
		return LabelBinary
	case StateExpectBinaryLine:
		return "<bytecode>"
	case StateExpectABILabel:
		return LabelABI
	case StateExpectABILine:
		return "<abi json>"
	case StateExpectHeader:
		return headerExpected
	default:
		return ""
	}
}

// parseHeader extracts the contract name from "======= path:Name ======="
func parseHeader(line string) (string, bool) {
	if len(line) < 2*len(headerMarker) ||
		!strings.HasPrefix(line, headerMarker) ||
		!strings.HasSuffix(line, headerMarker) {
		return "", false
	}
	inner := line[len(headerMarker) : len(line)-len(headerMarker)]
	idx := strings.LastIndex(inner, ":")
	if idx < 0 {
		return "", false
	}
	name := strings.Trim(inner[idx+1:], " =")
	if name == "" {
		return "", false
	}
	return name, true
}

// parseConstruction keeps the total of "<code> + <deposit> = <total>"
func parseConstruction(line string) string {
	if idx := strings.LastIndex(line, "="); idx >= 0 {
		return strings.TrimSpace(line[idx+1:])
	}
	return line
}

// parseGasRow splits "transfer(address,uint256):\t23000" into name and cost.
// The fallback function is printed without a signature, as ":\t21401", and
// is stored under the empty name.
func parseGasRow(line string) (string, string, bool) {
	signature, cost, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	name, _, _ := strings.Cut(signature, "(")
	return strings.TrimSpace(name), strings.TrimSpace(cost), true
}
