package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrFormat is returned when the compiler text output does not follow the expected layout
	ErrFormat = errors.New("unexpected compiler output format")

	// ErrSchema is returned when an ABI document does not match a known entry shape
	ErrSchema = errors.New("unrecognized abi schema")

	// ErrProcess is returned when the external compiler cannot be run or fails
	ErrProcess = errors.New("compiler process failed")

	// ErrIO is returned when an artifact cannot be read or written
	ErrIO = errors.New("artifact io failed")

	// ErrCompilerNotFound is returned when the compiler executable is not on PATH
	ErrCompilerNotFound = errors.New("compiler not found")

	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrEmptyContractName is returned when a contract is constructed without a name
	ErrEmptyContractName = errors.New("contract name must not be empty")

	// ErrGasEstimatesAttached is returned when gas estimates are attached twice
	ErrGasEstimatesAttached = errors.New("gas estimates already attached")

	// ErrNoOutputKinds is returned when no output kind was requested from the compiler
	ErrNoOutputKinds = errors.New("at least one output kind must be requested")

	// ErrNoInputs is returned when none of the given inputs exist
	ErrNoInputs = errors.New("no valid inputs")
)

// FormatError reports a line of compiler output that did not match the expected text.
type FormatError struct {
	Line     int
	Expected string
	Actual   string
	EOF      bool
}

func (e *FormatError) Error() string {
	if e.EOF {
		return fmt.Sprintf("solc output line %d: expected %q, got end of output", e.Line, e.Expected)
	}
	return fmt.Sprintf("solc output line %d: expected %q, got %q", e.Line, e.Expected, e.Actual)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// SchemaErrorKind classifies ABI decoding failures
type SchemaErrorKind string

const (
	UnrecognizedEntry SchemaErrorKind = "unrecognized entry"
	MissingField      SchemaErrorKind = "missing field"
	InvalidJSON       SchemaErrorKind = "invalid json"
)

// SchemaError reports an ABI array element that could not be decoded.
type SchemaError struct {
	Kind  SchemaErrorKind
	Index int    // position of the entry in the ABI array, -1 for the array itself
	Type  string // value of the entry's "type" field, if any
	Field string // missing field name for MissingField
	Err   error
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("abi")
	if e.Index >= 0 {
		fmt.Fprintf(&b, " entry %d", e.Index)
	}
	if e.Type != "" {
		fmt.Fprintf(&b, " (%s)", e.Type)
	}
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.Field != "" {
		fmt.Fprintf(&b, " %q", e.Field)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ProcessError reports a failed compiler invocation.
type ProcessError struct {
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Tool, e.Err)
	if e.ExitCode > 0 {
		msg = fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\n" + stderr
	}
	return msg
}

func (e *ProcessError) Is(target error) bool {
	return target == ErrProcess
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
