package domain

import (
	"fmt"
	"strings"
)

// OutputKind is one section type the compiler can be asked to emit
type OutputKind string

const (
	OutputABI OutputKind = "abi"
	OutputBin OutputKind = "bin"
	OutputGas OutputKind = "gas"
)

// OutputKinds is the set of sections requested from the compiler. The same
// set has to be handed to the output parser since the section layout depends on it.
type OutputKinds struct {
	ABI bool
	Bin bool
	Gas bool
}

// AllOutputKinds requests every section
func AllOutputKinds() OutputKinds {
	return OutputKinds{ABI: true, Bin: true, Gas: true}
}

// ParseOutputKinds parses a list such as ["abi", "bin"]
func ParseOutputKinds(values []string) (OutputKinds, error) {
	var kinds OutputKinds
	for _, v := range values {
		switch OutputKind(strings.ToLower(strings.TrimSpace(v))) {
		case OutputABI:
			kinds.ABI = true
		case OutputBin:
			kinds.Bin = true
		case OutputGas:
			kinds.Gas = true
		default:
			return OutputKinds{}, fmt.Errorf("unknown output kind %q (want abi, bin or gas)", v)
		}
	}
	return kinds, nil
}

// Empty reports whether no section was requested
func (k OutputKinds) Empty() bool {
	return !k.ABI && !k.Bin && !k.Gas
}

// Flags returns the compiler command line flags for the requested sections
func (k OutputKinds) Flags() []string {
	var flags []string
	if k.ABI {
		flags = append(flags, "--abi")
	}
	if k.Bin {
		flags = append(flags, "--bin")
	}
	if k.Gas {
		flags = append(flags, "--gas")
	}
	return flags
}

func (k OutputKinds) String() string {
	var kinds []string
	if k.ABI {
		kinds = append(kinds, string(OutputABI))
	}
	if k.Bin {
		kinds = append(kinds, string(OutputBin))
	}
	if k.Gas {
		kinds = append(kinds, string(OutputGas))
	}
	return strings.Join(kinds, ",")
}

// CompilerInput is either inline source text or a path on disk
type CompilerInput struct {
	Source string
	Path   string
}

// SourceInput creates an input that is piped to the compiler on stdin
func SourceInput(source string) CompilerInput {
	return CompilerInput{Source: source}
}

// PathInput creates an input that names a file for the compiler
func PathInput(path string) CompilerInput {
	return CompilerInput{Path: path}
}

// IsStdin reports whether the input is passed on stdin
func (in CompilerInput) IsStdin() bool {
	return in.Path == ""
}

func (in CompilerInput) String() string {
	if in.IsStdin() {
		return "<stdin>"
	}
	return in.Path
}

// CompilerOutput holds the captured streams of one compiler run
type CompilerOutput struct {
	Stdout string
	Stderr string
}
