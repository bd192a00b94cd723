package config

import (
	"time"

	"github.com/trebuchet-org/solart/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Compiler settings
	Solc  string             // solc executable name or path
	Kinds domain.OutputKinds // sections requested from solc

	// Build settings
	Sources   []string // default inputs when none are given on the command line
	Output    string   // artifact directory, "-" for stdout, empty to only report
	Pretty    bool
	Recursive bool
	Debounce  time.Duration

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Resolved configurations
	FoundryConfig *FoundryConfig // nil outside a Foundry project
}

// StdoutOutput selects printing artifacts instead of writing files
const StdoutOutput = "-"
