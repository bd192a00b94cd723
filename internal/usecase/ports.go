package usecase

import (
	"context"

	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/domain/models"
)

// Compiler runs the external solidity compiler
type Compiler interface {
	Compile(ctx context.Context, input domain.CompilerInput, kinds domain.OutputKinds) (*domain.CompilerOutput, error)
	Version(ctx context.Context) (string, error)
}

// OutputParser turns captured compiler output into contracts. It must be
// given the same kinds the compiler was invoked with.
type OutputParser interface {
	Parse(output string, kinds domain.OutputKinds) ([]*models.Contract, error)
}

// ArtifactStore persists contract documents
type ArtifactStore interface {
	// Write stores the contract as <dir>/<Name>.json and returns the path
	Write(ctx context.Context, dir string, contract *models.Contract, pretty bool) (string, error)
	Save(ctx context.Context, path string, contract *models.Contract) error
	Read(ctx context.Context, path string) (*models.Contract, error)
	List(ctx context.Context, dir string) ([]string, error)
}

// SourceSet is the result of resolving build inputs
type SourceSet struct {
	Files   []string
	Missing []string
}

// SourceFinder expands files and directories into solidity sources
type SourceFinder interface {
	Find(ctx context.Context, inputs []string, recursive bool) (*SourceSet, error)
}

// FileWatcher calls onChange whenever one of the paths changes, until ctx is done
type FileWatcher interface {
	Watch(ctx context.Context, paths []string, onChange func(ctx context.Context)) error
}

// ContractSelector lets the user pick which parsed contracts to keep
type ContractSelector interface {
	SelectContracts(ctx context.Context, contracts []*models.Contract) ([]*models.Contract, error)
}

// ArtifactSelector lets the user pick one artifact file
type ArtifactSelector interface {
	SelectArtifact(ctx context.Context, paths []string) (string, error)
}

// SelectorResolver computes function selectors and event topics
type SelectorResolver interface {
	Resolve(ctx context.Context, contract *models.Contract) ([]models.Selector, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
