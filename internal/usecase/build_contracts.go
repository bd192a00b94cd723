package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/domain/config"
	"github.com/trebuchet-org/solart/internal/domain/models"
)

// BuildParams contains parameters for one build
type BuildParams struct {
	Inputs    []string // files or directories
	Source    string   // inline source, used when Stdin is set
	Stdin     bool
	Kinds     domain.OutputKinds
	Output    string // artifact directory, "-" for stdout, empty to only report
	Pretty    bool
	Recursive bool
	Pick      bool // interactively choose which contracts to keep
}

// WrittenArtifact records where a contract document was stored
type WrittenArtifact struct {
	Contract *models.Contract
	Path     string
}

// BuildResult contains the result of a build
type BuildResult struct {
	Contracts []*models.Contract
	Artifacts []WrittenArtifact
	Sources   []string
	Missing   []string
	Output    string
	Pretty    bool
}

// BuildContracts compiles sources and turns the compiler output into contracts
type BuildContracts struct {
	cfg      *config.RuntimeConfig
	compiler Compiler
	parser   OutputParser
	finder   SourceFinder
	store    ArtifactStore
	selector ContractSelector
	sink     ProgressSink
	log      *slog.Logger
}

// NewBuildContracts creates a new BuildContracts use case
func NewBuildContracts(
	cfg *config.RuntimeConfig,
	compiler Compiler,
	parser OutputParser,
	finder SourceFinder,
	store ArtifactStore,
	selector ContractSelector,
	sink ProgressSink,
	log *slog.Logger,
) *BuildContracts {
	return &BuildContracts{
		cfg:      cfg,
		compiler: compiler,
		parser:   parser,
		finder:   finder,
		store:    store,
		selector: selector,
		sink:     sink,
		log:      log.With("component", "BuildContracts"),
	}
}

// Run executes one build. Every input must compile and parse, otherwise
// nothing is written and the first error is returned.
func (uc *BuildContracts) Run(ctx context.Context, params BuildParams) (*BuildResult, error) {
	if params.Kinds.Empty() {
		return nil, domain.ErrNoOutputKinds
	}

	result := &BuildResult{Output: params.Output, Pretty: params.Pretty}

	inputs, err := uc.resolveInputs(ctx, params, result)
	if err != nil {
		return nil, err
	}

	for i, input := range inputs {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "compiling",
			Current: i + 1,
			Total:   len(inputs),
			Message: fmt.Sprintf("Compiling %s", input),
			Spinner: true,
		})

		out, err := uc.compiler.Compile(ctx, input, params.Kinds)
		if err != nil {
			uc.sink.OnProgress(ctx, ProgressEvent{Stage: "failed"})
			return nil, fmt.Errorf("failed to compile %s: %w", input, err)
		}

		contracts, err := uc.parser.Parse(out.Stdout, params.Kinds)
		if err != nil {
			uc.sink.OnProgress(ctx, ProgressEvent{Stage: "failed"})
			return nil, fmt.Errorf("failed to parse solc output for %s: %w", input, err)
		}
		uc.log.Debug("compiled input", "input", input.String(), "contracts", len(contracts))
		result.Contracts = append(result.Contracts, contracts...)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "compiled",
		Current: len(inputs),
		Total:   len(inputs),
		Message: fmt.Sprintf("Compiled %d file(s)", len(inputs)),
	})

	// Imported contracts show up in the output of every file importing them.
	result.Contracts = lo.UniqBy(result.Contracts, func(c *models.Contract) string {
		return c.Name()
	})

	if params.Pick && uc.selector != nil && !uc.cfg.NonInteractive && len(result.Contracts) > 1 {
		selected, err := uc.selector.SelectContracts(ctx, result.Contracts)
		if err != nil {
			return nil, err
		}
		result.Contracts = selected
	}

	if params.Output != "" && params.Output != config.StdoutOutput {
		for _, contract := range result.Contracts {
			path, err := uc.store.Write(ctx, params.Output, contract, params.Pretty)
			if err != nil {
				return nil, err
			}
			result.Artifacts = append(result.Artifacts, WrittenArtifact{Contract: contract, Path: path})
		}
	}

	return result, nil
}

func (uc *BuildContracts) resolveInputs(ctx context.Context, params BuildParams, result *BuildResult) ([]domain.CompilerInput, error) {
	if params.Stdin {
		result.Sources = []string{domain.SourceInput(params.Source).String()}
		return []domain.CompilerInput{domain.SourceInput(params.Source)}, nil
	}

	sources, err := uc.finder.Find(ctx, params.Inputs, params.Recursive)
	if err != nil {
		return nil, err
	}
	for _, missing := range sources.Missing {
		uc.sink.Error(fmt.Sprintf("%s: No such file or directory", missing))
	}
	result.Missing = sources.Missing
	result.Sources = sources.Files

	if len(sources.Files) == 0 {
		return nil, domain.ErrNoInputs
	}
	return lo.Map(sources.Files, func(path string, _ int) domain.CompilerInput {
		return domain.PathInput(path)
	}), nil
}
