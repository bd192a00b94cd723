package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/trebuchet-org/solart/internal/domain/config"
	"github.com/trebuchet-org/solart/internal/domain/models"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// BuildRenderer renders build results
type BuildRenderer struct {
	out  io.Writer
	json bool
}

// NewBuildRenderer creates a new build renderer
func NewBuildRenderer(out io.Writer, json bool) *BuildRenderer {
	return &BuildRenderer{
		out:  out,
		json: json,
	}
}

// Render prints the contract documents when the output is stdout, and a
// summary line per contract otherwise
func (r *BuildRenderer) Render(result *usecase.BuildResult) error {
	if result.Output == config.StdoutOutput {
		return r.renderDocuments(result.Contracts, result.Pretty)
	}
	if r.json {
		return r.renderSummaryJSON(result)
	}

	paths := lo.SliceToMap(result.Artifacts, func(a usecase.WrittenArtifact) (string, string) {
		return a.Contract.Name(), a.Path
	})

	for _, contract := range result.Contracts {
		name := color.New(color.FgYellow, color.Bold).Sprint(contract.Name())
		if path, ok := paths[contract.Name()]; ok {
			fmt.Fprintf(r.out, "%s compiled → %s\n", name, color.New(color.FgBlue).Sprint(path))
		} else {
			fmt.Fprintf(r.out, "%s compiled\n", name)
		}
	}
	return nil
}

// RenderRebuild prints the outcome of one watch-triggered build
func (r *BuildRenderer) RenderRebuild(at time.Time, result *usecase.BuildResult, err error) error {
	stamp := color.New(color.Faint).Sprintf("[%s]", at.Format("15:04:05"))
	if err != nil {
		fmt.Fprintf(r.out, "%s %s\n", stamp, FormatError(err))
		return nil
	}
	fmt.Fprintf(r.out, "%s %s\n", stamp, FormatSuccess(fmt.Sprintf("Built %d contract(s)", len(result.Contracts))))
	return r.Render(result)
}

func (r *BuildRenderer) renderDocuments(contracts []*models.Contract, pretty bool) error {
	for _, contract := range contracts {
		var (
			data []byte
			err  error
		)
		if pretty {
			data, err = contract.SerializePretty()
		} else {
			data, err = contract.Serialize()
		}
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", contract.Name(), err)
		}
		if _, err := fmt.Fprintln(r.out, string(data)); err != nil {
			return err
		}
	}
	return nil
}

type buildSummary struct {
	Contracts []string          `json:"contracts"`
	Artifacts map[string]string `json:"artifacts"`
	Sources   []string          `json:"sources"`
	Missing   []string          `json:"missing"`
}

func (r *BuildRenderer) renderSummaryJSON(result *usecase.BuildResult) error {
	summary := buildSummary{
		Contracts: lo.Map(result.Contracts, func(c *models.Contract, _ int) string { return c.Name() }),
		Artifacts: lo.SliceToMap(result.Artifacts, func(a usecase.WrittenArtifact) (string, string) {
			return a.Contract.Name(), a.Path
		}),
		Sources: result.Sources,
		Missing: lo.Ternary(result.Missing == nil, []string{}, result.Missing),
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return err
}

var _ Renderer[*usecase.BuildResult] = (*BuildRenderer)(nil)
