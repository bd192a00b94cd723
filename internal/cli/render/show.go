package render

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/solart/internal/domain/abi"
	"github.com/trebuchet-org/solart/internal/domain/models"
	"github.com/trebuchet-org/solart/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Output formats supported by the show command
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ShowRenderer renders a single artifact
type ShowRenderer struct {
	out    io.Writer
	format string
}

// NewShowRenderer creates a new show renderer
func NewShowRenderer(out io.Writer, format string) (*ShowRenderer, error) {
	switch format {
	case "", FormatText:
		format = FormatText
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
	return &ShowRenderer{out: out, format: format}, nil
}

// Render renders the artifact in the configured format
func (r *ShowRenderer) Render(result *usecase.ShowArtifactResult) error {
	switch r.format {
	case FormatJSON:
		data, err := result.Contract.SerializePretty()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case FormatYAML:
		return r.renderYAML(result)
	default:
		return r.renderText(result)
	}
}

func (r *ShowRenderer) renderText(result *usecase.ShowArtifactResult) error {
	contract := result.Contract

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Contract: %s\n", contract.Name())
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintf(r.out, "  Artifact: %s\n", result.Path)
	fmt.Fprintf(r.out, "  Bytecode: %d bytes\n", len(strings.TrimPrefix(contract.Bin(), "0x"))/2)

	if networks := contract.Networks(); len(networks) > 0 {
		fmt.Fprintln(r.out, "\nNetworks:")
		for _, id := range slices.Sorted(maps.Keys(networks)) {
			fmt.Fprintf(r.out, "  %s: %s\n", color.New(color.FgMagenta).Sprint(id), networks[id].Address.Hex())
		}
	}

	if entries := contract.ABI(); len(entries) > 0 {
		fmt.Fprintln(r.out, "\nABI:")
		fmt.Fprintln(r.out, r.abiTable(entries, result.Selectors))
	}

	if report := contract.GasEstimateReport(); report != "" {
		fmt.Fprintln(r.out, "\nGas Estimates:")
		for _, line := range strings.Split(strings.TrimSuffix(report, "\n"), "\n") {
			fmt.Fprintf(r.out, "  %s\n", line)
		}
	}

	return nil
}

// abiTable lists every entry with its selector when one is known
func (r *ShowRenderer) abiTable(entries abi.ABI, selectors []models.Selector) string {
	ids := make(map[string]string, len(selectors))
	for _, s := range selectors {
		ids[string(s.Kind)+" "+s.Signature] = s.ID
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{
		PaddingLeft:  "  ",
		PaddingRight: " ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft},
	})

	title := cases.Title(language.English)
	for _, entry := range entries {
		kind := title.String(string(entry.EntryType()))
		signature, mutability := describeEntry(entry)
		id := ids[string(entry.EntryType())+" "+signature]
		t.AppendRow(table.Row{
			color.New(kindColor(entry.EntryType())).Sprint(kind),
			signature,
			color.New(color.Faint).Sprint(id),
			mutability,
		})
	}

	return t.Render()
}

func describeEntry(entry abi.Entry) (signature, mutability string) {
	switch e := entry.(type) {
	case abi.Function:
		return e.Signature(), e.StateMutability
	case abi.Constructor:
		types := make([]string, len(e.Inputs))
		for i, in := range e.Inputs {
			types[i] = in.CanonicalType()
		}
		return "constructor(" + strings.Join(types, ",") + ")", e.StateMutability
	case abi.Fallback:
		return "fallback()", e.StateMutability
	case abi.Event:
		if e.Anonymous {
			return e.Signature(), "anonymous"
		}
		return e.Signature(), ""
	default:
		return "", ""
	}
}

func kindColor(kind abi.EntryType) color.Attribute {
	switch kind {
	case abi.FunctionType:
		return color.FgGreen
	case abi.EventType:
		return color.FgMagenta
	default:
		return color.FgYellow
	}
}

type yamlDocument struct {
	Name         string               `yaml:"name"`
	Path         string               `yaml:"path"`
	Bin          string               `yaml:"bin"`
	ABI          []any                `yaml:"abi"`
	Selectors    []models.Selector    `yaml:"selectors,omitempty"`
	GasEstimates *models.GasEstimates `yaml:"gas_estimates,omitempty"`
	Networks     map[string]string    `yaml:"networks"`
}

func (r *ShowRenderer) renderYAML(result *usecase.ShowArtifactResult) error {
	contract := result.Contract

	encoded, err := abi.Encode(contract.ABI())
	if err != nil {
		return err
	}
	var entries []any
	if err := json.Unmarshal(encoded, &entries); err != nil {
		return err
	}

	doc := yamlDocument{
		Name:      contract.Name(),
		Path:      result.Path,
		Bin:       contract.Bin(),
		ABI:       entries,
		Selectors: result.Selectors,
		Networks:  make(map[string]string),
	}
	if estimates, ok := contract.GasEstimates(); ok {
		doc.GasEstimates = &estimates
	}
	for id, network := range contract.Networks() {
		doc.Networks[id] = network.Address.Hex()
	}

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

var _ Renderer[*usecase.ShowArtifactResult] = (*ShowRenderer)(nil)
