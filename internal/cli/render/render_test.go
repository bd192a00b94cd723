package render

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/domain/abi"
	"github.com/trebuchet-org/solart/internal/domain/config"
	"github.com/trebuchet-org/solart/internal/domain/models"
	"github.com/trebuchet-org/solart/internal/usecase"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func migrations(t *testing.T) *models.Contract {
	t.Helper()
	entries, err := abi.Decode([]byte(`[
		{"type":"constructor","inputs":[],"stateMutability":"nonpayable"},
		{"type":"function","name":"upgrade","inputs":[{"name":"new_address","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
		{"type":"event","name":"Upgraded","inputs":[{"name":"to","type":"address","indexed":true}],"anonymous":false}
	]`))
	require.NoError(t, err)
	gas := models.NewGasEstimates("140000")
	gas.External["upgrade"] = "23000"

	c, err := models.NewContract("Migrations", entries, "6080604052", models.WithGasEstimates(gas))
	require.NoError(t, err)
	return c
}

func TestBuildRenderer(t *testing.T) {
	c := migrations(t)

	t.Run("stdout prints documents", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewBuildRenderer(&buf, false).Render(&usecase.BuildResult{
			Contracts: []*models.Contract{c},
			Output:    config.StdoutOutput,
		})
		require.NoError(t, err)

		parsed, err := models.ParseContract(bytes.TrimSpace(buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
		assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
	})

	t.Run("summary lines", func(t *testing.T) {
		other, err := models.NewContract("Owned", nil, "")
		require.NoError(t, err)

		var buf bytes.Buffer
		err = NewBuildRenderer(&buf, false).Render(&usecase.BuildResult{
			Contracts: []*models.Contract{c, other},
			Artifacts: []usecase.WrittenArtifact{{Contract: c, Path: "out/Migrations.json"}},
			Output:    "out",
		})
		require.NoError(t, err)
		assert.Equal(t, "Migrations compiled → out/Migrations.json\nOwned compiled\n", buf.String())
	})

	t.Run("json summary", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewBuildRenderer(&buf, true).Render(&usecase.BuildResult{
			Contracts: []*models.Contract{c},
			Artifacts: []usecase.WrittenArtifact{{Contract: c, Path: "out/Migrations.json"}},
			Sources:   []string{"Migrations.sol"},
			Output:    "out",
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"contracts": ["Migrations"],
			"artifacts": {"Migrations": "out/Migrations.json"},
			"sources": ["Migrations.sol"],
			"missing": []
		}`, buf.String())
	})

	t.Run("rebuild failure", func(t *testing.T) {
		var buf bytes.Buffer
		err := fmt.Errorf("failed to parse solc output for A.sol: %w",
			&domain.FormatError{Line: 3, Expected: "Binary:", Actual: "Warning: unused variable"})
		require.NoError(t, NewBuildRenderer(&buf, false).RenderRebuild(time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC), nil, err))
		assert.Equal(t, `[09:30:00] ❌ Failed to parse solc output for A.sol: solc output line 3: expected "Binary:", got "Warning: unused variable"`+"\n", buf.String())
	})
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "❌ No such file", FormatError(errors.New("failed to read: no such file")))

	schemaErr := &domain.SchemaError{Kind: domain.MissingField, Index: 0, Type: "function", Field: "name"}
	assert.Contains(t, FormatError(schemaErr), schemaErr.Error()[1:])

	procErr := fmt.Errorf("failed to compile a.sol: %w", &domain.ProcessError{
		Tool:     "solc",
		ExitCode: 1,
		Stderr:   "ParserError: Expected ';' but got '}'\n --> a.sol:3:1:",
		Err:      errors.New("exit status 1"),
	})
	assert.Equal(t, "❌ Failed to compile a.sol: solc exited with code 1\nParserError: Expected ';' but got '}'\n --> a.sol:3:1:", FormatError(procErr))
}

func TestShowRenderer(t *testing.T) {
	c := migrations(t)
	c.AddNetwork("1", common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"))
	result := &usecase.ShowArtifactResult{
		Path:     "out/Migrations.json",
		Contract: c,
		Selectors: []models.Selector{
			{Kind: abi.FunctionType, Signature: "upgrade(address)", ID: "0x0900f010"},
		},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := NewShowRenderer(&buf, "")
		require.NoError(t, err)
		require.NoError(t, r.Render(result))

		out := buf.String()
		assert.Contains(t, out, "Contract: Migrations\n")
		assert.Contains(t, out, "  Bytecode: 5 bytes\n")
		assert.Contains(t, out, "  1: 0x5FbDB2315678afecb367f032d93F642f64180aa3\n")
		assert.Contains(t, out, "Constructor")
		assert.Contains(t, out, "upgrade(address)")
		assert.Contains(t, out, "0x0900f010")
		assert.Contains(t, out, "Upgraded(address)")
		assert.Contains(t, out, "  construction: 140000\n")
		assert.Contains(t, out, "  upgrade:      23000\n")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := NewShowRenderer(&buf, FormatJSON)
		require.NoError(t, err)
		require.NoError(t, r.Render(result))

		parsed, err := models.ParseContract(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := NewShowRenderer(&buf, FormatYAML)
		require.NoError(t, err)
		require.NoError(t, r.Render(result))

		var doc map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
		assert.Equal(t, "Migrations", doc["name"])
		assert.Equal(t, map[string]any{"1": "0x5FbDB2315678afecb367f032d93F642f64180aa3"}, doc["networks"])
		assert.Len(t, doc["abi"], 3)
		gas := doc["gas_estimates"].(map[string]any)
		assert.Equal(t, "140000", gas["construction"])
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewShowRenderer(&bytes.Buffer{}, "xml")
		assert.Error(t, err)
	})
}
