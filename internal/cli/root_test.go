package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/domain/models"
)

const migrationsOutput = `
======= Migrations.sol:Migrations =======
Gas estimation:
construction:
   140000 = 140000
external:
   upgrade(address):	23000
Binary:
608060405234801561001057600080fd5b50
Contract JSON ABI
[{"constant":false,"inputs":[{"name":"new_address","type":"address"}],"name":"upgrade","outputs":[],"payable":false,"stateMutability":"nonpayable","type":"function"},{"inputs":[],"payable":false,"stateMutability":"nonpayable","type":"constructor"}]
`

// setupProject creates a project with one source and a solc stand-in that
// prints canned output, and makes it the working directory
func setupProject(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake solc needs a POSIX shell")
	}
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".solart"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Migrations.sol"), []byte("contract Migrations {}"), 0644))

	solc := filepath.Join(root, "solc")
	script := "#!/bin/sh\nif [ \"$1\" = \"--version\" ]; then echo 'Version: 0.4.24+commit.e67f0147.Linux.g++'; exit 0; fi\ncat <<'EOF'\n" + migrationsOutput + "EOF\n"
	require.NoError(t, os.WriteFile(solc, []byte(script), 0755))

	t.Chdir(root)
	return solc
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommands(t *testing.T) {
	cmd := NewRootCmd()

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"build", "watch", "show", "network", "version"} {
		assert.Contains(t, names, want)
	}

	build, _, err := cmd.Find([]string{"build"})
	require.NoError(t, err)
	for _, flag := range []string{"output", "pretty", "recursive", "abi", "bin", "gas", "stdin", "pick", "watch"} {
		assert.NotNil(t, build.Flags().Lookup(flag), flag)
	}
	assert.Equal(t, "o", build.Flags().Lookup("output").Shorthand)
}

func TestBuildWritesArtifacts(t *testing.T) {
	solc := setupProject(t)

	out, err := execute(t, "build", "Migrations.sol", "-o", "build", "--solc", solc, "--non-interactive")
	require.NoError(t, err)
	assert.Equal(t, "Migrations compiled → "+filepath.Join("build", "Migrations.json")+"\n", out)

	data, err := os.ReadFile(filepath.Join("build", "Migrations.json"))
	require.NoError(t, err)
	contract, err := models.ParseContract(data)
	require.NoError(t, err)

	assert.Equal(t, "Migrations", contract.Name())
	assert.Equal(t, "608060405234801561001057600080fd5b50", contract.Bin())
	estimates, ok := contract.GasEstimates()
	require.True(t, ok)
	assert.Equal(t, "140000", estimates.Construction)
	assert.Equal(t, map[string]string{"upgrade": "23000"}, estimates.External)
	assert.Empty(t, estimates.Internal)
}

func TestBuildToStdout(t *testing.T) {
	solc := setupProject(t)

	out, err := execute(t, "build", "Migrations.sol", "-o", "-", "--pretty", "--solc", solc, "--non-interactive")
	require.NoError(t, err)

	contract, err := models.ParseContract([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "Migrations", contract.Name())
	assert.True(t, strings.HasPrefix(out, "{\n  \"name\": \"Migrations\""))
	assert.NoDirExists(t, "build")
}

func TestBuildWithoutInputs(t *testing.T) {
	solc := setupProject(t)

	_, err := execute(t, "build", "--solc", solc, "--non-interactive")
	assert.ErrorIs(t, err, domain.ErrNoInputs)
}

func TestBuildFormatError(t *testing.T) {
	setupProject(t)
	solc := filepath.Join(t.TempDir(), "solc")
	require.NoError(t, os.WriteFile(solc, []byte("#!/bin/sh\nprintf '\\nNOT A HEADER\\n'\n"), 0755))

	_, err := execute(t, "build", "Migrations.sol", "--solc", solc, "--non-interactive")
	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "NOT A HEADER", formatErr.Actual)
	assert.Equal(t, 2, formatErr.Line)
}

func TestNetworkAndShow(t *testing.T) {
	solc := setupProject(t)
	address := "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	artifact := filepath.Join("build", "Migrations.json")

	_, err := execute(t, "build", "Migrations.sol", "-o", "build", "--solc", solc, "--non-interactive")
	require.NoError(t, err)

	out, err := execute(t, "network", "set", artifact, "1", strings.ToLower(address), "--non-interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrations on network 1 is at "+address)

	out, err = execute(t, "network", "get", artifact, "1", "--non-interactive")
	require.NoError(t, err)
	assert.Equal(t, address+"\n", out)

	_, err = execute(t, "network", "get", artifact, "5", "--non-interactive")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err = execute(t, "show", artifact, "--format", "json", "--non-interactive")
	require.NoError(t, err)
	contract, err := models.ParseContract([]byte(out))
	require.NoError(t, err)
	got, ok := contract.Address("1")
	require.True(t, ok)
	assert.Equal(t, address, got.Hex())

	out, err = execute(t, "show", artifact, "--non-interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Contract: Migrations")
	assert.Contains(t, out, "upgrade(address)")
	assert.Contains(t, out, "0x0900f010")
}

func TestVersion(t *testing.T) {
	solc := setupProject(t)

	out, err := execute(t, "version", "--solc", solc)
	require.NoError(t, err)
	assert.Contains(t, out, "solart version dev")
	assert.Contains(t, out, "solc version 0.4.24\n")
}
