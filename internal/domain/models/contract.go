package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/domain/abi"
)

// Contract is the artifact produced for one compiled contract. It is
// immutable after construction except for network registration.
type Contract struct {
	name         string
	abi          abi.ABI
	bin          string
	gasEstimates *GasEstimates
	networks     map[string]Network
}

// Network records where a contract is deployed on one chain
type Network struct {
	Address common.Address `json:"address"`
}

// Option configures a Contract at construction time
type Option func(*Contract) error

// WithGasEstimates attaches the gas estimates parsed from the same compiler
// output section as the ABI and bytecode.
func WithGasEstimates(estimates GasEstimates) Option {
	return func(c *Contract) error {
		return c.attachGasEstimates(estimates)
	}
}

// NewContract creates a contract with no networks registered
func NewContract(name string, entries abi.ABI, bin string, opts ...Option) (*Contract, error) {
	if name == "" {
		return nil, domain.ErrEmptyContractName
	}
	if entries == nil {
		entries = abi.ABI{}
	}

	c := &Contract{
		name:     name,
		abi:      entries,
		bin:      bin,
		networks: make(map[string]Network),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Contract) attachGasEstimates(estimates GasEstimates) error {
	if c.gasEstimates != nil {
		return domain.ErrGasEstimatesAttached
	}
	estimates = estimates.normalized()
	c.gasEstimates = &estimates
	return nil
}

func (c *Contract) Name() string { return c.name }

func (c *Contract) Bin() string { return c.bin }

// ABI returns a copy of the ordered ABI entries
func (c *Contract) ABI() abi.ABI {
	return slices.Clone(c.abi)
}

// GasEstimates returns the attached estimates, if gas output was requested
func (c *Contract) GasEstimates() (GasEstimates, bool) {
	if c.gasEstimates == nil {
		return GasEstimates{}, false
	}
	return *c.gasEstimates, true
}

// Networks returns a copy of the registered networks
func (c *Contract) Networks() map[string]Network {
	return maps.Clone(c.networks)
}

// Methods maps function names to their ABI entry. Overloaded functions share
// a name, in which case the one declared last wins.
func (c *Contract) Methods() map[string]abi.Function {
	methods := make(map[string]abi.Function)
	for _, fn := range c.abi.Functions() {
		methods[fn.Name] = fn
	}
	return methods
}

// AddNetwork registers the deployment address for a network, replacing any
// previous address for the same id.
func (c *Contract) AddNetwork(networkID string, address common.Address) {
	c.networks[networkID] = Network{Address: address}
}

// Address returns the deployment address registered for a network
func (c *Contract) Address(networkID string) (common.Address, bool) {
	n, ok := c.networks[networkID]
	return n.Address, ok
}

// contractDocument is the serialized form of a Contract
type contractDocument struct {
	Name         string             `json:"name"`
	ABI          abi.ABI            `json:"abi"`
	Bin          string             `json:"bin"`
	GasEstimates *GasEstimates      `json:"gas_estimates,omitempty"`
	Networks     map[string]Network `json:"networks"`
}

func (c *Contract) MarshalJSON() ([]byte, error) {
	return json.Marshal(contractDocument{
		Name:         c.name,
		ABI:          c.abi,
		Bin:          c.bin,
		GasEstimates: c.gasEstimates,
		Networks:     c.networks,
	})
}

func (c *Contract) UnmarshalJSON(data []byte) error {
	var doc contractDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var opts []Option
	if doc.GasEstimates != nil {
		opts = append(opts, WithGasEstimates(*doc.GasEstimates))
	}
	parsed, err := NewContract(doc.Name, doc.ABI, doc.Bin, opts...)
	if err != nil {
		return err
	}
	for id, n := range doc.Networks {
		parsed.networks[id] = n
	}
	*c = *parsed
	return nil
}

// Serialize returns the compact JSON contract document
func (c *Contract) Serialize() ([]byte, error) {
	return json.Marshal(c)
}

// SerializePretty returns the contract document indented for humans
func (c *Contract) SerializePretty() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// ParseContract reads a contract document produced by Serialize or SerializePretty
func ParseContract(data []byte) (*Contract, error) {
	c := &Contract{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse contract document: %w", err)
	}
	return c, nil
}

// GasEstimates holds the compiler's gas costs. Costs are kept as the
// compiler printed them, which is not always a number ("infinite").
type GasEstimates struct {
	Construction string            `json:"construction" yaml:"construction"`
	External     map[string]string `json:"external" yaml:"external"`
	Internal     map[string]string `json:"internal" yaml:"internal"`
}

// NewGasEstimates creates estimates with empty external and internal maps
func NewGasEstimates(construction string) GasEstimates {
	return GasEstimates{
		Construction: construction,
		External:     make(map[string]string),
		Internal:     make(map[string]string),
	}
}

func (g GasEstimates) normalized() GasEstimates {
	if g.External == nil {
		g.External = make(map[string]string)
	}
	if g.Internal == nil {
		g.Internal = make(map[string]string)
	}
	return g
}

// GasEstimateReport renders the gas estimates as aligned "key: value" rows,
// or an empty string when no estimates are attached.
func (c *Contract) GasEstimateReport() string {
	if c.gasEstimates == nil {
		return ""
	}
	return c.gasEstimates.Report()
}

// Report renders the construction cost followed by the external and internal
// blocks, each sorted by name and omitted when empty.
func (g GasEstimates) Report() string {
	width := len("construction")
	for _, m := range []map[string]string{g.External, g.Internal} {
		for name := range m {
			width = max(width, len(name))
		}
	}

	var b strings.Builder
	row := func(key, value string) {
		fmt.Fprintf(&b, "%-*s %s\n", width+1, key+":", value)
	}

	row("construction", g.Construction)
	for _, block := range []struct {
		label string
		costs map[string]string
	}{
		{"external", g.External},
		{"internal", g.Internal},
	} {
		if len(block.costs) == 0 {
			continue
		}
		b.WriteString(block.label + ":\n")
		for _, name := range slices.Sorted(maps.Keys(block.costs)) {
			row(name, block.costs[name])
		}
	}
	return b.String()
}
