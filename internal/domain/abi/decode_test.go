package abi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solart/internal/domain"
)

const migrationsLegacyABI = `[
  {"constant":false,"inputs":[{"name":"new_address","type":"address"}],"name":"upgrade","outputs":[],"payable":false,"stateMutability":"nonpayable","type":"function"},
  {"constant":true,"inputs":[],"name":"last_completed_migration","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
  {"constant":true,"inputs":[],"name":"owner","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"},
  {"constant":false,"inputs":[{"name":"completed","type":"uint256"}],"name":"setCompleted","outputs":[],"payable":false,"stateMutability":"nonpayable","type":"function"},
  {"inputs":[],"payable":false,"stateMutability":"nonpayable","type":"constructor"}
]`

func boolPtr(b bool) *bool { return &b }

func TestDecodeFunction(t *testing.T) {
	entries, err := Decode([]byte(`[{"type":"function","name":"upgrade","inputs":[{"name":"new_address","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}]`))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	fn, ok := entries[0].(Function)
	require.True(t, ok, "expected a function entry, got %T", entries[0])
	assert.Equal(t, "upgrade", fn.Name)
	require.Len(t, fn.Inputs, 1)
	assert.Equal(t, "new_address", fn.Inputs[0].Name)
	assert.Equal(t, "address", fn.Inputs[0].Type)
	assert.Nil(t, fn.Inputs[0].Components)
	assert.Empty(t, fn.Outputs)
	assert.Equal(t, NonPayable, fn.StateMutability)
	assert.Nil(t, fn.Constant)
	assert.Nil(t, fn.Payable)
}

func TestDecodePublicGetter(t *testing.T) {
	entry, err := DecodeEntry([]byte(`{
	  "inputs":[],
	  "name":"last_completed_migration",
	  "outputs":[{"internalType":"uint256","name":"","type":"uint256"}],
	  "stateMutability":"view",
	  "type":"function"
	}`))
	require.NoError(t, err)

	fn := entry.(Function)
	assert.Empty(t, fn.Inputs)
	require.Len(t, fn.Outputs, 1)
	assert.Equal(t, "", fn.Outputs[0].Name)
	assert.Equal(t, "uint256", fn.Outputs[0].Type)
	assert.Equal(t, "uint256", fn.Outputs[0].InternalType)
	assert.Equal(t, View, fn.StateMutability)
}

func TestDecodeLegacySchema(t *testing.T) {
	entries, err := Decode([]byte(migrationsLegacyABI))
	require.NoError(t, err)
	require.Len(t, entries, 5)

	names := []string{}
	for _, fn := range entries.Functions() {
		names = append(names, fn.Name)
	}
	assert.Equal(t, []string{"upgrade", "last_completed_migration", "owner", "setCompleted"}, names)

	owner := entries[2].(Function)
	assert.Equal(t, boolPtr(true), owner.Constant)
	assert.Equal(t, boolPtr(false), owner.Payable)

	ctor, ok := entries.Constructor()
	require.True(t, ok)
	assert.Empty(t, ctor.Inputs)
	assert.Equal(t, NonPayable, ctor.StateMutability)
	assert.Equal(t, boolPtr(false), ctor.Payable)
}

func TestDecodeLegacyDerivesMutability(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "constant function",
			json: `{"type":"function","name":"get","inputs":[],"outputs":[],"constant":true,"payable":false}`,
			want: View,
		},
		{
			name: "payable function",
			json: `{"type":"function","name":"deposit","inputs":[],"outputs":[],"constant":false,"payable":true}`,
			want: Payable,
		},
		{
			name: "plain function",
			json: `{"type":"function","name":"set","inputs":[],"outputs":[],"constant":false}`,
			want: NonPayable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := DecodeEntry([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, entry.(Function).StateMutability)
		})
	}

	t.Run("payable fallback", func(t *testing.T) {
		entry, err := DecodeEntry([]byte(`{"type":"fallback","payable":true}`))
		require.NoError(t, err)
		assert.Equal(t, Fallback{StateMutability: Payable}, entry)
	})
}

func TestDecodeConstructorWithInput(t *testing.T) {
	entry, err := DecodeEntry([]byte(`{
	  "inputs": [{"name": "proposalNames", "type": "bytes32[]"}],
	  "stateMutability": "nonpayable",
	  "type": "constructor"
	} `))
	require.NoError(t, err)

	ctor := entry.(Constructor)
	require.Len(t, ctor.Inputs, 1)
	assert.Equal(t, "proposalNames", ctor.Inputs[0].Name)
	assert.Equal(t, "bytes32[]", ctor.Inputs[0].Type)
	assert.Equal(t, NonPayable, ctor.StateMutability)
	assert.Nil(t, ctor.Payable)
}

func TestDecodeEvent(t *testing.T) {
	entries, err := Decode([]byte(`[{
	  "anonymous": false,
	  "inputs": [
	    {"indexed": true, "name": "winner", "type": "address"},
	    {"indexed": false, "name": "amount", "type": "uint256"}
	  ],
	  "name": "AuctionEnded",
	  "type": "event"
	}]`))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	ev := entries[0].(Event)
	assert.Equal(t, "AuctionEnded", ev.Name)
	assert.False(t, ev.Anonymous)
	require.Len(t, ev.Inputs, 2)
	assert.True(t, ev.Inputs[0].Indexed)
	assert.Equal(t, "winner", ev.Inputs[0].Name)
	assert.Equal(t, "address", ev.Inputs[0].Type)
	assert.False(t, ev.Inputs[1].Indexed)
	assert.Equal(t, "AuctionEnded(address,uint256)", ev.Signature())
}

func TestDecodeTupleComponents(t *testing.T) {
	entry, err := DecodeEntry([]byte(`{
	  "type":"function","name":"submit","stateMutability":"nonpayable","outputs":[],
	  "inputs":[{"name":"orders","type":"tuple[]","components":[
	    {"name":"maker","type":"address"},
	    {"name":"legs","type":"tuple[2]","components":[
	      {"name":"token","type":"address"},
	      {"name":"amount","type":"uint256"}
	    ]}
	  ]}]
	}`))
	require.NoError(t, err)

	fn := entry.(Function)
	orders := fn.Inputs[0]
	require.Len(t, orders.Components, 2)
	assert.Equal(t, "maker", orders.Components[0].Name)
	legs := orders.Components[1]
	require.Len(t, legs.Components, 2)
	assert.Equal(t, "amount", legs.Components[1].Name)
	assert.Equal(t, "submit((address,(address,uint256)[2])[])", fn.Signature())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		kind      domain.SchemaErrorKind
		index     int
		field     string
		entryType string
	}{
		{
			name:      "receive is not a known variant",
			json:      `[{"type":"receive","stateMutability":"payable"}]`,
			kind:      domain.UnrecognizedEntry,
			index:     0,
			entryType: "receive",
		},
		{
			name:  "missing type",
			json:  `[{"name":"x","inputs":[],"outputs":[],"stateMutability":"view"}]`,
			kind:  domain.UnrecognizedEntry,
			index: 0,
		},
		{
			name:      "function without mutability",
			json:      `[{"type":"fallback","stateMutability":"payable"},{"type":"function","name":"f","inputs":[],"outputs":[]}]`,
			kind:      domain.MissingField,
			index:     1,
			field:     "stateMutability",
			entryType: "function",
		},
		{
			name:      "event without anonymous",
			json:      `[{"type":"event","name":"E","inputs":[]}]`,
			kind:      domain.MissingField,
			index:     0,
			field:     "anonymous",
			entryType: "event",
		},
		{
			name:      "event parameter without indexed",
			json:      `[{"type":"event","name":"E","anonymous":false,"inputs":[{"name":"a","type":"uint256"}]}]`,
			kind:      domain.MissingField,
			index:     0,
			field:     "inputs[0].indexed",
			entryType: "event",
		},
		{
			name:      "nested component without type",
			json:      `[{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"t","type":"tuple","components":[{"name":"a"}]}]}]`,
			kind:      domain.MissingField,
			index:     0,
			field:     "inputs[0].components[0].type",
			entryType: "constructor",
		},
		{
			name:      "unknown mutability",
			json:      `[{"type":"fallback","stateMutability":"free"}]`,
			kind:      domain.InvalidJSON,
			index:     0,
			field:     "stateMutability",
			entryType: "fallback",
		},
		{
			name:  "not an array",
			json:  `{"type":"fallback"}`,
			kind:  domain.InvalidJSON,
			index: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Decode([]byte(tt.json))
			require.Error(t, err)
			assert.Nil(t, entries)
			assert.True(t, errors.Is(err, domain.ErrSchema))

			var se *domain.SchemaError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.kind, se.Kind)
			assert.Equal(t, tt.index, se.Index)
			assert.Equal(t, tt.field, se.Field)
			assert.Equal(t, tt.entryType, se.Type)
		})
	}
}

func TestEncodeDecodeIdempotent(t *testing.T) {
	inputs := []string{
		migrationsLegacyABI,
		`[{"type":"function","name":"f","inputs":[{"name":"t","type":"tuple","internalType":"struct S","components":[]}],"outputs":[],"stateMutability":"pure"},
		  {"type":"fallback","stateMutability":"payable"},
		  {"type":"event","name":"E","anonymous":true,"inputs":[{"name":"p","type":"tuple","indexed":false,"components":[{"name":"x","type":"uint8"}]}]}]`,
		`[]`,
	}

	for _, input := range inputs {
		first, err := Decode([]byte(input))
		require.NoError(t, err)

		encoded, err := Encode(first)
		require.NoError(t, err)

		second, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestEncodeKeepsEmptyComponents(t *testing.T) {
	entries, err := Decode([]byte(`[{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"t","type":"tuple","components":[]},{"name":"u","type":"uint256"}]}]`))
	require.NoError(t, err)

	encoded, err := Encode(entries)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"t","type":"tuple","components":[]},{"name":"u","type":"uint256"}]}]`,
		string(encoded))
}
