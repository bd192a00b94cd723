// Package abi models the JSON ABI emitted by solc as an ordered list of
// tagged entries and decodes both the legacy (constant/payable flags) and the
// modern (stateMutability only) schema generations.
package abi

import (
	"encoding/json"
	"strings"
)

// EntryType is the value of an ABI entry's "type" field
type EntryType string

const (
	FunctionType    EntryType = "function"
	ConstructorType EntryType = "constructor"
	FallbackType    EntryType = "fallback"
	EventType       EntryType = "event"
)

// State mutability classifiers
const (
	Pure       = "pure"
	View       = "view"
	NonPayable = "nonpayable"
	Payable    = "payable"
)

// Entry is one element of a contract ABI. It is implemented by Function,
// Constructor, Fallback and Event only.
type Entry interface {
	EntryType() EntryType
	isEntry()
}

// ABI is the ordered list of entries of one contract. Order mirrors the
// compiler's declaration order and is preserved through encode/decode.
type ABI []Entry

// Parameter is a function, constructor or tuple component argument
type Parameter struct {
	Name         string
	Type         string
	InternalType string
	// Components is nil when the field is absent and non-nil (possibly empty)
	// when present, so tuples round-trip exactly.
	Components []Parameter
}

// EventParameter is an event argument
type EventParameter struct {
	Parameter
	Indexed bool
}

// Function is a callable contract method
type Function struct {
	Name            string
	Inputs          []Parameter
	Outputs         []Parameter
	StateMutability string
	// Legacy schema flags, nil when decoding the modern schema
	Constant *bool
	Payable  *bool
}

// Constructor describes the contract creation arguments
type Constructor struct {
	Inputs          []Parameter
	StateMutability string
	Payable         *bool
}

// Fallback is the unnamed default function
type Fallback struct {
	StateMutability string
}

// Event is a log event declaration
type Event struct {
	Name      string
	Inputs    []EventParameter
	Anonymous bool
}

func (Function) EntryType() EntryType    { return FunctionType }
func (Constructor) EntryType() EntryType { return ConstructorType }
func (Fallback) EntryType() EntryType    { return FallbackType }
func (Event) EntryType() EntryType       { return EventType }

func (Function) isEntry()    {}
func (Constructor) isEntry() {}
func (Fallback) isEntry()    {}
func (Event) isEntry()       {}

// Signature returns the canonical signature, e.g. "transfer(address,uint256)"
func (f Function) Signature() string {
	return f.Name + "(" + joinTypes(f.Inputs) + ")"
}

// Signature returns the canonical event signature used for the topic hash
func (e Event) Signature() string {
	params := make([]Parameter, len(e.Inputs))
	for i, in := range e.Inputs {
		params[i] = in.Parameter
	}
	return e.Name + "(" + joinTypes(params) + ")"
}

// CanonicalType expands tuple types into their component list, e.g.
// "tuple[]" with (address,uint256) components becomes "(address,uint256)[]".
func (p Parameter) CanonicalType() string {
	if !strings.HasPrefix(p.Type, "tuple") {
		return p.Type
	}
	return "(" + joinTypes(p.Components) + ")" + strings.TrimPrefix(p.Type, "tuple")
}

func joinTypes(params []Parameter) string {
	types := make([]string, len(params))
	for i, p := range params {
		types[i] = p.CanonicalType()
	}
	return strings.Join(types, ",")
}

// Functions returns the function entries in ABI order
func (a ABI) Functions() []Function {
	var fns []Function
	for _, e := range a {
		if fn, ok := e.(Function); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// Events returns the event entries in ABI order
func (a ABI) Events() []Event {
	var events []Event
	for _, e := range a {
		if ev, ok := e.(Event); ok {
			events = append(events, ev)
		}
	}
	return events
}

// Constructor returns the constructor entry, if declared
func (a ABI) Constructor() (Constructor, bool) {
	for _, e := range a {
		if c, ok := e.(Constructor); ok {
			return c, true
		}
	}
	return Constructor{}, false
}

// MarshalJSON encodes the entries as a JSON array
func (a ABI) MarshalJSON() ([]byte, error) {
	return Encode(a)
}

// UnmarshalJSON decodes a JSON array, inferring the schema generation
func (a *ABI) UnmarshalJSON(data []byte) error {
	entries, err := Decode(data)
	if err != nil {
		return err
	}
	*a = entries
	return nil
}

var (
	_ json.Marshaler   = ABI(nil)
	_ json.Unmarshaler = (*ABI)(nil)
)
