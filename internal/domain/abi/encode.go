package abi

import "encoding/json"

// Encode encodes entries back into a solc-style ABI JSON array.
// Decoding the result yields entries equal to the input.
func Encode(entries ABI) ([]byte, error) {
	if entries == nil {
		return []byte("[]"), nil
	}
	// the plain slice type avoids recursing into ABI.MarshalJSON
	return json.Marshal([]Entry(entries))
}

type wireParameter struct {
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	InternalType string       `json:"internalType,omitempty"`
	Components   *[]Parameter `json:"components,omitempty"`
}

type wireEventParameter struct {
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	InternalType string       `json:"internalType,omitempty"`
	Components   *[]Parameter `json:"components,omitempty"`
	Indexed      bool         `json:"indexed"`
}

type wireFunction struct {
	Type            EntryType   `json:"type"`
	Name            string      `json:"name"`
	Inputs          []Parameter `json:"inputs"`
	Outputs         []Parameter `json:"outputs"`
	StateMutability string      `json:"stateMutability"`
	Constant        *bool       `json:"constant,omitempty"`
	Payable         *bool       `json:"payable,omitempty"`
}

type wireConstructor struct {
	Type            EntryType   `json:"type"`
	Inputs          []Parameter `json:"inputs"`
	StateMutability string      `json:"stateMutability"`
	Payable         *bool       `json:"payable,omitempty"`
}

type wireFallback struct {
	Type            EntryType `json:"type"`
	StateMutability string    `json:"stateMutability"`
}

type wireEvent struct {
	Type      EntryType        `json:"type"`
	Name      string           `json:"name"`
	Inputs    []EventParameter `json:"inputs"`
	Anonymous bool             `json:"anonymous"`
}

func (p Parameter) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireParameter{
		Name:         p.Name,
		Type:         p.Type,
		InternalType: p.InternalType,
		Components:   components(p.Components),
	})
}

func (p EventParameter) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEventParameter{
		Name:         p.Name,
		Type:         p.Type,
		InternalType: p.InternalType,
		Components:   components(p.Components),
		Indexed:      p.Indexed,
	})
}

func (f Function) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireFunction{
		Type:            FunctionType,
		Name:            f.Name,
		Inputs:          orEmpty(f.Inputs),
		Outputs:         orEmpty(f.Outputs),
		StateMutability: f.StateMutability,
		Constant:        f.Constant,
		Payable:         f.Payable,
	})
}

func (c Constructor) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireConstructor{
		Type:            ConstructorType,
		Inputs:          orEmpty(c.Inputs),
		StateMutability: c.StateMutability,
		Payable:         c.Payable,
	})
}

func (f Fallback) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireFallback{
		Type:            FallbackType,
		StateMutability: f.StateMutability,
	})
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEvent{
		Type:      EventType,
		Name:      e.Name,
		Inputs:    orEmpty(e.Inputs),
		Anonymous: e.Anonymous,
	})
}

// components keeps "absent" and "empty" apart: nil is omitted, [] is written
func components(c []Parameter) *[]Parameter {
	if c == nil {
		return nil
	}
	return &c
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
