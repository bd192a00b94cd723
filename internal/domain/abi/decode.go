package abi

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/trebuchet-org/solart/internal/domain"
)

// variants lists the entry shapes in decoding precedence order
var variants = []struct {
	typ    EntryType
	decode func(object) (Entry, error)
}{
	{FunctionType, decodeFunction},
	{ConstructorType, decodeConstructor},
	{FallbackType, decodeFallback},
	{EventType, decodeEvent},
}

// Decode decodes the ABI JSON array of one contract into ordered entries.
// The schema generation is inferred from the fields present on each entry.
func Decode(data []byte) (ABI, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &domain.SchemaError{Kind: domain.InvalidJSON, Index: -1, Err: err}
	}

	entries := make(ABI, 0, len(raws))
	for i, raw := range raws {
		entry, err := DecodeEntry(raw)
		if err != nil {
			var se *domain.SchemaError
			if errors.As(err, &se) {
				se.Index = i
			}
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DecodeEntry decodes a single ABI object
func DecodeEntry(data []byte) (Entry, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, &domain.SchemaError{Kind: domain.InvalidJSON, Index: -1, Err: err}
	}

	var typ string
	if _, err := obj.optional("type", &typ); err != nil {
		return nil, asSchemaError(err)
	}

	for _, v := range variants {
		if EntryType(typ) != v.typ {
			continue
		}
		entry, err := v.decode(obj)
		if err != nil {
			se := asSchemaError(err)
			se.Type = typ
			return nil, se
		}
		return entry, nil
	}

	return nil, &domain.SchemaError{Kind: domain.UnrecognizedEntry, Index: -1, Type: typ}
}

func decodeFunction(o object) (Entry, error) {
	fn := Function{}
	if err := o.field("name", &fn.Name); err != nil {
		return nil, err
	}
	var err error
	if fn.Inputs, err = o.parameters("inputs"); err != nil {
		return nil, err
	}
	if fn.Outputs, err = o.parameters("outputs"); err != nil {
		return nil, err
	}
	if fn.StateMutability, fn.Constant, fn.Payable, err = o.mutability(); err != nil {
		return nil, err
	}
	return fn, nil
}

func decodeConstructor(o object) (Entry, error) {
	c := Constructor{}
	var err error
	if c.Inputs, err = o.parameters("inputs"); err != nil {
		return nil, err
	}
	if c.StateMutability, _, c.Payable, err = o.mutability(); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeFallback(o object) (Entry, error) {
	mutability, _, _, err := o.mutability()
	if err != nil {
		return nil, err
	}
	return Fallback{StateMutability: mutability}, nil
}

func decodeEvent(o object) (Entry, error) {
	ev := Event{}
	if err := o.field("name", &ev.Name); err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := o.field("inputs", &raws); err != nil {
		return nil, err
	}
	ev.Inputs = make([]EventParameter, 0, len(raws))
	for i, raw := range raws {
		p, err := decodeEventParameter(raw)
		if err != nil {
			return nil, nestField(err, "inputs", i)
		}
		ev.Inputs = append(ev.Inputs, p)
	}

	if err := o.field("anonymous", &ev.Anonymous); err != nil {
		return nil, err
	}
	return ev, nil
}

func decodeParameter(data []byte) (Parameter, error) {
	o, err := parseObject(data)
	if err != nil {
		return Parameter{}, &domain.SchemaError{Kind: domain.InvalidJSON, Index: -1, Err: err}
	}
	return o.parameter()
}

func decodeEventParameter(data []byte) (EventParameter, error) {
	o, err := parseObject(data)
	if err != nil {
		return EventParameter{}, &domain.SchemaError{Kind: domain.InvalidJSON, Index: -1, Err: err}
	}
	p, err := o.parameter()
	if err != nil {
		return EventParameter{}, err
	}
	ep := EventParameter{Parameter: p}
	if err := o.field("indexed", &ep.Indexed); err != nil {
		return EventParameter{}, err
	}
	return ep, nil
}

// object is a JSON object read generically before variant-specific decoding
type object map[string]json.RawMessage

func parseObject(data []byte) (object, error) {
	var o object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("expected object, got null")
	}
	return o, nil
}

func (o object) present(key string) bool {
	raw, ok := o[key]
	return ok && string(raw) != "null"
}

// field decodes a required field
func (o object) field(key string, v any) error {
	if !o.present(key) {
		return &domain.SchemaError{Kind: domain.MissingField, Index: -1, Field: key}
	}
	if err := json.Unmarshal(o[key], v); err != nil {
		return &domain.SchemaError{Kind: domain.InvalidJSON, Index: -1, Field: key, Err: err}
	}
	return nil
}

// optional decodes a field if present and reports whether it was
func (o object) optional(key string, v any) (bool, error) {
	if !o.present(key) {
		return false, nil
	}
	return true, o.field(key, v)
}

func (o object) optionalBool(key string) (*bool, error) {
	var b bool
	ok, err := o.optional(key, &b)
	if err != nil || !ok {
		return nil, err
	}
	return &b, nil
}

// mutability reads stateMutability and the legacy constant/payable flags.
// Legacy entries without stateMutability get it derived from the flags.
func (o object) mutability() (string, *bool, *bool, error) {
	constant, err := o.optionalBool("constant")
	if err != nil {
		return "", nil, nil, err
	}
	payable, err := o.optionalBool("payable")
	if err != nil {
		return "", nil, nil, err
	}

	var mutability string
	ok, err := o.optional("stateMutability", &mutability)
	if err != nil {
		return "", nil, nil, err
	}
	if !ok {
		switch {
		case payable != nil && *payable:
			mutability = Payable
		case constant != nil && *constant:
			mutability = View
		case payable != nil || constant != nil:
			mutability = NonPayable
		default:
			return "", nil, nil, &domain.SchemaError{Kind: domain.MissingField, Index: -1, Field: "stateMutability"}
		}
	}

	switch mutability {
	case Pure, View, NonPayable, Payable:
	default:
		return "", nil, nil, &domain.SchemaError{
			Kind:  domain.InvalidJSON,
			Index: -1,
			Field: "stateMutability",
			Err:   fmt.Errorf("unknown state mutability %q", mutability),
		}
	}
	return mutability, constant, payable, nil
}

func (o object) parameter() (Parameter, error) {
	p := Parameter{}
	if err := o.field("name", &p.Name); err != nil {
		return Parameter{}, err
	}
	if err := o.field("type", &p.Type); err != nil {
		return Parameter{}, err
	}
	if _, err := o.optional("internalType", &p.InternalType); err != nil {
		return Parameter{}, err
	}
	if o.present("components") {
		components, err := o.parameters("components")
		if err != nil {
			return Parameter{}, err
		}
		p.Components = components
	}
	return p, nil
}

// parameters decodes a required parameter list, keeping array order
func (o object) parameters(key string) ([]Parameter, error) {
	var raws []json.RawMessage
	if err := o.field(key, &raws); err != nil {
		return nil, err
	}
	params := make([]Parameter, 0, len(raws))
	for i, raw := range raws {
		p, err := decodeParameter(raw)
		if err != nil {
			return nil, nestField(err, key, i)
		}
		params = append(params, p)
	}
	return params, nil
}

// nestField prefixes the failing field with its position, e.g. inputs[1].type
func nestField(err error, key string, i int) error {
	se, ok := err.(*domain.SchemaError)
	if !ok {
		return err
	}
	path := fmt.Sprintf("%s[%d]", key, i)
	if se.Field != "" {
		path += "." + se.Field
	}
	se.Field = path
	return se
}

func asSchemaError(err error) *domain.SchemaError {
	if se, ok := err.(*domain.SchemaError); ok {
		return se
	}
	return &domain.SchemaError{Kind: domain.InvalidJSON, Index: -1, Err: err}
}
