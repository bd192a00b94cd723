package models

import "github.com/trebuchet-org/solart/internal/domain/abi"

// Selector is the on-chain identifier of a function or event: the 4-byte
// function selector or the 32-byte event topic, hex encoded.
type Selector struct {
	Kind      abi.EntryType `json:"kind" yaml:"kind"`
	Signature string        `json:"signature" yaml:"signature"`
	ID        string        `json:"id" yaml:"id"`
}
