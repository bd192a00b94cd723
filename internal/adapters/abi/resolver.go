package abi

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	solabi "github.com/trebuchet-org/solart/internal/domain/abi"
	"github.com/trebuchet-org/solart/internal/domain/models"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// SelectorResolver computes function selectors and event topics by loading
// the contract ABI into go-ethereum's abi package.
type SelectorResolver struct {
	log *slog.Logger
}

func NewSelectorResolver(log *slog.Logger) *SelectorResolver {
	return &SelectorResolver{
		log: log.With("component", "SelectorResolver"),
	}
}

// Get loads the contract ABI as a go-ethereum ABI
func (r *SelectorResolver) Get(ctx context.Context, contract *models.Contract) (*gethabi.ABI, error) {
	data, err := solabi.Encode(contract.ABI())
	if err != nil {
		return nil, err
	}
	parsed, err := gethabi.JSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load abi of %s: %w", contract.Name(), err)
	}
	return &parsed, nil
}

// Resolve returns the selectors of the contract's functions followed by the
// topics of its events, each in ABI order.
func (r *SelectorResolver) Resolve(ctx context.Context, contract *models.Contract) ([]models.Selector, error) {
	parsed, err := r.Get(ctx, contract)
	if err != nil {
		return nil, err
	}

	methods := make(map[string]gethabi.Method, len(parsed.Methods))
	for _, m := range parsed.Methods {
		methods[m.Sig] = m
	}
	events := make(map[string]gethabi.Event, len(parsed.Events))
	for _, e := range parsed.Events {
		events[e.Sig] = e
	}

	entries := contract.ABI()
	var selectors []models.Selector
	for _, fn := range entries.Functions() {
		m, ok := methods[fn.Signature()]
		if !ok {
			r.log.Debug("no selector for function", "contract", contract.Name(), "signature", fn.Signature())
			continue
		}
		selectors = append(selectors, models.Selector{
			Kind:      solabi.FunctionType,
			Signature: m.Sig,
			ID:        hexutil.Encode(m.ID),
		})
	}
	for _, ev := range entries.Events() {
		e, ok := events[ev.Signature()]
		if !ok {
			r.log.Debug("no topic for event", "contract", contract.Name(), "signature", ev.Signature())
			continue
		}
		selectors = append(selectors, models.Selector{
			Kind:      solabi.EventType,
			Signature: e.Sig,
			ID:        e.ID.Hex(),
		})
	}
	return selectors, nil
}

var _ usecase.SelectorResolver = (*SelectorResolver)(nil)
