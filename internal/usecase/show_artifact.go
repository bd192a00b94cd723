package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/domain/config"
	"github.com/trebuchet-org/solart/internal/domain/models"
)

// ShowArtifactParams contains parameters for showing an artifact
type ShowArtifactParams struct {
	// Path of the artifact; when empty the user picks one from Dir
	Path string
	Dir  string
}

// ShowArtifactResult contains a loaded artifact and its derived views
type ShowArtifactResult struct {
	Path      string
	Contract  *models.Contract
	Selectors []models.Selector
}

// ShowArtifact is the use case for inspecting a written artifact
type ShowArtifact struct {
	cfg      *config.RuntimeConfig
	store    ArtifactStore
	selector ArtifactSelector
	resolver SelectorResolver
	log      *slog.Logger
}

// NewShowArtifact creates a new ShowArtifact use case
func NewShowArtifact(cfg *config.RuntimeConfig, store ArtifactStore, selector ArtifactSelector, resolver SelectorResolver, log *slog.Logger) *ShowArtifact {
	return &ShowArtifact{
		cfg:      cfg,
		store:    store,
		selector: selector,
		resolver: resolver,
		log:      log.With("component", "ShowArtifact"),
	}
}

// Run loads the artifact and resolves its selectors
func (uc *ShowArtifact) Run(ctx context.Context, params ShowArtifactParams) (*ShowArtifactResult, error) {
	path := params.Path
	if path == "" {
		picked, err := uc.pick(ctx, params.Dir)
		if err != nil {
			return nil, err
		}
		path = picked
	}

	contract, err := uc.store.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	selectors, err := uc.resolver.Resolve(ctx, contract)
	if err != nil {
		// selectors are informational; an ABI go-ethereum rejects is still shown
		uc.log.Warn("failed to resolve selectors", "contract", contract.Name(), "error", err)
	}

	return &ShowArtifactResult{
		Path:      path,
		Contract:  contract,
		Selectors: selectors,
	}, nil
}

func (uc *ShowArtifact) pick(ctx context.Context, dir string) (string, error) {
	if uc.cfg.NonInteractive {
		return "", fmt.Errorf("an artifact path is required in non-interactive mode")
	}

	paths, err := uc.store.List(ctx, dir)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("no artifacts in %s: %w", dir, domain.ErrNotFound)
	}
	if len(paths) == 1 {
		return paths[0], nil
	}
	return uc.selector.SelectArtifact(ctx, paths)
}
