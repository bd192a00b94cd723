package app

import (
	"log/slog"

	"github.com/trebuchet-org/solart/internal/domain/config"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Compiler usecase.Compiler

	// Use cases
	BuildContracts *usecase.BuildContracts
	WatchContracts *usecase.WatchContracts
	ShowArtifact   *usecase.ShowArtifact
	ManageNetworks *usecase.ManageNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	compiler usecase.Compiler,
	buildContracts *usecase.BuildContracts,
	watchContracts *usecase.WatchContracts,
	showArtifact *usecase.ShowArtifact,
	manageNetworks *usecase.ManageNetworks,
) (*App, error) {
	return &App{
		Config:         cfg,
		Log:            log,
		Compiler:       compiler,
		BuildContracts: buildContracts,
		WatchContracts: watchContracts,
		ShowArtifact:   showArtifact,
		ManageNetworks: manageNetworks,
	}, nil
}
