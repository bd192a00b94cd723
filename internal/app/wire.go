//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/solart/internal/adapters"
	"github.com/trebuchet-org/solart/internal/config"
	"github.com/trebuchet-org/solart/internal/logging"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewBuildContracts,
		usecase.NewWatchContracts,
		usecase.NewShowArtifact,
		usecase.NewManageNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
