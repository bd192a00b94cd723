package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"github.com/trebuchet-org/solart/internal/domain"
)

// WatchContracts rebuilds whenever one of the build inputs changes
type WatchContracts struct {
	build   *BuildContracts
	finder  SourceFinder
	watcher FileWatcher
	log     *slog.Logger
}

// NewWatchContracts creates a new WatchContracts use case
func NewWatchContracts(build *BuildContracts, finder SourceFinder, watcher FileWatcher, log *slog.Logger) *WatchContracts {
	return &WatchContracts{
		build:   build,
		finder:  finder,
		watcher: watcher,
		log:     log.With("component", "WatchContracts"),
	}
}

// Run builds once, then again after every change, reporting each build to
// onBuild. A failed build does not stop watching. Run returns when ctx is done.
func (uc *WatchContracts) Run(ctx context.Context, params BuildParams, onBuild func(*BuildResult, error)) error {
	if params.Stdin {
		return fmt.Errorf("watch mode needs file inputs")
	}

	sources, err := uc.finder.Find(ctx, params.Inputs, params.Recursive)
	if err != nil {
		return err
	}
	if len(sources.Files) == 0 {
		for _, missing := range sources.Missing {
			uc.build.sink.Error(fmt.Sprintf("%s: No such file or directory", missing))
		}
		return domain.ErrNoInputs
	}

	rebuild := func(ctx context.Context) {
		result, err := uc.build.Run(ctx, params)
		onBuild(result, err)
	}
	rebuild(ctx)

	paths := lo.Without(params.Inputs, sources.Missing...)
	uc.log.Debug("watching inputs", "paths", paths)

	err = uc.watcher.Watch(ctx, paths, rebuild)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
