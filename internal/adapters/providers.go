package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/solart/internal/adapters/abi"
	"github.com/trebuchet-org/solart/internal/adapters/fs"
	"github.com/trebuchet-org/solart/internal/adapters/interactive"
	"github.com/trebuchet-org/solart/internal/adapters/solc"
	"github.com/trebuchet-org/solart/internal/adapters/watch"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// SolcSet provides the compiler invoker and its output parser
var SolcSet = wire.NewSet(
	solc.NewCompiler,
	wire.Bind(new(usecase.Compiler), new(*solc.Compiler)),

	solc.NewOutputParser,
	wire.Bind(new(usecase.OutputParser), new(*solc.OutputParser)),
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewArtifactStoreAdapter,
	wire.Bind(new(usecase.ArtifactStore), new(*fs.ArtifactStoreAdapter)),

	fs.NewSourceFinderAdapter,
	wire.Bind(new(usecase.SourceFinder), new(*fs.SourceFinderAdapter)),
)

// WatchSet provides the file watcher
var WatchSet = wire.NewSet(
	watch.NewWatcher,
	wire.Bind(new(usecase.FileWatcher), new(*watch.Watcher)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ArtifactSelector), new(*interactive.SelectorAdapter)),

	interactive.NewContractPicker,
	wire.Bind(new(usecase.ContractSelector), new(*interactive.ContractPicker)),
)

// ABISet provides go-ethereum backed ABI helpers
var ABISet = wire.NewSet(
	abi.NewSelectorResolver,
	wire.Bind(new(usecase.SelectorResolver), new(*abi.SelectorResolver)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	SolcSet,
	FSSet,
	WatchSet,
	InteractiveSet,
	ABISet,
)
