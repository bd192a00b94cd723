package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/domain/config"
)

// ErrNoProjectRoot is returned when neither .solart nor foundry.toml is found
var ErrNoProjectRoot = errors.New("no project root found (.solart or foundry.toml)")

var solcVersionPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
	}

	kinds := domain.OutputKinds{
		ABI: v.GetBool("abi"),
		Bin: v.GetBool("bin"),
		Gas: v.GetBool("gas"),
	}
	if kinds.Empty() {
		return nil, domain.ErrNoOutputKinds
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".solart"),
		Solc:           v.GetString("solc"),
		Kinds:          kinds,
		Sources:        v.GetStringSlice("sources"),
		Output:         v.GetString("output"),
		Pretty:         v.GetBool("pretty"),
		Recursive:      v.GetBool("recursive"),
		Debounce:       v.GetDuration("debounce"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
	}

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}
	cfg.FoundryConfig = foundryConfig
	applyFoundryDefaults(cfg)

	if cfg.Solc == "" {
		cfg.Solc = "solc"
	}

	return cfg, nil
}

// applyFoundryDefaults fills settings left empty from [profile.default]
func applyFoundryDefaults(cfg *config.RuntimeConfig) {
	if cfg.FoundryConfig == nil {
		return
	}
	profile, ok := cfg.FoundryConfig.Profile["default"]
	if !ok {
		return
	}

	if len(cfg.Sources) == 0 && profile.SrcPath != "" {
		cfg.Sources = []string{filepath.Join(cfg.ProjectRoot, profile.SrcPath)}
	}

	// foundry accepts either a version or a path here; only a path is usable
	if cfg.Solc == "" && profile.Solc != "" && !solcVersionPattern.MatchString(profile.Solc) {
		cfg.Solc = profile.Solc
		if !filepath.IsAbs(cfg.Solc) && strings.ContainsRune(cfg.Solc, filepath.Separator) {
			cfg.Solc = filepath.Join(cfg.ProjectRoot, cfg.Solc)
		}
	}
}

// FindProjectRoot walks up from the current directory to find .solart or foundry.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range []string{".solart", "foundry.toml"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string) *viper.Viper {
	loadEnvFiles(projectRoot)

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".solart"))

	v.SetEnvPrefix("SOLART")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("abi", true)
	v.SetDefault("bin", true)
	v.SetDefault("gas", true)
	v.SetDefault("debounce", "500ms")
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	return v
}

// BindFlags binds every flag of cmd that was set on the command line,
// so unset flags don't shadow the config file and environment
func BindFlags(v *viper.Viper, cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
			panic(err)
		}
	})
}
