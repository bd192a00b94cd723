package config

// FoundryConfig represents the parts of foundry.toml used as defaults
type FoundryConfig struct {
	Profile map[string]ProfileConfig `toml:"profile"`
}

// ProfileConfig represents a profile's foundry configuration
type ProfileConfig struct {
	SrcPath     string `toml:"src,omitempty"`
	OutPath     string `toml:"out,omitempty"`
	Solc        string `toml:"solc,omitempty"`
	SolcVersion string `toml:"solc_version,omitempty"`
}
