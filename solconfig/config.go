// Package solconfig resolves the local signer and default RPC endpoint
// from the user's Solana CLI configuration.
package solconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v3"

	"github.com/solverify/attestor/interfaces"
)

// Config mirrors the fields of ~/.config/solana/cli/config.yml this
// client consumes.
type Config struct {
	JSONRPCURL  string `yaml:"json_rpc_url"`
	KeypairPath string `yaml:"keypair_path"`
}

// DefaultPath returns the standard Solana CLI config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: unable to resolve home directory: %v", interfaces.ErrConfig, err)
	}
	return filepath.Join(home, ".config", "solana", "cli", "config.yml"), nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read %s: %v", interfaces.ErrConfig, path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: unable to parse %s: %v", interfaces.ErrConfig, path, err)
	}
	return &cfg, nil
}

// LoadDefault reads the config from the standard location.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Keypair loads the signing key from the override path when given, or
// from the config's keypair path otherwise.
func (c *Config) Keypair(override string) (solana.PrivateKey, error) {
	path := c.KeypairPath
	if override != "" {
		path = override
	}
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to get signer from path %s: %v", interfaces.ErrConfig, path, err)
	}
	return key, nil
}
