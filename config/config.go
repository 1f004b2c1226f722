package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl"
	"github.com/iankressin/eql-sub000/chain"
	"github.com/mitchellh/go-homedir"
)

const (
	// PathEnv overrides config discovery with an explicit file
	PathEnv = "EQL_CONFIG_PATH"

	baseName = "eql-config"
)

var ErrUnsupportedFormat = errors.New("unsupported config format")

// ChainConfig lists the endpoints configured for a single chain
type ChainConfig struct {
	Default string   `json:"default" hcl:"default"`
	RPCs    []string `json:"rpcs" hcl:"rpcs"`
}

// Config maps chains onto their configured endpoints
type Config struct {
	// Path is the file the config was read from, empty when none was found
	Path   string
	Chains map[chain.Chain]ChainConfig
}

// DefaultConfig returns a config that resolves every chain to its compiled-in endpoint
func DefaultConfig() *Config {
	return &Config{
		Chains: map[chain.Chain]ChainConfig{},
	}
}

// RPC resolves the endpoint for c: the configured default, then the first
// configured alternative, then the compiled-in fallback
func (c *Config) RPC(target chain.Chain) string {
	if c != nil {
		if cc, ok := c.Chains[target]; ok {
			if cc.Default != "" {
				return cc.Default
			}

			if len(cc.RPCs) > 0 {
				return cc.RPCs[0]
			}
		}
	}

	return target.FallbackRPC()
}

// Load discovers and reads the config file. Finding no file is not an error.
func Load(logger hclog.Logger) (*Config, error) {
	return defaultLocator().load(logger)
}

// ReadFile reads a json or hcl config file, picking the decoder by extension
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var unmarshalFunc func([]byte, interface{}) error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		unmarshalFunc = hcl.Unmarshal
	case ".json":
		unmarshalFunc = json.Unmarshal
	default:
		return nil, fmt.Errorf("%w: suffix of %s is neither hcl nor json", ErrUnsupportedFormat, path)
	}

	raw := map[string]ChainConfig{}
	if err := unmarshalFunc(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	config, err := fromRaw(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	config.Path = path

	return config, nil
}

func fromRaw(raw map[string]ChainConfig) (*Config, error) {
	var result error

	config := DefaultConfig()

	for name, cc := range raw {
		target, err := chain.Parse(name)
		if err != nil {
			result = multierror.Append(result, err)

			continue
		}

		if cc.Default == "" && len(cc.RPCs) == 0 {
			result = multierror.Append(result, fmt.Errorf("chain %s: no rpc configured", name))
		}

		for _, url := range append([]string{cc.Default}, cc.RPCs...) {
			if url != "" && !chain.IsRPCURL(url) {
				result = multierror.Append(result, fmt.Errorf("chain %s: invalid rpc url %q", name, url))
			}
		}

		config.Chains[target] = cc
	}

	if result != nil {
		return nil, result
	}

	return config, nil
}

type locator struct {
	getenv  func(string) string
	workDir func() (string, error)
	homeDir func() (string, error)
}

func defaultLocator() *locator {
	return &locator{
		getenv:  os.Getenv,
		workDir: os.Getwd,
		homeDir: homedir.Dir,
	}
}

func (l *locator) load(logger hclog.Logger) (*Config, error) {
	if path := l.getenv(PathEnv); path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, err
		}

		logger.Debug("reading config from environment", "path", expanded)

		return ReadFile(expanded)
	}

	for _, dir := range []func() (string, error){l.workDir, l.homeDir} {
		root, err := dir()
		if err != nil {
			logger.Debug("skipping config directory", "err", err)

			continue
		}

		for _, ext := range []string{".json", ".hcl"} {
			path := filepath.Join(root, baseName+ext)
			if _, err := os.Stat(path); err != nil {
				continue
			}

			logger.Debug("reading config", "path", path)

			return ReadFile(path)
		}
	}

	logger.Debug("no config file found, using fallback endpoints")

	return DefaultConfig(), nil
}
