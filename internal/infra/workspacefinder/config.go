package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aalvaropc/memoform/internal/domain"
	"github.com/aalvaropc/memoform/internal/fibonacci"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads memoform.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	return LoadConfigFile(filepath.Join(root, ConfigFile))
}

// LoadConfigFile loads an explicit config path. On any error the returned
// config still carries the defaults, so callers may choose to continue.
func LoadConfigFile(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Memoform.Limits.MaxN != nil {
		n := *y.Memoform.Limits.MaxN
		if n < 1 || n > fibonacci.MaxN {
			return domain.DefaultConfig(), &domain.OpError{
				Op:   "workspacefinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("field limits.max_n: must be between 1 and %d, got %d: %w", fibonacci.MaxN, n, domain.ErrInvalidConfig),
			}
		}
		cfg.Limits.MaxN = n
	}
	if y.Memoform.Display.Empty != nil {
		cfg.Display.Empty = *y.Memoform.Display.Empty
	}
	if y.Memoform.Display.Invalid != nil {
		cfg.Display.Invalid = *y.Memoform.Display.Invalid
	}

	return cfg, nil
}

type yamlConfig struct {
	Memoform struct {
		Limits struct {
			MaxN *int `yaml:"max_n"`
		} `yaml:"limits"`

		Display struct {
			Empty   *string `yaml:"empty"`
			Invalid *string `yaml:"invalid"`
		} `yaml:"display"`
	} `yaml:"memoform"`
}
