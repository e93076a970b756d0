package domain

// Config represents the memoform configuration loaded from memoform.yaml.
type Config struct {
	Limits  LimitsConfig
	Display DisplayConfig
}

type LimitsConfig struct {
	// MaxN is the largest Fibonacci index the form will compute.
	MaxN int
}

// DisplayConfig holds the fallback texts shown instead of a Fibonacci term.
type DisplayConfig struct {
	Empty   string
	Invalid string
}

// DefaultConfig provides sane defaults if memoform.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Limits: LimitsConfig{
			MaxN: 93,
		},
		Display: DisplayConfig{
			Empty:   "",
			Invalid: "invalid input",
		},
	}
}

// WorkspaceSpec describes where a memoform workspace is scaffolded.
type WorkspaceSpec struct {
	Root string
}
