package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	BundlesPath string // hcl bundle definition files (file or directory)

	List bool     // enumerate registered bundle names
	Show string   // render a single named bundle
	Use  []string // compose an effective configuration from these bundles

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Show != "" && len(cfg.Use) > 0 {
		return nil, errors.New("Show and Use are mutually exclusive")
	}

	// Future validations for other fields can be added here.

	return &cfg, nil
}
