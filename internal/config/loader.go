package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"bytemomo/remora/internal/domain"
)

// Load reads a pipeline configuration file and merges it over the built-in
// defaults. An empty path yields the defaults. Any problem is a fatal
// ConfigurationError: the pipeline must not start with broken tables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &domain.ConfigurationError{Msg: "could not read config file " + path, Err: err}
		}
		// Unmarshalling into the prefilled struct merges map entries over
		// the default tables; scalar fields present in the file replace
		// their defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &domain.ConfigurationError{Msg: "could not parse config file " + path, Err: err}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
