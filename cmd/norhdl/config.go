package main

import (
	"os"

	"gopkg.in/yaml.v2"
)

// runConfig is the optional .norhdl.yaml run configuration: defaults a
// CLI flag can override. This mirrors how operator-framework's CLIs
// layer a YAML config under cobra flags (see cmd/operator-cli).
type runConfig struct {
	DefaultSimulateCount int      `yaml:"defaultSimulateCount"`
	LogLevel             string   `yaml:"logLevel"`
	SourcePaths          []string `yaml:"sourcePaths"`
}

func defaultConfig() runConfig {
	return runConfig{
		DefaultSimulateCount: 0,
		LogLevel:             "info",
		SourcePaths:          []string{"."},
	}
}

// loadConfig reads path if it exists, overlaying it on the defaults. A
// missing file is not an error — the defaults alone are a valid config.
func loadConfig(path string) (runConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
