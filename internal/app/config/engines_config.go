package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnginesConfig is the optional YAML file overriding per-engine settings
// that are too detailed for environment variables.
type EnginesConfig struct {
	Diarizer    EngineSection `yaml:"diarizer,omitempty"`
	Transcriber EngineSection `yaml:"transcriber,omitempty"`
	Translator  EngineSection `yaml:"translator,omitempty"`
}

// EngineSection configures one engine slot.
type EngineSection struct {
	Kind       string        `yaml:"kind,omitempty"`
	Model      string        `yaml:"model,omitempty"`
	BaseURL    string        `yaml:"base_url,omitempty"`
	Timeout    time.Duration `yaml:"timeout,omitempty"`
	AuthToken  string        `yaml:"auth_token,omitempty"`
	NumSpeakers int          `yaml:"num_speakers,omitempty"`
}

// LoadEnginesConfig reads an engines YAML file. An empty path returns an
// empty config so environment defaults apply unchanged.
func LoadEnginesConfig(configPath string) (*EnginesConfig, error) {
	cfg := &EnginesConfig{}
	if configPath == "" {
		return cfg, nil
	}

	configPath = os.ExpandEnv(configPath)
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading engines config %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing engines config %s: %w", configPath, err)
	}
	return cfg, nil
}
