package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const redacted = "********"

// Render returns the effective configuration as YAML with secrets masked
func Render(cfg *Config) ([]byte, error) {
	out := *cfg
	if out.Database.Password != "" {
		out.Database.Password = redacted
	}
	if out.Database.URL != "" {
		out.Database.URL = redacted
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return data, nil
}
