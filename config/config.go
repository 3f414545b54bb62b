package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/transpeq/fleetboard/auth"
	"github.com/transpeq/fleetboard/connectors/clients/scheduleapi"
	"github.com/transpeq/fleetboard/core/metrics"
)

type Config struct {
	API          APIConfig          `json:"api"`
	Collaborator scheduleapi.Config `json:"collaborator"`
	Auth         AuthConfig         `json:"auth"`
	Journal      JournalConfig      `json:"journal"`
	Metrics      metrics.Config     `json:"metrics"`
}

// AuthConfig wraps the token-service credentials. Disabled means the
// collaborator accepts unauthenticated requests (local development).
type AuthConfig struct {
	Enabled bool      `json:"enabled"`
	Client  auth.Conf `json:"client"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("FB_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "fb_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.API.SetDefaults()
	cfg.Collaborator.SetDefaults()
	cfg.Journal.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Collaborator.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Journal.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
