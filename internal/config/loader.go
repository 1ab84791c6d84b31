package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyzhou/larkrelay/internal/event"
	"github.com/hyzhou/larkrelay/internal/log"
	"github.com/hyzhou/larkrelay/internal/message"
)

// Load resolves configuration from an optional YAML file plus the
// environment. configPath may be empty, in which case only defaults and
// environment variables apply.
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file %q: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", configPath, err)
		}
		log.WithComponent("config").Info("config file loaded",
			"path", configPath,
			"blake3", Fingerprint(data),
		)
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides file values with environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvListen); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvGitHubSecret); v != "" {
		cfg.GitHubSecret = v
	}
	if v := os.Getenv(EnvLarkWebhookURL); v != "" {
		cfg.LarkWebhookURL = v
	}
	if v := os.Getenv(EnvLarkSignSecret); v != "" {
		cfg.LarkSignSecret = v
	}
	if v := os.Getenv(EnvRepoAllowList); v != "" {
		list := event.ParseAllowList(v)
		repos := make([]string, 0, len(list))
		for repo := range list {
			repos = append(repos, repo)
		}
		cfg.RepoAllowList = repos
	}
	if v := os.Getenv(EnvUserMapping); v != "" {
		cfg.UserMapping = ParseUserMapping(v)
	}
}

// ParseUserMapping decodes the JSON login-to-recipient table. Malformed
// JSON degrades to an empty mapping with a warning, never a startup
// failure.
func ParseUserMapping(raw string) message.UserMap {
	users := message.UserMap{}
	if strings.TrimSpace(raw) == "" {
		return users
	}
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		log.WithComponent("config").Warn("malformed user mapping, mentions disabled", "error", err)
		return message.UserMap{}
	}
	return users
}

// AllowList returns the configured repositories as a filter set.
func (c *Config) AllowList() event.AllowList {
	return event.NewAllowList(c.RepoAllowList)
}

func validate(cfg *Config) error {
	if cfg.Listen == "" {
		return fmt.Errorf("listen address is empty")
	}
	return nil
}
