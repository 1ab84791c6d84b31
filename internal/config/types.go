// Package config resolves the relay's process configuration.
//
// Configuration is environment-first: every value can be set through a
// RELAY_* variable. An optional YAML file provides the base values;
// environment variables override it. The resolved Config is immutable
// after startup and passed explicitly into each component.
package config

import (
	"github.com/hyzhou/larkrelay/internal/message"
)

// Config is the resolved relay configuration.
type Config struct {
	// Listen is the HTTP listen address, e.g. ":8000".
	Listen string `yaml:"listen"`

	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string `yaml:"log_level"`

	// GitHubSecret is the shared secret for inbound signature
	// verification. Required to serve webhook requests; its absence is
	// a per-request 500, not a startup failure.
	GitHubSecret string `yaml:"github_secret"`

	// LarkWebhookURL is the downstream custom-bot webhook URL.
	LarkWebhookURL string `yaml:"lark_webhook_url"`

	// LarkSignSecret enables outbound payload signing when set.
	LarkSignSecret string `yaml:"lark_sign_secret"`

	// RepoAllowList restricts notifications to these repository full
	// names. Empty means all repositories are allowed.
	RepoAllowList []string `yaml:"repo_allowlist"`

	// UserMapping maps GitHub logins to mentionable chat recipients.
	UserMapping message.UserMap `yaml:"user_mapping"`
}

// Environment variable names.
const (
	EnvListen         = "RELAY_LISTEN"
	EnvLogLevel       = "RELAY_LOG_LEVEL"
	EnvGitHubSecret   = "RELAY_GITHUB_SECRET"
	EnvLarkWebhookURL = "RELAY_LARK_WEBHOOK_URL"
	EnvLarkSignSecret = "RELAY_LARK_SIGN_SECRET"
	EnvRepoAllowList  = "RELAY_REPO_ALLOWLIST"
	EnvUserMapping    = "RELAY_USER_MAPPING"
)

// Defaults returns a Config with baseline values.
func Defaults() *Config {
	return &Config{
		Listen:      ":8000",
		LogLevel:    "INFO",
		UserMapping: message.UserMap{},
	}
}
