package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// QA Triage Assistant specifics
	Slack      SlackConfig
	Jira       JiraConfig
	Confluence ConfluenceConfig
	Triage     TriageConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type SlackConfig struct {
	BotToken string
	Channel  string // Channel for failure notifications, e.g. "#qa-alerts"

	// Assignees offered in the bug filing modal, display name -> email.
	Assignees map[string]string
}

type JiraConfig struct {
	URL        string
	User       string
	Token      string
	ProjectKey string
	Component  string
	Label      string
	Priority   string
}

type ConfluenceConfig struct {
	BaseURL string
	Email   string
	Token   string
}

// TriageConfig exposes the triage policy knobs. They are deployment
// tuning knobs, never per-request parameters.
type TriageConfig struct {
	AutoFileThreshold   float64
	DefaultAssignee     string
	DefaultTeamCategory string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // Global timeout for entire fallback chain
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

type WebhookConfig struct {
	Enabled         bool
	Secret          string
	AllowedIPs      []string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Slack
	cfg.Slack.BotToken = viper.GetString("slack.bot_token")
	cfg.Slack.Channel = viper.GetString("slack.channel")
	cfg.Slack.Assignees = viper.GetStringMapString("slack.assignees")
	if token := viper.GetString("slack_bot_token"); token != "" {
		cfg.Slack.BotToken = token
	}
	if channel := viper.GetString("slack_channel"); channel != "" {
		cfg.Slack.Channel = channel
	}

	// Jira
	cfg.Jira.URL = viper.GetString("jira.url")
	cfg.Jira.User = viper.GetString("jira.user")
	cfg.Jira.Token = viper.GetString("jira.token")
	cfg.Jira.ProjectKey = viper.GetString("jira.project_key")
	cfg.Jira.Component = viper.GetString("jira.component")
	cfg.Jira.Label = viper.GetString("jira.label")
	cfg.Jira.Priority = viper.GetString("jira.priority")
	if jiraURL := viper.GetString("jira_url"); jiraURL != "" {
		cfg.Jira.URL = jiraURL
	}
	if jiraUser := viper.GetString("jira_user"); jiraUser != "" {
		cfg.Jira.User = jiraUser
	}
	if jiraToken := viper.GetString("jira_token"); jiraToken != "" {
		cfg.Jira.Token = jiraToken
	}

	// Confluence
	cfg.Confluence.BaseURL = viper.GetString("confluence.base_url")
	cfg.Confluence.Email = viper.GetString("confluence.email")
	cfg.Confluence.Token = viper.GetString("confluence.token")
	if confluenceEmail := viper.GetString("confluence_email"); confluenceEmail != "" {
		cfg.Confluence.Email = confluenceEmail
	}
	if confluenceToken := viper.GetString("confluence_api_token"); confluenceToken != "" {
		cfg.Confluence.Token = confluenceToken
	}

	// Triage policy
	cfg.Triage.AutoFileThreshold = viper.GetFloat64("triage.auto_file_threshold")
	cfg.Triage.DefaultAssignee = viper.GetString("triage.default_assignee")
	cfg.Triage.DefaultTeamCategory = viper.GetString("triage.default_team_category")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	if len(cfg.LLM.Providers) == 0 {
		return nil, fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	// Webhooks
	cfg.Webhook.Enabled = viper.GetBool("webhook.enabled")
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if webhookSecret := viper.GetString("webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.AllowedIPs = viper.GetStringSlice("webhook.allowed_ips")
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("slack.channel", "#qa-alerts")
	viper.SetDefault("jira.project_key", "QA")
	viper.SetDefault("jira.component", "E2E Test Automation")
	viper.SetDefault("jira.label", "BUG_BY_TRIAGE")
	viper.SetDefault("jira.priority", "P0")
	viper.SetDefault("triage.auto_file_threshold", 0.8)
	viper.SetDefault("triage.default_team_category", "Others")
	viper.SetDefault("webhook.enabled", true)
	viper.SetDefault("webhook.rate_limit_per_min", 60)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
