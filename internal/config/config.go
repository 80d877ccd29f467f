package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. It is loaded once and
// passed explicitly into component constructors.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Brave     BraveConfig     `yaml:"brave" mapstructure:"brave"`
	Tavily    TavilyConfig    `yaml:"tavily" mapstructure:"tavily"`
	GoogleCSE GoogleCSEConfig `yaml:"google_cse" mapstructure:"google_cse"`
	Hunter    HunterConfig    `yaml:"hunter" mapstructure:"hunter"`
	Apollo    ApolloConfig    `yaml:"apollo" mapstructure:"apollo"`
	Gmail     GmailConfig     `yaml:"gmail" mapstructure:"gmail"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Send      SendConfig      `yaml:"send" mapstructure:"send"`
	Registry  RegistryConfig  `yaml:"registry" mapstructure:"registry"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// SearchConfig configures the recruiter search cascade.
type SearchConfig struct {
	MaxResults    int     `yaml:"max_results" mapstructure:"max_results"`
	TimeoutSecs   int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	DelayMinSecs  float64 `yaml:"delay_min_secs" mapstructure:"delay_min_secs"`
	DelayMaxSecs  float64 `yaml:"delay_max_secs" mapstructure:"delay_max_secs"`
	ResultsPerQry int     `yaml:"results_per_query" mapstructure:"results_per_query"`
}

// BraveConfig holds Brave Search API credentials.
type BraveConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// TavilyConfig holds Tavily API credentials.
type TavilyConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// GoogleCSEConfig holds Google Custom Search credentials. Both fields are
// required for the backend to join the cascade.
type GoogleCSEConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
	CX  string `yaml:"cx" mapstructure:"cx"`
}

// HunterConfig holds Hunter.io directory credentials.
type HunterConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// ApolloConfig holds Apollo.io org-search credentials.
type ApolloConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// GmailConfig configures the Gmail mailbox.
type GmailConfig struct {
	CredentialsPath string `yaml:"credentials_path" mapstructure:"credentials_path"`
	TokenPath       string `yaml:"token_path" mapstructure:"token_path"`
	FromName        string `yaml:"from_name" mapstructure:"from_name"`
	ResumePath      string `yaml:"resume_path" mapstructure:"resume_path"`
}

// AnthropicConfig holds Anthropic API settings for draft generation.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// SendConfig configures the delivery state machine and bounce polling.
type SendConfig struct {
	MaxSend         int `yaml:"max_send" mapstructure:"max_send"`
	PaceSecs        int `yaml:"pace_secs" mapstructure:"pace_secs"`
	LookbackMinutes int `yaml:"lookback_minutes" mapstructure:"lookback_minutes"`
	WaitSecs        int `yaml:"wait_secs" mapstructure:"wait_secs"`
}

// RegistryConfig points at an optional fixture override file.
type RegistryConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("OUTREACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "outreach.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("search.max_results", 5)
	v.SetDefault("search.timeout_secs", 20)
	v.SetDefault("search.delay_min_secs", 4.0)
	v.SetDefault("search.delay_max_secs", 8.0)
	v.SetDefault("search.results_per_query", 10)
	v.SetDefault("gmail.credentials_path", "~/.outreach/credentials.json")
	v.SetDefault("gmail.token_path", "~/.outreach/token.json")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("send.max_send", 5)
	v.SetDefault("send.pace_secs", 2)
	v.SetDefault("send.lookback_minutes", 30)
	v.SetDefault("send.wait_secs", 90)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
