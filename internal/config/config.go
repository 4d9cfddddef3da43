package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"burlometro/internal/ai"
	"burlometro/internal/scoring"
)

// EnvPrefix namespaces every environment override, e.g. BURLOMETRO_LOG_LEVEL.
const EnvPrefix = "BURLOMETRO"

// AppConfig is the fully resolved service configuration.
type AppConfig struct {
	Port      string         `mapstructure:"port"`
	DisableAI bool           `mapstructure:"disable_ai"`
	Log       LogConfig      `mapstructure:"log"`
	Provider  ProviderConfig `mapstructure:"provider"`
	CORS      CORSConfig     `mapstructure:"cors"`
	Static    StaticConfig   `mapstructure:"static"`
	Store     StoreConfig    `mapstructure:"store"`
	Scoring   scoring.Config `mapstructure:"scoring"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ProviderConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Referer     string        `mapstructure:"referer"`
	Title       string        `mapstructure:"title"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type StaticConfig struct {
	Dir string `mapstructure:"dir"`
}

type StoreConfig struct {
	Path   string `mapstructure:"path"`
	Silent bool   `mapstructure:"silent"`
}

// AI converts the provider section into the client configuration.
func (c AppConfig) AI() ai.Config {
	return ai.Config{
		APIKey:      c.Provider.APIKey,
		Model:       c.Provider.Model,
		BaseURL:     c.Provider.BaseURL,
		Referer:     c.Provider.Referer,
		Title:       c.Provider.Title,
		Temperature: c.Provider.Temperature,
		MaxTokens:   c.Provider.MaxTokens,
		Timeout:     c.Provider.Timeout,
	}
}

// Load resolves configuration from defaults, an optional YAML file and the environment.
// configPath may be empty, in which case ./config.yaml is used when present.
func Load(configPath string) (AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names the service has always honoured.
	if err := v.BindEnv("port", EnvPrefix+"_PORT", "PORT"); err != nil {
		return AppConfig{}, fmt.Errorf("bind port: %w", err)
	}
	if err := v.BindEnv("provider.api_key", EnvPrefix+"_PROVIDER_API_KEY", "OPENROUTER_API_KEY"); err != nil {
		return AppConfig{}, fmt.Errorf("bind provider.api_key: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.Provider.APIKey = strings.TrimSpace(cfg.Provider.APIKey)
	cfg.CORS.AllowedOrigins = compact(cfg.CORS.AllowedOrigins)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("disable_ai", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.model", "deepseek/deepseek-chat-v3-0324:free")
	v.SetDefault("provider.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("provider.referer", "https://burlometro.pt/")
	v.SetDefault("provider.title", "Burlómetro")
	v.SetDefault("provider.temperature", 0.3)
	v.SetDefault("provider.max_tokens", 500)
	v.SetDefault("provider.timeout", "30s")

	v.SetDefault("cors.allowed_origins", []string{
		"https://burlometro.pt",
		"https://www.burlometro.pt",
		"http://localhost:*",
		"http://127.0.0.1:*",
	})

	v.SetDefault("static.dir", "")
	v.SetDefault("store.path", "")
	v.SetDefault("store.silent", true)

	def := scoring.DefaultConfig()
	v.SetDefault("scoring.weights.indicator", def.Weights.Indicator)
	v.SetDefault("scoring.weights.url", def.Weights.URL)
	v.SetDefault("scoring.weights.long_number", def.Weights.LongNumber)
	v.SetDefault("scoring.weights.official_entity", def.Weights.OfficialEntity)
	v.SetDefault("scoring.weights.exclamations", def.Weights.Exclamations)
	v.SetDefault("scoring.weights.capital_words", def.Weights.CapitalWords)
	v.SetDefault("scoring.scam_threshold", def.ScamThreshold)
	v.SetDefault("scoring.warning_threshold", def.WarningThreshold)
	v.SetDefault("scoring.confidence_offset", def.ConfidenceOffset)
	v.SetDefault("scoring.confidence_floor", def.ConfidenceFloor)
	v.SetDefault("scoring.confidence_ceiling", def.ConfidenceCeiling)
}

func compact(in []string) []string {
	var out []string
	for _, item := range in {
		// env overrides arrive as one comma separated string
		for _, part := range strings.Split(item, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
