package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so values like "300ms" or "10m" can be
// written directly in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like '300ms': %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration '%s': %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a standard time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int      `yaml:"port"`
		ReadTimeout     Duration `yaml:"read_timeout"`
		WriteTimeout    Duration `yaml:"write_timeout"`
		ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Market struct {
		BaseURL       string            `yaml:"base_url"`
		Currencies    []string          `yaml:"currencies"`
		IndexCodes    map[string]string `yaml:"index_codes"`
		LookbackDays  int               `yaml:"lookback_days"`
		PageDelay     Duration          `yaml:"page_delay"`
		PageTimeout   Duration          `yaml:"page_timeout"`
		FetchDeadline Duration          `yaml:"fetch_deadline"`
		MaxPages      int               `yaml:"max_pages"`
	} `yaml:"market"`
	Cache struct {
		Backend string   `yaml:"backend"` // memory or redis
		TTL     Duration `yaml:"ttl"`
		Redis   struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Refresh struct {
		Auto     bool     `yaml:"auto"`
		Interval Duration `yaml:"interval"`
	} `yaml:"refresh"`
	Forecast struct {
		HorizonDays int `yaml:"horizon_days"`
	} `yaml:"forecast"`
	Margin struct {
		Markup float64 `yaml:"markup"`
	} `yaml:"margin"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("MARKET_BASE_URL"); v != "" {
		c.Market.BaseURL = v
	}
	if v := os.Getenv("CURRENCIES"); v != "" {
		c.Market.Currencies = strings.Split(v, ",")
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Market.LookbackDays == 0 {
		c.Market.LookbackDays = 30
	}
	if c.Market.PageDelay == 0 {
		c.Market.PageDelay = Duration(300 * time.Millisecond)
	}
	if c.Market.PageTimeout == 0 {
		c.Market.PageTimeout = Duration(5 * time.Second)
	}
	if c.Market.FetchDeadline == 0 {
		c.Market.FetchDeadline = Duration(30 * time.Second)
	}
	if c.Market.MaxPages == 0 {
		c.Market.MaxPages = 20
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = Duration(10 * time.Minute)
	}
	if c.Forecast.HorizonDays == 0 {
		c.Forecast.HorizonDays = 7
	}
	if c.Margin.Markup == 0 {
		c.Margin.Markup = 1.3
	}
	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = Duration(10 * time.Minute)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Market.BaseURL == "" {
		return fmt.Errorf("market.base_url is required")
	}
	if len(c.Market.Currencies) == 0 {
		return fmt.Errorf("market.currencies cannot be empty")
	}
	for _, cur := range c.Market.Currencies {
		if _, ok := c.Market.IndexCodes[cur]; !ok {
			return fmt.Errorf("market.index_codes missing entry for '%s'", cur)
		}
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	return nil
}
