package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level lifewheel configuration.
type Config struct {
	DBPath   string         `mapstructure:"db_path"`
	StateKey string         `mapstructure:"state_key"`
	Domains  []DomainConfig `mapstructure:"domains"`
	Scores   Scores         `mapstructure:"scores"`
	Seed     Seed           `mapstructure:"seed"`
	Log      Log            `mapstructure:"log"`
	Output   Output         `mapstructure:"output"`

	// File is the config file that was read, empty when running on
	// defaults alone.
	File string `mapstructure:"-"`
}

// DomainConfig overrides the built-in domain list. An empty list keeps the
// built-in domains.
type DomainConfig struct {
	Name       string   `mapstructure:"name"`
	Subdomains []string `mapstructure:"subdomains"`
}

// Scores defines how manual score input is handled.
type Scores struct {
	ClampManual bool `mapstructure:"clamp_manual"`
}

// Seed defines template seeding behaviour.
type Seed struct {
	Auto  bool     `mapstructure:"auto"`
	Files []string `mapstructure:"files"`
}

// Log defines logging preferences.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. LIFEWHEEL_* environment
// variables override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("db_path", DBPath())
	v.SetDefault("state_key", DefaultStateKey)
	v.SetDefault("domains", []DomainConfig{})
	v.SetDefault("scores.clamp_manual", DefaultScores.ClampManual)
	v.SetDefault("seed.auto", DefaultSeed.Auto)
	v.SetDefault("seed.files", []string{})
	v.SetDefault("log.level", DefaultLog.Level)
	v.SetDefault("log.format", DefaultLog.Format)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	v.SetEnvPrefix("lifewheel")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.File = used
	cfg.DBPath = expandPath(cfg.DBPath)
	for i, p := range cfg.Seed.Files {
		cfg.Seed.Files[i] = expandPath(p)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	for i, d := range c.Domains {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("config: domains[%d]: name is required", i)
		}
	}
	if c.StateKey == "" {
		c.StateKey = DefaultStateKey
	}
	return nil
}

// DBPath returns the default full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
