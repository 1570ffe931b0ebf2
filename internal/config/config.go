package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. CAREERLENS_API_URL.
	EnvPrefix = "CAREERLENS"

	defaultAPIURL = "http://localhost:8000/api/"
)

// Config holds all client configuration.
type Config struct {
	// APIURL is the base URL of the REST backend. Always ends with a slash.
	APIURL string `mapstructure:"api_url"`

	// DBPath is the SQLite file holding the stored credential and request log.
	DBPath string `mapstructure:"db"`

	// LogPath is the file the structured logger writes to. The TUI owns
	// the terminal, so logs never go to stderr.
	LogPath string `mapstructure:"log_path"`

	// LogMode selects "development" or "production" encoders.
	LogMode string `mapstructure:"log_mode"`

	// Timeout bounds a single HTTP request. Zero keeps the transport default.
	Timeout time.Duration `mapstructure:"timeout"`

	Google GoogleConfig `mapstructure:"google"`
}

// GoogleConfig holds the OAuth client used for "Sign in with Google".
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectPort int    `mapstructure:"redirect_port"` // Default: 8085
}

// Enabled reports whether Google login is configured.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIURL:  defaultAPIURL,
		LogMode: "development",
		Google: GoogleConfig{
			RedirectPort: 8085,
		},
	}
}

// Options carries explicit overrides from command-line flags.
type Options struct {
	ConfigFile string
	APIURL     string
	DBPath     string
}

// Load builds a Config from defaults, an optional .env file, an optional
// careerlens.yaml, CAREERLENS_* environment variables, and finally opts.
func Load(opts Options) (Config, error) {
	// A missing .env is the common case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("api_url", def.APIURL)
	v.SetDefault("db", "")
	v.SetDefault("log_path", "")
	v.SetDefault("log_mode", def.LogMode)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("google.client_id", "")
	v.SetDefault("google.client_secret", "")
	v.SetDefault("google.redirect_port", def.Google.RedirectPort)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("careerlens")
		v.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}

	return cfg.normalize()
}

// normalize fills derived paths and canonicalizes the API URL.
func (c Config) normalize() (Config, error) {
	if c.APIURL == "" {
		c.APIURL = defaultAPIURL
	}
	if !strings.HasSuffix(c.APIURL, "/") {
		c.APIURL += "/"
	}

	if c.DBPath == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		c.DBPath = p
	}
	if c.LogPath == "" {
		p, err := DefaultLogPath()
		if err != nil {
			return Config{}, err
		}
		c.LogPath = p
	}
	if c.Google.RedirectPort == 0 {
		c.Google.RedirectPort = DefaultConfig().Google.RedirectPort
	}
	return c, nil
}

// DefaultDBPath resolves $XDG_DATA_HOME/careerlens/careerlens.db, falling
// back to ~/.local/share.
func DefaultDBPath() (string, error) {
	return xdgPath("XDG_DATA_HOME", filepath.Join(".local", "share"), "careerlens.db")
}

// DefaultLogPath resolves $XDG_STATE_HOME/careerlens/careerlens.log, falling
// back to ~/.local/state.
func DefaultLogPath() (string, error) {
	return xdgPath("XDG_STATE_HOME", filepath.Join(".local", "state"), "careerlens.log")
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "careerlens"), nil
}

func xdgPath(env, fallback, file string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, fallback)
	}
	return filepath.Join(base, "careerlens", file), nil
}
