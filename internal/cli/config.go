package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const (
	maxWalkDepth = 25
)

// Output formats accepted by the output setting.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config represents the typedsql configuration from typedsql.yaml.
type Config struct {
	// Path to the table document.
	Schema string `mapstructure:"schema" json:"schema"`

	// Dialect used by render. Empty means derived from database.driver.
	Dialect string `mapstructure:"dialect" json:"dialect"`

	// Output format for render, run and tables.
	Output string `mapstructure:"output" json:"output"`

	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Render   RenderConfig   `mapstructure:"render" json:"render"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver" json:"driver"`
	URL      string `mapstructure:"url" json:"url"`
	Host     string `mapstructure:"host" json:"host"`
	Port     int    `mapstructure:"port" json:"port"`
	Name     string `mapstructure:"name" json:"name"`
	User     string `mapstructure:"user" json:"user"`
	Password string `mapstructure:"password" json:"password"`
	SSLMode  string `mapstructure:"sslmode" json:"sslmode"`
}

// RenderConfig holds render command settings.
type RenderConfig struct {
	ShowArgs bool `mapstructure:"show_args" json:"show_args"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("TYPEDSQL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, configPath, err
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("schema", "schema.yaml")
	v.SetDefault("dialect", "")
	v.SetDefault("output", OutputText)

	v.SetDefault("database.driver", "pgx")
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslmode", "prefer")

	v.SetDefault("render.show_args", true)
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for typedsql.yaml or typedsql.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for range maxWalkDepth {
		for _, name := range []string{"typedsql.yaml", "typedsql.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Stop at the repo root.
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains([]string{OutputText, OutputJSON, OutputYAML}, c.Output) {
		return fmt.Errorf("output must be one of text, json, yaml; got %q", c.Output)
	}
	if c.Dialect != "" && !slices.Contains([]string{"postgres", "mysql", "sqlite"}, c.Dialect) {
		return fmt.Errorf("dialect must be one of postgres, mysql, sqlite; got %q", c.Dialect)
	}
	return nil
}

// ResolvedDialect returns the configured dialect name, falling back to the
// one implied by database.driver.
func (c *Config) ResolvedDialect() string {
	if c.Dialect != "" {
		return c.Dialect
	}
	if c.Database.Driver == "sqlite3" {
		return "sqlite"
	}
	return "postgres"
}

// DSN returns the database connection string.
// If database.url is set, it's returned directly. For sqlite3, database.name
// is the database file. Otherwise a postgres:// URL is built from discrete
// fields.
func (c *Config) DSN() (string, error) {
	db := c.Database

	if db.URL != "" {
		return db.URL, nil
	}

	if db.Driver == "sqlite3" {
		if db.Name == "" {
			return "", fmt.Errorf("database.name is required for sqlite3 when database.url is not set")
		}
		return db.Name, nil
	}

	if db.Host == "" {
		return "", fmt.Errorf("database.host is required when database.url is not set")
	}
	if db.Name == "" {
		return "", fmt.Errorf("database.name is required when database.url is not set")
	}
	if db.User == "" {
		return "", fmt.Errorf("database.user is required when database.url is not set")
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   "/" + db.Name,
	}

	if db.Password != "" {
		u.User = url.UserPassword(db.User, db.Password)
	} else {
		u.User = url.User(db.User)
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// Redacted returns a copy of the config safe to print.
func (c *Config) Redacted() Config {
	out := *c
	if out.Database.Password != "" {
		out.Database.Password = "********"
	}
	if out.Database.URL != "" {
		if u, err := url.Parse(out.Database.URL); err == nil && u.User != nil {
			if _, ok := u.User.Password(); ok {
				u.User = url.UserPassword(u.User.Username(), "xxxxx")
				out.Database.URL = u.String()
			}
		}
	}
	return out
}
