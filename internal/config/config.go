package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRows     = 100
	DefaultFileName = "skyseed.yaml"
)

var identifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// DefaultOrder lists the tables in foreign-key dependency order.
var DefaultOrder = []string{
	"customers",
	"airlines",
	"airports",
	"flights",
	"reporteurs",
	"aircrafts",
	"flight_statuses",
	"problems",
	"flight_data",
	"seats",
	"bookings",
	"subsystems",
	"maintenance_types",
	"maintenance_events",
	"aircraft_slots",
	"work_orders",
}

type Config struct {
	Database Database `json:"database" yaml:"database" mapstructure:"database"`
	Fill     Fill     `json:"fill" yaml:"fill" mapstructure:"fill"`
	Log      Log      `json:"log" yaml:"log" mapstructure:"log"`
}

type Database struct {
	Provider   string `json:"provider" yaml:"provider" mapstructure:"provider"`
	Host       string `json:"host" yaml:"host" mapstructure:"host"`
	Port       string `json:"port" yaml:"port" mapstructure:"port"`
	Username   string `json:"username" yaml:"username" mapstructure:"username"`
	Password   string `json:"password,omitempty" yaml:"password,omitempty" mapstructure:"password"`
	DBName     string `json:"db_name" yaml:"db_name" mapstructure:"db_name"`
	SchemaName string `json:"schema_name" yaml:"schema_name" mapstructure:"schema_name"`
	SSLMode    string `json:"sslmode,omitempty" yaml:"sslmode,omitempty" mapstructure:"sslmode"`
}

type Fill struct {
	Rows        int      `json:"rows" yaml:"rows" mapstructure:"rows"`
	Order       []string `json:"order" yaml:"order" mapstructure:"order"`
	MetricsFile string   `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty" mapstructure:"metrics_file"`
}

type Log struct {
	Level    string `json:"level" yaml:"level" mapstructure:"level"`
	Encoding string `json:"encoding" yaml:"encoding" mapstructure:"encoding"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset option. The schema default depends on the provider.
func (c *Config) ApplyDefaults() {
	if c.Database.Provider == "" {
		c.Database.Provider = "postgresql"
	}
	if c.Database.Host == "" && !c.IsSQLite() {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == "" {
		switch c.Database.Provider {
		case "postgresql", "postgres":
			c.Database.Port = "5432"
		case "mysql":
			c.Database.Port = "3306"
		}
	}
	if c.Database.SchemaName == "" {
		switch c.Database.Provider {
		case "mysql":
			c.Database.SchemaName = c.Database.DBName
		case "sqlite", "sqlite3":
			c.Database.SchemaName = "main"
		default:
			c.Database.SchemaName = "public"
		}
	}
	if c.Database.SSLMode == "" && !c.IsSQLite() {
		c.Database.SSLMode = "disable"
	}
	if c.Fill.Rows == 0 {
		c.Fill.Rows = DefaultRows
	}
	if len(c.Fill.Order) == 0 {
		c.Fill.Order = append([]string(nil), DefaultOrder...)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Encoding == "" {
		c.Log.Encoding = "console"
	}
}

func (c *Config) IsSQLite() bool {
	return c.Database.Provider == "sqlite" || c.Database.Provider == "sqlite3"
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.Database.DBName == "" {
		return fmt.Errorf("database.db_name cannot be empty")
	}

	if !identifier.MatchString(c.Database.SchemaName) {
		return fmt.Errorf("invalid schema name: %q", c.Database.SchemaName)
	}

	if c.Fill.Rows < 0 {
		return fmt.Errorf("fill.rows must be positive, got %d", c.Fill.Rows)
	}

	for _, table := range c.Fill.Order {
		if !identifier.MatchString(table) {
			return fmt.Errorf("invalid table name in fill.order: %q", table)
		}
	}

	return nil
}

// WriteFile stores the config as YAML. Existing files are kept unless overwrite is set.
func (c *Config) WriteFile(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
