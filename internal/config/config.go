package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Rana718/winegen/internal/types"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the working directory.
const FileName = "winegen.yaml"

type Config struct {
	Seed      int64     `yaml:"seed" mapstructure:"seed"`
	AsOf      string    `yaml:"as_of,omitempty" mapstructure:"as_of"`
	OutDir    string    `yaml:"out_dir" mapstructure:"out_dir"`
	DupRatio  float64   `yaml:"dup_ratio" mapstructure:"dup_ratio"`
	Customers int       `yaml:"customers" mapstructure:"customers"`
	Wines     int       `yaml:"wines" mapstructure:"wines"`
	Orders    int       `yaml:"orders" mapstructure:"orders"`
	Events    int       `yaml:"events" mapstructure:"events"`
	Sales     int       `yaml:"sales" mapstructure:"sales"`
	Consumers int       `yaml:"consumers" mapstructure:"consumers"`
	Products  int       `yaml:"products" mapstructure:"products"`
	Database  Database  `yaml:"database" mapstructure:"database"`
	Warehouse Warehouse `yaml:"warehouse" mapstructure:"warehouse"`
	Storage   Storage   `yaml:"storage" mapstructure:"storage"`
	Log       Log       `yaml:"log" mapstructure:"log"`
}

// Database is the embedded sqlite file the bundle is reloaded into.
type Database struct {
	Path    string `yaml:"path" mapstructure:"path"`
	PathEnv string `yaml:"path_env" mapstructure:"path_env"`
}

// Warehouse is the analytical database the CUSTOMERS, WINES and ORDERS
// tables and the *_RAW landing tables are appended to.
type Warehouse struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`
	URLEnv    string `yaml:"url_env" mapstructure:"url_env"`
	Schema    string `yaml:"schema,omitempty" mapstructure:"schema"`
	Customers int    `yaml:"customers" mapstructure:"customers"`
}

type Storage struct {
	Bucket       string `yaml:"bucket,omitempty" mapstructure:"bucket"`
	Region       string `yaml:"region,omitempty" mapstructure:"region"`
	Endpoint     string `yaml:"endpoint,omitempty" mapstructure:"endpoint"`
	Prefix       string `yaml:"prefix,omitempty" mapstructure:"prefix"`
	UsePathStyle bool   `yaml:"use_path_style,omitempty" mapstructure:"use_path_style"`
	AccessKeyEnv string `yaml:"access_key_env" mapstructure:"access_key_env"`
	SecretKeyEnv string `yaml:"secret_key_env" mapstructure:"secret_key_env"`
}

type Log struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output,omitempty" mapstructure:"output"`
}

func Default() *Config {
	return &Config{
		Seed:      42,
		OutDir:    "data",
		DupRatio:  0.05,
		Customers: 150,
		Wines:     500,
		Orders:    100,
		Events:    60,
		Sales:     4000,
		Consumers: 600,
		Products:  500,
		Database: Database{
			Path:    "winenot.db",
			PathEnv: "WINEGEN_DB_PATH",
		},
		Warehouse: Warehouse{
			Provider:  "postgres",
			URLEnv:    "WAREHOUSE_URL",
			Customers: 50,
		},
		Storage: Storage{
			Region:       "us-east-1",
			AccessKeyEnv: "AWS_ACCESS_KEY_ID",
			SecretKeyEnv: "AWS_SECRET_ACCESS_KEY",
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// SetDefaults registers every default with v so AutomaticEnv can override
// keys that are absent from the file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("seed", d.Seed)
	v.SetDefault("as_of", d.AsOf)
	v.SetDefault("out_dir", d.OutDir)
	v.SetDefault("dup_ratio", d.DupRatio)
	v.SetDefault("customers", d.Customers)
	v.SetDefault("wines", d.Wines)
	v.SetDefault("orders", d.Orders)
	v.SetDefault("events", d.Events)
	v.SetDefault("sales", d.Sales)
	v.SetDefault("consumers", d.Consumers)
	v.SetDefault("products", d.Products)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.path_env", d.Database.PathEnv)
	v.SetDefault("warehouse.provider", d.Warehouse.Provider)
	v.SetDefault("warehouse.url_env", d.Warehouse.URLEnv)
	v.SetDefault("warehouse.schema", d.Warehouse.Schema)
	v.SetDefault("warehouse.customers", d.Warehouse.Customers)
	v.SetDefault("storage.bucket", d.Storage.Bucket)
	v.SetDefault("storage.region", d.Storage.Region)
	v.SetDefault("storage.endpoint", d.Storage.Endpoint)
	v.SetDefault("storage.prefix", d.Storage.Prefix)
	v.SetDefault("storage.use_path_style", d.Storage.UsePathStyle)
	v.SetDefault("storage.access_key_env", d.Storage.AccessKeyEnv)
	v.SetDefault("storage.secret_key_env", d.Storage.SecretKeyEnv)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal config: %v", types.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	counts := []struct {
		key string
		n   int
	}{
		{"customers", c.Customers},
		{"wines", c.Wines},
		{"orders", c.Orders},
		{"events", c.Events},
		{"sales", c.Sales},
		{"consumers", c.Consumers},
		{"products", c.Products},
		{"warehouse.customers", c.Warehouse.Customers},
	}
	for _, cnt := range counts {
		if cnt.n <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", types.ErrInvalidConfig, cnt.key, cnt.n)
		}
	}
	if c.DupRatio <= 0 || c.DupRatio > 1 {
		return fmt.Errorf("%w: dup_ratio must be in (0, 1], got %v", types.ErrInvalidConfig, c.DupRatio)
	}
	if c.OutDir == "" {
		return fmt.Errorf("%w: out_dir cannot be empty", types.ErrInvalidConfig)
	}
	if _, err := c.ReferenceTime(); err != nil {
		return err
	}

	switch strings.ToLower(c.Warehouse.Provider) {
	case "postgres", "postgresql", "mysql":
	default:
		return fmt.Errorf("%w: unsupported warehouse provider %q, supported: postgres, mysql", types.ErrInvalidConfig, c.Warehouse.Provider)
	}
	return nil
}

// ReferenceTime is the "now" every generator works back from. An empty
// as_of means the current time truncated to the second.
func (c *Config) ReferenceTime() (time.Time, error) {
	if c.AsOf == "" {
		return time.Now().UTC().Truncate(time.Second), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, c.AsOf); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: as_of %q is not RFC3339 or YYYY-MM-DD", types.ErrInvalidConfig, c.AsOf)
}

// DatabasePath prefers the environment variable named by path_env.
func (c *Config) DatabasePath() string {
	if c.Database.PathEnv != "" {
		if p := os.Getenv(c.Database.PathEnv); p != "" {
			return p
		}
	}
	return c.Database.Path
}

func (c *Config) GetWarehouseURL() (string, error) {
	url := os.Getenv(c.Warehouse.URLEnv)
	if url == "" {
		return "", fmt.Errorf("%w: warehouse URL not found in environment variable %s", types.ErrInvalidConfig, c.Warehouse.URLEnv)
	}
	return url, nil
}

// Credentials returns the object-store keys from the configured variables.
// Both may be empty, in which case the default AWS chain applies.
func (s Storage) Credentials() (string, string) {
	return os.Getenv(s.AccessKeyEnv), os.Getenv(s.SecretKeyEnv)
}

// EnsureDirectories creates the output directory.
func (c *Config) EnsureDirectories() error {
	if c.OutDir == "" || c.OutDir == "." {
		return nil
	}
	if err := os.MkdirAll(c.OutDir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory %s: %v", types.ErrResource, c.OutDir, err)
	}
	return nil
}
