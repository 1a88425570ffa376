package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/collisiondb/collisiondb/internal/loader"
	"github.com/collisiondb/collisiondb/pkg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "COLLISIONDB"

type DataFormat string

const (
	DataFormatCSV    DataFormat = "csv"
	DataFormatSQLite DataFormat = "sqlite"
)

type ServerConfig struct {
	Port int `mapstructure:"port"`
	// Workers bounds the number of requests executed at once.
	Workers        int           `mapstructure:"workers"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type DataConfig struct {
	Path      string           `mapstructure:"path"`
	Format    DataFormat       `mapstructure:"format"`
	Table     string           `mapstructure:"table"`
	Watch     bool             `mapstructure:"watch"`
	Partition loader.Partition `mapstructure:"partition"`
}

type QueryConfig struct {
	Parallelism int `mapstructure:"parallelism"`
	// CacheSize is the number of query results kept; 0 disables the cache.
	CacheSize int `mapstructure:"cache_size"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Data   DataConfig   `mapstructure:"data"`
	Query  QueryConfig  `mapstructure:"query"`
	Log    LogConfig    `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 50051)
	v.SetDefault("server.workers", 64)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("data.path", "")
	v.SetDefault("data.format", string(DataFormatCSV))
	v.SetDefault("data.table", loader.DefaultTable)
	v.SetDefault("data.watch", false)
	v.SetDefault("data.partition.rank", 0)
	v.SetDefault("data.partition.total", 0)
	v.SetDefault("query.parallelism", 0)
	v.SetDefault("query.cache_size", 256)
	v.SetDefault("log.level", "info")
}

// Load merges, lowest precedence first: defaults, the YAML file at path (if
// any), COLLISIONDB_* environment variables and flags that were set.
// Flags are bound by their key, e.g. --server.port.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		pkg.DebugLog("using config file", v.ConfigFileUsed())
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("Invalid server.port %d", c.Server.Port))
	}
	if c.Server.Workers < 1 {
		errs = append(errs, fmt.Errorf("server.workers must be at least 1"))
	}
	if c.Server.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.request_timeout must not be negative"))
	}
	if c.Data.Format != DataFormatCSV && c.Data.Format != DataFormatSQLite {
		errs = append(errs, fmt.Errorf("Invalid data.format %q", c.Data.Format))
	}
	if c.Data.Format == DataFormatSQLite && c.Data.Partition.Total > 1 {
		errs = append(errs, fmt.Errorf("data.partition is only supported for csv"))
	}
	if err := c.Data.Partition.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Query.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("query.cache_size must not be negative"))
	}
	if _, err := pkg.ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Loader builds the data loader described by the config.
func (c *Config) Loader() (loader.Loader, error) {
	if c.Data.Path == "" {
		return nil, errors.New("data.path is required")
	}
	switch c.Data.Format {
	case DataFormatSQLite:
		return loader.NewSQLiteLoader(c.Data.Path, c.Data.Table), nil
	default:
		return loader.NewCSVLoader(c.Data.Path, c.Data.Partition), nil
	}
}
