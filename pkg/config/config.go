package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix   = "STOREFRONT_"
	EnvFile     = "STOREFRONT_CONFIG"
	DefaultFile = "configs/storefront.yaml"
)

const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		Env      string `koanf:"env"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		Addr            string        `koanf:"addr"`
		ReadTimeout     time.Duration `koanf:"read_timeout"`
		WriteTimeout    time.Duration `koanf:"write_timeout"`
		IdleTimeout     time.Duration `koanf:"idle_timeout"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"http"`

	GRPC struct {
		Addr string `koanf:"addr"`
	} `koanf:"grpc"`

	Storage struct {
		Driver string `koanf:"driver"`
		Dir    string `koanf:"dir"`
		Prefix string `koanf:"prefix"`
	} `koanf:"storage"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
	} `koanf:"redis"`

	Postgres struct {
		Host    string `koanf:"host"`
		Port    int    `koanf:"port"`
		User    string `koanf:"user"`
		Pass    string `koanf:"pass"`
		DB      string `koanf:"db"`
		SSLMode string `koanf:"sslmode"`
	} `koanf:"postgres"`

	Rabbit struct {
		URL string `koanf:"url"`
	} `koanf:"rabbitmq"`

	Security struct {
		JWTSecret string        `koanf:"jwt_secret"`
		Issuer    string        `koanf:"issuer"`
		TTL       time.Duration `koanf:"ttl"`
	} `koanf:"security"`

	Advisory struct {
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"advisory"`

	Checkout struct {
		Strict bool `koanf:"strict"`
	} `koanf:"checkout"`

	ShareBaseURL string `koanf:"share_base_url"`
}

// Load reads .env (if any), then the yaml file (if any), then STOREFRONT_
// variables, e.g. STOREFRONT_STORAGE__DRIVER=redis.
func Load() (Config, error) {
	_ = godotenv.Load()

	path := os.Getenv(EnvFile)
	if path == "" {
		path = DefaultFile
	}
	return LoadFile(path)
}

// LoadFile is Load without the .env step. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.App.Name, "storefront")
	setDefault(&c.App.Env, "dev")
	setDefault(&c.App.LogLevel, "info")
	setDefault(&c.HTTP.Addr, ":8080")
	setDefault(&c.GRPC.Addr, ":8081")
	setDefault(&c.Storage.Driver, DriverFile)
	setDefault(&c.Storage.Dir, "data")
	setDefault(&c.Storage.Prefix, "storefront:")
	setDefault(&c.Redis.Addr, "localhost:6379")
	setDefault(&c.Postgres.Host, "localhost")
	setDefault(&c.Postgres.User, "postgres")
	setDefault(&c.Postgres.DB, "storefront")
	setDefault(&c.Postgres.SSLMode, "disable")
	setDefault(&c.Security.Issuer, "storefront")
	setDefault(&c.ShareBaseURL, "http://localhost:8080")

	if c.Postgres.Port == 0 {
		c.Postgres.Port = 5432
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 15 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.HTTP.IdleTimeout == 0 {
		c.HTTP.IdleTimeout = 60 * time.Second
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.Security.TTL == 0 {
		c.Security.TTL = 24 * time.Hour
	}
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverMemory, DriverRedis, DriverPostgres:
	default:
		return fmt.Errorf("storage.driver %q: want file, memory, redis or postgres", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverFile && c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir required for the file driver")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr required")
	}
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret required")
	}
	if c.Advisory.Timeout < 0 {
		return fmt.Errorf("advisory.timeout cannot be negative")
	}
	return nil
}

func setDefault(v *string, def string) {
	if strings.TrimSpace(*v) == "" {
		*v = def
	}
}
