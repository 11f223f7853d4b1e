package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers soportados para el "local storage" de la sesión.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Catalog sources soportados.
const (
	SourceRemote   = "remote"
	SourcePostgres = "postgres"
)

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
		// SeedDemo carga solicitudes, emergencias y donaciones de ejemplo.
		SeedDemo bool `mapstructure:"seed_demo"`
	} `mapstructure:"app"`

	Server struct {
		Addr         string        `mapstructure:"addr"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
	} `mapstructure:"server"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	// API remota de la ONG (colaborador externo).
	API struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`

		MaxResponseBytes int64 `mapstructure:"max_response_bytes"`
	} `mapstructure:"api"`

	Storage struct {
		Driver        string `mapstructure:"driver"`
		SQLitePath    string `mapstructure:"sqlite_path"`
		RedisAddr     string `mapstructure:"redis_addr"`
		RedisPassword string `mapstructure:"redis_password"`
		KeyPrefix     string `mapstructure:"key_prefix"`
	} `mapstructure:"storage"`

	Session struct {
		Key string `mapstructure:"key"`
	} `mapstructure:"session"`

	Catalog struct {
		Source        string        `mapstructure:"source"`
		FallbackDelay time.Duration `mapstructure:"fallback_delay"`
	} `mapstructure:"catalog"`

	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "ngo-animal-rescue")
	v.SetDefault("app.seed_demo", true)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.max_response_bytes", 32<<20)

	v.SetDefault("storage.driver", StorageSQLite)
	v.SetDefault("storage.sqlite_path", "rescue-local.db")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.key_prefix", "rescue:")

	v.SetDefault("session.key", "user")

	v.SetDefault("catalog.source", SourceRemote)
	v.SetDefault("catalog.fallback_delay", 500*time.Millisecond)

	v.SetDefault("db.dsn", "")
}

// Load arma la config: defaults < config.yml (opcional) < .env < env RESCUE_*.
// PORT (sin prefijo) sigue funcionando para compatibilidad con el deploy.
func Load() (Config, error) {
	// .env es opcional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("RESCUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Server.Addr = ":" + p
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageSQLite, StorageRedis:
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}
	switch c.Catalog.Source {
	case SourceRemote:
	case SourcePostgres:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return errors.New("config: catalog.source=postgres requires db.dsn")
		}
	default:
		return fmt.Errorf("config: unknown catalog.source %q", c.Catalog.Source)
	}
	if c.Catalog.FallbackDelay < 0 {
		return errors.New("config: catalog.fallback_delay must be >= 0")
	}
	if strings.TrimSpace(c.Session.Key) == "" {
		return errors.New("config: session.key required")
	}
	return nil
}
