package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix: las variables se leen como PACKMATES_HTTP_PORT, PACKMATES_DB_DRIVER, etc.
const EnvPrefix = "PACKMATES"

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config es la configuración del servicio.
// Orden de carga: Default() -> archivo YAML (opcional) -> variables de entorno.
type Config struct {
	HTTPPort int `yaml:"http_port" envconfig:"HTTP_PORT"`

	// DBDriver: memory | postgres | mongo
	DBDriver      string `yaml:"db_driver" envconfig:"DB_DRIVER"`
	PostgresDSN   string `yaml:"postgres_dsn" envconfig:"POSTGRES_DSN"`
	MongoURI      string `yaml:"mongo_uri" envconfig:"MONGO_URI"`
	MongoDatabase string `yaml:"mongo_database" envconfig:"MONGO_DATABASE"`

	// Si RedisAddr está vacío el lock por usuario es local al proceso.
	RedisAddr     string        `yaml:"redis_addr" envconfig:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" envconfig:"REDIS_PASSWORD"`
	LockTTL       time.Duration `yaml:"lock_ttl" envconfig:"LOCK_TTL"`

	// JWTSecret vacío = modo dev (header X-Debug-User-ID).
	JWTSecret string `yaml:"jwt_secret" envconfig:"JWT_SECRET"`

	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"`
	AppName   string `yaml:"app_name" envconfig:"APP_NAME"`

	RateLimitRPS   float64  `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST"`
	CORSOrigins    []string `yaml:"cors_origins" envconfig:"CORS_ORIGINS"`

	// PurgeCron vacío desactiva la purga de entradas borradas lógicamente.
	PurgeCron      string        `yaml:"purge_cron" envconfig:"PURGE_CRON"`
	PurgeRetention time.Duration `yaml:"purge_retention" envconfig:"PURGE_RETENTION"`
}

// Default devuelve una configuración usable en desarrollo (todo en memoria).
func Default() *Config {
	return &Config{
		HTTPPort:       8080,
		DBDriver:       DriverMemory,
		MongoDatabase:  "packmates",
		LockTTL:        10 * time.Second,
		LogLevel:       "info",
		LogFormat:      "text",
		AppName:        "packmates",
		RateLimitRPS:   20,
		RateLimitBurst: 40,
		CORSOrigins:    []string{"*"},
		PurgeCron:      "",
		PurgeRetention: 30 * 24 * time.Hour,
	}
}

// Load arma la config. path puede ser vacío (se usa PACKMATES_CONFIG si existe).
// Un .env en el directorio actual se carga si está presente.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if strings.TrimSpace(path) != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s not found", path)
		}
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

// Validate normaliza y rechaza combinaciones inválidas.
func (c *Config) Validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	if c.DBDriver == "" {
		c.DBDriver = DriverMemory
	}

	switch c.DBDriver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return errors.New("postgres driver requires POSTGRES_DSN")
		}
	case DriverMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return errors.New("mongo driver requires MONGO_URI")
		}
		if strings.TrimSpace(c.MongoDatabase) == "" {
			return errors.New("mongo driver requires MONGO_DATABASE")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.PurgeCron != "" && c.PurgeRetention <= 0 {
		return errors.New("PURGE_CRON requires a positive PURGE_RETENTION")
	}
	return nil
}

// Addr es la dirección de escucha del servidor HTTP.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
