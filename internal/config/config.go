package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultAdminEmail is the identity treated as administrator when no
// admin_emails are configured.
const DefaultAdminEmail = "admin@admin"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Env        string        `yaml:"env" env:"ENV" env-default:"local"`
	AppSecret  string        `yaml:"app_secret" env-required:"true" env:"APP_SECRET"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"72h"`
	Location   string        `yaml:"location" env:"LOCATION" env-default:"Local"`
	Auth       Auth          `yaml:"auth"`
	HTTPServer `yaml:"http_server"`
	GRPC       GRPC    `yaml:"grpc"`
	Storage    Storage `yaml:"storage"`
	Postgres   `yaml:"postgres"`
	Redis      `yaml:"redis"`
}

type Auth struct {
	AllowDuplicateEmails bool     `yaml:"allow_duplicate_emails" env:"ALLOW_DUPLICATE_EMAILS"`
	AdminEmails          []string `yaml:"admin_emails" env:"ADMIN_EMAILS" env-separator:"," env-default:"admin@admin"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:5000"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	CORSOrigins []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:"," env-default:"*"`
}

type GRPC struct {
	Port    int           `yaml:"port" env:"GRPC_PORT" env-default:"0"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"postgres"`
	Port     int    `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DBName   string `yaml:"dbname" env:"POSTGRES_DB"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

type Redis struct {
	Enabled        bool          `yaml:"enabled" env:"REDIS_ENABLED"`
	Host           string        `yaml:"host" env:"REDIS_HOST" env-default:"redis:6379"`
	Password       string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB             int           `yaml:"db" env-default:"0"`
	LockTTL        time.Duration `yaml:"lock_ttl" env-default:"5s"`
	AcquireTimeout time.Duration `yaml:"acquire_timeout" env-default:"2s"`
	RetryInterval  time.Duration `yaml:"retry_interval" env-default:"25ms"`
}

// MustLoad reads the config from the path given by --config or CONFIG_PATH.
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

func Load(configPath string) (*Config, error) {
	// проверка существования файла
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", configPath, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return &cfg, nil
}

// LoadLocation resolves the configured wall-clock location.
func (c *Config) LoadLocation() (*time.Location, error) {
	if c.Location == "" || c.Location == "Local" {
		return time.Local, nil
	}

	return time.LoadLocation(c.Location)
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Postgres.User == "" || c.Postgres.DBName == "" {
			return fmt.Errorf("postgres user and dbname are required")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if len(c.Auth.AdminEmails) == 0 {
		c.Auth.AdminEmails = []string{DefaultAdminEmail}
	}

	return nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
