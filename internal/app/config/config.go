package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	Store       StoreConfig
	Auth        AuthConfig
	MinIO       MinIOConfig
	JWT         JWTConfig   `mapstructure:"-"`
	Redis       RedisConfig `mapstructure:"-"`
}

// StoreConfig - параметры хранилища заявок
type StoreConfig struct {
	Driver      string // sqlite | postgres
	Path        string // файл БД для sqlite
	DSN         string // строка подключения для postgres
	LockWait    time.Duration
	AutoMigrate bool
}

type AuthConfig struct {
	PasswordMode string // plain | bcrypt
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type JWTConfig struct {
	Token         string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	PasswordPlain  = "plain"
	PasswordBcrypt = "bcrypt"

	DefaultStorePath = "uchet.db"
	DefaultLockWait  = 10 * time.Second
)

const (
	envConfigName = "CONFIG_NAME"
	envConfigPath = "CONFIG_PATH"
	envJWTSecret  = "JWT_SECRET"
	envRedisHost  = "REDIS_HOST"
	envRedisPort  = "REDIS_PORT"
	envRedisUser  = "REDIS_USER"
	envRedisPass  = "REDIS_PASSWORD"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv(envConfigName) != "" {
		configName = os.Getenv(envConfigName)
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	if path := os.Getenv(envConfigPath); path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	v.SetDefault("ServiceHost", "0.0.0.0")
	v.SetDefault("ServicePort", 8080)
	v.SetDefault("Store.Driver", DriverSQLite)
	v.SetDefault("Store.Path", DefaultStorePath)
	v.SetDefault("Store.LockWait", DefaultLockWait)
	v.SetDefault("Auth.PasswordMode", PasswordPlain)

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// без файла работаем на значениях по умолчанию: нужен только путь к БД
		log.Warn("config file not found, using defaults")
	}

	cfg := &Config{}
	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	// инициализация JWT конфигурации
	cfg.JWT = JWTConfig{
		Token:         "test",
		ExpiresIn:     time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}
	if secret := os.Getenv(envJWTSecret); secret != "" {
		cfg.JWT.Token = secret
	}

	// инициализация Redis конфигурации из env, пустой хост отключает blacklist
	cfg.Redis.Host = os.Getenv(envRedisHost)
	if cfg.Redis.Host != "" {
		cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
		if err != nil {
			return nil, fmt.Errorf("redis port must be int value: %w", err)
		}
	}
	cfg.Redis.Password = os.Getenv(envRedisPass)
	cfg.Redis.User = os.Getenv(envRedisUser)
	cfg.Redis.DialTimeout = 10 * time.Second
	cfg.Redis.ReadTimeout = 10 * time.Second

	log.Info("config parsed")

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store path is required for %s", DriverSQLite)
		}
	case DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("store dsn is required for %s", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.Auth.PasswordMode {
	case PasswordPlain, PasswordBcrypt:
	default:
		return fmt.Errorf("unknown password mode %q", c.Auth.PasswordMode)
	}

	if c.Store.LockWait <= 0 {
		c.Store.LockWait = DefaultLockWait
	}
	return nil
}
