// Package config предоставляет структуры и функции для загрузки конфигурации сервиса.
//
// Конфигурация читается один раз при старте: из YAML-файла (если задан CONFIG_PATH)
// и из переменных окружения, которые имеют приоритет над файлом.
package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Окружения запуска.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env            string          `yaml:"env" env:"ENV" env-default:"local"`
	MigrationsPath string          `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer     HTTPServer      `yaml:"http_server"`
	Postgres       Postgres        `yaml:"postgres"`
	Redis          RedisConnection `yaml:"redis_connection"`
	JWTToken       JWTToken        `yaml:"jwttoken"`
	Password       Password        `yaml:"password"`
	CORS           CORS            `yaml:"cors"`
	RateLimit      RateLimit       `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	Host        string        `yaml:"host" env:"HTTP_HOST" env-default:""`
	Port        int           `yaml:"port" env:"PORT" env-default:"5000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Address возвращает адрес, на котором слушает HTTP-сервер.
func (h HTTPServer) Address() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// Postgres структура для настройки подключения к базе данных.
type Postgres struct {
	Host            string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"DB_PASSWORD"`
	Database        string        `yaml:"database" env:"DB_DATABASE" env-default:"portfolio"`
	SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"5"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME" env-default:"10s"`
}

// ConnectionString собирает строку подключения к PostgreSQL.
func (p Postgres) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     p.Database,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}
	return u.String()
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеш статистики.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDR"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT" env-default:"3s"`
	StatsTTL     time.Duration `yaml:"stats_ttl" env:"STATS_CACHE_TTL" env-default:"5m"`
}

// Enabled сообщает, настроен ли redis.
func (r RedisConnection) Enabled() bool {
	return r.AddressRedis != ""
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"JWT_EXPIRATION" env-default:"1h"`
}

// Password структура для настройки хеширования паролей.
type Password struct {
	BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

// CORS список источников, которым разрешены кросс-доменные запросы.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ORIGIN" env-separator:","`
}

// RateLimit ограничение частоты запросов к эндпоинтам регистрации и входа.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"AUTH_RATE_LIMIT_RPS" env-default:"5"`
	Burst int     `yaml:"burst" env:"AUTH_RATE_LIMIT_BURST" env-default:"10"`
}

// Load читает .env (если есть), YAML-файл из CONFIG_PATH (если задан) и переменные окружения.
func Load() (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var cfg Config
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("%s: config file %s: %w", op, configPath, err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфигурацию и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Validate проверяет значения, без которых сервис не может стартовать.
func (c *Config) Validate() error {
	if c.JWTToken.JWTSecretKey == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.JWTToken.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.JWTToken.TokenTTL)
	}
	if c.HTTPServer.Port <= 0 || c.HTTPServer.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTPServer.Port)
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("rate limit rps and burst must be positive")
	}
	return nil
}

// String возвращает конфигурацию без секретов, пригодную для логирования.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"MigrationsPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Postgres:\n"+
			"  Host: %s:%d\n"+
			"  Database: %s\n"+
			"  User: %s\n"+
			"  MaxOpenConns: %d\n"+
			"Redis:\n"+
			"  Addr: %s\n"+
			"  StatsTTL: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n"+
			"CORS:\n"+
			"  AllowedOrigins: %v\n",
		c.Env,
		c.MigrationsPath,
		c.HTTPServer.Address(),
		c.HTTPServer.TimeoutHTTP,
		c.HTTPServer.IdleTimeout,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Database,
		c.Postgres.User,
		c.Postgres.MaxOpenConns,
		c.Redis.AddressRedis,
		c.Redis.StatsTTL,
		c.JWTToken.TokenTTL,
		c.CORS.AllowedOrigins,
	)
}
