// Package config carga la configuración del servicio desde variables de entorno
// con prefijo DOGS_ (y un .env opcional), la valida y aplica defaults.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Carga .env (si existe) en el entorno antes de leerlo.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "DOGS_"

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Puertos por modo: en test se usa uno alternativo para no chocar con una instancia local.
const (
	DefaultPort = 3000
	TestPort    = 3001
)

// Config es plana: DOGS_DB_DSN -> db_dsn -> Config.DBDSN.
type Config struct {
	AppEnv  string `koanf:"app_env" validate:"required,oneof=development test production"`
	AppName string `koanf:"app_name"`

	// Port 0 = según AppEnv (3000, o 3001 en test).
	Port            int           `koanf:"port" validate:"gte=0,lte=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0s"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0s"`

	// Sin DSN se usa el store en memoria.
	DBDSN          string `koanf:"db_dsn"`
	DBMaxOpenConns int    `koanf:"db_max_open_conns" validate:"gte=1"`
	DBMaxIdleConns int    `koanf:"db_max_idle_conns" validate:"gte=0"`
	Migrate        bool   `koanf:"migrate"`

	// Sin dirección no hay cache.
	RedisAddr     string        `koanf:"redis_addr" validate:"omitempty,hostname_port"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db" validate:"gte=0"`
	CacheTTL      time.Duration `koanf:"cache_ttl" validate:"gt=0s"`

	LogLevel  string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat string `koanf:"log_format" validate:"omitempty,oneof=text json"`
}

func Defaults() Config {
	return Config{
		AppEnv:          EnvDevelopment,
		AppName:         "dogs-api",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		DBMaxOpenConns:  10,
		DBMaxIdleConns:  5,
		Migrate:         true,
		CacheTTL:        60 * time.Second,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load lee DOGS_* del entorno sobre los defaults y valida el resultado.
func Load() (Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := Defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.DBDSN = strings.TrimSpace(cfg.DBDSN)
	cfg.RedisAddr = strings.TrimSpace(cfg.RedisAddr)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Addr devuelve la dirección de escucha (":3000", ":3001" en test, o DOGS_PORT).
func (c Config) Addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
		if c.AppEnv == EnvTest {
			port = TestPort
		}
	}
	return ":" + strconv.Itoa(port)
}
