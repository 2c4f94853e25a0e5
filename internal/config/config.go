package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	ServerPort    string
	Store         string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBMaxConns    int32
	JWTSecret     string
	SessionSecret string
	SecureCookies bool
	CORSOrigin    string
	LogLevel      string
	LogFormat     string
}

var defaults = map[string]any{
	"server-port":    "8080",
	"store":          StorePostgres,
	"db-host":        "localhost",
	"db-port":        "5432",
	"db-user":        "chirp",
	"db-password":    "chirp_dev_password",
	"db-name":        "chirp",
	"db-max-conns":   20,
	"jwt-secret":     "dev-secret-change-me",
	"session-secret": "dev-session-secret-change-me",
	"secure-cookies": false,
	"cors-origin":    "*",
	"log-level":      "info",
	"log-format":     "json",
}

// Init loads .env files and makes viper read CHIRP_* environment variables,
// e.g. CHIRP_DB_HOST for the "db-host" key.
func Init() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("chirp")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for key, val := range defaults {
		viper.SetDefault(key, val)
	}
}

// Load reads the configuration from viper. Flags bound with viper.BindPFlags
// take precedence over the environment.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:    viper.GetString("server-port"),
		Store:         strings.ToLower(viper.GetString("store")),
		DBHost:        viper.GetString("db-host"),
		DBPort:        viper.GetString("db-port"),
		DBUser:        viper.GetString("db-user"),
		DBPassword:    viper.GetString("db-password"),
		DBName:        viper.GetString("db-name"),
		DBMaxConns:    viper.GetInt32("db-max-conns"),
		JWTSecret:     viper.GetString("jwt-secret"),
		SessionSecret: viper.GetString("session-secret"),
		SecureCookies: viper.GetBool("secure-cookies"),
		CORSOrigin:    viper.GetString("cors-origin"),
		LogLevel:      viper.GetString("log-level"),
		LogFormat:     viper.GetString("log-format"),
	}

	if cfg.Store != StoreMemory && cfg.Store != StorePostgres {
		return nil, fmt.Errorf("invalid store %q (expected %s or %s)", cfg.Store, StoreMemory, StorePostgres)
	}
	if cfg.DBMaxConns <= 0 {
		return nil, fmt.Errorf("db-max-conns must be positive, got %d", cfg.DBMaxConns)
	}

	return cfg, nil
}
