package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces every variable, e.g. SHOP_SERVER_PORT.
const envPrefix = "shop"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string `envconfig:"SERVER_PORT" default:"8080"`
	MySQLDSN     string `envconfig:"MYSQL_DSN" default:"user:password@tcp(localhost:3306)/shop?charset=utf8mb4&parseTime=True&loc=Local"`
	RedisAddr    string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB      int    `envconfig:"REDIS_DB" default:"0"`
	RedisPass    string `envconfig:"REDIS_PASSWORD"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"LOG_FORMAT" default:"text"`
	ResetDB      bool   `envconfig:"RESET_DB" default:"false"`
	CookieSecure bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SwaggerHost  string `envconfig:"SWAGGER_HOST"`
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// SwaggerURL returns the externally reachable swagger UI address.
func (c *Config) SwaggerURL() string {
	host := c.SwaggerHost
	if host == "" {
		host = "localhost:" + c.ServerPort
	}
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host + "/swagger/index.html"
	}
	return "http://" + host + "/swagger/index.html"
}
