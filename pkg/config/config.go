package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Env       string    `mapstructure:"env"`
	Log       Log       `mapstructure:"log"       validate:"required"`
	Server    Server    `mapstructure:"server"    validate:"required"`
	Specparts Specparts `mapstructure:"specparts" validate:"required"`
}

type Log struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

type Server struct {
	Port string `mapstructure:"port" validate:"required,numeric"`
}

// Specparts holds the upstream credentials and endpoints. Missing credentials are allowed:
// they surface as MISSING in diagnostics and fail at the auth call instead.
type Specparts struct {
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	AuthURL      string        `mapstructure:"auth_url"     validate:"required,url"`
	APIURL       string        `mapstructure:"api_url"      validate:"required,url"`
	Brand        string        `mapstructure:"brand"        validate:"required"`
	PageLimit    int           `mapstructure:"page_limit"   validate:"min=1,max=1000"`
	TestPlate    string        `mapstructure:"test_plate"   validate:"required"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout" validate:"min=0"`
}

var envBindings = map[string]string{
	"env":                     "APP_ENV",
	"log.level":               "LOG_LEVEL",
	"server.port":             "PORT",
	"specparts.client_id":     "SPECPARTS_CLIENT_ID",
	"specparts.client_secret": "SPECPARTS_CLIENT_SECRET",
	"specparts.auth_url":      "SPECPARTS_AUTH_URL",
	"specparts.api_url":       "SPECPARTS_API_URL",
	"specparts.brand":         "SPECPARTS_BRAND",
	"specparts.page_limit":    "SPECPARTS_PAGE_LIMIT",
	"specparts.test_plate":    "SPECPARTS_TEST_PLATE",
	"specparts.http_timeout":  "SPECPARTS_HTTP_TIMEOUT",
}

// Load reads the configuration from the environment. There is no config file: the
// handlers run as serverless functions where only environment variables are available.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	v.SetDefault("env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("server.port", "9090")
	v.SetDefault("specparts.client_id", "")
	v.SetDefault("specparts.client_secret", "")
	v.SetDefault("specparts.auth_url", "https://auth.specparts.ai/oauth")
	v.SetDefault("specparts.api_url", "https://external-api.specparts.ai")
	v.SetDefault("specparts.brand", "GRIFFO")
	v.SetDefault("specparts.page_limit", 100)
	v.SetDefault("specparts.test_plate", "AC923HI")
	v.SetDefault("specparts.http_timeout", time.Duration(0))

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal error: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Specparts.APIURL = strings.TrimRight(cfg.Specparts.APIURL, "/")

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// Production reports whether logs should be emitted as JSON.
func (c Config) Production() bool {
	return c.Env == "production"
}
