package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Routing RoutingConfig `toml:"routing"`
	Store   StoreConfig   `toml:"store"`
	Indoor  IndoorConfig  `toml:"indoor"`
	Shuttle ShuttleConfig `toml:"shuttle"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type RoutingConfig struct {
	ORSBaseURL     string  `toml:"ors_base_url"`
	ORSAPIKey      string  `toml:"ors_api_key"`
	OTPBaseURL     string  `toml:"otp_base_url"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"`
}

type StoreConfig struct {
	Path string `toml:"path"`
}

type IndoorConfig struct {
	FixturesDir string `toml:"fixtures_dir"`
}

type ShuttleConfig struct {
	TimeZone string `toml:"time_zone"`
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{Host: "", Port: 8080},
		Routing: RoutingConfig{
			ORSBaseURL:     "http://localhost:8082/ors/v2/directions",
			OTPBaseURL:     "http://localhost:8083/otp/transmodel/v3",
			TimeoutSeconds: 10,
			RateLimit:      0,
		},
		Store:   StoreConfig{Path: "data/campus.db"},
		Indoor:  IndoorConfig{FixturesDir: "data/indoor"},
		Shuttle: ShuttleConfig{TimeZone: "America/New_York"},
	}
}

// Load reads the TOML file at path (defaults when it does not exist), then
// the .env file if present, then the environment overrides.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default environment variables")
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from ORS_BASE_URL, ORS_API_KEY, OTP_BASE_URL,
// CAMPUS_DB_PATH, INDOOR_FIXTURES_DIR and PORT.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ORS_BASE_URL"); v != "" {
		c.Routing.ORSBaseURL = v
	}
	if v := os.Getenv("ORS_API_KEY"); v != "" {
		c.Routing.ORSAPIKey = v
	}
	if v := os.Getenv("OTP_BASE_URL"); v != "" {
		c.Routing.OTPBaseURL = v
	}
	if v := os.Getenv("CAMPUS_DB_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("INDOOR_FIXTURES_DIR"); v != "" {
		c.Indoor.FixturesDir = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Routing.TimeoutSeconds) * time.Second
}

// Location resolves the shuttle time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Shuttle.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", c.Shuttle.TimeZone, err)
	}
	return loc, nil
}
