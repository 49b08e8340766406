// internal/config/config.go
//
// Process configuration, read once at startup from the environment.
// Sources, lowest precedence first: built-in defaults, an optional TOML file
// named by CONFIG_FILE, then environment variables. A .env file in the
// working directory is loaded into the environment first (development only;
// real environment variables always win).
//
// Environment variables:
//   PORT=5175                 HTTP listen port
//   LOG_LEVEL=info            zerolog level
//   DB_PATH=./data/app.db     SQLite file
//   GUESS_STORE=sqlite        "sqlite" or "memory"
//   JWT_SECRET=...            HS256 signing key
//   JWT_EXPIRES_DAYS=14
//   COOKIE_NAME=geodle_token
//   CLIENT_ORIGIN=http://localhost:5173
//   NODE_ENV=production       secure cookies
//   COUNTRIES_FILE=           reference data override (JSON array)
//   FORCED_FILE=              forced-day table override (JSON object)
//   SMALL_AREA_LIMIT=500      km² below which a target is small
//   SHARE_URL=                link line of the share text
//   CONFIG_FILE=              optional TOML file (see fileConfig)

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const devSecret = "dev_secret_change_me"

// Config is the resolved process configuration.
type Config struct {
	Port           string
	LogLevel       string
	DBPath         string
	GuessStore     string
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	ClientOrigin   string
	Production     bool
	CountriesFile  string
	ForcedFile     string
	SmallAreaLimit float64
	ShareURL       string
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:           "5175",
		LogLevel:       "info",
		DBPath:         "./data/app.db",
		GuessStore:     "sqlite",
		JWTSecret:      devSecret,
		JWTExpiresDays: 14,
		CookieName:     "geodle_token",
		ClientOrigin:   "http://localhost:5173",
		SmallAreaLimit: 500,
	}
}

// Load reads .env (if present), the CONFIG_FILE (if set) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	c := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, &c); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&c)
	return c, nil
}

// FromEnv builds a Config from the defaults and the current environment only.
func FromEnv() Config {
	c := Defaults()
	applyEnv(&c)
	return c
}

// fileConfig is the TOML layout:
//
//	[server]
//	port = "5175"
//	log_level = "debug"
//	client_origin = "https://example.org"
//	production = true
//
//	[storage]
//	db_path = "/var/lib/geodle/app.db"
//	guess_store = "sqlite"
//
//	[auth]
//	jwt_secret = "..."
//	jwt_expires_days = 30
//	cookie_name = "geodle_token"
//
//	[puzzle]
//	countries_file = "countries.json"
//	forced_file = "forced.json"
//	small_area_limit = 500.0
//	share_url = "https://example.org/play"
type fileConfig struct {
	Server struct {
		Port         string `toml:"port"`
		LogLevel     string `toml:"log_level"`
		ClientOrigin string `toml:"client_origin"`
		Production   *bool  `toml:"production"`
	} `toml:"server"`
	Storage struct {
		DBPath     string `toml:"db_path"`
		GuessStore string `toml:"guess_store"`
	} `toml:"storage"`
	Auth struct {
		JWTSecret      string `toml:"jwt_secret"`
		JWTExpiresDays int    `toml:"jwt_expires_days"`
		CookieName     string `toml:"cookie_name"`
	} `toml:"auth"`
	Puzzle struct {
		CountriesFile  string  `toml:"countries_file"`
		ForcedFile     string  `toml:"forced_file"`
		SmallAreaLimit float64 `toml:"small_area_limit"`
		ShareURL       string  `toml:"share_url"`
	} `toml:"puzzle"`
}

// LoadFile overlays the values set in the TOML file at path onto c.
func LoadFile(path string, c *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var f fileConfig
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	setString(&c.Port, f.Server.Port)
	setString(&c.LogLevel, f.Server.LogLevel)
	setString(&c.ClientOrigin, f.Server.ClientOrigin)
	if f.Server.Production != nil {
		c.Production = *f.Server.Production
	}
	setString(&c.DBPath, f.Storage.DBPath)
	setString(&c.GuessStore, f.Storage.GuessStore)
	setString(&c.JWTSecret, f.Auth.JWTSecret)
	if f.Auth.JWTExpiresDays > 0 {
		c.JWTExpiresDays = f.Auth.JWTExpiresDays
	}
	setString(&c.CookieName, f.Auth.CookieName)
	setString(&c.CountriesFile, f.Puzzle.CountriesFile)
	setString(&c.ForcedFile, f.Puzzle.ForcedFile)
	if f.Puzzle.SmallAreaLimit > 0 {
		c.SmallAreaLimit = f.Puzzle.SmallAreaLimit
	}
	setString(&c.ShareURL, f.Puzzle.ShareURL)
	return nil
}

// applyEnv overlays the environment variables that are set onto c.
func applyEnv(c *Config) {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.GuessStore = getEnv("GUESS_STORE", c.GuessStore)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTExpiresDays = envInt("JWT_EXPIRES_DAYS", c.JWTExpiresDays)
	c.CookieName = getEnv("COOKIE_NAME", c.CookieName)
	c.ClientOrigin = getEnv("CLIENT_ORIGIN", c.ClientOrigin)
	if v := os.Getenv("NODE_ENV"); v != "" {
		c.Production = v == "production"
	}
	c.CountriesFile = getEnv("COUNTRIES_FILE", c.CountriesFile)
	c.ForcedFile = getEnv("FORCED_FILE", c.ForcedFile)
	c.SmallAreaLimit = envFloat("SMALL_AREA_LIMIT", c.SmallAreaLimit)
	c.ShareURL = getEnv("SHARE_URL", c.ShareURL)
	if c.Production && c.JWTSecret == devSecret {
		log.Warn().Msg("JWT_SECRET is unset in production; using the development secret")
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer env value")
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring invalid env value")
	}
	return def
}
