package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

var errNonPositive = errors.New("duration must be positive")

type Config struct {
	Env  string
	Port int

	AuthURL     string
	AuthTimeout time.Duration
	AppID       string
	JWTSecret   []byte

	DBDriver    string
	DatabaseURL string

	LogLevel     string
	KafkaBrokers []string
	CORSOrigins  []string
	FaviconPath  string
}

func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

func Load() Config {
	return Config{
		Env:  EnvDefault("APP_ENV", "development"),
		Port: EnvIntDefault("APP_PORT", 3001),

		AuthURL:     strings.TrimRight(os.Getenv("APP_AUTH_URL"), "/"),
		AuthTimeout: EnvDurationDefault("AUTH_TIMEOUT", 10*time.Second),
		AppID:       os.Getenv("APP_HASH_ID"),
		JWTSecret:   []byte(os.Getenv("APP_JWT_SECRET")),

		DBDriver:    strings.ToLower(EnvDefault("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		LogLevel:     os.Getenv("LOG_LEVEL"),
		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		CORSOrigins:  CSVDefault(os.Getenv("CORS_ORIGINS"), []string{"*"}),
		FaviconPath:  EnvDefault("FAVICON_PATH", "./favicon.ico"),
	}
}

// CSV splits a comma separated value, dropping blank entries.
func CSV(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func CSVDefault(v string, def []string) []string {
	if out := CSV(v); len(out) > 0 {
		return out
	}
	return def
}

// lookup parses the value of key, falling back to def when the variable is
// unset or does not parse.
func lookup[T any](key string, def T, parse func(string) (T, error)) T {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	out, err := parse(v)
	if err != nil {
		return def
	}
	return out
}

func EnvDefault(key, def string) string {
	return lookup(key, def, func(s string) (string, error) { return s, nil })
}

func EnvIntDefault(key string, def int) int {
	return lookup(key, def, strconv.Atoi)
}

// EnvDurationDefault only accepts positive durations.
func EnvDurationDefault(key string, def time.Duration) time.Duration {
	return lookup(key, def, func(s string) (time.Duration, error) {
		d, err := time.ParseDuration(s)
		if err == nil && d <= 0 {
			err = errNonPositive
		}
		return d, err
	})
}
