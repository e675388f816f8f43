package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Host string
	Port int

	DBURL          string
	DBRetryBackoff time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	AllowedOrigins []string

	AuthRateLimit  int
	AuthRateWindow time.Duration

	OtelEndpoint string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "dev")
	host := getEnv("HOST", "0.0.0.0")
	port := getEnvInt("PORT", 8080)

	return Config{
		Env:  env,
		Host: host,
		Port: port,

		DBURL:          buildDBURL(),
		DBRetryBackoff: time.Duration(getEnvInt("DB_RETRY_SECONDS", 5)) * time.Second,

		JWTSecret: getEnv("JWT_SECRET", "dev-only-secret-change-me"),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_HOURS", 168)) * time.Hour,

		AllowedOrigins: buildAllowedOrigins(),

		AuthRateLimit:  getEnvInt("AUTH_RATE_LIMIT", 30),
		AuthRateWindow: time.Duration(getEnvInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,

		OtelEndpoint: getEnv("OTEL_ENDPOINT", ""),
	}
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "studycountdown")
	pass := getEnv("DB_PASSWORD", "studycountdown")
	name := getEnv("DB_NAME", "studycountdown")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

// buildAllowedOrigins always includes the frontend origin, then any extras
// from the comma-separated ALLOWED_ORIGINS.
func buildAllowedOrigins() []string {
	origins := []string{getEnv("FRONTEND_ORIGIN", "http://localhost:3000")}

	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		o = strings.TrimSpace(o)

		if o != "" && o != origins[0] {
			origins = append(origins, o)
		}
	}

	return origins
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}
