package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort              = "8080"
	defaultAppEnv            = "dev"
	defaultBackendURL        = "http://localhost:8000"
	defaultBackendTimeout    = "10s"
	defaultMongoDatabase     = "ExplorerHub"
	defaultSessionTTL        = "30m"
	defaultListingCacheTTL   = "60s"
	defaultExploreFetchLimit = "100"
	defaultAllowedOrigins    = "http://localhost:3000,http://localhost:3001"
)

type Config struct {
	Port              string
	AppEnv            string
	BackendURL        string
	BackendTimeout    time.Duration
	JWTSecret         string
	MongoURI          string
	MongoDatabase     string
	RedisAddr         string
	RedisDB           int
	SessionTTL        time.Duration
	ListingCacheTTL   time.Duration
	ExploreFetchLimit int
	AllowedOrigins    []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment configuration")
	}

	cfg := &Config{
		Port:          getEnv("PORT", defaultPort),
		AppEnv:        strings.ToLower(getEnv("APP_ENV", defaultAppEnv)),
		BackendURL:    strings.TrimRight(getEnv("BACKEND_URL", defaultBackendURL), "/"),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		MongoURI:      strings.TrimSpace(os.Getenv("MONGODB_URI")),
		MongoDatabase: getEnv("MONGODB_DATABASE", defaultMongoDatabase),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
	}

	var err error
	if cfg.BackendTimeout, err = parseDurationEnv("BACKEND_TIMEOUT", defaultBackendTimeout); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.ListingCacheTTL, err = parseDurationEnv("LISTING_CACHE_TTL", defaultListingCacheTTL); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = parseIntEnv("REDIS_DB", "0"); err != nil {
		return nil, err
	}
	if cfg.ExploreFetchLimit, err = parseIntEnv("EXPLORE_FETCH_LIMIT", defaultExploreFetchLimit); err != nil {
		return nil, err
	}
	cfg.AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	log.Printf("config loaded: env=%s backend=%s mongo_db=%s redis_db=%d local_jwt_verify=%t",
		cfg.AppEnv, cfg.BackendURL, cfg.MongoDatabase, cfg.RedisDB, cfg.JWTSecret != "")
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI environment variable is not set")
	}
	if cfg.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR environment variable is not set")
	}
	backend, err := url.Parse(cfg.BackendURL)
	if err != nil || backend.Scheme == "" || backend.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute URL, got %q", cfg.BackendURL)
	}
	if isProdLike(cfg.AppEnv) && backend.Scheme != "https" {
		return fmt.Errorf("in prod/release BACKEND_URL must use https")
	}
	if cfg.BackendTimeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be > 0")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.ListingCacheTTL < 0 {
		return fmt.Errorf("LISTING_CACHE_TTL must be >= 0")
	}
	if cfg.ExploreFetchLimit <= 0 {
		return fmt.Errorf("EXPLORE_FETCH_LIMIT must be > 0")
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return d, nil
}

func parseIntEnv(key, def string) (int, error) {
	raw := getEnv(key, def)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
