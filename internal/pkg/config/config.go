package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/piresc/taxigo/internal/pkg/models"
)

// InitConfig loads configuration from the environment, optionally seeded
// from a dotenv file when running locally.
func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "taxigo")
	configs.App.Environment = GetEnv("APP_ENV", "local")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 8080)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 30)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 30)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "pgx")
	configs.Database.Host = GetEnv("DB_HOST", "localhost")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "taxigo")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 10)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 2)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "localhost")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 10)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "nats://localhost:4222")

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET_KEY", "")
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "taxigo")
	configs.JWT.AccessExpiration = GetEnvAsInt("JWT_ACCESS_EXPIRATION", 60)
	configs.JWT.RefreshExpiration = GetEnvAsInt("JWT_REFRESH_EXPIRATION", 43200)

	// Rate limit config
	configs.RateLimit.SuspicionThreshold = GetEnvAsInt("RATE_LIMIT_SUSPICION_THRESHOLD", 5)
	configs.RateLimit.SweepInterval = GetEnvAsInt("RATE_LIMIT_SWEEP_INTERVAL", 300)
	configs.RateLimit.ResetInterval = GetEnvAsInt("RATE_LIMIT_RESET_INTERVAL", 86400)

	// Location config
	configs.Location.MaxTrackLength = GetEnvAsInt("LOCATION_MAX_TRACK_LENGTH", 100)
	configs.Location.MaxAgeHours = GetEnvAsInt("LOCATION_MAX_AGE_HOURS", 24)
	configs.Location.PruneInterval = GetEnvAsInt("LOCATION_PRUNE_INTERVAL", 300)
	configs.Location.HistoryTTLHours = GetEnvAsInt("LOCATION_HISTORY_TTL_HOURS", 24)
	configs.Location.GeohashPrecision = uint(GetEnvAsInt("LOCATION_GEOHASH_PRECISION", 6))

	// Match config
	configs.Match.SearchRadiusKm = GetEnvAsFloat("MATCH_SEARCH_RADIUS_KM", 5.0)
	configs.Match.MaxResults = GetEnvAsInt("MATCH_MAX_RESULTS", 10)

	// Routing config
	configs.Routing.APIKey = GetEnv("ROUTING_API_KEY", "")
	configs.Routing.Timeout = GetEnvAsInt("ROUTING_TIMEOUT", 5)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	return configs
}

// GetEnv retrieves an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt retrieves an environment variable as an integer with a fallback value
func GetEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// GetEnvAsFloat retrieves an environment variable as a float with a fallback value
func GetEnvAsFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return fallback
}

// GetEnvAsBool retrieves an environment variable as a boolean with a fallback value
func GetEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}
