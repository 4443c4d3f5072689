package models

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Location  LocationConfig
	Match     MatchConfig
	Routing   RoutingConfig
	Logger    LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret            string
	Issuer            string
	AccessExpiration  int // in minutes
	RefreshExpiration int // in minutes
}

// RateLimitConfig contains request admission configuration
type RateLimitConfig struct {
	SuspicionThreshold int // violations before a source IP is blocked
	SweepInterval      int // seconds between rate window sweeps
	ResetInterval      int // seconds between suspicion counter resets
}

// LocationConfig contains location store configuration
type LocationConfig struct {
	MaxTrackLength   int // positions kept per driver
	MaxAgeHours      int // hours before a position is considered stale
	PruneInterval    int // seconds between prune passes
	HistoryTTLHours  int // hours history entries live in Redis
	GeohashPrecision uint
}

// MatchConfig contains proximity matching configuration
type MatchConfig struct {
	SearchRadiusKm float64 // default radius for nearby driver queries
	MaxResults     int     // default result cap for nearby driver queries
}

// RoutingConfig contains external routing provider configuration
type RoutingConfig struct {
	APIKey  string
	Timeout int // seconds before the provider call is abandoned
}

// LoggerConfig contains structured logging configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
