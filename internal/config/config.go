package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Service names understood by Load.
const (
	ServiceGateway  = "gateway"
	ServiceIdentity = "identity"
	ServiceTasks    = "tasks"
)

const EnvProduction = "production"

type serviceDefaults struct {
	port   string
	dbName string
}

var defaultsByService = map[string]serviceDefaults{
	ServiceGateway:  {port: "3000"},
	ServiceIdentity: {port: "4001", dbName: "identity"},
	ServiceTasks:    {port: "4002", dbName: "tasks"},
}

type Config struct {
	ServiceName string
	Env         string
	Port        string
	GinMode     string
	LogLevel    string

	// Echo raw internal failures to clients. Ignored in production.
	DebugErrors     bool
	HTTPLogEnabled  bool
	ShutdownTimeout time.Duration

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	BcryptCost int

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int

	CORSAllowedOrigins string // comma-separated
	TrustedProxies     string // comma-separated

	// Upstreams
	IdentityServiceURL string
	TaskServiceURL     string
	UpstreamTimeout    time.Duration
}

// Load reads the configuration of the named service from the environment.
func Load(service string) *Config {
	defaults := defaultsByService[service]
	driver := strings.ToLower(getEnv("DB_DRIVER", "postgres"))

	return &Config{
		ServiceName:     service,
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", defaults.port),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DebugErrors:     getBool("APP_DEBUG_ERRORS", false),
		HTTPLogEnabled:  getBool("HTTP_LOG_ENABLED", true),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DBDriver:   driver,
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", defaultDBPort(driver)),
		DBUser:     getEnv("DB_USER", "taskuser"),
		DBPassword: getEnv("DB_PASSWORD", "taskpassword"),
		DBName:     getEnv("DB_NAME", defaults.dbName),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		BcryptCost: getInt("BCRYPT_COST", 10),

		RateLimitMax:    getInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getInt("REDIS_DB", 0),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		TrustedProxies:     getEnv("TRUSTED_PROXIES", "127.0.0.1,::1"),

		IdentityServiceURL: getEnv("IDENTITY_SERVICE_URL", "http://localhost:4001"),
		TaskServiceURL:     getEnv("TASK_SERVICE_URL", "http://localhost:4002"),
		UpstreamTimeout:    getDuration("UPSTREAM_TIMEOUT", 5*time.Second),
	}
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// DiagnosticsEnabled reports whether raw failure detail may be sent to clients.
func (c *Config) DiagnosticsEnabled() bool {
	return c.DebugErrors && !c.IsProduction()
}

// DSN builds the data source name for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser,
			c.DBPassword,
			c.DBHost,
			c.DBPort,
			c.DBName,
		)
	case "sqlite":
		if c.DBName == ":memory:" || strings.HasSuffix(c.DBName, ".db") {
			return c.DBName
		}
		return c.DBName + ".db"
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.DBHost,
			c.DBUser,
			c.DBPassword,
			c.DBName,
			c.DBPort,
			c.DBSSLMode,
		)
	}
}

// CORSOrigins returns the allowed browser origins.
func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// TrustedProxyList returns the proxies whose forwarding headers are honoured.
func (c *Config) TrustedProxyList() []string {
	return splitList(c.TrustedProxies)
}

func defaultDBPort(driver string) string {
	if driver == "mysql" {
		return "3306"
	}
	return "5432"
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("invalid boolean for %s: %v, using default %v", key, err, defaultValue)
		return defaultValue
	}
	return b
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid int for %s: %v, using default %d", key, err, defaultValue)
		return defaultValue
	}
	return i
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid duration for %s: %v, using default %v", key, err, defaultValue)
		return defaultValue
	}
	return d
}
