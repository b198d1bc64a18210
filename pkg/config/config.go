package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Availability AvailabilityConfig
	Distance     DistanceConfig
	Pricing      PricingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AvailabilityConfig holds the remote availability collaborator configuration
type AvailabilityConfig struct {
	BaseURL             string
	Provider            string
	TimeoutSeconds      int
	ProviderConcurrency int
	SlotConcurrency     int
}

// DistanceConfig holds the routing/distance collaborator configuration
type DistanceConfig struct {
	Provider string
	BaseURL  string
	APIKey   string
}

// PricingConfig holds fallback pricing parameters used when the catalog has
// no delivery fare record for a store
type PricingConfig struct {
	DefaultPlatformFee    float64
	DefaultGSTPercent     float64
	SurgeFee              float64
	DistanceThresholdKm   float64
	PerKmChargeBeyondKm   float64
	DefaultDeliveryCharge float64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "booking_engine"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Availability: AvailabilityConfig{
			BaseURL:             getEnv("AVAILABILITY_BASE_URL", "http://localhost:9090"),
			Provider:            getEnv("AVAILABILITY_PROVIDER", "mock"),
			TimeoutSeconds:      getEnvAsInt("AVAILABILITY_TIMEOUT_SECONDS", 8),
			ProviderConcurrency: getEnvAsInt("AVAILABILITY_PROVIDER_CONCURRENCY", 5),
			SlotConcurrency:     getEnvAsInt("AVAILABILITY_SLOT_CONCURRENCY", 2),
		},
		Distance: DistanceConfig{
			Provider: getEnv("DISTANCE_PROVIDER", "haversine"),
			BaseURL:  getEnv("DISTANCE_BASE_URL", ""),
			APIKey:   getEnv("DISTANCE_API_KEY", ""),
		},
		Pricing: PricingConfig{
			DefaultPlatformFee:    getEnvAsFloat("PRICING_PLATFORM_FEE", 5),
			DefaultGSTPercent:     getEnvAsFloat("PRICING_DELIVERY_GST_PERCENT", 18),
			SurgeFee:              getEnvAsFloat("PRICING_SURGE_FEE", 30),
			DistanceThresholdKm:   getEnvAsFloat("PRICING_DISTANCE_THRESHOLD_KM", 2),
			PerKmChargeBeyondKm:   getEnvAsFloat("PRICING_PER_KM_CHARGE", 10),
			DefaultDeliveryCharge: getEnvAsFloat("PRICING_BASE_DELIVERY_CHARGE", 25),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ServerAddr returns the HTTP listen address
func (c *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
