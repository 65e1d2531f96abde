package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Payment  PaymentConfig
	Quiz     QuizConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
	GinMode      string
}

// StorageConfig selects the persistence backend
type StorageConfig struct {
	Driver string // "mongodb" or "memory"
	Seed   bool   // load fixture contests on startup when the store is empty
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig holds the contest cache configuration. An empty Addr disables caching.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	ContestTTL time.Duration
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// PaymentConfig selects and configures the payment provider
type PaymentConfig struct {
	Provider     string // "mock" or "paypal"
	Currency     string
	MockDelay    time.Duration
	MockClientID string
	PayPal       PayPalConfig
}

// PayPalConfig holds PayPal REST API credentials
type PayPalConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// QuizConfig controls what a quiz submission reveals
type QuizConfig struct {
	RevealAnswer bool
}

// Storage drivers
const (
	DriverMongoDB = "mongodb"
	DriverMemory  = "memory"
)

// Payment providers
const (
	ProviderMock   = "mock"
	ProviderPayPal = "paypal"
)

// Load loads configuration from a .env file, environment variables and an optional
// config.yaml found in path or path/config
func Load(path string) (*Config, error) {
	// A missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(path + "/config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT secret is not configured (set JWT_SECRET)")
	}
	switch c.Storage.Driver {
	case DriverMongoDB, DriverMemory:
	default:
		return errors.New("unknown storage driver: " + c.Storage.Driver)
	}
	switch c.Payment.Provider {
	case ProviderMock:
	case ProviderPayPal:
		if c.Payment.PayPal.ClientID == "" || c.Payment.PayPal.ClientSecret == "" {
			return errors.New("paypal provider requires PAYMENT_PAYPAL_CLIENTID and PAYMENT_PAYPAL_CLIENTSECRET")
		}
	default:
		return errors.New("unknown payment provider: " + c.Payment.Provider)
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.AllowedHosts", []string{"http://localhost:5173"})
	v.SetDefault("Server.GinMode", "release")
	v.SetDefault("Storage.Driver", DriverMongoDB)
	v.SetDefault("Storage.Seed", false)
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "skillprize")
	v.SetDefault("Redis.Addr", "")
	v.SetDefault("Redis.Password", "")
	v.SetDefault("Redis.DB", 0)
	v.SetDefault("Redis.ContestTTL", time.Minute)
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	v.SetDefault("Payment.Provider", ProviderMock)
	v.SetDefault("Payment.Currency", "INR")
	v.SetDefault("Payment.MockDelay", time.Second)
	v.SetDefault("Payment.MockClientID", "mock-client")
	v.SetDefault("Payment.PayPal.BaseURL", "https://api-m.sandbox.paypal.com")
	v.SetDefault("Payment.PayPal.ClientID", "")
	v.SetDefault("Payment.PayPal.ClientSecret", "")
	v.SetDefault("Quiz.RevealAnswer", false)
	v.SetDefault("LogLevel", "info")
}
