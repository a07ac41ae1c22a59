package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for a mentor-platform agent
type Config struct {
	// MQTT configuration
	MQTTBroker   string
	MQTTPort     int
	MQTTUser     string
	MQTTPassword string
	MQTTClientID string

	// Redis configuration
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	// Postgres configuration
	PostgresHost               string
	PostgresPort               int
	PostgresUser               string
	PostgresPassword           string
	PostgresDB                 string
	PostgresSSLMode            string
	PostgresMaxConnections     int
	PostgresMaxIdleConnections int
	PostgresConnMaxLifetime    time.Duration

	// Service configuration
	ServiceName string
	HealthPort  int
	LogLevel    string

	// Profile agent configuration
	ActivityTopics     []string
	MaxActivityHistory int

	// Tutor agent configuration
	LLMEndpoint string
	LLMModel    string
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		MQTTBroker:   "localhost",
		MQTTPort:     1883,
		MQTTUser:     "",
		MQTTPassword: "",
		MQTTClientID: "",

		RedisHost:     "localhost",
		RedisPort:     6379,
		RedisPassword: "",
		RedisDB:       0,

		PostgresHost:               "localhost",
		PostgresPort:               5432,
		PostgresUser:               "mentor",
		PostgresPassword:           "",
		PostgresDB:                 "mentor",
		PostgresSSLMode:            "disable",
		PostgresMaxConnections:     10,
		PostgresMaxIdleConnections: 2,
		PostgresConnMaxLifetime:    30 * time.Minute,

		ServiceName: "mentor-agent",
		HealthPort:  8080,
		LogLevel:    "info",

		ActivityTopics:     []string{"tutoring/raw/activity/+"},
		MaxActivityHistory: 1000,

		LLMEndpoint: "http://localhost:11434",
		LLMModel:    "llama3.2:3b",
	}
}

// LoadFromEnv loads configuration from environment variables with MENTOR_ prefix
func (c *Config) LoadFromEnv() {
	// MQTT configuration
	if v := os.Getenv("MENTOR_MQTT_BROKER"); v != "" {
		c.MQTTBroker = v
	}
	if v := os.Getenv("MENTOR_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.MQTTPort = port
		}
	}
	if v := os.Getenv("MENTOR_MQTT_USER"); v != "" {
		c.MQTTUser = v
	}
	if v := os.Getenv("MENTOR_MQTT_PASSWORD"); v != "" {
		c.MQTTPassword = v
	}
	if v := os.Getenv("MENTOR_MQTT_CLIENT_ID"); v != "" {
		c.MQTTClientID = v
	}

	// Redis configuration
	if v := os.Getenv("MENTOR_REDIS_HOST"); v != "" {
		c.RedisHost = v
	}
	if v := os.Getenv("MENTOR_REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.RedisPort = port
		}
	}
	if v := os.Getenv("MENTOR_REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("MENTOR_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.RedisDB = db
		}
	}

	// Postgres configuration
	if v := os.Getenv("MENTOR_POSTGRES_HOST"); v != "" {
		c.PostgresHost = v
	}
	if v := os.Getenv("MENTOR_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.PostgresPort = port
		}
	}
	if v := os.Getenv("MENTOR_POSTGRES_USER"); v != "" {
		c.PostgresUser = v
	}
	if v := os.Getenv("MENTOR_POSTGRES_PASSWORD"); v != "" {
		c.PostgresPassword = v
	}
	if v := os.Getenv("MENTOR_POSTGRES_DB"); v != "" {
		c.PostgresDB = v
	}
	if v := os.Getenv("MENTOR_POSTGRES_SSL_MODE"); v != "" {
		c.PostgresSSLMode = v
	}
	if v := os.Getenv("MENTOR_POSTGRES_MAX_CONNECTIONS"); v != "" {
		if max, err := strconv.Atoi(v); err == nil {
			c.PostgresMaxConnections = max
		}
	}

	// Service configuration
	if v := os.Getenv("MENTOR_SERVICE_NAME"); v != "" {
		c.ServiceName = v
	}
	if v := os.Getenv("MENTOR_HEALTH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.HealthPort = port
		}
	}
	if v := os.Getenv("MENTOR_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	// Profile agent configuration
	if v := os.Getenv("MENTOR_MAX_ACTIVITY_HISTORY"); v != "" {
		if max, err := strconv.Atoi(v); err == nil {
			c.MaxActivityHistory = max
		}
	}

	// Tutor agent configuration
	if v := os.Getenv("MENTOR_LLM_ENDPOINT"); v != "" {
		c.LLMEndpoint = v
	}
	if v := os.Getenv("MENTOR_LLM_MODEL"); v != "" {
		c.LLMModel = v
	}
}

// LoadFromFlags parses command-line flags and overrides config values
func (c *Config) LoadFromFlags() {
	// MQTT flags
	pflag.StringVar(&c.MQTTBroker, "mqtt-broker", c.MQTTBroker, "MQTT broker hostname")
	pflag.IntVar(&c.MQTTPort, "mqtt-port", c.MQTTPort, "MQTT broker port")
	pflag.StringVar(&c.MQTTUser, "mqtt-user", c.MQTTUser, "MQTT username")
	pflag.StringVar(&c.MQTTPassword, "mqtt-password", c.MQTTPassword, "MQTT password")
	pflag.StringVar(&c.MQTTClientID, "mqtt-client-id", c.MQTTClientID, "MQTT client ID")

	// Redis flags
	pflag.StringVar(&c.RedisHost, "redis-host", c.RedisHost, "Redis hostname")
	pflag.IntVar(&c.RedisPort, "redis-port", c.RedisPort, "Redis port")
	pflag.StringVar(&c.RedisPassword, "redis-password", c.RedisPassword, "Redis password")
	pflag.IntVar(&c.RedisDB, "redis-db", c.RedisDB, "Redis database number")

	// Postgres flags
	pflag.StringVar(&c.PostgresHost, "postgres-host", c.PostgresHost, "Postgres hostname")
	pflag.IntVar(&c.PostgresPort, "postgres-port", c.PostgresPort, "Postgres port")
	pflag.StringVar(&c.PostgresUser, "postgres-user", c.PostgresUser, "Postgres username")
	pflag.StringVar(&c.PostgresPassword, "postgres-password", c.PostgresPassword, "Postgres password")
	pflag.StringVar(&c.PostgresDB, "postgres-db", c.PostgresDB, "Postgres database name")
	pflag.StringVar(&c.PostgresSSLMode, "postgres-ssl-mode", c.PostgresSSLMode, "Postgres SSL mode")

	// Service flags
	pflag.StringVar(&c.ServiceName, "service-name", c.ServiceName, "Service name")
	pflag.IntVar(&c.HealthPort, "health-port", c.HealthPort, "Health check HTTP port")
	pflag.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")

	// Profile agent flags
	pflag.IntVar(&c.MaxActivityHistory, "max-activity-history", c.MaxActivityHistory, "Maximum activity data points kept per learner")

	// Tutor agent flags
	pflag.StringVar(&c.LLMEndpoint, "llm-endpoint", c.LLMEndpoint, "LLM API base URL")
	pflag.StringVar(&c.LLMModel, "llm-model", c.LLMModel, "LLM model name")

	pflag.Parse()
}

// fileConfig is the yaml schema for the optional config file
type fileConfig struct {
	MQTT struct {
		Broker   string `yaml:"broker"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		ClientID string `yaml:"client_id"`
	} `yaml:"mqtt"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DB       string `yaml:"db"`
		SSLMode  string `yaml:"ssl_mode"`
	} `yaml:"postgres"`
	LLM struct {
		Endpoint string `yaml:"endpoint"`
		Model    string `yaml:"model"`
	} `yaml:"llm"`
	MaxActivityHistory int `yaml:"max_activity_history"`
}

// LoadFromFile loads configuration overrides from a yaml file.
// A missing file is not an error; agents run fine on env and flags alone.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.MQTT.Broker != "" {
		c.MQTTBroker = fc.MQTT.Broker
	}
	if fc.MQTT.Port != 0 {
		c.MQTTPort = fc.MQTT.Port
	}
	if fc.MQTT.User != "" {
		c.MQTTUser = fc.MQTT.User
	}
	if fc.MQTT.Password != "" {
		c.MQTTPassword = fc.MQTT.Password
	}
	if fc.MQTT.ClientID != "" {
		c.MQTTClientID = fc.MQTT.ClientID
	}
	if fc.Redis.Host != "" {
		c.RedisHost = fc.Redis.Host
	}
	if fc.Redis.Port != 0 {
		c.RedisPort = fc.Redis.Port
	}
	if fc.Redis.Password != "" {
		c.RedisPassword = fc.Redis.Password
	}
	if fc.Redis.DB != 0 {
		c.RedisDB = fc.Redis.DB
	}
	if fc.Postgres.Host != "" {
		c.PostgresHost = fc.Postgres.Host
	}
	if fc.Postgres.Port != 0 {
		c.PostgresPort = fc.Postgres.Port
	}
	if fc.Postgres.User != "" {
		c.PostgresUser = fc.Postgres.User
	}
	if fc.Postgres.Password != "" {
		c.PostgresPassword = fc.Postgres.Password
	}
	if fc.Postgres.DB != "" {
		c.PostgresDB = fc.Postgres.DB
	}
	if fc.Postgres.SSLMode != "" {
		c.PostgresSSLMode = fc.Postgres.SSLMode
	}
	if fc.LLM.Endpoint != "" {
		c.LLMEndpoint = fc.LLM.Endpoint
	}
	if fc.LLM.Model != "" {
		c.LLMModel = fc.LLM.Model
	}
	if fc.MaxActivityHistory != 0 {
		c.MaxActivityHistory = fc.MaxActivityHistory
	}

	return nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT broker is required")
	}
	if c.MQTTPort <= 0 || c.MQTTPort > 65535 {
		return fmt.Errorf("MQTT port must be between 1 and 65535")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("Redis host is required")
	}
	if c.RedisPort <= 0 || c.RedisPort > 65535 {
		return fmt.Errorf("Redis port must be between 1 and 65535")
	}
	if c.PostgresHost == "" {
		return fmt.Errorf("Postgres host is required")
	}
	if c.PostgresPort <= 0 || c.PostgresPort > 65535 {
		return fmt.Errorf("Postgres port must be between 1 and 65535")
	}
	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("Health port must be between 1 and 65535")
	}
	if c.ServiceName == "" {
		return fmt.Errorf("Service name is required")
	}
	if c.MaxActivityHistory <= 0 {
		return fmt.Errorf("Max activity history must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// MQTTAddress returns the full MQTT broker address
func (c *Config) MQTTAddress() string {
	return fmt.Sprintf("tcp://%s:%d", c.MQTTBroker, c.MQTTPort)
}

// RedisAddress returns the full Redis address
func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// PostgresConnectionString returns the lib/pq connection string
func (c *Config) PostgresConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword,
		c.PostgresDB, c.PostgresSSLMode)
}
