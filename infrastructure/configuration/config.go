package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"playlist-duration/infrastructure/logger"
)

type Config struct {
	App        App        `mapstructure:"app"`
	YouTube    YouTube    `mapstructure:"youtube"`
	History    History    `mapstructure:"history"`
	Database   Database   `mapstructure:"database"`
	Redis      Redis      `mapstructure:"redisClient"`
	Events     Events     `mapstructure:"events"`
	Pubsub     Pubsub     `mapstructure:"pubsub"`
	ServiceBus ServiceBus `mapstructure:"serviceBus"`
	Cors       Cors       `mapstructure:"cors"`
	Logger     Logger     `mapstructure:"logger"`
}

type App struct {
	Port                   int    `mapstructure:"port" default:"10001" validate:"min=1,max=65535"`
	TLSEnabled             bool   `mapstructure:"tlsEnabled"`
	TLSCertFile            string `mapstructure:"tlsCertFile"`
	TLSKeyFile             string `mapstructure:"tlsKeyFile"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdownTimeoutSeconds" default:"10" validate:"min=1"`
}

type YouTube struct {
	APIKey                string `mapstructure:"apiKey"`
	Endpoint              string `mapstructure:"endpoint" validate:"omitempty,url"`
	BatchConcurrency      int    `mapstructure:"batchConcurrency" default:"4" validate:"min=1,max=16"`
	RequestTimeoutSeconds int    `mapstructure:"requestTimeoutSeconds" validate:"min=0"`
}

// History selects where finished calculations are recorded
type History struct {
	Backend string `mapstructure:"backend" default:"none" validate:"oneof=none postgres mssql mysql mongo redis"`
	// MaxEntries caps the redis list
	MaxEntries int `mapstructure:"maxEntries" default:"100" validate:"min=1"`
}

type Database struct {
	Psql  Db `mapstructure:"psql"`
	MySql Db `mapstructure:"mysql"`
	Mongo Db `mapstructure:"mongo"`
	Mssql Db `mapstructure:"mssql"`
}

type Db struct {
	Name     string `mapstructure:"name"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

type Redis struct {
	Host         string `mapstructure:"host" default:"localhost"`
	Port         string `mapstructure:"port" default:"6379"`
	Password     string `mapstructure:"password"`
	DatabaseName string `mapstructure:"databaseName" default:"0"`
	Username     string `mapstructure:"username"`
}

// Events selects where PlaylistCalculated notifications go
type Events struct {
	Backend string `mapstructure:"backend" default:"none" validate:"oneof=none pubsub servicebus"`
}

type Pubsub struct {
	ProjectID string `mapstructure:"projectID"`
	Topic     string `mapstructure:"topic" default:"playlist-calculated"`
}

type ServiceBus struct {
	Namespace string `mapstructure:"namespace"`
	Queue     string `mapstructure:"queue" default:"playlist-calculated"`
}

type Cors struct {
	AllowOrigins []string `mapstructure:"allowOrigins" default:"[\"*\"]"`
}

type Logger struct {
	Level string `mapstructure:"level"`
}

var C Config

var validate = validator.New()

func init() {
	LoadConfig()
}

// LoadConfig fills C. A missing or invalid configuration is logged and C falls
// back to defaults so the server can still boot.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Invalid configuration, using defaults")
		cfg = &Config{}
		_ = defaults.Set(cfg)
	}
	C = *cfg
	if C.Logger.Level != "" {
		logger.SetLevel(C.Logger.Level)
	}
}

// Load reads .env files, then config.json (or config-<ENV>.json) from paths,
// applies environment overrides and defaults, and validates the result.
// Without paths the working directory and its two parents are searched.
func Load(paths ...string) (*Config, error) {
	loadEnvFiles(".env", "config.env")

	if len(paths) == 0 {
		paths = []string{".", "../", "../../"}
	}
	name := getConfig()
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("json")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "failed to read config %s", name)
		}
		logger.GetLogger().WithField("config", name).Warn("Config file not found")
	} else {
		logger.GetLogger().WithField("config", v.ConfigFileUsed()).Info("Config set up successfully")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "viper unable to decode into struct")
	}
	initApp(cfg)
	initYouTube(cfg)
	initDatabase(cfg)
	initIntegrations(cfg)

	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to apply config defaults")
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// loadEnvFiles never overrides variables already set in the environment
func loadEnvFiles(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logger.GetLogger().WithField("file", p).WithField("error", err).Warn("Failed to load env file")
		}
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true":
			C.App.TLSEnabled = true
		case "0", "false":
			C.App.TLSEnabled = false
		}
	}
	C.App.TLSCertFile = getEnv("TLS_CERT_FILE", C.App.TLSCertFile)
	C.App.TLSKeyFile = getEnv("TLS_KEY_FILE", C.App.TLSKeyFile)
	// Prefer local certs if TLS enabled and paths not provided
	if C.App.TLSEnabled {
		if C.App.TLSCertFile == "" {
			if _, err := os.Stat("certs/localhost.crt"); err == nil {
				C.App.TLSCertFile = "certs/localhost.crt"
			}
		}
		if C.App.TLSKeyFile == "" {
			if _, err := os.Stat("certs/localhost.key"); err == nil {
				C.App.TLSKeyFile = "certs/localhost.key"
			}
		}
		logger.GetLogger().WithFields(map[string]interface{}{"cert": C.App.TLSCertFile, "key": C.App.TLSKeyFile}).Info("TLS enabled via configuration")
	}
	C.Logger.Level = getEnv("LOG_LEVEL", C.Logger.Level)
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		C.Cors.AllowOrigins = strings.Split(v, ",")
	}
}

func initYouTube(C *Config) {
	C.YouTube.APIKey = getEnv("YOUTUBE_API_KEY", C.YouTube.APIKey)
	C.YouTube.Endpoint = getEnv("YOUTUBE_ENDPOINT", C.YouTube.Endpoint)
	if v := os.Getenv("YOUTUBE_BATCH_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			C.YouTube.BatchConcurrency = n
		}
	}
}

func initDatabase(C *Config) {
	C.History.Backend = strings.ToLower(getEnv("HISTORY_BACKEND", C.History.Backend))

	C.Database.Psql.Name = getConfigValue(C.Database.Psql.Name, "DB_NAME", "")
	C.Database.Psql.Host = getConfigValue(C.Database.Psql.Host, "DB_HOST", "")
	C.Database.Psql.Port = getConfigValue(C.Database.Psql.Port, "DB_PORT", "5432")
	C.Database.Psql.User = getConfigValue(C.Database.Psql.User, "DB_USER", "")
	C.Database.Psql.Password = getConfigValue(C.Database.Psql.Password, "DB_PASSWORD", "")

	// Optional MSSQL config via environment variables (for Azure SQL in production)
	C.Database.Mssql.Name = getConfigValue(C.Database.Mssql.Name, "MSSQL_DB_NAME", "")
	C.Database.Mssql.Host = getConfigValue(C.Database.Mssql.Host, "MSSQL_HOST", "localhost")
	C.Database.Mssql.Port = getConfigValue(C.Database.Mssql.Port, "MSSQL_PORT", "1433")
	C.Database.Mssql.User = getConfigValue(C.Database.Mssql.User, "MSSQL_USER", "sa")
	C.Database.Mssql.Password = getConfigValue(C.Database.Mssql.Password, "MSSQL_PASSWORD", "")

	C.Database.MySql.Name = getConfigValue(C.Database.MySql.Name, "MYSQL_DB_NAME", "")
	C.Database.MySql.Host = getConfigValue(C.Database.MySql.Host, "MYSQL_HOST", "localhost")
	C.Database.MySql.Port = getConfigValue(C.Database.MySql.Port, "MYSQL_PORT", "3306")
	C.Database.MySql.User = getConfigValue(C.Database.MySql.User, "MYSQL_USER", "")
	C.Database.MySql.Password = getConfigValue(C.Database.MySql.Password, "MYSQL_PASSWORD", "")

	C.Database.Mongo.Name = getConfigValue(C.Database.Mongo.Name, "MONGO_DB_NAME", "playlist")
	C.Database.Mongo.Host = getConfigValue(C.Database.Mongo.Host, "MONGO_HOST", "localhost")
	C.Database.Mongo.Port = getConfigValue(C.Database.Mongo.Port, "MONGO_PORT", "27017")
	C.Database.Mongo.User = getConfigValue(C.Database.Mongo.User, "MONGO_USER", "")
	C.Database.Mongo.Password = getConfigValue(C.Database.Mongo.Password, "MONGO_PASSWORD", "")

	C.Redis.Host = getConfigValue(C.Redis.Host, "REDIS_HOST", "")
	C.Redis.Port = getConfigValue(C.Redis.Port, "REDIS_PORT", "")
	C.Redis.Password = getConfigValue(C.Redis.Password, "REDIS_PASSWORD", "")
}

func initIntegrations(C *Config) {
	C.Events.Backend = strings.ToLower(getEnv("EVENTS_BACKEND", C.Events.Backend))
	C.Pubsub.ProjectID = getConfigValue(C.Pubsub.ProjectID, "PUBSUB_PROJECT_ID", "")
	C.Pubsub.Topic = getConfigValue(C.Pubsub.Topic, "PUBSUB_TOPIC", "")
	C.ServiceBus.Namespace = getConfigValue(C.ServiceBus.Namespace, "SERVICEBUS_NAMESPACE", "")
	C.ServiceBus.Queue = getConfigValue(C.ServiceBus.Queue, "SERVICEBUS_QUEUE", "")
}

// getConfigValue gets value from environment first, then config, then default
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" {
		return configValue
	}
	return defaultValue
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
