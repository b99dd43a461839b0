package config

import (
	"portal-server/pkg/config"
	"portal-server/pkg/logger"

	"go.uber.org/zap"
)

// Config defines the structure for all configuration settings.
type Config struct {
	Service Service `yaml:"service"`
	Server  Server  `yaml:"server"`
	Log     Log     `yaml:"log"`
	Cors    Cors    `yaml:"cors"`
	MongoDB MongoDB `yaml:"mongodb"`
	Redis   Redis   `yaml:"redis"`
	Storage Storage `yaml:"storage"`
	Logger  *zap.Logger
}

// Service holds configuration for the service itself.
type Service struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Server holds configuration for the HTTP server.
type Server struct {
	Port  string `yaml:"port"`
	Debug bool   `yaml:"debug"`
}

// Log holds configuration for logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Cors holds configuration for CORS settings.
type Cors struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowCredentials bool     `yaml:"allow_credentials"`
}

// MongoDB holds configuration for the document database.
type MongoDB struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Redis holds configuration for redis.
type Redis struct {
	Address  string `yaml:"address"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

// Storage holds configuration for the XML mirror storage backends.
type Storage struct {
	// Type selects the initial backend: local, supabase or s3. Runtime
	// settings stored in the database take precedence once present.
	Type      string   `yaml:"type"`
	LocalRoot string   `yaml:"local_root"`
	IndexPath string   `yaml:"index_path"`
	Supabase  Supabase `yaml:"supabase"`
	S3        S3       `yaml:"s3"`
}

// Supabase holds configuration for the Supabase Storage backend.
type Supabase struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	Bucket string `yaml:"bucket"`
}

// S3 holds configuration for the S3 backend.
type S3 struct {
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

var (
	// AppConfig holds the application's configuration.
	AppConfig *Config
)

// Load loads the configuration from the YAML file.
func Load() (*Config, error) {
	cfg, err := config.Load("portal")
	if err != nil {
		return nil, err
	}

	appConfig := &Config{}

	// Service
	appConfig.Service.Name = cfg.GetString("service.name")
	appConfig.Service.Version = cfg.GetString("service.version")

	// Server
	appConfig.Server.Port = cfg.GetString("server.port")
	appConfig.Server.Debug = cfg.GetBool("server.debug")

	// Log
	appConfig.Log.Level = cfg.GetString("log.level")
	appConfig.Log.Format = cfg.GetString("log.format")
	appConfig.Log.Output = cfg.GetString("log.output")

	// Cors
	appConfig.Cors.AllowedOrigins = cfg.GetStringSlice("cors.allowed_origins")
	appConfig.Cors.AllowCredentials = cfg.GetBool("cors.allow_credentials")

	// MongoDB
	appConfig.MongoDB.URI = cfg.GetString("mongodb.uri")
	appConfig.MongoDB.Database = cfg.GetString("mongodb.database")
	appConfig.MongoDB.Username = cfg.GetString("mongodb.username")
	appConfig.MongoDB.Password = cfg.GetString("mongodb.password")

	// Redis
	appConfig.Redis.Address = cfg.GetString("redis.address")
	appConfig.Redis.Username = cfg.GetString("redis.username")
	appConfig.Redis.Password = cfg.GetString("redis.password")
	appConfig.Redis.Database = cfg.GetInt("redis.database")

	// Storage
	appConfig.Storage.Type = cfg.GetString("storage.type")
	appConfig.Storage.LocalRoot = cfg.GetString("storage.local_root")
	appConfig.Storage.IndexPath = cfg.GetString("storage.index_path")
	appConfig.Storage.Supabase.URL = cfg.GetString("storage.supabase.url")
	appConfig.Storage.Supabase.APIKey = cfg.GetString("storage.supabase.api_key")
	appConfig.Storage.Supabase.Bucket = cfg.GetString("storage.supabase.bucket")
	appConfig.Storage.S3.Region = cfg.GetString("storage.s3.region")
	appConfig.Storage.S3.Bucket = cfg.GetString("storage.s3.bucket")
	appConfig.Storage.S3.AccessKey = cfg.GetString("storage.s3.access_key")
	appConfig.Storage.S3.SecretKey = cfg.GetString("storage.s3.secret_key")

	if appConfig.Storage.IndexPath == "" {
		appConfig.Storage.IndexPath = "portfolios/index.xml"
	}

	// Logger
	loggerConfig := logger.Config{
		Level:       appConfig.Log.Level,
		Format:      appConfig.Log.Format,
		Output:      appConfig.Log.Output,
		Development: appConfig.Server.Debug,
	}
	appConfig.Logger, err = logger.NewZapLogger(loggerConfig)
	if err != nil {
		return nil, err
	}

	AppConfig = appConfig
	return appConfig, nil
}
