package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"

	StorageLocal  = "local"
	StorageS3     = "s3"
	StorageMemory = "memory"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Mongo        MongoConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Storage      StorageConfig
	Media        MediaConfig
	Logging      LoggingConfig
	GeminiAPIKey string
	GeminiModel  string
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         int
	Password     string
	DB           int
	CandidateTTL time.Duration
}

type JWTConfig struct {
	Secret    string
	ExpiryMin int
}

type StorageConfig struct {
	Type          string
	Path          string
	PublicBaseURL string
	S3Bucket      string
	S3Region      string
}

type MediaConfig struct {
	JPEGQuality   int
	MaxUploadSize int64
	MaxPixels     int64
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()
	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
		Redis: RedisConfig{
			Enabled:      v.GetBool("REDIS_ENABLED"),
			Host:         v.GetString("REDIS_HOST"),
			Port:         v.GetInt("REDIS_PORT"),
			Password:     v.GetString("REDIS_PASSWORD"),
			DB:           v.GetInt("REDIS_DB"),
			CandidateTTL: v.GetDuration("REDIS_CANDIDATE_TTL"),
		},
		JWT: JWTConfig{
			Secret:    v.GetString("JWT_SECRET"),
			ExpiryMin: v.GetInt("JWT_EXPIRY_MIN"),
		},
		Storage: StorageConfig{
			Type:          strings.ToLower(v.GetString("STORAGE_TYPE")),
			Path:          v.GetString("STORAGE_PATH"),
			PublicBaseURL: strings.TrimSuffix(v.GetString("STORAGE_PUBLIC_URL"), "/"),
			S3Bucket:      v.GetString("S3_BUCKET"),
			S3Region:      v.GetString("S3_REGION"),
		},
		Media: MediaConfig{
			JPEGQuality:   v.GetInt("MEDIA_JPEG_QUALITY"),
			MaxUploadSize: v.GetInt64("MEDIA_MAX_UPLOAD_BYTES"),
			MaxPixels:     v.GetInt64("MEDIA_MAX_PIXELS"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
		GeminiModel:  v.GetString("GEMINI_MODEL"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 60*time.Second)
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("MONGO_DATABASE", "swappi")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_CANDIDATE_TTL", 30*time.Second)
	v.SetDefault("JWT_EXPIRY_MIN", 60*24*7)
	v.SetDefault("STORAGE_TYPE", StorageLocal)
	v.SetDefault("STORAGE_PATH", "./data/media")
	v.SetDefault("MEDIA_JPEG_QUALITY", 80)
	v.SetDefault("MEDIA_MAX_UPLOAD_BYTES", 64<<20)
	v.SetDefault("MEDIA_MAX_PIXELS", 40_000_000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo URI is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.ExpiryMin <= 0 {
		return fmt.Errorf("JWT expiry must be positive")
	}

	switch c.Storage.Type {
	case StorageLocal:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for local storage")
		}
	case StorageS3:
		if c.Storage.S3Bucket == "" || c.Storage.S3Region == "" {
			return fmt.Errorf("S3 bucket and region are required for s3 storage")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}

	if c.Media.JPEGQuality < 1 || c.Media.JPEGQuality > 100 {
		return fmt.Errorf("JPEG quality must be between 1 and 100")
	}
	if c.Media.MaxPixels <= 0 {
		return fmt.Errorf("media pixel limit must be positive")
	}
	if c.Redis.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("redis host is required when redis is enabled")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) IsProduction() bool {
	return c.Env == "production"
}
