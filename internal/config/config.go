package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type LoggingConfig struct {
	Level string
}

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxBodyBytes int64
}

type StoreConfig struct {
	Driver string
	// UniqueEmail adds a unique index on users.email. Off by default: the
	// registration pre-check alone is racy.
	UniqueEmail bool
}

type MongoConfig struct {
	URI      string
	Database string
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	BucketArchive string
	UseSSL        bool
	Region        string
}

type SecurityConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
}

type AIConfig struct {
	Provider string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

type QueueConfig struct {
	Enabled       bool
	Stream        string
	Group         string
	Consumer      string
	ClaimInterval time.Duration
}

type ArchiveConfig struct {
	Retention time.Duration
}

type AppConfig struct {
	Environment      string
	Logging          LoggingConfig
	HTTP             HTTPConfig
	Store            StoreConfig
	Mongo            MongoConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Security         SecurityConfig
	AI               AIConfig
	Queue            QueueConfig
	Archive          ArchiveConfig
	AllowCORSOrigins []string
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("PLANTDEFENDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMongo, StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.Security.JWTTTL <= 0 {
		return errors.New("security.jwtttl must be positive")
	}
	if c.IsProduction() && (c.Security.JWTSecret == "" || c.Security.JWTSecret == defaultJWTSecret) {
		return errors.New("security.jwtsecret must be set in production")
	}
	if c.AI.Timeout <= 0 {
		return errors.New("ai.timeout must be positive")
	}
	if c.Queue.ClaimInterval <= 0 {
		return errors.New("queue.claiminterval must be positive")
	}
	return nil
}

const defaultJWTSecret = "your-secret-key"

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("logging.level", "")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8001)
	v.SetDefault("http.readtimeout", "15s")
	v.SetDefault("http.writetimeout", "60s")
	v.SetDefault("http.idletimeout", "60s")
	v.SetDefault("http.maxbodybytes", 20<<20)

	v.SetDefault("store.driver", StoreDriverMongo)
	v.SetDefault("store.uniqueemail", false)

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "test_database")

	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 5)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.bucketarchive", "plantdefender-scans")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("security.jwtsecret", defaultJWTSecret)
	v.SetDefault("security.jwtttl", "168h") // 7 days

	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.timeout", "30s")

	v.SetDefault("queue.enabled", true)
	v.SetDefault("queue.stream", "scans:events")
	v.SetDefault("queue.group", "scan-archivers")
	v.SetDefault("queue.consumer", "worker-1")
	v.SetDefault("queue.claiminterval", "30s")

	v.SetDefault("archive.retention", "2160h") // 90 days

	v.SetDefault("allowcorsorigins", "*")
}
