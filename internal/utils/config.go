package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	PostgresHost     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.PostgresHost +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" port=5432 sslmode=disable TimeZone=UTC"
}

type ServerConfig struct {
	Port string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TokenConfig carries the full signing surface: one shared secret, a fixed
// HMAC algorithm, and the two lifetimes. Lifetimes are configured in minutes
// to match the deployment convention.
type TokenConfig struct {
	Secret        string
	Algorithm     string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

type Config struct {
	Database    *DatabaseConfig
	Server      *ServerConfig
	Redis       *RedisConfig
	Token       *TokenConfig
	ObjectStore *ObjectStoreConfig
}

var ErrMissingSecretKey = errors.New("SECRET_KEY must be set")

func LoadConfig(dotenvPath string) (*Config, error) {
	// Missing .env is fine in containerized deployments where everything
	// arrives through real environment variables.
	_ = godotenv.Load(dotenvPath)

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, ErrMissingSecretKey
	}

	dbCfg := &DatabaseConfig{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       getEnv("POSTGRES_DB", "fooddb"),
	}
	serverCfg := &ServerConfig{
		Port: getEnv("SERVER_PORT", "8000"),
	}
	redisCfg := &RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvInt("REDIS_DB", 0),
	}
	tokenCfg := &TokenConfig{
		Secret:        secret,
		Algorithm:     getEnv("JWT_ALGORITHM", "HS256"),
		AccessExpiry:  time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		RefreshExpiry: time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRE_MINUTES", 30*24*60)) * time.Minute,
	}
	storeCfg := &ObjectStoreConfig{
		Endpoint:  getEnv("S3_ENDPOINT", "http://localhost:9000"),
		AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
		SecretKey: getEnv("S3_SECRET_KEY", "minioadmin123"),
		Bucket:    getEnv("S3_BUCKET", "foodtracker"),
		Region:    getEnv("S3_REGION", "us-east-1"),
	}

	return &Config{
		Database:    dbCfg,
		Server:      serverCfg,
		Redis:       redisCfg,
		Token:       tokenCfg,
		ObjectStore: storeCfg,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
