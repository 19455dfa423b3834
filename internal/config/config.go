package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envDBHost                = "DB_HOST"
	envDBPort                = "DB_PORT"
	envDBName                = "DB_NAME"
	envDBUser                = "DB_USER"
	envDBPassword            = "DB_PASSWORD"
	envDBSSLMode             = "DB_SSL_MODE"
	envDBMaxConns            = "DB_MAX_CONNS"
	envDBMinConns            = "DB_MIN_CONNS"
	envRedisURL              = "REDIS_URL"
	envAWSRegion             = "AWS_REGION"
	envAWSAccessKeyID        = "AWS_ACCESS_KEY_ID"
	envAWSSecretAccessKey    = "AWS_SECRET_ACCESS_KEY"
	envAvatarBucket          = "AVATAR_BUCKET"
	envJWTSecret             = "JWT_SECRET_KEY"
	envJWTAlgorithm          = "JWT_ALGORITHM"
	envJWTAccessExpiry       = "JWT_ACCESS_TOKEN_EXPIRE_MINUTES"
	envJWTRefreshExpiry      = "JWT_REFRESH_TOKEN_EXPIRE_DAYS"
	envPermissionCacheTTL    = "PERMISSION_CACHE_TTL"
	envAvatarURLExpiry       = "AVATAR_URL_TIME_LIMIT"
	envPprofAddr             = "PPROF_ADDR"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultDBHost             = "localhost"
	defaultDBPort             = 5432
	defaultDBName             = "bouncer_db"
	defaultDBUser             = "bouncer_user"
	defaultDBSSLMode          = "disable"
	defaultDBMaxConns         = 25
	defaultDBMinConns         = 5
	defaultJWTAlgorithm       = "HS256"
	defaultAccessTokenTTL     = 30 * time.Minute
	defaultRefreshTokenTTL    = 7 * 24 * time.Hour
	defaultPermissionCacheTTL = 5 * time.Minute
	defaultAvatarURLExpiry    = 15 * time.Minute

	minJWTSecretLength       = 32
	minUniqueCharsInSecret   = 16
	minRepeatedCharThreshold = 4
	maxRepeatedChars         = 2

	errPortRequiredFmt        = "PORT must be set"
	errDBPasswordRequiredFmt  = "DB_PASSWORD must be set"
	errJWTSecretRequiredFmt   = "JWT_SECRET_KEY must be set"
	errJWTSecretMinLengthFmt  = "JWT_SECRET_KEY must be at least %d characters"
	errJWTSecretLowEntropyFmt = "JWT_SECRET_KEY has insufficient entropy (appears non-random). Use a cryptographically secure random string."
	errAccessTTLPositiveFmt   = "access token TTL must be positive"
	errRefreshTTLPositiveFmt  = "refresh token TTL must be positive"
	errInvalidConfigFmt       = "invalid configuration: %w"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	AWS      AWSConfig
	JWT      JWTConfig
	App      AppConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

// RedisConfig selects the role-permission cache backend. An empty URL
// falls back to the in-process cache.
type RedisConfig struct {
	URL string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	AvatarBucket    string
}

type JWTConfig struct {
	Secret     string
	Algorithm  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AppConfig struct {
	PermissionCacheTTL time.Duration
	AvatarURLExpiry    time.Duration

	// PprofAddr enables the local profiling listener when set,
	// e.g. "localhost:6060". Never expose it publicly.
	PprofAddr string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
		},
		Database: DatabaseConfig{
			Host:     getEnv(envDBHost, defaultDBHost),
			Port:     getIntEnv(envDBPort, defaultDBPort),
			Database: getEnv(envDBName, defaultDBName),
			User:     getEnv(envDBUser, defaultDBUser),
			Password: os.Getenv(envDBPassword),
			SSLMode:  getEnv(envDBSSLMode, defaultDBSSLMode),
			MaxConns: getIntEnv(envDBMaxConns, defaultDBMaxConns),
			MinConns: getIntEnv(envDBMinConns, defaultDBMinConns),
		},
		Redis: RedisConfig{
			URL: os.Getenv(envRedisURL),
		},
		AWS: AWSConfig{
			Region:          os.Getenv(envAWSRegion),
			AccessKeyID:     os.Getenv(envAWSAccessKeyID),
			SecretAccessKey: os.Getenv(envAWSSecretAccessKey),
			AvatarBucket:    os.Getenv(envAvatarBucket),
		},
		JWT: JWTConfig{
			Secret:     os.Getenv(envJWTSecret),
			Algorithm:  getEnv(envJWTAlgorithm, defaultJWTAlgorithm),
			AccessTTL:  getDurationEnv(envJWTAccessExpiry, defaultAccessTokenTTL),
			RefreshTTL: getDaysEnv(envJWTRefreshExpiry, defaultRefreshTokenTTL),
		},
		App: AppConfig{
			PermissionCacheTTL: getDurationEnv(envPermissionCacheTTL, defaultPermissionCacheTTL),
			AvatarURLExpiry:    getDurationEnv(envAvatarURLExpiry, defaultAvatarURLExpiry),
			PprofAddr:          os.Getenv(envPprofAddr),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	if c.Database.Password == "" {
		return fmt.Errorf(errDBPasswordRequiredFmt)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf(errJWTSecretRequiredFmt)
	}

	if len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf(errJWTSecretMinLengthFmt, minJWTSecretLength)
	}

	if !hasMinimumEntropy(c.JWT.Secret) {
		return fmt.Errorf(errJWTSecretLowEntropyFmt)
	}

	if c.JWT.AccessTTL <= 0 {
		return fmt.Errorf(errAccessTTLPositiveFmt)
	}

	if c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf(errRefreshTTLPositiveFmt)
	}

	return nil
}

// AvatarStorageEnabled reports whether the optional S3 avatar storage is
// configured.
func (c *Config) AvatarStorageEnabled() bool {
	return c.AWS.Region != "" && c.AWS.AvatarBucket != ""
}

func hasMinimumEntropy(secret string) bool {
	if len(secret) < minJWTSecretLength {
		return false
	}

	charCounts := make(map[rune]int)
	for _, char := range secret {
		charCounts[char]++
	}

	uniqueChars := len(charCounts)
	if uniqueChars < minUniqueCharsInSecret {
		return false
	}

	repeatedChars := 0
	for _, count := range charCounts {
		if count > len(secret)/minRepeatedCharThreshold {
			repeatedChars++
		}
	}

	return repeatedChars <= maxRepeatedChars
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getDaysEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if days, err := strconv.Atoi(value); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	return defaultValue
}
