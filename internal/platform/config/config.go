package config

import "time"

// Config is the root of app-config.yaml
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	ReadTimeout  int      `mapstructure:"read_timeout"`
	WriteTimeout int      `mapstructure:"write_timeout"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // mysql or postgres
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	LogLevel     string `mapstructure:"log_level"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type QueueConfig struct {
	Name       string `mapstructure:"name"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketPosters   string `mapstructure:"bucket_posters"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
}

type JWTConfig struct {
	SecretKey         string `mapstructure:"secret_key"`
	AccessTokenExpiry string `mapstructure:"access_token_expiry"`
}

// AccessTTL parses AccessTokenExpiry, falling back to 24h.
func (j JWTConfig) AccessTTL() time.Duration {
	d, err := time.ParseDuration(j.AccessTokenExpiry)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}
