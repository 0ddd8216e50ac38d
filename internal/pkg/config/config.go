package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// UploadDir is where report images land; created at boot when absent.
	UploadDir string `env:"UPLOAD_DIR, default=uploads"`

	// StorageDriver selects the report backend: "memory" (default) or "mongo".
	StorageDriver string `env:"STORAGE_DRIVER, default=memory"`

	// SeedPasswords overrides seed user passwords: "user:pass,user:pass".
	SeedPasswords string `env:"SEED_PASSWORDS"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=maintenance_system"`
}

// RedisConfig enables the stats cache when Addr is non-empty.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
