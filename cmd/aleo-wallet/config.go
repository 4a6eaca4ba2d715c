package main

import (
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/snehendu098/ghost/wallet/pkg/keystore"
	"github.com/snehendu098/ghost/wallet/pkg/log"
	"github.com/snehendu098/ghost/wallet/pkg/verifier"
)

const (
	configDirPathEnv     = "WALLET_CONFIG_DIR_PATH"
	defaultConfigDirPath = "."
)

// Config represents the overall application configuration.
type Config struct {
	Log      log.Config
	Keystore keystore.DatabaseConfig
	Server   verifier.Config
}

// loadDotEnv loads <WALLET_CONFIG_DIR_PATH>/.env into the process environment.
// Variables that are already set are not overridden.
func loadDotEnv() (string, error) {
	configDirPath := os.Getenv(configDirPathEnv)
	if configDirPath == "" {
		configDirPath = defaultConfigDirPath
	}
	path := filepath.Join(configDirPath, ".env")
	return path, godotenv.Load(path)
}

// LoadConfig builds configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
