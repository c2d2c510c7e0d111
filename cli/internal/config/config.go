package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirName    = "trophyvault"
	fileName   = "config.json"
	dirPerms   = 0700
	filePerms  = 0600
	DefaultURL = "http://localhost:8080"
)

// Environment overrides. DirEnv relocates the config file; the other two win
// over whatever is stored on disk without being persisted.
const (
	DirEnv    = "TROPHYVAULT_CONFIG_DIR"
	ServerEnv = "TROPHYVAULT_SERVER"
	TokenEnv  = "TROPHYVAULT_TOKEN"
)

// Config holds persisted CLI configuration.
type Config struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
}

// Path returns the full path to the config file.
func Path() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(DirEnv)); dir != "" {
		return filepath.Join(dir, fileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dirName, fileName), nil
}

// Load reads the stored config and applies environment overrides. A missing
// file is not an error.
func Load() (*Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}
	if server := strings.TrimSpace(os.Getenv(ServerEnv)); server != "" {
		cfg.ServerURL = server
	}
	if token := strings.TrimSpace(os.Getenv(TokenEnv)); token != "" {
		cfg.Token = token
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultURL
	}
	return cfg, nil
}

func loadFile() (*Config, error) {
	p, err := Path()
	if err != nil {
		return &Config{}, nil
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func Save(cfg *Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), dirPerms); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, filePerms)
}

// ForgetToken drops the stored token but keeps the server URL. The file is
// removed once nothing worth keeping is left in it.
func ForgetToken() error {
	cfg, err := loadFile()
	if err != nil {
		return err
	}
	cfg.Token = ""
	if cfg.ServerURL != "" && cfg.ServerURL != DefaultURL {
		return Save(cfg)
	}
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (c *Config) HasToken() bool {
	return c.Token != ""
}
