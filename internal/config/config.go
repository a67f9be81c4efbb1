package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Spotify API credentials and search market
	Spotify SpotifyConfig

	// Identifiers per audio-features request (1-100)
	// Default: 100
	BatchSize int

	// Skip TLS certificate verification on API calls
	// Default: false
	Insecure bool

	// Log level (debug, info, warn, error)
	// Default: "info"
	LogLevel string
}

// SpotifyConfig holds Spotify specific configuration
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	Market       string
}

// HasCredentials reports whether both client id and secret are set.
func (c *Config) HasCredentials() bool {
	return c.Spotify.ClientID != "" && c.Spotify.ClientSecret != ""
}

// Load reads configuration from file, a .env file in the working
// directory, and environment
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	v.AddConfigPath(getConfigDir())
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("batch_size", 100)
	v.SetDefault("insecure", false)
	v.SetDefault("log_level", "info")

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Read from environment variables, e.g. SOUNDSTATS_BATCH_SIZE
	v.SetEnvPrefix("SOUNDSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials also come from the plain names used in .env files
	_ = v.BindEnv("spotify.client_id", "SOUNDSTATS_SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_ID", "CLIENT_ID")
	_ = v.BindEnv("spotify.client_secret", "SOUNDSTATS_SPOTIFY_CLIENT_SECRET", "SPOTIFY_CLIENT_SECRET", "CLIENT_SECRET")

	// Map config to struct
	cfg := &Config{
		BatchSize: v.GetInt("batch_size"),
		Insecure:  v.GetBool("insecure"),
		LogLevel:  v.GetString("log_level"),
		Spotify: SpotifyConfig{
			ClientID:     v.GetString("spotify.client_id"),
			ClientSecret: v.GetString("spotify.client_secret"),
			Market:       v.GetString("spotify.market"),
		},
	}

	return cfg, nil
}

// loadDotEnv exports variables from path into the environment. Variables
// that are already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "soundstats")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file and returns its path
func (c *Config) Save() (string, error) {
	v := viper.New()

	configFile := filepath.Join(getConfigDir(), "config.yaml")

	// Set values in viper
	v.Set("batch_size", c.BatchSize)
	v.Set("insecure", c.Insecure)
	v.Set("log_level", c.LogLevel)
	v.Set("spotify.client_id", c.Spotify.ClientID)
	v.Set("spotify.client_secret", c.Spotify.ClientSecret)
	if c.Spotify.Market != "" {
		v.Set("spotify.market", c.Spotify.Market)
	}

	// Write to file
	if err := v.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}

	// The file holds the client secret
	if err := os.Chmod(configFile, 0600); err != nil {
		return "", fmt.Errorf("failed to set config permissions: %w", err)
	}

	return configFile, nil
}
