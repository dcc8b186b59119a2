package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Free-tier defaults, matching the hosted service conventions.
const (
	DefaultPort              = 8000
	DefaultSocialMediaPort   = 8010
	DefaultMaxImageSize      = 10485760 // 10 MiB
	DefaultRequestsPerMinute = 15
	DefaultRequestsPerDay    = 1500
	DefaultGeminiModel       = "gemini-1.5-flash"
	DefaultGroqModel         = "qwen/qwen3-32b"
	DefaultDownloadTimeout   = 30   // seconds
	DefaultMaxDimension      = 1024 // px, larger images are downscaled before analysis
)

// AppConfig ...
type AppConfig struct {
	DesignAI struct {
		Port              int      `yaml:"port"`
		LogLevel          string   `yaml:"loglevel"`
		GeminiAPIKey      string   `yaml:"geminiAPIKey"`
		Model             string   `yaml:"model"`
		MaxImageSize      int      `yaml:"maxImageSize"`
		MaxDimension      int      `yaml:"maxDimension"`
		AllowedFormats    []string `yaml:"allowedFormats"`
		RequestsPerMinute int      `yaml:"requestsPerMinute"`
		RequestsPerDay    int      `yaml:"requestsPerDay"`
		DownloadTimeout   int      `yaml:"downloadTimeout"`
	} `yaml:"designai"`
	SocialMedia struct {
		Port       int    `yaml:"port"`
		LogLevel   string `yaml:"loglevel"`
		GroqAPIKey string `yaml:"groqAPIKey"`
		Model      string `yaml:"model"`
	} `yaml:"socialmedia"`
	Storage struct {
		DSN        string `yaml:"dsn"`
		Expiration int    `yaml:"expiration"` // seconds, 0 disables the retention janitor
	} `yaml:"storage"`
	Archive struct {
		Enabled bool   `yaml:"enabled"`
		Bucket  string `yaml:"bucket"`
	} `yaml:"archive"`
	AWS struct {
		Region             string `yaml:"region"`
		CredentialsFile    string `yaml:"credentialsFile"`
		CredentialsProfile string `yaml:"credentialsProfile"`
	} `yaml:"aws"`
}

func defaults() *AppConfig {
	cfg := &AppConfig{}
	cfg.DesignAI.Port = DefaultPort
	cfg.DesignAI.LogLevel = "info"
	cfg.DesignAI.Model = DefaultGeminiModel
	cfg.DesignAI.MaxImageSize = DefaultMaxImageSize
	cfg.DesignAI.MaxDimension = DefaultMaxDimension
	cfg.DesignAI.AllowedFormats = []string{"png", "jpg", "jpeg", "webp", "gif"}
	cfg.DesignAI.RequestsPerMinute = DefaultRequestsPerMinute
	cfg.DesignAI.RequestsPerDay = DefaultRequestsPerDay
	cfg.DesignAI.DownloadTimeout = DefaultDownloadTimeout
	cfg.SocialMedia.Port = DefaultSocialMediaPort
	cfg.SocialMedia.LogLevel = "info"
	cfg.SocialMedia.Model = DefaultGroqModel
	return cfg
}

// Read builds the configuration from defaults, an optional yaml file named by
// CFG_PATH and environment overrides. The container must boot without a config
// file, so an unset CFG_PATH is not an error.
func Read() (*AppConfig, error) {
	cfg := defaults()
	if filename := os.Getenv("CFG_PATH"); filename != "" {
		buff, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		if err = yaml.Unmarshal(buff, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT value %q: %w", v, err)
		}
		cfg.DesignAI.Port = port
	}
	if v := os.Getenv("SOCIALMEDIA_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SOCIALMEDIA_PORT value %q: %w", v, err)
		}
		cfg.SocialMedia.Port = port
	}
	if v := os.Getenv("MAX_IMAGE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_IMAGE_SIZE value %q: %w", v, err)
		}
		cfg.DesignAI.MaxImageSize = size
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.DesignAI.GeminiAPIKey = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.SocialMedia.GroqAPIKey = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	return nil
}
