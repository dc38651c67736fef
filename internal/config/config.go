package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Google    GoogleConfig    `yaml:"google"`
	Gmail     GmailConfig     `yaml:"gmail"`
}

// TransportConfig selects how the server is exposed: "http" for the REST
// surface, "stdio" for the MCP tool surface.
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DBConfig selects the store. Driver is "sqlite" or "firestore"; Path applies
// to sqlite, ProjectID to firestore.
type DBConfig struct {
	Driver    string `yaml:"driver"`
	Path      string `yaml:"path"`
	ProjectID string `yaml:"projectId"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type OpenAIConfig struct {
	BaseURL string `yaml:"baseUrl"`
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
}

type GoogleConfig struct {
	MapsAPIKey string `yaml:"mapsApiKey"`
}

type GmailConfig struct {
	CredentialsFile string `yaml:"credentialsFile"`
	From            string `yaml:"from"`
}

// Load reads configuration from an optional .env file, an optional YAML file,
// and environment variables, in increasing precedence.
func Load() (Config, error) {
	// Missing .env is fine; explicit env vars always win over it.
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		DB: DBConfig{
			Driver: "sqlite",
			Path:   "openhouse.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		OpenAI: OpenAIConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
		},
	}

	if path := os.Getenv("OPENHOUSE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("OPENHOUSE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("OPENHOUSE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OPENHOUSE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("OPENHOUSE_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if driver := os.Getenv("OPENHOUSE_DB_DRIVER"); driver != "" {
		cfg.DB.Driver = driver
	}
	if dbPath := os.Getenv("OPENHOUSE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if projectID := os.Getenv("OPENHOUSE_FIRESTORE_PROJECT"); projectID != "" {
		cfg.DB.ProjectID = projectID
	}
	if level := os.Getenv("OPENHOUSE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.OpenAI.BaseURL = baseURL
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.OpenAI.APIKey = apiKey
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.OpenAI.Model = model
	}
	if mapsKey := os.Getenv("GOOGLE_MAPS_API_KEY"); mapsKey != "" {
		cfg.Google.MapsAPIKey = mapsKey
	}
	if creds := os.Getenv("GMAIL_CREDENTIALS_FILE"); creds != "" {
		cfg.Gmail.CredentialsFile = creds
	}
	if from := os.Getenv("GMAIL_FROM"); from != "" {
		cfg.Gmail.From = from
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DB.Driver {
	case "sqlite":
		if c.DB.Path == "" {
			return fmt.Errorf("db path is required for the sqlite driver")
		}
	case "firestore":
		if c.DB.ProjectID == "" {
			return fmt.Errorf("firestore project id is required for the firestore driver")
		}
	default:
		return fmt.Errorf("unknown db driver %q", c.DB.Driver)
	}
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("unknown transport mode %q", c.Transport.Mode)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
