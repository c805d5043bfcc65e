package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `json:"server"`
	AWS          AWSConfig          `json:"aws"`
	Certificates CertificatesConfig `json:"certificates"`
	Renderer     RendererConfig     `json:"renderer"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// AWSConfig represents the shared AWS client configuration. Endpoint
// is only set for local development against localstack.
type AWSConfig struct {
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
}

// CertificatesConfig names the stores backing certificate issuance.
type CertificatesConfig struct {
	Table  string `json:"table"`
	Bucket string `json:"bucket"`
}

// RendererConfig configures the headless browser.
type RendererConfig struct {
	ChromePath string        `json:"chrome_path"`
	Timeout    time.Duration `json:"timeout"`
	NoSandbox  bool          `json:"no_sandbox"`
	DebugPath  string        `json:"debug_path"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Default config
	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		AWS: AWSConfig{
			Region: "us-east-1",
		},
		Certificates: CertificatesConfig{
			Table:  "users_certificates",
			Bucket: "certificate-final",
		},
		Renderer: RendererConfig{
			Timeout: 30 * time.Second,
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		config.AWS.Region = region
	}
	if endpoint := os.Getenv("AWS_ENDPOINT"); endpoint != "" {
		config.AWS.Endpoint = endpoint
	}
	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		config.AWS.AccessKeyID = key
	}
	if secret := os.Getenv("AWS_SECRET_ACCESS_KEY"); secret != "" {
		config.AWS.SecretAccessKey = secret
	}
	if table := os.Getenv("CERTIFICATES_TABLE"); table != "" {
		config.Certificates.Table = table
	}
	if bucket := os.Getenv("CERTIFICATES_BUCKET"); bucket != "" {
		config.Certificates.Bucket = bucket
	}
	if path := os.Getenv("CHROME_PATH"); path != "" {
		config.Renderer.ChromePath = path
	}
	if timeout := os.Getenv("RENDERER_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Renderer.Timeout = d
		}
	}
	if os.Getenv("RENDERER_NO_SANDBOX") == "true" {
		config.Renderer.NoSandbox = true
	}
	if path := os.Getenv("RENDERER_DEBUG_PATH"); path != "" {
		config.Renderer.DebugPath = path
	}
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
