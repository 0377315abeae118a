package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port             int    `envconfig:"PORT" default:"5000"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL      string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret        string `envconfig:"JWT_SECRET" required:"true"`
	TokenTTLMinutes  int    `envconfig:"TOKEN_TTL_MINUTES" default:"60"`
	BcryptCost       int    `envconfig:"BCRYPT_COST" default:"10"`
	PhotoDir         string `envconfig:"PHOTO_DIR" default:"./uploads"`
	InferenceCommand string `envconfig:"INFERENCE_COMMAND" default:"python3"`
	InferenceScript  string `envconfig:"INFERENCE_SCRIPT" default:"./ocr_processing.py"`
	InferenceTimeout int    `envconfig:"INFERENCE_TIMEOUT_SECONDS" default:"60"`
	Version          string `envconfig:"VERSION" default:"dev"`
}

// Load reads configuration from environment variables into a Config struct.
// A missing DATABASE_URL or JWT_SECRET fails here, at startup, not on the
// first request that needs it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
