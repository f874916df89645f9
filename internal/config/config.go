package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           string `yaml:"port"`
	DBDSN          string `yaml:"db_dsn"`
	DataDir        string `yaml:"data_dir"`
	LogFile        string `yaml:"log_file"`
	AIAPIKey       string `yaml:"ai_api_key"`
	AIModel        string `yaml:"ai_model"`
	AIEndpoint     string `yaml:"ai_endpoint"`
	PaymentDelayMs int    `yaml:"payment_delay_ms"`
}

// Load resolves config in three layers: defaults, an optional YAML file
// (LUMINA_CONFIG, default ./lumina.yaml), then environment overrides.
func Load() Config {
	cfg := Config{
		Port:           "8080",
		DBDSN:          "lumina.db", // sqlite file in project root
		DataDir:        "./data",
		LogFile:        "./lumina.log",
		PaymentDelayMs: 2000,
	}

	path := os.Getenv("LUMINA_CONFIG")
	if path == "" {
		path = "./lumina.yaml"
	}
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			log.Printf("[config] ignoring unreadable %s: %v", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AIAPIKey = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		cfg.AIModel = v
	}
	if v := os.Getenv("AI_ENDPOINT"); v != "" {
		cfg.AIEndpoint = v
	}

	log.Printf("[config] PORT=%s DB_DSN=%s DATA_DIR=%s LOG_FILE=%s AI_MODEL=%s",
		cfg.Port, cfg.DBDSN, cfg.DataDir, cfg.LogFile, cfg.AIModel)
	return cfg
}
