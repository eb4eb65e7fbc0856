package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL string
	DBPath  string
}

// fileConfig is the optional YAML config file's shape.
type fileConfig struct {
	BaseURL string `yaml:"base_url"`
	DBPath  string `yaml:"db_path"`
}

// ParseFlags validates flags and assembles the configuration, returning
// the positional arguments left over (the subcommand and its flags).
// Precedence: CLI flag > environment variable > config file > default.
func ParseFlags(args []string) (Config, []string, error) {
	var cfg Config
	var cfgFile string

	fs := flag.NewFlagSet("fieldsync", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "b", "", "API base URL")
	fs.StringVar(&cfg.DBPath, "db", "", "On-device database path")
	fs.StringVar(&cfgFile, "c", "", "YAML config file")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	// A .env beside the binary is a dev convenience; absence is fine.
	_ = godotenv.Load()

	// Config file: flag, then env, then the conventional name if present
	if cfgFile == "" {
		cfgFile = os.Getenv("FIELDSYNC_CONFIG")
	}
	if cfgFile == "" {
		if _, err := os.Stat("fieldsync.yaml"); err == nil {
			cfgFile = "fieldsync.yaml"
		}
	}

	var file fileConfig
	if cfgFile != "" {
		data, err := os.ReadFile(cfgFile)
		if err != nil {
			return Config{}, nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Config{}, nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Fall back to environment variables, then the config file
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("API_BASE_URL")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = file.BaseURL
	}
	if cfg.BaseURL == "" {
		return Config{}, nil, errors.New("API base URL required (use -b or API_BASE_URL env)")
	}

	if cfg.DBPath == "" {
		cfg.DBPath = os.Getenv("DB_PATH")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = file.DBPath
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "fieldsync.db" // default
	}

	return cfg, fs.Args(), nil
}
