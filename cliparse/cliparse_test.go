// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("API_BASE_URL", "https://api.test.example")
	os.Setenv("DB_PATH", "test.db")
	defer os.Clearenv()

	cfg, rest, err := ParseFlags([]string{"drafts"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BaseURL != "https://api.test.example" {
		t.Errorf("expected base URL from env, got %s", cfg.BaseURL)
	}
	if cfg.DBPath != "test.db" {
		t.Errorf("expected db path from env, got %s", cfg.DBPath)
	}
	if len(rest) != 1 || rest[0] != "drafts" {
		t.Errorf("expected subcommand passthrough, got %v", rest)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("API_BASE_URL", "https://env.example")
	defer os.Clearenv()

	cfg, _, err := ParseFlags([]string{"-b", "https://flag.example"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.BaseURL != "https://flag.example" {
		t.Errorf("CLI should override env: expected flag URL, got %s", cfg.BaseURL)
	}
}

func TestParseFlags_ConfigFile(t *testing.T) {
	os.Clearenv()

	path := filepath.Join(t.TempDir(), "fieldsync.yaml")
	yaml := "base_url: https://file.example\ndb_path: file.db\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := ParseFlags([]string{"-c", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BaseURL != "https://file.example" {
		t.Errorf("expected base URL from file, got %s", cfg.BaseURL)
	}
	if cfg.DBPath != "file.db" {
		t.Errorf("expected db path from file, got %s", cfg.DBPath)
	}
}

func TestParseFlags_EnvOverridesFile(t *testing.T) {
	os.Setenv("DB_PATH", "env.db")
	defer os.Clearenv()

	path := filepath.Join(t.TempDir(), "fieldsync.yaml")
	yaml := "base_url: https://file.example\ndb_path: file.db\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := ParseFlags([]string{"-c", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DBPath != "env.db" {
		t.Errorf("env should override file: expected env.db, got %s", cfg.DBPath)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, _, err := ParseFlags([]string{"-b", "https://api.test.example"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DBPath != "fieldsync.db" {
		t.Errorf("expected default db path, got %s", cfg.DBPath)
	}
}

func TestParseFlags_RequiresBaseURL(t *testing.T) {
	os.Clearenv()

	if _, _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when no base URL is configured")
	}
}
