package huntglitch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearKeyEnv blanks the identifier variables so a developer's shell
// environment cannot leak into the test.
func clearKeyEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvProjectKey, "")
	t.Setenv(EnvDeliverableKey, "")
	t.Setenv(EnvEndpoint, "")
	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvRetries, "")
	t.Setenv(EnvSilent, "")
	t.Setenv(EnvDumpDir, "")
}

func TestNewRequiresIdentifiers(t *testing.T) {
	clearKeyEnv(t)

	testCases := []struct {
		name            string
		config          Config
		expectedMissing string
	}{
		{"both keys present", Config{ProjectKey: "p", DeliverableKey: "d"}, ""},
		{"missing project key", Config{DeliverableKey: "d"}, "ProjectKey"},
		{"missing deliverable key", Config{ProjectKey: "p"}, "DeliverableKey"},
		{"both missing reports project first", Config{}, "ProjectKey"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.config)

			if tc.expectedMissing == "" {
				if err != nil {
					t.Fatalf("Expected construction to succeed, got %v", err)
				}
				return
			}

			var confErr *ConfigurationError
			if !errors.As(err, &confErr) {
				t.Fatalf("Expected *ConfigurationError, got %v", err)
			}
			if confErr.Missing != tc.expectedMissing {
				t.Errorf("Expected missing field %q, got %q", tc.expectedMissing, confErr.Missing)
			}
		})
	}
}

func TestEnvironmentFallbackAndPrecedence(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv(EnvProjectKey, "env-project")
	t.Setenv(EnvDeliverableKey, "env-deliverable")

	logger, err := NewFromEnv()
	if err != nil {
		t.Fatal("Expected env-configured logger:", err)
	}
	if logger.Config().ProjectKey != "env-project" {
		t.Errorf("Expected project key from environment, got %q", logger.Config().ProjectKey)
	}

	// Explicit values win over the environment
	logger, err = New(Config{ProjectKey: "explicit-project", DeliverableKey: "explicit-deliverable"})
	if err != nil {
		t.Fatal("Expected explicitly configured logger:", err)
	}
	if logger.Config().ProjectKey != "explicit-project" {
		t.Errorf("Expected explicit project key to win, got %q", logger.Config().ProjectKey)
	}
	if logger.Config().DeliverableKey != "explicit-deliverable" {
		t.Errorf("Expected explicit deliverable key to win, got %q", logger.Config().DeliverableKey)
	}
}

func TestDefaultTuningValues(t *testing.T) {
	clearKeyEnv(t)

	logger, err := New(Config{ProjectKey: "p", DeliverableKey: "d"})
	if err != nil {
		t.Fatal(err)
	}

	cfg := logger.Config()
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultTimeout, cfg.Timeout)
	}
	if cfg.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected default retries %d, got %d", DefaultMaxRetries, cfg.MaxRetries)
	}
	if cfg.SilentFailures {
		t.Error("Expected silent failures to default to false")
	}
	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("Expected default endpoint, got %q", cfg.Endpoint)
	}
}

func TestTuningFromEnvironment(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv(EnvTimeout, "25")
	t.Setenv(EnvRetries, "7")
	t.Setenv(EnvSilent, "true")
	t.Setenv(EnvEndpoint, "http://localhost:8311/v1/log")

	logger, err := New(Config{ProjectKey: "p", DeliverableKey: "d"})
	if err != nil {
		t.Fatal(err)
	}

	cfg := logger.Config()
	if cfg.Timeout != 25*time.Second {
		t.Errorf("Expected 25s timeout from environment, got %v", cfg.Timeout)
	}
	if cfg.MaxRetries != 7 {
		t.Errorf("Expected 7 retries from environment, got %d", cfg.MaxRetries)
	}
	if !cfg.SilentFailures {
		t.Error("Expected silent failures enabled from environment")
	}
	if cfg.Endpoint != "http://localhost:8311/v1/log" {
		t.Errorf("Expected endpoint from environment, got %q", cfg.Endpoint)
	}
}

func TestExplicitZeroRetries(t *testing.T) {
	clearKeyEnv(t)

	logger, err := New(Config{ProjectKey: "p", DeliverableKey: "d"}.WithMaxRetries(0))
	if err != nil {
		t.Fatal(err)
	}
	if logger.Config().MaxRetries != 0 {
		t.Errorf("Expected explicit zero retries to stick, got %d", logger.Config().MaxRetries)
	}
}

func TestLoadConfig(t *testing.T) {
	clearKeyEnv(t)

	configYAML := `
project_key: yaml-project
deliverable_key: yaml-deliverable
endpoint: http://localhost:8311/v1/log
timeout_seconds: 20
max_retries: 0
silent_failures: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal("Expected config file to load:", err)
	}

	logger, err := New(*cfg)
	if err != nil {
		t.Fatal(err)
	}

	resolved := logger.Config()
	if resolved.ProjectKey != "yaml-project" {
		t.Errorf("Expected project key from file, got %q", resolved.ProjectKey)
	}
	if resolved.Timeout != 20*time.Second {
		t.Errorf("Expected 20s timeout from file, got %v", resolved.Timeout)
	}
	if resolved.MaxRetries != 0 {
		t.Errorf("Expected explicit zero retries from file, got %d", resolved.MaxRetries)
	}
	if !resolved.SilentFailures {
		t.Error("Expected silent failures enabled from file")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}
