package huntglitch

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted when a Config field is left empty.
// PROJECT_KEY and DELIVERABLE_KEY keep the names used by the other
// HuntGlitch client libraries; the tuning values are namespaced.
const (
	EnvProjectKey     = "PROJECT_KEY"
	EnvDeliverableKey = "DELIVERABLE_KEY"
	EnvEndpoint       = "HUNTGLITCH_ENDPOINT"
	EnvTimeout        = "HUNTGLITCH_TIMEOUT"
	EnvRetries        = "HUNTGLITCH_RETRIES"
	EnvSilent         = "HUNTGLITCH_SILENT"
	EnvDumpDir        = "HUNTGLITCH_DUMP_DIR"
)

// Defaults applied when neither the Config field nor the corresponding
// environment variable provides a value.
const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
)

// Config holds the settings for a Logger. The zero value resolves
// everything from the environment.
type Config struct {
	// ProjectKey identifies the project on the HuntGlitch service.
	// Required; falls back to the PROJECT_KEY environment variable.
	ProjectKey string

	// DeliverableKey identifies the deliverable within the project.
	// Required; falls back to the DELIVERABLE_KEY environment variable.
	DeliverableKey string

	// Endpoint overrides the built-in ingestion URL. Intended for tests
	// and self-hosted deployments; leave empty for the public service.
	Endpoint string

	// Timeout is the per-request HTTP timeout. Defaults to 10s.
	Timeout time.Duration

	// MaxRetries is the number of additional delivery attempts after the
	// first one fails transiently. Defaults to 3.
	MaxRetries int

	// SilentFailures makes delivery failures come back as a false
	// Outcome.Delivered instead of a *DeliveryError.
	SilentFailures bool

	// DumpDir, when set, makes the Logger write a copy of every outgoing
	// payload to this directory for local inspection.
	DumpDir string

	// DebugLog receives diagnostic output (retry notices, swallowed
	// failures). Nil means the standard logger.
	DebugLog *log.Logger

	// maxRetriesSet distinguishes an explicit zero from an absent value.
	maxRetriesSet bool
}

// WithMaxRetries returns a copy of the config with an explicit retry count,
// including an explicit zero (meaning a single attempt, no retries).
func (c Config) WithMaxRetries(n int) Config {
	c.MaxRetries = n
	c.maxRetriesSet = true
	return c
}

// fileConfig is the YAML shape of a config file. Timeout is expressed in
// seconds; max_retries uses a pointer so an explicit zero (no retries) can
// be told apart from an absent key.
type fileConfig struct {
	ProjectKey     string `yaml:"project_key"`
	DeliverableKey string `yaml:"deliverable_key"`
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     *int   `yaml:"max_retries"`
	SilentFailures bool   `yaml:"silent_failures"`
	DumpDir        string `yaml:"dump_dir"`
}

// LoadConfig reads a YAML config file. Fields absent from the file are
// resolved from the environment and defaults when the Logger is created.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	err = yaml.Unmarshal(data, &fc)
	if err != nil {
		return nil, err
	}

	config := Config{
		ProjectKey:     fc.ProjectKey,
		DeliverableKey: fc.DeliverableKey,
		Endpoint:       fc.Endpoint,
		Timeout:        time.Duration(fc.TimeoutSeconds) * time.Second,
		SilentFailures: fc.SilentFailures,
		DumpDir:        fc.DumpDir,
	}
	if fc.MaxRetries != nil {
		config = config.WithMaxRetries(*fc.MaxRetries)
	}

	return &config, nil
}

// resolve fills in missing fields from the environment and defaults, then
// validates the required identifiers. Explicit fields always win over the
// environment.
func resolve(cfg Config) (Config, error) {
	if cfg.ProjectKey == "" {
		cfg.ProjectKey = os.Getenv(EnvProjectKey)
	}
	if cfg.DeliverableKey == "" {
		cfg.DeliverableKey = os.Getenv(EnvDeliverableKey)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = os.Getenv(EnvEndpoint)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		if v := os.Getenv(EnvTimeout); v != "" {
			if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
				cfg.Timeout = time.Duration(secs) * time.Second
			}
		}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if !cfg.maxRetriesSet && cfg.MaxRetries == 0 {
		if v := os.Getenv(EnvRetries); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				cfg.MaxRetries = n
				cfg.maxRetriesSet = true
			}
		}
	}
	if !cfg.maxRetriesSet && cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if !cfg.SilentFailures {
		if v := os.Getenv(EnvSilent); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				cfg.SilentFailures = b
			}
		}
	}
	if cfg.DumpDir == "" {
		cfg.DumpDir = os.Getenv(EnvDumpDir)
	}
	if cfg.DebugLog == nil {
		cfg.DebugLog = log.Default()
	}

	if cfg.ProjectKey == "" {
		return cfg, &ConfigurationError{Missing: "ProjectKey"}
	}
	if cfg.DeliverableKey == "" {
		return cfg, &ConfigurationError{Missing: "DeliverableKey"}
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return cfg, nil
}

func envNameFor(field string) string {
	switch field {
	case "ProjectKey":
		return EnvProjectKey
	case "DeliverableKey":
		return EnvDeliverableKey
	default:
		return field
	}
}
