package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Screen holds the refresh timing of the monitor screen.
type Screen struct {
	RefreshInterval time.Duration `yaml:"refreshInterval"`
	RefreshDelay    time.Duration `yaml:"refreshDelay"`
	NoticeDuration  time.Duration `yaml:"noticeDuration"`
}

// Log holds logging output settings.
type Log struct {
	Level     string `yaml:"level"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"maxSizeMb"`
}

// Config is the application configuration. Values come from defaults, then
// an optional YAML file, then environment variables.
type Config struct {
	HttpPort          int           `yaml:"httpPort"`
	GrpcPort          int           `yaml:"grpcPort"`
	Log               Log           `yaml:"log"`
	Screen            Screen        `yaml:"screen"`
	Clipboard         string        `yaml:"clipboard"`
	GeneratorSeed     int64         `yaml:"generatorSeed"`
	IngestTokenSecret string        `yaml:"ingestTokenSecret"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
}

func Default() *Config {
	return &Config{
		HttpPort: DefaultHTTPPort,
		GrpcPort: DefaultGRPCPort,
		Log: Log{
			Level:     DefaultLogLevel,
			MaxSizeMB: DefaultLogMaxSizeMB,
		},
		Screen: Screen{
			RefreshInterval: DefaultRefreshInterval,
			RefreshDelay:    DefaultRefreshDelay,
			NoticeDuration:  DefaultNoticeDuration,
		},
		Clipboard:       DefaultClipboard,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Load builds the configuration from defaults, the file named by
// NETMONITOR_CONFIG (if any) and environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Log.Level = normalizeLogLevel(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) error {
	var err error

	if cfg.HttpPort, err = getEnvInt(EnvHTTPPort, cfg.HttpPort); err != nil {
		return fmt.Errorf("invalid %s: %w", EnvHTTPPort, err)
	}
	if cfg.GrpcPort, err = getEnvInt(EnvGRPCPort, cfg.GrpcPort); err != nil {
		return fmt.Errorf("invalid %s: %w", EnvGRPCPort, err)
	}
	if cfg.Log.MaxSizeMB, err = getEnvInt(EnvLogMaxSizeMB, cfg.Log.MaxSizeMB); err != nil {
		return fmt.Errorf("invalid %s: %w", EnvLogMaxSizeMB, err)
	}
	if cfg.Screen.RefreshInterval, err = getEnvDuration(EnvRefreshInterval, cfg.Screen.RefreshInterval); err != nil {
		return fmt.Errorf("invalid %s: %w", EnvRefreshInterval, err)
	}
	if cfg.Screen.RefreshDelay, err = getEnvDuration(EnvRefreshDelay, cfg.Screen.RefreshDelay); err != nil {
		return fmt.Errorf("invalid %s: %w", EnvRefreshDelay, err)
	}
	if cfg.Screen.NoticeDuration, err = getEnvDuration(EnvNoticeDuration, cfg.Screen.NoticeDuration); err != nil {
		return fmt.Errorf("invalid %s: %w", EnvNoticeDuration, err)
	}
	if cfg.ShutdownTimeout, err = getEnvDuration(EnvShutdownTimeout, cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid %s: %w", EnvShutdownTimeout, err)
	}
	if cfg.GeneratorSeed, err = getEnvInt64(EnvGeneratorSeed, cfg.GeneratorSeed); err != nil {
		return fmt.Errorf("invalid %s: %w", EnvGeneratorSeed, err)
	}

	cfg.Log.Level = getEnvString(EnvLogLevel, cfg.Log.Level)
	cfg.Log.File = getEnvString(EnvLogFile, cfg.Log.File)
	cfg.Clipboard = getEnvString(EnvClipboard, cfg.Clipboard)
	cfg.IngestTokenSecret = getEnvString(EnvIngestTokenSecret, cfg.IngestTokenSecret)

	return nil
}

// Validate checks value ranges that would otherwise break the screen loop.
func (c *Config) Validate() error {
	var errs []error

	if c.HttpPort <= 0 || c.HttpPort > 65535 {
		errs = append(errs, fmt.Errorf("http port out of range: %d", c.HttpPort))
	}
	if c.GrpcPort <= 0 || c.GrpcPort > 65535 {
		errs = append(errs, fmt.Errorf("grpc port out of range: %d", c.GrpcPort))
	}
	if c.Screen.RefreshInterval <= 0 {
		errs = append(errs, errors.New("refresh interval must be positive"))
	}
	if c.Screen.RefreshDelay < 0 {
		errs = append(errs, errors.New("refresh delay must not be negative"))
	}
	if c.Screen.RefreshDelay >= c.Screen.RefreshInterval && c.Screen.RefreshInterval > 0 {
		errs = append(errs, errors.New("refresh delay must be shorter than the refresh interval"))
	}
	if c.Screen.NoticeDuration <= 0 {
		errs = append(errs, errors.New("notice duration must be positive"))
	}
	switch c.Clipboard {
	case ClipboardSystem, ClipboardMemory:
	default:
		errs = append(errs, fmt.Errorf("unsupported clipboard: %q", c.Clipboard))
	}

	return errors.Join(errs...)
}

func getEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return parsed, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	return strconv.ParseInt(value, 10, 64)
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	return parsed, nil
}

// normalizeLogLevel maps a textual level onto a supported value.
func normalizeLogLevel(level string) string {
	switch level {
	case "debug", "info", "warn", "error":
		return level
	case "warning":
		return "warn"
	default:
		return DefaultLogLevel
	}
}
