package config

import "time"

const (
	EnvConfigFile        = "NETMONITOR_CONFIG"
	EnvHTTPPort          = "HTTP_PORT"
	EnvGRPCPort          = "GRPC_PORT"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFile           = "LOG_FILE"
	EnvLogMaxSizeMB      = "LOG_MAX_SIZE_MB"
	EnvRefreshInterval   = "REFRESH_INTERVAL"
	EnvRefreshDelay      = "REFRESH_DELAY"
	EnvNoticeDuration    = "NOTICE_DURATION"
	EnvClipboard         = "CLIPBOARD"
	EnvGeneratorSeed     = "GENERATOR_SEED"
	EnvIngestTokenSecret = "INGEST_TOKEN_SECRET"
	EnvShutdownTimeout   = "SHUTDOWN_TIMEOUT"

	DefaultHTTPPort        = 8080
	DefaultGRPCPort        = 50051
	DefaultLogLevel        = "info"
	DefaultLogMaxSizeMB    = 10
	DefaultRefreshInterval = 5 * time.Second
	DefaultRefreshDelay    = 600 * time.Millisecond
	DefaultNoticeDuration  = 2 * time.Second
	DefaultClipboard       = ClipboardSystem
	DefaultShutdownTimeout = 10 * time.Second

	ClipboardSystem = "system"
	ClipboardMemory = "memory"
)
