package domain

import "log/slog"

// SignatureAlgorithm selects how file contents are signed.
type SignatureAlgorithm string

const (
	// SignatureSHA256 signs with sha256 digests.
	SignatureSHA256 SignatureAlgorithm = "sha256"
	// SignatureXXH64 signs with 64-bit xxhash digests.
	SignatureXXH64 SignatureAlgorithm = "xxh64"
)

// TelemetryKind selects the telemetry backend.
type TelemetryKind string

const (
	// TelemetryNone disables build telemetry.
	TelemetryNone TelemetryKind = "none"
	// TelemetryProgrock records builds as progrock vertices.
	TelemetryProgrock TelemetryKind = "progrock"
)

// Config is the resolved project configuration.
type Config struct {
	StateDir  string
	Shell     string
	Signature SignatureAlgorithm
	LogLevel  slog.Level
	Telemetry TelemetryKind
}

// DefaultConfig returns the configuration used when redo.yaml is absent.
func DefaultConfig() Config {
	return Config{
		StateDir:  StateDirName,
		Shell:     "/bin/sh",
		Signature: SignatureSHA256,
		LogLevel:  slog.LevelInfo,
		Telemetry: TelemetryNone,
	}
}
