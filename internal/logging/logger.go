package logging

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "RESEARCH_AGENT_LOG_LEVEL"

// maxBodyLog caps how much of a response body is written to debug logs.
const maxBodyLog = 512

// Initialize creates a new logger with the specified level.
// If level is empty, it checks RESEARCH_AGENT_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
//
// outputPath selects where entries go. Empty means stdout; the full-screen
// wizard passes a file path so log lines never land on the terminal it owns.
func Initialize(level, outputPath string) error {
	// If no level provided, check environment variable
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	// If still no level, use silent mode (nop logger)
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := ParseLevel(level)
	if err != nil {
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	if outputPath == "" {
		outputPath = "stdout"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{outputPath},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if outputPath == "stdout" || outputPath == "stderr" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		// No escape codes in files
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the RESEARCH_AGENT_LOG_LEVEL
// environment variable, writing to stdout.
func InitializeFromEnv() error {
	return Initialize("", "")
}

// ParseLevel maps a level name onto a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// SetLogger replaces the global logger. Tests use it with an observer core.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Credential returns a field carrying a masked form of an API key. Only the
// last four characters survive, and only when the key is long enough that
// they give nothing away.
func Credential(key, value string) zap.Field {
	return zap.String(key, MaskCredential(value))
}

// MaskCredential hides a secret for display in logs.
func MaskCredential(value string) string {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		return "<empty>"
	case n < 12:
		return strings.Repeat("*", 8)
	default:
		runes := []rune(value)
		return strings.Repeat("*", 8) + string(runes[n-4:])
	}
}

// LogHTTPRequest logs an outgoing HTTP request
func LogHTTPRequest(requestID, method, url string, bodySize int) {
	Info("HTTP request sent",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("body_size", bodySize),
	)
}

// LogHTTPResponse logs an HTTP response
func LogHTTPResponse(requestID string, statusCode int, body []byte) {
	Info("HTTP response received",
		zap.String("request_id", requestID),
		zap.Int("status_code", statusCode),
		zap.Int("length", len(body)),
	)

	if GetLogger().Core().Enabled(zapcore.DebugLevel) {
		Debug("HTTP response body",
			zap.String("request_id", requestID),
			zap.String("body", bodyDump(body)),
		)
	}
}

func bodyDump(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if len(data) > maxBodyLog {
		return string(data[:maxBodyLog]) + "..."
	}
	return string(data)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
