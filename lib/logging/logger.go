package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Subsystem names every component uses when asking CreateLogger for its
// logger.
const (
	SubsystemDict     = "dict"
	SubsystemHashval  = "hashval"
	SubsystemListval  = "listval"
	SubsystemKeyspace = "keyspace"
	SubsystemReclaim  = "reclaim"
	SubsystemBlocking = "blocking"
	SubsystemEngine   = "engine"
	SubsystemRPC      = "rpc"
	SubsystemCmd      = "cmd"
)

// level is shared by every logger CreateLogger hands out, so a single
// InitLoggers/SetLevel call reconfigures the whole tree at once.
var level = zap.NewAtomicLevel()

var base = zap.New(zapcore.NewCore(
	consoleEncoder(),
	zapcore.AddSync(os.Stdout),
	level,
))

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// CreateLogger returns a leveled, named logger for one subsystem. All
// loggers it returns share the level set by SetLevel/InitLoggers.
func CreateLogger(subsystem string) *zap.SugaredLogger {
	return base.Named(subsystem).Sugar()
}

// SetLevel adjusts every logger CreateLogger has handed out (and will
// hand out), since they all share the same atomic level enabler.
func SetLevel(logLevel string) {
	level.SetLevel(parseLogLevel(logLevel))
}

// InitLoggers configures the module's logging level from a single
// config knob.
func InitLoggers(logLevel string) {
	SetLevel(logLevel)
}

// parseLogLevel converts a string level to a zapcore.Level.
func parseLogLevel(logLevel string) zapcore.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warning", "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		panic(fmt.Sprintf("invalid log level: %s. must be one of debug, info, warn, error", logLevel))
	}
}

// Sync flushes any buffered log entries, matching zap's documented
// shutdown idiom. Errors from Sync on a console stream are expected on
// some platforms and are intentionally ignored.
func Sync() {
	_ = base.Sync()
}
