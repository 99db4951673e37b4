// Package logging creates per-package zap loggers for nulterm.
//
// All loggers write JSON lines to stderr through one shared core.
// Each package has its own level, read from the environment when the package
// first asks for a logger:
//
//	NULTERM_LOG_arena=D   debug logging in package arena
//	NULTERM_LOG=W         warnings and above everywhere else
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the environment variable that configures log levels.
// EnvPrefix+"_"+pkg applies to one package; EnvPrefix alone applies to all packages.
const EnvPrefix = "NULTERM_LOG"

func envLevel(pkg string) string {
	if v, ok := os.LookupEnv(EnvPrefix + "_" + pkg); ok {
		return v
	}
	return os.Getenv(EnvPrefix)
}

func newRoot() *zap.Logger {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "t"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.NameKey = "pkg"

	// per-package levels are applied in New; the shared core passes everything
	core := zapcore.NewCore(zapcore.NewJSONEncoder(ec), zapcore.Lock(os.Stderr), zap.DebugLevel)
	return zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr)))
}

var root = newRoot()

// Named returns a logger for pkg that ignores the package level.
func Named(pkg string) *zap.Logger {
	return root.Named(pkg)
}

// New returns a logger for pkg filtered by its package level.
//
// Declare it once per package, next to the package doc:
//
//	var logger = logging.New("arena")
func New(pkg string) *zap.Logger {
	return Named(pkg).WithOptions(zap.IncreaseLevel(GetLevel(pkg).al))
}
