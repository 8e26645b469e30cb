// internal/logger/logger.go
//
// Structured JSON logger (Zap + Lumberjack).
//
// Context
// -------
// The dev/edge server writes lifecycle and error events to one JSON log
// per day under `<dir>/YYYY-MM-DD.log`.  When running in an interactive
// TTY we tee the same events to stdout.  Rotation, compression, and
// retention are handled by Lumberjack; no external log-rotate job is
// required.
//
// Function platforms capture stdout and have no writable log directory
// worth keeping, so an empty dir drops the file sink and logs JSON to
// stdout instead.
//
// Usage
// -----
//
//	log, err := logger.New(filepath.Join(root, cfg.Log.Dir), isTTY(), cfg.Log.Level)
//	if err != nil { … }
//	log.Infow("adapter online", "adapter", name)
//
// Notes
// -----
// • Zap core uses ISO-8601 timestamps and lowercase levels.
// • Errors are written to the same sink via `ErrorOutput`.
// • Oxford commas, two spaces after periods.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var encCfg = zapcore.EncoderConfig{
	TimeKey:      "ts",
	LevelKey:     "level",
	MessageKey:   "msg",
	CallerKey:    "caller",
	EncodeTime:   zapcore.ISO8601TimeEncoder,
	EncodeLevel:  zapcore.LowercaseLevelEncoder,
	EncodeCaller: zapcore.ShortCallerEncoder,
}

// New returns a *zap.SugaredLogger at level ("debug", "info", "warn",
// "error").  With a non-empty dir it writes JSON to dir/YYYY-MM-DD.log
// and, when tee is true, a console copy to stdout.  With an empty dir it
// writes JSON to stdout only.  The logger is installed as the
// process-wide default via zap.ReplaceGlobals.
func New(dir string, tee bool, level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	var (
		cores []zapcore.Core
		errTo zapcore.WriteSyncer = zapcore.AddSync(os.Stderr)
	)

	if dir == "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(os.Stdout),
			lvl,
		))
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		fileSink := &lumberjack.Logger{
			Filename:   filepath.Join(dir, time.Now().Format("2006-01-02")+".log"),
			MaxSize:    50, // MB
			MaxBackups: 7,  // keep last seven files
			MaxAge:     14, // days
			Compress:   true,
		}
		errTo = zapcore.AddSync(fileSink)
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), errTo, lvl))

		if tee {
			cores = append(cores, zapcore.NewCore(
				zapcore.NewConsoleEncoder(encCfg),
				zapcore.AddSync(os.Stdout),
				lvl,
			))
		}
	}

	z := zap.New(zapcore.NewTee(cores...), zap.ErrorOutput(errTo)).Sugar()

	// Make this the global logger so zap.S() works everywhere after startup.
	zap.ReplaceGlobals(z.Desugar())

	z.Infow("logger online", "tee", tee, "level", lvl.String(), "dir", dir)
	return z, nil
}
