package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config describes where diagnostic output goes.
type Config struct {
	// Console receives entries at `ConsoleLevel` and above. Defaults to
	// stderr.
	Console io.Writer

	// ConsoleLevel is the console's minimum level; the zero value is INFO.
	ConsoleLevel zapcore.Level

	// Directory holds the log file. Defaults to the working directory.
	Directory string

	// FileName is the log file's name, e.g. `<timestamp>.log`. When empty
	// no log file is written.
	FileName string

	// FileLevel is the log file's minimum level.
	FileLevel zapcore.Level

	// Fields are attached to every entry.
	Fields []zap.Field
}

// Logger is a `*zap.Logger` along with the resources it owns.
type Logger struct {
	*zap.Logger

	// Path is the absolute path of the log file, or empty if there is none.
	Path string

	file *os.File
}

// New builds a logger teeing to the console and, if configured, to a log
// file. The caller must call `Close` on every exit path so buffered entries
// reach their destination.
func New(c Config) (logger *Logger, err error) {
	if c.Console == nil {
		c.Console = os.Stderr
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(
		"2006-01-02 15:04:05.000 -0700",
	)
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(
			encoder,
			zapcore.Lock(zapcore.AddSync(c.Console)),
			zap.NewAtomicLevelAt(c.ConsoleLevel),
		),
	}

	logger = new(Logger)
	if c.FileName != "" {
		directory := c.Directory
		if directory == "" {
			if directory, err = os.Getwd(); err != nil {
				return nil, fmt.Errorf("creating logger: %w", err)
			}
		}
		if logger.Path, err = filepath.Abs(
			filepath.Join(directory, c.FileName),
		); err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}

		if logger.file, err = os.OpenFile(
			logger.Path,
			os.O_WRONLY|os.O_CREATE|os.O_APPEND,
			0644,
		); err != nil {
			return nil, fmt.Errorf("creating logger: opening log file: %w", err)
		}

		cores = append(cores, zapcore.NewCore(
			encoder.Clone(),
			zapcore.AddSync(logger.file),
			zap.NewAtomicLevelAt(c.FileLevel),
		))
	}

	logger.Logger = zap.New(
		zapcore.NewTee(cores...),
		zap.AddStacktrace(zapcore.ErrorLevel),
	).With(c.Fields...)
	return logger, nil
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	// syncing stderr fails on some platforms; only the file matters here
	_ = l.Logger.Sync()
	if l.file != nil {
		return errors.Join(l.file.Sync(), l.file.Close())
	}
	return nil
}

// ParseLevel parses a level name such as `debug` or `INFO`.
func ParseLevel(s string) (level zapcore.Level, err error) {
	if err = level.UnmarshalText([]byte(s)); err != nil {
		err = fmt.Errorf("parsing log level `%s`: %w", s, err)
	}
	return
}

type contextKeyType string

const contextKey contextKeyType = "LOGGER"

// Context returns a copy of `ctx` carrying `logger`.
func Context(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKey, logger)
}

// FromContext returns the logger carried by `ctx`, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(contextKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}
