// Package logging contains functionality for trike logging.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging interface used throughout trike. It is a thin veneer over a
// zap.SugaredLogger so that components can be handed a named sublogger.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})

	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Sublogger returns a child logger whose name is "<parent>.<subname>".
	Sublogger(subname string) Logger
	SetLevel(level Level)
	GetLevel() Level
	AsZap() *zap.SugaredLogger
	Sync() error
}

// NewLoggerConfig returns a new default logger config.
func NewLoggerConfig() zap.Config {
	// from https://github.com/uber-go/zap/blob/2314926ec34c23ee21f3dd4399438469668f8097/config.go#L135
	// but disable stacktraces, use same keys as prod, and color levels.
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

type impl struct {
	name  string
	level zap.AtomicLevel
	inUTC bool
	core  zapcore.Core
}

func newImpl(name string, level Level, inUTC bool, core zapcore.Core) *impl {
	return &impl{name: name, level: zap.NewAtomicLevelAt(level.AsZap()), inUTC: inUTC, core: core}
}

// NewLogger returns a new logger that outputs Info+ logs to stdout.
func NewLogger(name string) Logger {
	return newImpl(name, INFO, true, consoleCore(zapcore.Lock(os.Stdout)))
}

// NewDebugLogger returns a new logger that outputs Debug+ logs to stdout.
func NewDebugLogger(name string) Logger {
	return newImpl(name, DEBUG, true, consoleCore(zapcore.Lock(os.Stdout)))
}

// NewBlankLogger returns a new logger that outputs Debug+ logs but without any
// outputs attached.
func NewBlankLogger(name string) Logger {
	return newImpl(name, DEBUG, true, zapcore.NewNopCore())
}

// NewFileLogger returns a logger that writes Info+ logs as JSON lines to a size-rotated file.
func NewFileLogger(name, path string) Logger {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    20, // megabytes
		MaxBackups: 3,
		Compress:   true,
	}
	encoderCfg := NewLoggerConfig().EncoderConfig
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotator), zapcore.DebugLevel)
	return newImpl(name, INFO, true, core)
}

func consoleCore(ws zapcore.WriteSyncer) zapcore.Core {
	encoderCfg := NewLoggerConfig().EncoderConfig
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), ws, zapcore.DebugLevel)
}

func (imp *impl) sugar() *zap.SugaredLogger {
	// the core accepts every level; the atomic level owned by this logger does the filtering.
	return zap.New(imp.leveled(), zap.AddCaller(), zap.AddCallerSkip(1)).Named(imp.name).Sugar()
}

func (imp *impl) AsZap() *zap.SugaredLogger {
	return zap.New(imp.leveled(), zap.AddCaller()).Named(imp.name).Sugar()
}

func (imp *impl) leveled() zapcore.Core {
	return &leveledCore{Core: imp.core, level: imp.level, inUTC: imp.inUTC}
}

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = fmt.Sprintf("%s.%s", imp.name, subname)
	}
	return newImpl(newName, imp.GetLevel(), imp.inUTC, imp.core)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.SetLevel(level.AsZap())
}

func (imp *impl) GetLevel() Level {
	return LevelFromZap(imp.level.Level())
}

func (imp *impl) Sync() error {
	return imp.core.Sync()
}

func (imp *impl) Debug(args ...interface{}) { imp.sugar().Debug(args...) }
func (imp *impl) Info(args ...interface{})  { imp.sugar().Info(args...) }
func (imp *impl) Warn(args ...interface{})  { imp.sugar().Warn(args...) }
func (imp *impl) Error(args ...interface{}) { imp.sugar().Error(args...) }

func (imp *impl) Debugf(template string, args ...interface{}) { imp.sugar().Debugf(template, args...) }
func (imp *impl) Infof(template string, args ...interface{})  { imp.sugar().Infof(template, args...) }
func (imp *impl) Warnf(template string, args ...interface{})  { imp.sugar().Warnf(template, args...) }
func (imp *impl) Errorf(template string, args ...interface{}) { imp.sugar().Errorf(template, args...) }

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.sugar().Debugw(msg, keysAndValues...)
}

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.sugar().Infow(msg, keysAndValues...)
}

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.sugar().Warnw(msg, keysAndValues...)
}

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.sugar().Errorw(msg, keysAndValues...)
}

// leveledCore gates a shared core with a per-logger level so subloggers can be tuned
// independently while writing to the same sink. With inUTC set entries are stamped in UTC.
type leveledCore struct {
	zapcore.Core
	level zap.AtomicLevel
	inUTC bool
}

func (c *leveledCore) Enabled(lvl zapcore.Level) bool {
	return c.level.Enabled(lvl) && c.Core.Enabled(lvl)
}

func (c *leveledCore) With(fields []zapcore.Field) zapcore.Core {
	return &leveledCore{Core: c.Core.With(fields), level: c.level, inUTC: c.inUTC}
}

func (c *leveledCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *leveledCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if c.inUTC {
		entry.Time = entry.Time.UTC()
	}
	return c.Core.Write(entry, fields)
}
