package log

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var sugar *zap.SugaredLogger

func init() {
	Init("", false)
}

// Init rebuilds the global logger. An empty logFile logs to stderr only,
// otherwise a rotating file sink is added.
func Init(logFile string, verbose bool) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	enc := zapcore.NewConsoleEncoder(encCfg)
	ws := zapcore.AddSync(os.Stderr)
	if logFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    128,
			MaxBackups: 3,
		}
		ws = zapcore.NewMultiWriteSyncer(ws, zapcore.AddSync(rotated))
	}
	core := zapcore.NewCore(enc, ws, level)
	sugar = zap.New(core, zap.AddCallerSkip(1)).Sugar()
}

func Debugf(format string, args ...interface{}) {
	sugar.Debugf(trim(format), args...)
}

func Infof(format string, args ...interface{}) {
	sugar.Infof(trim(format), args...)
}

func Warnf(format string, args ...interface{}) {
	sugar.Warnf(trim(format), args...)
}

func Errorf(format string, args ...interface{}) {
	sugar.Errorf(trim(format), args...)
}

func Error(err error) {
	sugar.Error(err)
}

func Panic(args ...interface{}) {
	sugar.Panic(args...)
}

func Sync() {
	_ = sugar.Sync()
}

func trim(format string) string {
	return strings.TrimSuffix(format, "\n")
}
