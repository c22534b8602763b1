package logger

import "go.uber.org/zap"

var (
	defaultLogger = NewLogger("disktype", zap.WarnLevel)
)

func SetupDefaultLogger(l *zap.SugaredLogger) {
	defaultLogger = l
}

func Default() *zap.SugaredLogger {
	return defaultLogger
}

func Debugf(template string, args ...interface{}) {
	defaultLogger.Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	defaultLogger.Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	defaultLogger.Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	defaultLogger.Errorf(template, args...)
}
