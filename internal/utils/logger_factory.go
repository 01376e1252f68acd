package utils

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	logTimeKeyConstant                   = "ts"
	logMessageKeyConstant                = "msg"
	logLevelKeyConstant                  = "level"
	logNameKeyConstant                   = "logger"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// SupportedLogLevels lists the accepted log levels from most to least verbose.
func SupportedLogLevels() []string {
	return []string{string(LogLevelDebug), string(LogLevelInfo), string(LogLevelWarn), string(LogLevelError)}
}

// SupportedLogFormats lists the accepted log formats in display order.
func SupportedLogFormats() []string {
	return []string{string(LogFormatStructured), string(LogFormatConsole)}
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
// Diagnostics never share the banner output stream; they default to standard error.
type LoggerFactory struct {
	diagnosticSink io.Writer
}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// NewLoggerFactoryWithSink constructs a logger factory writing to the provided sink; nil selects standard error.
func NewLoggerFactoryWithSink(diagnosticSink io.Writer) *LoggerFactory {
	return &LoggerFactory{diagnosticSink: diagnosticSink}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[requestedLogLevel]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	encoder, encoderError := buildEncoder(requestedLogFormat)
	if encoderError != nil {
		return nil, encoderError
	}

	core := zapcore.NewCore(encoder, factory.writeSyncer(), zap.NewAtomicLevelAt(zapLogLevel))
	return zap.New(core, zap.ErrorOutput(factory.writeSyncer())), nil
}

func (factory *LoggerFactory) writeSyncer() zapcore.WriteSyncer {
	if factory == nil || factory.diagnosticSink == nil {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.Lock(zapcore.AddSync(factory.diagnosticSink))
}

func buildEncoder(requestedLogFormat LogFormat) (zapcore.Encoder, error) {
	switch requestedLogFormat {
	case LogFormatStructured:
		encoderConfiguration := zap.NewProductionEncoderConfig()
		encoderConfiguration.TimeKey = logTimeKeyConstant
		encoderConfiguration.MessageKey = logMessageKeyConstant
		encoderConfiguration.LevelKey = logLevelKeyConstant
		encoderConfiguration.NameKey = logNameKeyConstant
		encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(encoderConfiguration), nil
	case LogFormatConsole:
		encoderConfiguration := zap.NewDevelopmentEncoderConfig()
		encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewConsoleEncoder(encoderConfiguration), nil
	default:
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}
}
