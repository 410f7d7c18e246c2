package utils

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
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

	defaultLogFileMaxSizeMegabytesConstant = 10
	defaultLogFileMaxBackupCountConstant   = 3
	defaultLogFileMaxAgeDaysConstant       = 28
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

// LoggerSettings describes the requested logger behavior. When FilePath is
// set, log records are written to that file with size-based rotation instead
// of standard error.
type LoggerSettings struct {
	Level            LogLevel
	Format           LogFormat
	FilePath         string
	MaxSizeMegabytes int
	MaxBackupCount   int
	MaxAgeDays       int
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger produces a zap.Logger honoring the requested settings.
func (factory *LoggerFactory) CreateLogger(settings LoggerSettings) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[settings.Level]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, settings.Level)
	}

	encoder, encoderError := factory.createEncoder(settings.Format)
	if encoderError != nil {
		return nil, encoderError
	}

	logSink := factory.createSink(settings)
	loggerCore := zapcore.NewCore(encoder, logSink, zap.NewAtomicLevelAt(zapLogLevel))

	return zap.New(loggerCore), nil
}

func (factory *LoggerFactory) createEncoder(requestedLogFormat LogFormat) (zapcore.Encoder, error) {
	switch requestedLogFormat {
	case LogFormatStructured:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	case LogFormatConsole:
		encoderConfiguration := zap.NewProductionEncoderConfig()
		encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewConsoleEncoder(encoderConfiguration), nil
	default:
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}
}

func (factory *LoggerFactory) createSink(settings LoggerSettings) zapcore.WriteSyncer {
	if len(settings.FilePath) == 0 {
		return zapcore.Lock(os.Stderr)
	}

	maxSizeMegabytes := settings.MaxSizeMegabytes
	if maxSizeMegabytes <= 0 {
		maxSizeMegabytes = defaultLogFileMaxSizeMegabytesConstant
	}
	maxBackupCount := settings.MaxBackupCount
	if maxBackupCount <= 0 {
		maxBackupCount = defaultLogFileMaxBackupCountConstant
	}
	maxAgeDays := settings.MaxAgeDays
	if maxAgeDays <= 0 {
		maxAgeDays = defaultLogFileMaxAgeDaysConstant
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   settings.FilePath,
		MaxSize:    maxSizeMegabytes,
		MaxBackups: maxBackupCount,
		MaxAge:     maxAgeDays,
	})
}
