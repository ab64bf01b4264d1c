package logger

import (
	"fmt"
	"strings"

	"github.com/GlebRadaev/ebookmarket/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	serviceName = "ebookmarket"
	timeLayout  = "15:04:05 02-01-2006"

	FormatConsole = "console"
	FormatJSON    = "json"
)

var logLvlMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// encoderConfig keeps the colored console layout for local runs; json output
// uses ISO timestamps and plain level names so collectors can parse it.
func encoderConfig(format string) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
	if format == FormatJSON {
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return cfg
	}
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

// Build creates a logger for the configured level and format.
func Build(conf *config.Config) (*zap.Logger, error) {
	lvl, ok := logLvlMap[strings.ToLower(conf.LogLvl)]
	if !ok {
		return nil, fmt.Errorf("unsupported log lvl: %s", conf.LogLvl)
	}

	format := strings.ToLower(conf.LogFormat)
	if format == "" {
		format = FormatConsole
	}
	if format != FormatConsole && format != FormatJSON {
		return nil, fmt.Errorf("unsupported log format: %s", conf.LogFormat)
	}

	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         format,
		EncoderConfig:    encoderConfig(format),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields:    map[string]any{"service": serviceName},
	}

	logger, err := c.Build()
	if err != nil {
		return nil, fmt.Errorf("unable to create zap logger, error: %w", err)
	}
	return logger, nil
}

// InitLogger replaces the global zap logger.
func InitLogger(conf *config.Config) error {
	logger, err := Build(conf)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
