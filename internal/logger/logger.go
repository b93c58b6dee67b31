package logger

import (
	"go.uber.org/zap"
)

// Log is global logger
var Log = zap.NewNop()

// Initialize builds global logger with given log level
func Initialize(level string) error {
	loggerLvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Level = loggerLvl

	zl, err := loggerCfg.Build()
	if err != nil {
		return err
	}

	Log = zl
	return nil
}
