package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the configuration for the logger.
type Config struct {
	Level         string `yaml:"level"          json:"level"`
	FilePath      string `yaml:"file_path"      json:"file_path"`
	EnableConsole bool   `yaml:"enable_console" json:"enable_console"`
}

// Initialize sets up the global logger with the given configuration,
// replacing whatever logger was installed before.
func Initialize(config Config) error {
	GlobalEnableConsoleLogger = config.EnableConsole
	GlobalEnableFileLogger = config.FilePath != ""
	if config.FilePath != "" {
		GlobalLogPath = config.FilePath
	}

	logLevel := config.Level
	if logLevel == "" {
		logLevel = InfoLogLevel
	}
	GlobalLogLevel = logLevel

	level := zap.NewAtomicLevelAt(getZapLevel(logLevel))

	var cores []zapcore.Core
	if config.EnableConsole {
		cores = append(cores, createConsoleCore(level))
	}
	if config.FilePath != "" {
		fileCore, err := createFileCore(level)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cores = append(cores, fileCore)
	}
	if len(cores) == 0 {
		cores = append(cores, zapcore.NewNopCore())
	}

	core := zapcore.NewTee(cores...)
	l := zap.New(core, zap.AddCaller()).Named("remoterun")
	SetGlobalLogger(&Logger{Logger: l})

	return nil
}

// CleanupLogFile closes the log file handle if one was opened.
func CleanupLogFile() {
	if GlobalLogFile != nil {
		_ = GlobalLogFile.Close()
		GlobalLogFile = nil
	}

	_ = os.Stdout.Sync()
}
