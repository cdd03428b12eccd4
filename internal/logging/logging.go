// Package logging provides structured diagnostic logging, separate from the
// user-facing output in internal/ui. Diagnostics go to stderr and are
// hidden below warn level unless verbose mode is on.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Level:        log.WarnLevel,
	ReportCaller: false,
})

// SetVerbose lowers the log threshold to debug
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
}

func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}
