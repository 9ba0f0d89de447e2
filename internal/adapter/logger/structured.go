package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// SetLoggerToStructured switches the global logger to JSON output at the
// given level, mirroring to a log file when filePath is non-empty.
func SetLoggerToStructured(level logrus.Level, filePath string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(level)

	if filePath == "" {
		logrus.SetOutput(os.Stderr)
		return
	}

	if file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err == nil {
		logrus.SetOutput(io.MultiWriter(os.Stderr, file))
	} else {
		logrus.SetOutput(os.Stderr)
		logrus.WithError(err).Error("Could not create file for logging")
	}
}
