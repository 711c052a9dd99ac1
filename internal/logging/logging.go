// Package logging builds the process logger: logrus with optional rotating
// file output alongside stderr.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger at the given level. When file is non-empty, output also
// goes to a size-rotated log file.
func New(level, file string) *logrus.Logger {
	logger := logrus.New()

	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
		logger.Warnf("unknown log level %q, using info", level)
	}
	logger.SetLevel(lv)

	if file != "" {
		rotated := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    100, // megabytes
			MaxBackups: 4,
			MaxAge:     7, // days
			LocalTime:  true,
		}
		logger.SetOutput(io.MultiWriter(logger.Out, rotated))
	}
	return logger
}
