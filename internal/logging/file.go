package logging

import (
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for log files.
const (
	fileMaxSizeMB  = 10
	fileMaxBackups = 3
	fileMaxAgeDays = 30
)

// NewFileWriter returns a writer that appends to path and rotates it once it
// grows past fileMaxSizeMB. Missing parent directories are created on first write.
func NewFileWriter(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		MaxAge:     fileMaxAgeDays,
		Compress:   true,
	}
}
