// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rubynodes/blobstress/cfg"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Syslog-style severities understood by the handlers, expressed as slog levels.
const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	// LevelOff is above every level that is ever logged.
	LevelOff = slog.Level(12)
)

var (
	defaultLoggerFactory *loggerFactory
	defaultLogger        *slog.Logger
	programLevel         = new(slog.LevelVar)
)

type loggerFactory struct {
	// If nil, log to stderr. Otherwise, log to this file.
	file            io.WriteCloser
	format          cfg.LogFormat
	level           cfg.LogSeverity
	logRotateConfig cfg.LogRotateLoggingConfig
}

// init initializes the logger factory to use stderr.
func init() {
	defaultLoggerFactory = &loggerFactory{
		format: cfg.TextLogFormat,
		level:  cfg.InfoLogSeverity,
	}
	defaultLogger = defaultLoggerFactory.newLogger(os.Stderr)
}

// InitLogFile initializes the default logger from the logging config. An empty
// file path keeps logging on stderr; otherwise the file is opened in append
// mode and rotated according to c.LogRotate.
func InitLogFile(c cfg.LoggingConfig) error {
	var w io.Writer = os.Stderr
	var f io.WriteCloser
	if c.FilePath != "" {
		fh, err := os.OpenFile(string(c.FilePath), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		// Surface permission problems here; lumberjack reopens the file lazily.
		fh.Close()
		f = &lumberjack.Logger{
			Filename:   string(c.FilePath),
			MaxSize:    int(c.LogRotate.MaxFileSizeMb),
			MaxBackups: int(c.LogRotate.BackupFileCount),
			Compress:   c.LogRotate.Compress,
		}
		w = f
	}

	Close()
	defaultLoggerFactory = &loggerFactory{
		file:            f,
		format:          c.Format,
		level:           c.Severity,
		logRotateConfig: c.LogRotate,
	}
	defaultLogger = defaultLoggerFactory.newLogger(w)
	return nil
}

// WithAttrs attaches the given attributes to every record written by the
// default logger.
func WithAttrs(args ...any) {
	defaultLogger = defaultLogger.With(args...)
}

// Close closes the log file when necessary.
func Close() {
	if f := defaultLoggerFactory.file; f != nil {
		f.Close()
		defaultLoggerFactory.file = nil
	}
}

func (f *loggerFactory) newLogger(w io.Writer) *slog.Logger {
	setLoggingLevel(f.level, programLevel)
	return slog.New(f.createJsonOrTextHandler(w, programLevel, ""))
}

func (f *loggerFactory) createJsonOrTextHandler(w io.Writer, levelVar *slog.LevelVar, prefix string) slog.Handler {
	if f.format == cfg.JSONLogFormat {
		return slog.NewJSONHandler(w, getHandlerOptions(levelVar, prefix, true))
	}
	return slog.NewTextHandler(w, getHandlerOptions(levelVar, prefix, false))
}

// Tracef prints the message with TRACE severity in the specified format.
func Tracef(format string, v ...interface{}) {
	defaultLogger.Log(context.Background(), LevelTrace, fmt.Sprintf(format, v...))
}

// Debugf prints the message with DEBUG severity in the specified format.
func Debugf(format string, v ...interface{}) {
	defaultLogger.Debug(fmt.Sprintf(format, v...))
}

// Infof prints the message with INFO severity in the specified format.
func Infof(format string, v ...interface{}) {
	defaultLogger.Info(fmt.Sprintf(format, v...))
}

// Info prints the message with INFO severity.
func Info(message string, args ...any) {
	defaultLogger.Info(message, args...)
}

// Warnf prints the message with WARNING severity in the specified format.
func Warnf(format string, v ...interface{}) {
	defaultLogger.Warn(fmt.Sprintf(format, v...))
}

// Errorf prints the message with ERROR severity in the specified format.
func Errorf(format string, v ...interface{}) {
	defaultLogger.Error(fmt.Sprintf(format, v...))
}
