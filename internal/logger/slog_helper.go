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
	"log/slog"

	"github.com/rubynodes/blobstress/cfg"
)

const textTimeLayout = "2006/01/02 15:04:05.000000"

func setLoggingLevel(level cfg.LogSeverity, programLevel *slog.LevelVar) {
	switch level {
	// logs having severity >= the configured value will be logged.
	case cfg.TraceLogSeverity:
		programLevel.Set(LevelTrace)
	case cfg.DebugLogSeverity:
		programLevel.Set(LevelDebug)
	case cfg.WarningLogSeverity:
		programLevel.Set(LevelWarn)
	case cfg.ErrorLogSeverity:
		programLevel.Set(LevelError)
	case cfg.OffLogSeverity:
		programLevel.Set(LevelOff)
	default:
		programLevel.Set(LevelInfo)
	}
}

func severityName(level slog.Level) string {
	switch {
	case level < LevelDebug:
		return string(cfg.TraceLogSeverity)
	case level < LevelInfo:
		return string(cfg.DebugLogSeverity)
	case level < LevelWarn:
		return string(cfg.InfoLogSeverity)
	case level < LevelError:
		return string(cfg.WarningLogSeverity)
	default:
		return string(cfg.ErrorLogSeverity)
	}
}

// getHandlerOptions renames the built-in keys to time/timestamp, severity and
// message, and prefixes every message with prefix.
func getHandlerOptions(levelVar *slog.LevelVar, prefix string, json bool) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: levelVar,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				t := a.Value.Time()
				if json {
					return slog.Group("timestamp",
						slog.Int64("seconds", t.Unix()),
						slog.Int("nanos", t.Nanosecond()))
				}
				return slog.String("time", t.Format(textTimeLayout))
			case slog.LevelKey:
				level, _ := a.Value.Any().(slog.Level)
				return slog.String("severity", severityName(level))
			case slog.MessageKey:
				return slog.String("message", prefix+a.Value.String())
			}
			return a
		},
	}
}
