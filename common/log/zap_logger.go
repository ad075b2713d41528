// The MIT License
//
// Copyright (c) 2020 Temporal Technologies Inc.  All rights reserved.
//
// Copyright (c) 2020 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package log

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/meiliang86/cadence-client/common/log/tag"
)

const defaultMsgForEmpty = "none"

type zapLogger struct {
	zl *zap.Logger
}

var _ Logger = (*zapLogger)(nil)
var _ WithLogger = (*zapLogger)(nil)

// NewTestLogger returns a debug-level logger writing to stderr, for use in tests.
func NewTestLogger() Logger {
	return NewZapLogger(BuildZapLogger(Config{Level: "debug"}))
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return &zapLogger{zl: zap.NewNop()}
}

// NewZapLogger wraps an existing zap.Logger.
func NewZapLogger(zl *zap.Logger) Logger {
	return &zapLogger{zl: zl}
}

// BuildZapLogger builds a zap.Logger from a Config.
func BuildZapLogger(cfg Config) *zap.Logger {
	encodeConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	outputPath := "stderr"
	if cfg.OutputFile != "" {
		outputPath = cfg.OutputFile
	}
	if cfg.Stdout {
		outputPath = "stdout"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseZapLevel(cfg.Level)),
		Encoding:         "json",
		EncoderConfig:    encodeConfig,
		OutputPaths:      []string{outputPath},
		ErrorOutputPaths: []string{outputPath},
		DisableCaller:    true,
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func parseZapLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "fatal":
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}

func fields(tags []tag.Tag) []zap.Field {
	fs := make([]zap.Field, len(tags))
	for i, t := range tags {
		fs[i] = t.Field()
	}
	return fs
}

func setDefaultMsg(msg string) string {
	if msg == "" {
		return defaultMsgForEmpty
	}
	return msg
}

func (l *zapLogger) Debug(msg string, tags ...tag.Tag) { l.zl.Debug(setDefaultMsg(msg), fields(tags)...) }
func (l *zapLogger) Info(msg string, tags ...tag.Tag)  { l.zl.Info(setDefaultMsg(msg), fields(tags)...) }
func (l *zapLogger) Warn(msg string, tags ...tag.Tag)  { l.zl.Warn(setDefaultMsg(msg), fields(tags)...) }
func (l *zapLogger) Error(msg string, tags ...tag.Tag) { l.zl.Error(setDefaultMsg(msg), fields(tags)...) }
func (l *zapLogger) Fatal(msg string, tags ...tag.Tag) { l.zl.Fatal(setDefaultMsg(msg), fields(tags)...) }

func (l *zapLogger) With(tags ...tag.Tag) Logger {
	return &zapLogger{zl: l.zl.With(fields(tags)...)}
}
