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

// Package log is the worker core's logging abstraction. Usage:
//
//	logger.Info("poll returned no task", tag.TaskListName(tl), tag.Identity(id))
//
// msg should be static; anything dynamic belongs in a tag.
package log

import "github.com/meiliang86/cadence-client/common/log/tag"

type (
	// Logger is the logging interface used throughout the worker core.
	Logger interface {
		Debug(msg string, tags ...tag.Tag)
		Info(msg string, tags ...tag.Tag)
		Warn(msg string, tags ...tag.Tag)
		Error(msg string, tags ...tag.Tag)
		Fatal(msg string, tags ...tag.Tag)
	}

	// WithLogger is implemented by loggers that can cheaply return a copy
	// with additional tags prepended to every subsequent call.
	WithLogger interface {
		With(tags ...tag.Tag) Logger
	}

	// Config controls how BuildZapLogger constructs the underlying zap.Logger.
	Config struct {
		Level      string
		Stdout     bool
		OutputFile string
	}
)

// With returns logger.With(tags...) if the logger implements WithLogger,
// otherwise a thin wrapper that prepends tags on every call.
func With(logger Logger, tags ...tag.Tag) Logger {
	if l, ok := logger.(WithLogger); ok {
		return l.With(tags...)
	}
	return &prependLogger{base: logger, tags: tags}
}

type prependLogger struct {
	base Logger
	tags []tag.Tag
}

func (p *prependLogger) merge(tags []tag.Tag) []tag.Tag {
	all := make([]tag.Tag, 0, len(p.tags)+len(tags))
	all = append(all, p.tags...)
	all = append(all, tags...)
	return all
}

func (p *prependLogger) Debug(msg string, tags ...tag.Tag) { p.base.Debug(msg, p.merge(tags)...) }
func (p *prependLogger) Info(msg string, tags ...tag.Tag)  { p.base.Info(msg, p.merge(tags)...) }
func (p *prependLogger) Warn(msg string, tags ...tag.Tag)  { p.base.Warn(msg, p.merge(tags)...) }
func (p *prependLogger) Error(msg string, tags ...tag.Tag) { p.base.Error(msg, p.merge(tags)...) }
func (p *prependLogger) Fatal(msg string, tags ...tag.Tag) { p.base.Fatal(msg, p.merge(tags)...) }
