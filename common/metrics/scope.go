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

// Package metrics is the worker core's metrics abstraction over tally.
package metrics

import (
	"time"

	"github.com/uber-go/tally/v4"
)

// Scope is the metrics reporting surface handed to every poller, worker, and
// history iterator. Unlike the teacher's int-indexed Client/Scope pair, names
// here are the literal strings fixed by the specification (e.g.
// "poll.counter.decision"), since tally's own Counter/Gauge/Timer calls are already
// string-keyed.
type Scope interface {
	IncCounter(name string)
	AddCounter(name string, delta int64)
	StartTimer(name string) tally.Stopwatch
	RecordTimer(name string, d time.Duration)
	UpdateGauge(name string, value float64)
	Tagged(tags map[string]string) Scope
}

type tallyScope struct {
	scope tally.Scope
}

// NewScope wraps a tally.Scope as a Scope.
func NewScope(scope tally.Scope) Scope {
	return &tallyScope{scope: scope}
}

func (t *tallyScope) IncCounter(name string)                   { t.scope.Counter(name).Inc(1) }
func (t *tallyScope) AddCounter(name string, delta int64)       { t.scope.Counter(name).Inc(delta) }
func (t *tallyScope) StartTimer(name string) tally.Stopwatch    { return t.scope.Timer(name).Start() }
func (t *tallyScope) RecordTimer(name string, d time.Duration)  { t.scope.Timer(name).Record(d) }
func (t *tallyScope) UpdateGauge(name string, value float64)    { t.scope.Gauge(name).Update(value) }
func (t *tallyScope) Tagged(tags map[string]string) Scope {
	return &tallyScope{scope: t.scope.Tagged(tags)}
}

type noopScope struct{}

// NoopScope discards every metric; used as a safe default.
var NoopScope Scope = noopScope{}

func (noopScope) IncCounter(string)                  {}
func (noopScope) AddCounter(string, int64)           {}
func (noopScope) StartTimer(string) tally.Stopwatch  { return tally.NoopScope.Timer("noop").Start() }
func (noopScope) RecordTimer(string, time.Duration)  {}
func (noopScope) UpdateGauge(string, float64)        {}
func (noopScope) Tagged(map[string]string) Scope     { return noopScope{} }
