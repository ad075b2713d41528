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

// Package worker is the public façade: Worker bundles a workflow poller and
// an activity poller for one (domain, task list), configured through
// functional Options. Grounded on Worker.java, whose constructor overloads
// collapse here into the idiomatic Go options pattern the corpus already
// uses for PollerOptions.Builder-style configuration.
package worker

import (
	"github.com/meiliang86/cadence-client/common/log"
	"github.com/meiliang86/cadence-client/common/metrics"
	"github.com/meiliang86/cadence-client/internal/shared"
	"github.com/meiliang86/cadence-client/internal/worker"
)

const (
	defaultMaxConcurrentActivityExecutionSize = 1000
	defaultMaxConcurrentWorkflowExecutionSize = 1000
)

// Options configures a Worker. Construct with New(opts ...Option).
type Options struct {
	Identity      string
	DataConverter interface{}

	DisableWorkflowWorker bool
	DisableActivityWorker bool

	MaxConcurrentActivityExecutionSize int64
	MaxConcurrentWorkflowExecutionSize int64

	WorkflowPollerOptions worker.PollerOptions
	ActivityPollerOptions worker.PollerOptions

	ReportWorkflowCompletionRetryOptions shared.RetryOptions
	ReportWorkflowFailureRetryOptions    shared.RetryOptions
	ReportActivityCompletionRetryOptions shared.RetryOptions
	ReportActivityFailureRetryOptions    shared.RetryOptions

	EnableLoggingInReplay bool

	MetricsScope metrics.Scope
	Logger       log.Logger
}

// Option mutates Options; functional-options entry point used by New.
type Option func(*Options)

func WithIdentity(identity string) Option {
	return func(o *Options) { o.Identity = identity }
}

func WithDataConverter(converter interface{}) Option {
	return func(o *Options) { o.DataConverter = converter }
}

func WithDisableWorkflowWorker() Option {
	return func(o *Options) { o.DisableWorkflowWorker = true }
}

func WithDisableActivityWorker() Option {
	return func(o *Options) { o.DisableActivityWorker = true }
}

func WithMaxConcurrentActivityExecutionSize(n int64) Option {
	return func(o *Options) { o.MaxConcurrentActivityExecutionSize = n }
}

func WithMaxConcurrentWorkflowExecutionSize(n int64) Option {
	return func(o *Options) { o.MaxConcurrentWorkflowExecutionSize = n }
}

func WithWorkflowPollerOptions(opts worker.PollerOptions) Option {
	return func(o *Options) { o.WorkflowPollerOptions = opts }
}

func WithActivityPollerOptions(opts worker.PollerOptions) Option {
	return func(o *Options) { o.ActivityPollerOptions = opts }
}

func WithEnableLoggingInReplay() Option {
	return func(o *Options) { o.EnableLoggingInReplay = true }
}

func WithMetricsScope(scope metrics.Scope) Option {
	return func(o *Options) { o.MetricsScope = scope }
}

func WithLogger(logger log.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func newOptions(opts ...Option) Options {
	o := Options{
		MaxConcurrentActivityExecutionSize: defaultMaxConcurrentActivityExecutionSize,
		MaxConcurrentWorkflowExecutionSize: defaultMaxConcurrentWorkflowExecutionSize,
	}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

func (o Options) toWorkflowWorkerOptions() worker.SingleWorkerOptions {
	return worker.SingleWorkerOptions{
		Identity:                       o.Identity,
		PollerOptions:                  o.WorkflowPollerOptions,
		MaxConcurrentTaskExecutionSize: o.MaxConcurrentWorkflowExecutionSize,
		ReportCompletionRetryOptions:   o.ReportWorkflowCompletionRetryOptions,
		ReportFailureRetryOptions:      o.ReportWorkflowFailureRetryOptions,
		MetricsScope:                   o.MetricsScope,
		Logger:                         o.Logger,
		EnableLoggingInReplay:          o.EnableLoggingInReplay,
		DataConverter:                  o.DataConverter,
	}
}

func (o Options) toActivityWorkerOptions() worker.SingleWorkerOptions {
	return worker.SingleWorkerOptions{
		Identity:                       o.Identity,
		PollerOptions:                  o.ActivityPollerOptions,
		MaxConcurrentTaskExecutionSize: o.MaxConcurrentActivityExecutionSize,
		ReportCompletionRetryOptions:   o.ReportActivityCompletionRetryOptions,
		ReportFailureRetryOptions:      o.ReportActivityFailureRetryOptions,
		MetricsScope:                   o.MetricsScope,
		Logger:                         o.Logger,
		DataConverter:                  o.DataConverter,
	}
}
