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

// Package worker turns a poll/report RPC pair and a task handler into a
// running poller pool: Poller drives the loop, WorkflowWorker and
// ActivityWorker specialize it for decision and activity tasks.
package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/meiliang86/cadence-client/common/backoff"
	"github.com/meiliang86/cadence-client/common/log"
	"github.com/meiliang86/cadence-client/common/log/tag"
	"github.com/meiliang86/cadence-client/common/metrics"
	"github.com/meiliang86/cadence-client/common/quotas"
)

// SuspendableWorker is implemented by everything a Worker façade starts and
// stops as a unit: the raw Poller as well as WorkflowWorker/ActivityWorker,
// which each delegate to a Poller underneath.
type SuspendableWorker interface {
	Start()
	Shutdown()
	ShutdownNow()
	AwaitTermination(timeout time.Duration) bool
	ShutdownAndAwaitTermination(timeout time.Duration) bool
	IsRunning() bool
	SuspendPolling()
	ResumePolling()
}

// PollTask is a single poll-then-handle cycle: poll the remote service,
// dispatch the task if one came back, report the outcome. Returning a
// non-nil error counts as a poll failure against the BackoffThrottler
// regardless of which step raised it.
type PollTask func(ctx context.Context) error

// PollerOptions configures the fixed-size goroutine pool a Poller runs.
type PollerOptions struct {
	// PollThreadCount is the number of concurrent goroutines executing Task.
	PollThreadCount int
	// MaximumPollRatePerSecond caps how often, in aggregate across all
	// goroutines, Task may be invoked. Zero disables rate limiting.
	MaximumPollRatePerSecond float64
	// MaximumPollRateBurst bounds the token bucket burst size backing
	// MaximumPollRatePerSecond. Defaults to 1 if left at zero.
	MaximumPollRateBurst int
	// PollBackoffInitialInterval, PollBackoffMaximumInterval, and
	// PollBackoffCoefficient configure the BackoffThrottler applied on
	// consecutive Task failures.
	PollBackoffInitialInterval time.Duration
	PollBackoffMaximumInterval time.Duration
	PollBackoffCoefficient     float64
}

const (
	defaultPollBackoffInitialInterval = 200 * time.Millisecond
	defaultPollBackoffMaximumInterval = 10 * time.Second
	defaultPollBackoffCoefficient     = 2.0
)

// Poller runs options.PollThreadCount independent goroutines, each looping
// task forever until Shutdown/ShutdownNow, subject to backoff throttling on
// failure, an optional rate limit, and cooperative suspension. Unlike the
// teacher's self-resubmitting Runnable on a bounded ThreadPoolExecutor, each
// goroutine is its own infinite loop — Go goroutines are cheap enough that
// the resubmission dance buys nothing here.
type Poller struct {
	options  PollerOptions
	identity string
	task     PollTask
	scope    metrics.Scope
	logger   log.Logger

	backoffThrottler *backoff.BackoffThrottler
	rateThrottler    quotas.RateThrottler

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	ctx     context.Context
	wg      sync.WaitGroup

	suspendCh atomic.Pointer[chan struct{}]
}

// NewPoller returns a Poller that will run task across options.PollThreadCount
// goroutines once started. scope and logger may be nil.
func NewPoller(options PollerOptions, identity string, task PollTask, scope metrics.Scope, logger log.Logger) *Poller {
	if options.PollThreadCount <= 0 {
		options.PollThreadCount = 1
	}
	if scope == nil {
		scope = metrics.NoopScope
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	initial := options.PollBackoffInitialInterval
	if initial <= 0 {
		initial = defaultPollBackoffInitialInterval
	}
	maximum := options.PollBackoffMaximumInterval
	if maximum <= 0 {
		maximum = defaultPollBackoffMaximumInterval
	}
	coefficient := options.PollBackoffCoefficient
	if coefficient <= 0 {
		coefficient = defaultPollBackoffCoefficient
	}

	p := &Poller{
		options:          options,
		identity:         identity,
		task:             task,
		scope:            scope,
		logger:           log.With(logger, tag.Identity(identity)),
		backoffThrottler: backoff.NewBackoffThrottler(initial, maximum, coefficient),
	}
	if options.MaximumPollRatePerSecond > 0 {
		burst := options.MaximumPollRateBurst
		if burst <= 0 {
			burst = 1
		}
		p.rateThrottler = quotas.NewRateThrottler(options.MaximumPollRatePerSecond, burst)
	}
	return p
}

// Start launches the poller pool. Calling Start on an already-running Poller
// is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.running = true

	p.logger.Info("poller starting", tag.Attempt(int64(p.options.PollThreadCount)))
	for i := 0; i < p.options.PollThreadCount; i++ {
		p.wg.Add(1)
		routine := i
		go func() {
			defer p.wg.Done()
			p.loop(p.ctx, routine)
		}()
	}
	p.scope.AddCounter(metrics.PollerStartCounter, int64(p.options.PollThreadCount))
}

func (p *Poller) loop(ctx context.Context, routine int) {
	logger := log.With(p.logger, tag.PollerRoutine(routine))
	for {
		if ctx.Err() != nil {
			return
		}

		if sleep := p.backoffThrottler.GetSleepTime(); sleep > 0 {
			logger.Debug("poll backing off", tag.Backoff(sleep))
			timer := time.NewTimer(sleep)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}

		if ctx.Err() != nil {
			return
		}

		if p.rateThrottler != nil {
			if err := p.rateThrottler.Wait(ctx); err != nil {
				return
			}
		}

		if suspend := p.suspendCh.Load(); suspend != nil {
			logger.Debug("poll task suspending")
			select {
			case <-*suspend:
			case <-ctx.Done():
				return
			}
		}

		if ctx.Err() != nil {
			return
		}

		if err := p.task(ctx); err != nil {
			p.backoffThrottler.Failure()
			if ctx.Err() == nil {
				logger.Error("poll task failed", tag.Error(err))
			}
		} else {
			p.backoffThrottler.Success()
		}
	}
}

func (p *Poller) isStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Shutdown stops accepting new poll cycles by cancelling the shared context;
// goroutines currently blocked inside task observe cancellation only if task
// itself checks ctx, mirroring the fact that a Go goroutine cannot be force-
// interrupted the way a Java thread can.
func (p *Poller) Shutdown() {
	if !p.isStarted() {
		return
	}
	p.logger.Info("poller shutdown")
	p.cancel()
}

// ShutdownNow is Shutdown; Go has no interrupt-a-blocked-goroutine
// primitive, so there is no stronger action to take here than cancelling
// the shared context.
func (p *Poller) ShutdownNow() {
	if !p.isStarted() {
		return
	}
	p.logger.Info("poller shutdown now")
	p.cancel()
}

// AwaitTermination blocks until every poller goroutine has returned or
// timeout elapses, reporting which happened first.
func (p *Poller) AwaitTermination(timeout time.Duration) bool {
	if !p.isStarted() {
		return true
	}
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		p.logger.Info("await termination done")
		return true
	case <-time.After(timeout):
		return false
	}
}

// ShutdownAndAwaitTermination cancels the poller and waits up to timeout for
// its goroutines to exit.
func (p *Poller) ShutdownAndAwaitTermination(timeout time.Duration) bool {
	if !p.isStarted() {
		return true
	}
	p.logger.Info("shutdown and await termination")
	p.cancel()
	result := p.AwaitTermination(timeout)
	p.logger.Info("shutdown and await termination done")
	return result
}

// IsRunning reports whether the poller has been started and not yet
// cancelled.
func (p *Poller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running && p.ctx.Err() == nil
}

// SuspendPolling parks every poller goroutine before its next Task
// invocation until ResumePolling is called.
func (p *Poller) SuspendPolling() {
	p.logger.Info("suspend polling")
	ch := make(chan struct{})
	p.suspendCh.Store(&ch)
}

// ResumePolling releases goroutines parked by SuspendPolling. If polling was
// not suspended this is a no-op.
func (p *Poller) ResumePolling() {
	p.logger.Info("resume polling")
	ch := p.suspendCh.Swap(nil)
	if ch != nil {
		close(*ch)
	}
}
