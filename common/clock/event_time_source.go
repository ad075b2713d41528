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

package clock

import (
	"sort"
	"sync"
	"time"
)

// EventTimeSource is a deterministic, manually-advanced TimeSource for tests:
// backoff policies, throttlers, and history-iterator deadlines can all be
// driven without sleeping on the wall clock.
type EventTimeSource struct {
	mu      sync.Mutex
	now     time.Time
	timers  []*fakeTimer
	timerID int
}

// NewEventTimeSource returns an EventTimeSource parked at the Unix epoch.
// Call Update or Advance to move it forward.
func NewEventTimeSource() *EventTimeSource {
	return &EventTimeSource{now: time.Unix(0, 0)}
}

type fakeTimer struct {
	id       int
	fireAt   time.Time
	f        func()
	source   *EventTimeSource
	stopped  bool
	fired    bool
}

func (t *fakeTimer) Stop() bool {
	t.source.mu.Lock()
	defer t.source.mu.Unlock()
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

func (t *fakeTimer) Reset(d time.Duration) bool {
	t.source.mu.Lock()
	wasActive := !t.stopped && !t.fired
	t.stopped = false
	t.fired = false
	t.fireAt = t.source.now.Add(d)
	if !wasActive {
		// A fired or stopped timer may already have been dropped by
		// popDue; re-register it so it can fire again.
		registered := false
		for _, other := range t.source.timers {
			if other == t {
				registered = true
				break
			}
		}
		if !registered {
			t.source.timers = append(t.source.timers, t)
		}
	}
	t.source.mu.Unlock()
	return wasActive
}

// Now returns the current fake time.
func (e *EventTimeSource) Now() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

// AfterFunc schedules f to run when the fake clock reaches now+d or later,
// triggered only by a call to Advance or Update.
func (e *EventTimeSource) AfterFunc(d time.Duration, f func()) Timer {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timerID++
	t := &fakeTimer{id: e.timerID, fireAt: e.now.Add(d), f: f, source: e}
	e.timers = append(e.timers, t)
	return t
}

// Sleep advances the fake clock by d and fires any timers that are now due.
func (e *EventTimeSource) Sleep(d time.Duration) {
	e.Advance(d)
}

// Advance moves the fake clock forward by d, firing due timers in fireAt order.
func (e *EventTimeSource) Advance(d time.Duration) {
	e.mu.Lock()
	e.now = e.now.Add(d)
	e.mu.Unlock()
	e.fireDue()
}

// Update sets the fake clock to t directly, firing any now-due timers.
func (e *EventTimeSource) Update(t time.Time) {
	e.mu.Lock()
	e.now = t
	e.mu.Unlock()
	e.fireDue()
}

func (e *EventTimeSource) fireDue() {
	for {
		due := e.popDue()
		if due == nil {
			return
		}
		due.f()
	}
}

// popDue removes and returns the earliest unfired, unstopped timer whose
// fireAt is at or before now, or nil if none is due.
func (e *EventTimeSource) popDue() *fakeTimer {
	e.mu.Lock()
	defer e.mu.Unlock()

	var live []*fakeTimer
	var due []*fakeTimer
	for _, t := range e.timers {
		if t.stopped || t.fired {
			continue
		}
		if !t.fireAt.After(e.now) {
			due = append(due, t)
			continue
		}
		live = append(live, t)
	}
	sort.Slice(due, func(i, j int) bool { return due[i].fireAt.Before(due[j].fireAt) })

	var earliest *fakeTimer
	if len(due) > 0 {
		earliest = due[0]
		earliest.fired = true
		live = append(live, due[1:]...)
	}
	e.timers = live
	return earliest
}
