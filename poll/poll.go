/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package poll implements the per-resource state machine (C3): it
// schedules repeated probes at interval after delay, applies the
// stability predicate (files) or direct predicate (everything else),
// optionally inverts the predicate under reverse mode, and emits a
// latched "done" signal exactly once. Bounded concurrency per resource
// is enforced with golang.org/x/sync/semaphore, the same weighted
// semaphore golib/semaphore wraps for its own worker-slot accounting:
// each tick of the interval ticker dispatches its own probe attempt
// goroutine regardless of whether an earlier attempt has returned yet,
// so up to Simultaneous attempts genuinely overlap in flight (spec.md
// §5's "a slow probe k may still be in flight" when probe k+1 is
// dispatched).
package poll

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/nabbar/wait-on/internal/liblog"
	"github.com/nabbar/wait-on/probe"
	"github.com/nabbar/wait-on/resource"
)

// Options configures a single Poller.
type Options struct {
	Delay        time.Duration
	Interval     time.Duration
	Window       time.Duration
	Simultaneous int64 // 0 means unbounded
	Reverse      bool
	Log          *liblog.Logger
}

// Poller drives one resource through IDLE -> DELAYING -> PROBING <->
// WAITING -> DONE (or CANCELLED). Each Poller owns exactly one
// goroutine, running Start, and writes every non-trivial emission
// (spec.md §4.3's "exactly two": the startup false, then the eventual
// true) onto Updates.
type Poller struct {
	d    resource.Descriptor
	opts Options
	prb  probe.Prober

	sem *semaphore.Weighted

	// updates is buffered to 2: the startup false and the eventual true
	// are the only two sends a poller ever makes, so the send in emit
	// never blocks.
	updates chan bool

	// mu guards the file stability state below, since up to
	// Simultaneous probe attempts for this resource can now run
	// concurrently (spec.md §5/§4.3 step 2) and each attempt computes
	// its predicate on its own goroutine. The malformed-tcp warning is
	// guarded separately by warnOnce.
	mu          sync.Mutex
	lastSize    int64
	firstSeenAt time.Time

	warnOnce sync.Once
}

// New builds a Poller for d, dispatching probes through prb.
func New(d resource.Descriptor, prb probe.Prober, o Options) *Poller {
	var sem *semaphore.Weighted
	if o.Simultaneous > 0 {
		sem = semaphore.NewWeighted(o.Simultaneous)
	}

	return &Poller{
		d:           d,
		opts:        o,
		prb:         prb,
		sem:         sem,
		updates:     make(chan bool, 2),
		lastSize:    -1,
		firstSeenAt: time.Time{},
	}
}

// Updates streams this resource's non-trivial boolean emissions: the
// initial false, then the eventual true. It is closed once the poller
// reaches DONE or CANCELLED.
func (p *Poller) Updates() <-chan bool {
	return p.updates
}

// Start runs the state machine until ctx is cancelled or the resource
// latches done. It blocks; call it from its own goroutine.
//
// Each interval tick dispatches a fresh probe attempt on its own
// goroutine, independent of whether an earlier attempt has returned
// (spec.md §5): dispatch is serialized by the ticker, but completion is
// not. The simultaneous bound (enforced per attempt via sem.TryAcquire,
// spec.md §4.3 step 2) is what actually limits how many of those
// attempts are doing I/O at once; ticks arriving while the bound is
// saturated are dropped, never queued.
func (p *Poller) Start(ctx context.Context) {
	defer close(p.updates)

	p.emit(false)

	select {
	case <-ctx.Done():
		return
	case <-time.After(p.opts.Delay):
	}

	interval := p.opts.Interval
	if interval <= 0 {
		interval = time.Millisecond
	}

	// results is only ever read by this goroutine and only while Start
	// is still running; a dispatched attempt still in flight when Start
	// returns (spec.md §9: discarded, not awaited) simply finds nobody
	// listening and returns once its own ctx.Done() case unblocks it.
	results := make(chan bool, 1)

	dispatch := func() {
		go p.attempt(ctx, results)
	}

	// DELAYING has already elapsed; the first PROBING cycle fires
	// immediately rather than waiting a further interval.
	dispatch()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case pred := <-results:
			if pred {
				p.emit(true)
				return
			}

		case <-ticker.C:
			dispatch()
		}
	}
}

// attempt runs one PROBING cycle under the simultaneous bound, dropping
// the attempt entirely (rather than queuing) when the bound is already
// saturated, per spec.md §4.3 step 2. It reports a true predicate on
// results; false/dropped attempts are not reported, since they carry no
// information the select loop in Start needs to act on.
func (p *Poller) attempt(ctx context.Context, results chan<- bool) {
	if p.d.Kind == resource.TCP && p.d.TCPMalformed {
		p.warnOnce.Do(func() {
			if p.opts.Log != nil {
				p.opts.Log.Warning("malformed tcp: resource, will never become available", liblog.Fields{
					"resource": p.d.Raw,
				})
			}
		})
	}

	if p.sem != nil {
		if !p.sem.TryAcquire(1) {
			return
		}
		defer p.sem.Release(1)
	}

	r := p.prb.Probe(ctx)

	if ctx.Err() != nil {
		// Cancellation raced the probe's return; discard the result
		// rather than act on stale data (spec.md §4.5/§5).
		return
	}

	if p.opts.Log != nil && r.Err != nil {
		p.opts.Log.Debug("probe transient error", liblog.Fields{
			"resource": p.d.Raw,
			"error":    r.Err.Error(),
		})
	}

	if !p.predicate(r) {
		return
	}

	select {
	case results <- true:
	case <-ctx.Done():
	}
}

// predicate computes spec.md §4.3 step 3's pred, including the file
// stability algorithm and reverse-mode inversion.
func (p *Poller) predicate(r probe.Result) bool {
	if p.d.Kind.IsFile() {
		if p.opts.Reverse {
			return r.Size == -1
		}
		return p.stabilize(r.Size)
	}

	if p.opts.Reverse {
		return !r.Available
	}
	return r.Available
}

// stabilize implements spec.md §4.3's file stability algorithm:
// (lastSize, firstSeenAt) resets whenever the file is absent or its
// size changes, and latches done once the size has held steady for at
// least Window. Guarded by mu since concurrent attempts (simultaneous >
// 1) may call this from different goroutines.
func (p *Poller) stabilize(size int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()

	if size == -1 {
		p.lastSize = -1
		p.firstSeenAt = now
		return false
	}

	if p.lastSize == -1 || size != p.lastSize {
		p.lastSize = size
		p.firstSeenAt = now
		return false
	}

	return now.Sub(p.firstSeenAt) >= p.opts.Window
}

func (p *Poller) emit(v bool) {
	p.updates <- v
}
