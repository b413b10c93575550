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

package poll_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/wait-on/poll"
	"github.com/nabbar/wait-on/probe"
	"github.com/nabbar/wait-on/resource"
)

func TestPoll(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "poll suite")
}

// fakeProbe returns its results one per call, in order, and holds on
// the final value once exhausted.
type fakeProbe struct {
	results []probe.Result
	calls   int32
}

func (f *fakeProbe) Probe(_ context.Context) probe.Result {
	i := atomic.AddInt32(&f.calls, 1) - 1
	if int(i) >= len(f.results) {
		return f.results[len(f.results)-1]
	}
	return f.results[i]
}

// blockingProbe holds every call for `hold` before returning, so tests can
// observe genuine overlap between attempts dispatched on successive
// interval ticks.
type blockingProbe struct {
	hold          time.Duration
	succeedAfter  int32
	calls         int32
	concurrent    int32
	maxConcurrent int32
}

func (b *blockingProbe) Probe(ctx context.Context) probe.Result {
	n := atomic.AddInt32(&b.concurrent, 1)
	defer atomic.AddInt32(&b.concurrent, -1)

	for {
		old := atomic.LoadInt32(&b.maxConcurrent)
		if n <= old {
			break
		}
		if atomic.CompareAndSwapInt32(&b.maxConcurrent, old, n) {
			break
		}
	}

	select {
	case <-time.After(b.hold):
	case <-ctx.Done():
	}

	call := atomic.AddInt32(&b.calls, 1)
	return probe.Result{Available: call >= b.succeedAfter}
}

func drain(ch <-chan bool, timeout time.Duration) []bool {
	var got []bool
	deadline := time.After(timeout)
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, v)
		case <-deadline:
			return got
		}
	}
}

var _ = Describe("Poller", func() {
	It("emits false then true once a non-file resource becomes available", func() {
		d := resource.Parse("tcp:example.invalid:1")
		fp := &fakeProbe{results: []probe.Result{
			{Available: false},
			{Available: false},
			{Available: true},
		}}

		p := poll.New(d, fp, poll.Options{Interval: 5 * time.Millisecond})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go p.Start(ctx)

		got := drain(p.Updates(), time.Second)
		Expect(got).To(Equal([]bool{false, true}))
	})

	It("inverts the predicate in reverse mode", func() {
		d := resource.Parse("tcp:example.invalid:1")
		fp := &fakeProbe{results: []probe.Result{{Available: true}}}

		p := poll.New(d, fp, poll.Options{Interval: 5 * time.Millisecond, Reverse: true})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go p.Start(ctx)

		got := drain(p.Updates(), time.Second)
		Expect(got).To(Equal([]bool{false}))
	})

	It("does not latch a file as done until it holds a constant size for the window", func() {
		d := resource.Parse("/tmp/does-not-matter-fake")
		fp := &fakeProbe{results: []probe.Result{
			{Size: -1},
			{Size: 5},
			{Size: 5},
			{Size: 5},
			{Size: 5},
		}}

		p := poll.New(d, fp, poll.Options{Interval: 20 * time.Millisecond, Window: 60 * time.Millisecond})

		start := time.Now()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go p.Start(ctx)

		got := drain(p.Updates(), 2*time.Second)
		elapsed := time.Since(start)

		Expect(got).To(Equal([]bool{false, true}))
		Expect(elapsed).To(BeNumerically(">=", 60*time.Millisecond))
	})

	It("overlaps probe attempts up to the simultaneous bound", func() {
		d := resource.Parse("tcp:example.invalid:1")
		bp := &blockingProbe{hold: 120 * time.Millisecond, succeedAfter: 1000}

		p := poll.New(d, bp, poll.Options{Interval: 15 * time.Millisecond, Simultaneous: 2})

		ctx, cancel := context.WithCancel(context.Background())
		go p.Start(ctx)

		time.Sleep(100 * time.Millisecond)
		cancel()
		drain(p.Updates(), 500*time.Millisecond)

		// Interval (15ms) is far shorter than hold (120ms), so by the
		// time the sleep above ends several attempts must have been
		// dispatched while an earlier one was still in flight.
		Expect(atomic.LoadInt32(&bp.maxConcurrent)).To(BeNumerically(">", 1))
		Expect(atomic.LoadInt32(&bp.maxConcurrent)).To(BeNumerically("<=", 2))
	})

	It("drops ticks rather than queuing them once the simultaneous bound is saturated", func() {
		d := resource.Parse("tcp:example.invalid:1")
		bp := &blockingProbe{hold: 80 * time.Millisecond, succeedAfter: 1000}

		p := poll.New(d, bp, poll.Options{Interval: 10 * time.Millisecond, Simultaneous: 1})

		ctx, cancel := context.WithCancel(context.Background())
		go p.Start(ctx)

		time.Sleep(200 * time.Millisecond)
		cancel()
		drain(p.Updates(), 500*time.Millisecond)

		// ~20 ticks fire in 200ms at a 10ms interval, but each attempt
		// holds the lone semaphore slot for 80ms, so only a handful of
		// attempts ever actually ran; the rest were dropped, not queued.
		Expect(atomic.LoadInt32(&bp.calls)).To(BeNumerically("<", 10))
		Expect(atomic.LoadInt32(&bp.maxConcurrent)).To(Equal(int32(1)))
	})

	It("stops probing once ctx is cancelled", func() {
		d := resource.Parse("tcp:example.invalid:1")
		fp := &fakeProbe{results: []probe.Result{{Available: false}}}

		p := poll.New(d, fp, poll.Options{Interval: 10 * time.Millisecond})

		ctx, cancel := context.WithCancel(context.Background())
		go p.Start(ctx)

		// Let it emit the startup false, then cancel before it ever
		// becomes available.
		time.Sleep(30 * time.Millisecond)
		cancel()

		got := drain(p.Updates(), 200*time.Millisecond)
		Expect(got).To(Equal([]bool{false}))
	})
})
