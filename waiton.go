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

// Package waiton is the root orchestrator (C7): it validates an Options
// value, wires the resource parser, probes, pollers, aggregator and
// deadline (C1-C5) together, and reports the outcome exactly once,
// either through a caller-supplied callback or as a plain blocking
// return value -- Go's natural equivalent of spec.md §6's
// "callback, or future/promise when none is supplied".
package waiton

import (
	"context"
	"sync"

	"github.com/nabbar/wait-on/aggregate"
	"github.com/nabbar/wait-on/deadline"
	"github.com/nabbar/wait-on/internal/liblog"
	"github.com/nabbar/wait-on/poll"
	"github.com/nabbar/wait-on/probe"
	"github.com/nabbar/wait-on/resource"
	"github.com/nabbar/wait-on/waitopt"
)

// Run validates o, then drives every resource to completion or until
// the deadline fires, whichever comes first (spec.md §4.7). log may be
// nil (equivalent to liblog.Discard()).
//
// If cb is non-nil, it is invoked exactly once with the outcome (nil on
// success) before Run returns that same error -- the "callback, or
// promise-equivalent when none is supplied" contract of spec.md §6,
// expressed in Go as a single synchronous return value that a caller
// wanting async behavior simply invokes from its own goroutine.
func Run(ctx context.Context, o waitopt.Options, log *liblog.Logger, cb func(error)) error {
	if log == nil {
		log = liblog.Discard()
	}

	var once sync.Once
	finish := func(err error) error {
		once.Do(func() {
			if cb != nil {
				cb(err)
			}
		})
		return err
	}

	validated, verr := waitopt.Validate(o)
	if verr != nil {
		return finish(verr)
	}
	o = validated

	if o.Reverse {
		log.Info("reverse mode enabled", nil)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	descs := make([]resource.Descriptor, len(o.Resources))
	streams := make([]<-chan bool, len(o.Resources))

	probeOpts := probe.Options{
		TCPTimeout:     o.TCPTimeout.Time(),
		HTTPTimeout:    o.HTTPTimeout.Time(),
		FollowRedirect: o.FollowRedirect,
		TLS:            o.TLSMaterial(),
		Proxy:          o.Proxy,
		Auth:           probe.Auth{Username: o.Auth.Username, Password: o.Auth.Password},
		Headers:        o.Headers,
		ValidateStatus: o.ValidateStatus,
	}

	for i, raw := range o.Resources {
		d := resource.Parse(raw)
		descs[i] = d

		prb := probe.New(d, probeOpts)
		p := poll.New(d, prb, poll.Options{
			Delay:        o.Delay.Time(),
			Interval:     o.Interval.Time(),
			Window:       o.Window.Time(),
			Simultaneous: o.Simultaneous,
			Reverse:      o.Reverse,
			Log:          log,
		})

		streams[i] = p.Updates()
		go p.Start(runCtx)
	}

	agg := aggregate.New(descs, streams)
	go agg.Run(runCtx.Done())

	initial := aggregate.Snapshot{
		Done:    make([]bool, len(descs)),
		Pending: append([]string(nil), o.Resources...),
	}
	snapshots := tee(agg.Snapshots(), initial, log)

	if derr := deadline.Race(snapshots, o.Timeout.Time()); derr != nil {
		cancel()
		return finish(derr)
	}

	return finish(nil)
}

// tee first sends initial (every resource pending), then forwards every
// snapshot unchanged while logging the pending list, driving spec.md
// §4.4's progress logger off the same stream deadline.Race consumes for
// its own completion/timeout decision. The aggregator only emits on a
// change, so initial is what a timeout reports when no resource ever
// became done.
func tee(in <-chan aggregate.Snapshot, initial aggregate.Snapshot, log *liblog.Logger) <-chan aggregate.Snapshot {
	out := make(chan aggregate.Snapshot, 1)
	go func() {
		defer close(out)
		log.Info(aggregate.FormatPending(initial.Pending), nil)
		out <- initial
		for snap := range in {
			if !snap.AllDone {
				log.Info(aggregate.FormatPending(snap.Pending), nil)
			}
			out <- snap
		}
	}()
	return out
}
