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

// Package aggregate implements C4: it fans in every per-resource
// Updates() stream from poll.Poller, keeps the latest value per
// resource, and emits a Snapshot whenever any of them changes. It
// replaces the reactive "merge + take-while" composition spec.md §9
// calls out with a single goroutine selecting over a fan-in channel,
// in the style of golib's own channel-based fan-in helpers (e.g.
// monitor's collector loop), built from plain channels since none of
// the pack's monitor/status packages were retrieved with source in
// this run.
package aggregate

import (
	"strconv"
	"strings"

	"github.com/nabbar/wait-on/resource"
)

// Snapshot is the aggregator's latest view of every resource's done
// state, emitted on each change (spec.md §4.4).
type Snapshot struct {
	// Done is indexed the same as the resource list the Aggregator was
	// built with.
	Done []bool

	// AllDone is true once every element of Done is true.
	AllDone bool

	// Pending lists the Raw strings of resources still false, in
	// descriptor order, ready for the "waiting for N resources: ..."
	// progress line or the TIMEOUT message.
	Pending []string
}

type indexedUpdate struct {
	index int
	value bool
}

// Aggregator combines the per-resource update streams of a fixed
// resource list into a single Snapshot stream.
type Aggregator struct {
	descs   []resource.Descriptor
	streams []<-chan bool

	out chan Snapshot
}

// New builds an Aggregator over descs, whose per-resource update
// streams are streams (same order, same length).
func New(descs []resource.Descriptor, streams []<-chan bool) *Aggregator {
	return &Aggregator{
		descs:   descs,
		streams: streams,
		out:     make(chan Snapshot, 1),
	}
}

// Snapshots returns the channel of emitted snapshots. It is closed once
// every resource has latched done, or once Run's stop channel is closed
// (whichever happens first).
func (a *Aggregator) Snapshots() <-chan Snapshot {
	return a.out
}

// Run fans in every stream and emits Snapshots until either all
// resources are done or stop is closed. Run blocks; call it from its
// own goroutine.
func (a *Aggregator) Run(stop <-chan struct{}) {
	defer close(a.out)

	n := len(a.descs)
	done := make([]bool, n)
	fanIn := make(chan indexedUpdate, n)

	for i, s := range a.streams {
		go func(i int, s <-chan bool) {
			for v := range s {
				select {
				case fanIn <- indexedUpdate{index: i, value: v}:
				case <-stop:
					return
				}
			}
		}(i, s)
	}

	remaining := n
	for remaining > 0 {
		select {
		case <-stop:
			return
		case u := <-fanIn:
			if done[u.index] == u.value {
				continue
			}
			done[u.index] = u.value
			if u.value {
				remaining--
			}

			snap := a.snapshot(done)
			select {
			case a.out <- snap:
			case <-stop:
				return
			}

			if snap.AllDone {
				return
			}
		}
	}
}

func (a *Aggregator) snapshot(done []bool) Snapshot {
	cp := make([]bool, len(done))
	copy(cp, done)

	all := true
	var pending []string
	for i, v := range cp {
		if !v {
			all = false
			pending = append(pending, a.descs[i].Raw)
		}
	}

	return Snapshot{Done: cp, AllDone: all, Pending: pending}
}

// FormatPending renders spec.md §4.4's "waiting for N resources: ..."
// progress line for a Pending list.
func FormatPending(pending []string) string {
	return "waiting for " + strconv.Itoa(len(pending)) + " resources: " + strings.Join(pending, ", ")
}
