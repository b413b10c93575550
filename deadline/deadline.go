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

// Package deadline implements C5: a single global timer raced against
// the aggregator's completion. Whichever fires first cancels the
// other side of the race, matching spec.md §4.5/§5's "strictly after
// either the aggregator completes or the deadline fires, whichever is
// first; the other is cancelled."
package deadline

import (
	"strings"
	"time"

	"github.com/nabbar/wait-on/aggregate"
	"github.com/nabbar/wait-on/internal/liberr"
)

const (
	// ErrTimeout is raised when the global timer elapses before the
	// aggregator reports all resources done.
	ErrTimeout liberr.CodeError = iota + liberr.MinPkgDeadline
)

func init() {
	if liberr.ExistInMapMessage(ErrTimeout) {
		panic("liberr: code range collision in deadline")
	}
	liberr.RegisterIdFctMessage(ErrTimeout, message)
}

func message(code liberr.CodeError) string {
	if code == ErrTimeout {
		return "timed out waiting for resources"
	}
	return ""
}

// timeoutErr is a liberr.Error whose rendered text is exactly spec.md
// §7's "Timed out waiting for: ..." message, with no code-prefix
// decoration -- tests match on that literal prefix, so it cannot go
// through the generic msg+parent joining newError uses for validation
// errors.
type timeoutErr struct {
	pending []string
}

func newTimeoutErr(pending []string) *timeoutErr {
	return &timeoutErr{pending: pending}
}

func (e *timeoutErr) Error() string {
	return "Timed out waiting for: " + strings.Join(e.pending, ", ")
}

func (e *timeoutErr) Code() liberr.CodeError { return ErrTimeout }

func (e *timeoutErr) IsCode(code liberr.CodeError) bool { return code == ErrTimeout }

func (e *timeoutErr) Add(_ ...error) {}

func (e *timeoutErr) HasParent() bool { return false }

func (e *timeoutErr) GetParent() []error { return nil }

func (e *timeoutErr) Unwrap() []error { return nil }

func (e *timeoutErr) Is(err error) bool {
	o, ok := err.(*timeoutErr)
	return ok && o != nil
}

// Race waits for whichever of snapshots (the aggregator's stream) or
// the timeout elapses first.
//
// A timeout of zero or less means "no deadline": Race then waits
// indefinitely for snapshots. On a real timeout, Race returns a
// liberr.Error whose message begins with "Timed out waiting for"
// and enumerates the snapshot's Pending resources at the moment of
// firing (spec.md §4.5). On success (an AllDone snapshot, or the
// channel closing because the aggregator reached AllDone), Race
// returns nil.
func Race(snapshots <-chan aggregate.Snapshot, timeout time.Duration) liberr.Error {
	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	var last aggregate.Snapshot

	for {
		select {
		case <-timer:
			return newTimeoutErr(last.Pending)

		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			last = snap
			if snap.AllDone {
				return nil
			}
		}
	}
}

