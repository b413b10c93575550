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

// Package liberr is a small error-code package in the style of golib/errors:
// numeric CodeError classification, per-package registered message
// functions, and parent-error chaining. It is trimmed to what wait-on's
// core engine needs: no gin integration, no error pool, no stack-trace
// capture.
package liberr

import "strconv"

// CodeError is a numeric error classification, similar in spirit to an
// HTTP status code. Each consuming package reserves a contiguous range of
// codes starting at one of the MinPkgXxx constants below and registers a
// message function for it at init time.
type CodeError uint16

// UnknownError is the zero value: an error with no specific code.
const UnknownError CodeError = 0

// UnknownMessage is the fallback message for an unregistered code.
const UnknownMessage = "unknown error"

var idMsgFct = make(map[CodeError]Message)

// Message renders a human-readable string for a CodeError.
type Message func(code CodeError) string

// Per-package minimum code ranges, following golib/errors/modules.go's
// convention of reserving blocks of 100 per package so ranges never
// collide. Only the packages that exist in this repo are listed.
const (
	MinPkgResource   CodeError = 100
	MinPkgProbe      CodeError = 200
	MinPkgPoll       CodeError = 300
	MinPkgWaitOpt    CodeError = 400
	MinPkgWaiton     CodeError = 500
	MinPkgCLI        CodeError = 600
	MinPkgTLSConf    CodeError = 700
	MinPkgDeadline   CodeError = 800
	MinAvailable     CodeError = 1000
)

// RegisterIdFctMessage registers the message function for every code from
// minCode up to the next reserved range. Consuming packages call this once
// from an init() func and panic on collision, mirroring
// golib/httpcli/errors.go's init() pattern.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	idMsgFct[minCode] = fct
}

// ExistInMapMessage reports whether a message function is already
// registered for the range containing code.
func ExistInMapMessage(code CodeError) bool {
	_, ok := idMsgFct[findRange(code)]
	return ok
}

func findRange(code CodeError) CodeError {
	var best CodeError
	var found bool
	for k := range idMsgFct {
		if k <= code && (!found || k > best) {
			best, found = k, true
		}
	}
	if !found {
		return UnknownError
	}
	return best
}

// Message returns the registered message for c, or UnknownMessage.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}
	if f, ok := idMsgFct[findRange(c)]; ok {
		if m := f(c); m != "" {
			return m
		}
	}
	return UnknownMessage
}

// Uint16 returns the underlying numeric value.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// String implements fmt.Stringer.
func (c CodeError) String() string {
	return strconv.Itoa(int(c))
}

// Error builds a new Error value carrying this code, optionally wrapping
// zero or more parent errors.
func (c CodeError) Error(parent ...error) Error {
	return newError(c, c.Message(), parent...)
}

// ErrorParent is a convenience alias for Error(parent...) used throughout
// this repo the way golib packages call `.ErrorParent(err)`.
func (c CodeError) ErrorParent(parent error) Error {
	return newError(c, c.Message(), parent)
}
