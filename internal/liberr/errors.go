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

package liberr

import (
	"strings"
)

// Error extends the standard error with a numeric code and an optional
// chain of parent errors, in the style of golib/errors.Error.
type Error interface {
	error

	// Code returns the numeric classification of this error.
	Code() CodeError

	// IsCode reports whether this error's own code equals code.
	IsCode(code CodeError) bool

	// Add appends one or more non-nil parent errors to this error's chain.
	Add(parent ...error)

	// HasParent reports whether any parent errors are attached.
	HasParent() bool

	// GetParent returns the attached parent errors.
	GetParent() []error

	// Is implements the errors.Is contract. Two errors built by this
	// package are equal when they carry the same non-zero code; any other
	// error is equal when its message text matches (case-insensitively).
	Is(err error) bool

	// Unwrap exposes the parent chain to errors.Is / errors.As.
	Unwrap() []error
}

type ers struct {
	code CodeError
	msg  string
	par  []error
}

func newError(code CodeError, msg string, parent ...error) Error {
	e := &ers{code: code, msg: msg}
	e.Add(parent...)
	return e
}

func (e *ers) Error() string {
	if len(e.par) == 0 {
		return e.msg
	}

	var s []string
	if e.msg != "" {
		s = append(s, e.msg)
	}
	for _, p := range e.par {
		if p != nil {
			s = append(s, p.Error())
		}
	}
	return strings.Join(s, ": ")
}

func (e *ers) Code() CodeError {
	return e.code
}

func (e *ers) IsCode(code CodeError) bool {
	return e.code == code
}

func (e *ers) Add(parent ...error) {
	for _, p := range parent {
		if p != nil {
			e.par = append(e.par, p)
		}
	}
}

func (e *ers) HasParent() bool {
	return len(e.par) > 0
}

func (e *ers) GetParent() []error {
	return e.par
}

func (e *ers) Unwrap() []error {
	return e.par
}

func (e *ers) Is(err error) bool {
	if err == nil {
		return false
	}
	if o, ok := err.(*ers); ok {
		return e.code != UnknownError && e.code == o.code
	}
	return strings.EqualFold(e.Error(), err.Error())
}
