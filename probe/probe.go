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

// Package probe implements spec.md's C2: four stateless availability
// checks (file-stat, HTTP(S), TCP connect, Unix socket connect), each
// exposed behind the Prober interface so poll (C3) can dispatch on
// resource.Kind without a type switch on each tick, in the style of
// golib/httpcli's HTTP interface wrapping a *http.Client.
package probe

import (
	"context"
	"net/url"
	"time"

	"github.com/nabbar/wait-on/internal/tlsconf"
	"github.com/nabbar/wait-on/resource"
)

// Result is one probe cycle's outcome.
type Result struct {
	// Available is the probe's own success/failure signal (spec.md §4.3
	// step 3: "for non-file kinds: pred = available").
	Available bool

	// Size is the FILE probe's byte size, or -1 if the probe is not a
	// FILE probe or the file could not be stat'd (spec.md §4.2).
	Size int64

	// Err is a transient diagnostic (PROBE_TRANSIENT, spec.md §7): never
	// propagated to the caller's terminal callback, only surfaced through
	// verbose logging.
	Err error
}

// Prober performs one availability check. Implementations must be safe to
// call repeatedly and must release any OS resources (sockets, file
// handles) before returning, even when ctx is already cancelled (spec.md
// §5's cooperative-cancellation contract).
type Prober interface {
	Probe(ctx context.Context) Result
}

// Auth is HTTP basic auth credentials.
type Auth struct {
	Username string
	Password string
}

// Options configures the probe constructed for a given resource.Descriptor.
// Only the fields relevant to the descriptor's Kind are read.
type Options struct {
	// TCPTimeout bounds a TCP connect (spec.md §3, default 300ms).
	TCPTimeout time.Duration

	// HTTPTimeout bounds one HTTP(S) request, when non-zero (spec.md §3).
	HTTPTimeout time.Duration

	// FollowRedirect controls whether the HTTP transport follows 3xx
	// responses (spec.md §3, default true).
	FollowRedirect bool

	// TLS carries the ca/cert/key/passphrase/strictSSL material for
	// HTTPS probes (spec.md §3).
	TLS tlsconf.Material

	// Proxy is the HTTP proxy endpoint, when non-nil (spec.md §3).
	Proxy *url.URL

	// Auth is HTTP basic auth, when Username is non-empty.
	Auth Auth

	// Headers are extra request headers (spec.md §3).
	Headers map[string][]string

	// ValidateStatus decides success from a response status code. Nil
	// selects the default (200 <= s < 300, spec.md §4.2 / §14).
	ValidateStatus func(status int) bool
}

// New builds the Prober appropriate for d.Kind, wiring o's HTTP/TCP/TLS
// knobs where relevant. The returned Prober is stateless; repeated calls
// to Probe perform independent round trips.
func New(d resource.Descriptor, o Options) Prober {
	switch d.Kind {
	case resource.File:
		return newFileProbe(d.Path)

	case resource.TCP:
		return newTCPProbe(d, o.TCPTimeout)

	case resource.Socket:
		return newSocketProbe(d.Path)

	default: // HTTPHead, HTTPGet, HTTPUnixHead, HTTPUnixGet
		return newHTTPProbe(d, o)
	}
}
