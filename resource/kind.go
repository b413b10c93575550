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

// Package resource classifies a raw resource string into a typed
// Descriptor (spec.md C1 / §4.1), the way golib/network/protocol
// classifies a raw network-protocol string into a typed enum.
package resource

import "strings"

// Kind is the classification of a resource string, one of the seven
// variants spec.md §3 names.
type Kind uint8

const (
	// File waits on a filesystem path's size-stability window.
	File Kind = iota
	// HTTPHead waits on a HEAD request's status.
	HTTPHead
	// HTTPGet waits on a GET request's status.
	HTTPGet
	// TCP waits on a TCP connect.
	TCP
	// Socket waits on a Unix domain socket connect.
	Socket
	// HTTPUnixHead waits on a HEAD request issued over a Unix domain
	// socket transport.
	HTTPUnixHead
	// HTTPUnixGet waits on a GET request issued over a Unix domain
	// socket transport.
	HTTPUnixGet
)

// String renders the kind's canonical lowercase name.
func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case HTTPHead:
		return "http-head"
	case HTTPGet:
		return "http-get"
	case TCP:
		return "tcp"
	case Socket:
		return "socket"
	case HTTPUnixHead:
		return "http-unix-head"
	case HTTPUnixGet:
		return "http-unix-get"
	default:
		return "unknown"
	}
}

// IsHTTP reports whether k is served by the HTTP(S) probe, over TCP or a
// Unix socket transport.
func (k Kind) IsHTTP() bool {
	switch k {
	case HTTPHead, HTTPGet, HTTPUnixHead, HTTPUnixGet:
		return true
	default:
		return false
	}
}

// IsGet reports whether k issues a GET instead of a HEAD request. Only
// meaningful when IsHTTP() is true.
func (k Kind) IsGet() bool {
	return k == HTTPGet || k == HTTPUnixGet
}

// IsUnix reports whether k's HTTP transport is a Unix domain socket.
func (k Kind) IsUnix() bool {
	return k == HTTPUnixHead || k == HTTPUnixGet
}

// IsFile reports whether k is the FILE kind, the only kind subject to the
// stability-window predicate (spec.md §4.3).
func (k Kind) IsFile() bool {
	return k == File
}

func parseScheme(s string) (scheme string, rest string, ok bool) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return "", s, false
	}
	return strings.ToLower(s[:i]), s[i+1:], true
}
