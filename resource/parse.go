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

package resource

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reTopScheme = regexp.MustCompile(`^(https?-get|https?|tcp|socket|file):(.+)$`)
	reTCP       = regexp.MustCompile(`^(([^:]*):)?(\d+)$`)
	reUnix      = regexp.MustCompile(`^https?://unix:([^:]+):([^:]+)$`)
)

// Parse classifies a raw resource string per spec.md §4.1's ordered rules.
// Parse never fails: an unrecognized scheme falls back to FILE (rule 1),
// and a malformed `tcp:` payload is captured as TCPMalformed rather than
// rejected (§4.1's errata, §9's first open question).
func Parse(raw string) Descriptor {
	d := Descriptor{Raw: raw}

	m := reTopScheme.FindStringSubmatch(raw)
	if m == nil {
		d.Kind = File
		d.Path = raw
		return d
	}

	scheme, rest := strings.ToLower(m[1]), m[2]

	switch scheme {
	case "file":
		d.Kind = File
		d.Path = rest
		return d

	case "tcp":
		d.Kind = TCP
		parseTCP(&d, rest)
		return d

	case "socket":
		d.Kind = Socket
		d.Path = rest
		return d

	default: // http, https, http-get, https-get
		isGet := strings.HasSuffix(scheme, "-get")
		base := strings.TrimSuffix(scheme, "-get")
		full := base + ":" + rest

		if um := reUnix.FindStringSubmatch(full); um != nil {
			d.Scheme = base
			d.SocketPath = um[1]
			d.URLPath = um[2]
			if !strings.HasPrefix(d.URLPath, "/") {
				d.URLPath = "/" + d.URLPath
			}
			if isGet {
				d.Kind = HTTPUnixGet
			} else {
				d.Kind = HTTPUnixHead
			}
			return d
		}

		d.Scheme = base
		d.URL = full
		if isGet {
			d.Kind = HTTPGet
		} else {
			d.Kind = HTTPHead
		}
		return d
	}
}

func parseTCP(d *Descriptor, payload string) {
	m := reTCP.FindStringSubmatch(payload)
	if m == nil {
		d.TCPMalformed = true
		return
	}

	host := m[2]
	if host == "" {
		host = "localhost"
	}

	port, err := strconv.Atoi(m[3])
	if err != nil {
		d.TCPMalformed = true
		return
	}

	d.Host = host
	d.Port = port
}
