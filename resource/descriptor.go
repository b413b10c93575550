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

// Descriptor is the immutable, kind-tagged result of parsing one resource
// string (spec.md §3's "Resource descriptor"). Only the fields relevant to
// Kind are populated; the rest are zero.
type Descriptor struct {
	// Raw is the original, unparsed resource string. Used verbatim in
	// progress/timeout reporting (spec.md §4.4, §4.5).
	Raw string

	Kind Kind

	// Path is the filesystem path (File) or socket path (Socket).
	Path string

	// URL is the full request URL for HTTPHead/HTTPGet.
	URL string

	// Scheme is "http" or "https", for HTTPHead/HTTPGet/HTTPUnixHead/HTTPUnixGet.
	Scheme string

	// SocketPath is the Unix domain socket path for HTTPUnixHead/HTTPUnixGet.
	SocketPath string

	// URLPath is the HTTP request path issued over SocketPath.
	URLPath string

	// Host and Port are the TCP target. Both are zero when TCPMalformed.
	Host string
	Port int

	// TCPMalformed marks a `tcp:` resource whose payload didn't match the
	// `host:port` grammar (spec.md §4.1's errata: this is deliberately not
	// a config error, so the TCP probe just reports unavailable forever).
	TCPMalformed bool
}

// String renders the descriptor back to its canonical resource string, used
// for log and timeout-message output (spec.md §4.4/§4.5 use the raw form
// directly, but this is handy for debugging and tests).
func (d Descriptor) String() string {
	return d.Raw
}
