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

package resource_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/wait-on/resource"
)

func TestResource(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "resource suite")
}

var _ = Describe("Parse", func() {
	Context("bare paths and file: scheme", func() {
		It("treats a bare path as FILE", func() {
			d := resource.Parse("/tmp/xyz/foo")
			Expect(d.Kind).To(Equal(resource.File))
			Expect(d.Path).To(Equal("/tmp/xyz/foo"))
		})

		It("treats file: as FILE", func() {
			d := resource.Parse("file:/tmp/xyz/foo")
			Expect(d.Kind).To(Equal(resource.File))
			Expect(d.Path).To(Equal("/tmp/xyz/foo"))
		})

		It("treats an unrecognized scheme as FILE", func() {
			d := resource.Parse("ftp://example.com/foo")
			Expect(d.Kind).To(Equal(resource.File))
			Expect(d.Path).To(Equal("ftp://example.com/foo"))
		})
	})

	Context("tcp: scheme", func() {
		It("defaults host to localhost", func() {
			d := resource.Parse("tcp:3001")
			Expect(d.Kind).To(Equal(resource.TCP))
			Expect(d.Host).To(Equal("localhost"))
			Expect(d.Port).To(Equal(3001))
			Expect(d.TCPMalformed).To(BeFalse())
		})

		It("parses an explicit host", func() {
			d := resource.Parse("tcp:example.com:3001")
			Expect(d.Host).To(Equal("example.com"))
			Expect(d.Port).To(Equal(3001))
		})

		It("parses an unreachable literal host as TCP, not malformed", func() {
			d := resource.Parse("tcp:256.0.0.1:1234")
			Expect(d.TCPMalformed).To(BeFalse())
			Expect(d.Host).To(Equal("256.0.0.1"))
			Expect(d.Port).To(Equal(1234))
		})

		It("marks a non-numeric port as malformed, not an error", func() {
			d := resource.Parse("tcp:abc")
			Expect(d.Kind).To(Equal(resource.TCP))
			Expect(d.TCPMalformed).To(BeTrue())
		})

		It("treats an empty tcp: payload as a bare FILE path", func() {
			d := resource.Parse("tcp:")
			Expect(d.Kind).To(Equal(resource.File))
			Expect(d.Path).To(Equal("tcp:"))
		})
	})

	Context("socket: scheme", func() {
		It("captures the socket path", func() {
			d := resource.Parse("socket:/var/run/app.sock")
			Expect(d.Kind).To(Equal(resource.Socket))
			Expect(d.Path).To(Equal("/var/run/app.sock"))
		})
	})

	Context("http(s) scheme", func() {
		It("parses http as HEAD", func() {
			d := resource.Parse("http://localhost:3000/foo")
			Expect(d.Kind).To(Equal(resource.HTTPHead))
			Expect(d.URL).To(Equal("http://localhost:3000/foo"))
			Expect(d.Scheme).To(Equal("http"))
		})

		It("parses https as HEAD", func() {
			d := resource.Parse("https://localhost:3000/foo")
			Expect(d.Kind).To(Equal(resource.HTTPHead))
			Expect(d.Scheme).To(Equal("https"))
		})

		It("parses http-get as GET", func() {
			d := resource.Parse("http-get://localhost:3000/foo")
			Expect(d.Kind).To(Equal(resource.HTTPGet))
			Expect(d.URL).To(Equal("http://localhost:3000/foo"))
		})

		It("parses https-get as GET", func() {
			d := resource.Parse("https-get://localhost:3000/foo")
			Expect(d.Kind).To(Equal(resource.HTTPGet))
			Expect(d.URL).To(Equal("https://localhost:3000/foo"))
		})
	})

	Context("http(s)-over-unix scheme", func() {
		It("parses a unix-socket HEAD resource", func() {
			d := resource.Parse("http://unix:/var/run/app.sock:/health")
			Expect(d.Kind).To(Equal(resource.HTTPUnixHead))
			Expect(d.SocketPath).To(Equal("/var/run/app.sock"))
			Expect(d.URLPath).To(Equal("/health"))
		})

		It("parses a unix-socket GET resource", func() {
			d := resource.Parse("http-get://unix:/var/run/app.sock:/health")
			Expect(d.Kind).To(Equal(resource.HTTPUnixGet))
			Expect(d.SocketPath).To(Equal("/var/run/app.sock"))
			Expect(d.URLPath).To(Equal("/health"))
		})

		It("prefixes a missing leading slash on the url path", func() {
			d := resource.Parse("http://unix:/var/run/app.sock:health")
			Expect(d.URLPath).To(Equal("/health"))
		})
	})
})
