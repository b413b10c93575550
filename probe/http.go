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

package probe

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/nabbar/wait-on/internal/tlsconf"
	"github.com/nabbar/wait-on/resource"
)

type httpProbe struct {
	method  string
	url     string
	timeout time.Duration
	client  *http.Client
	headers map[string][]string
	auth    Auth
	valid   func(status int) bool
}

// defaultValidateStatus is spec.md §4.2 / §14's default success predicate:
// any 2xx response, regardless of followRedirect.
func defaultValidateStatus(status int) bool {
	return status >= 200 && status < 300
}

func newHTTPProbe(d resource.Descriptor, o Options) Prober {
	method := http.MethodHead
	if d.Kind == resource.HTTPGet || d.Kind == resource.HTTPUnixGet {
		method = http.MethodGet
	}

	transport := &http.Transport{}

	if d.Kind == resource.HTTPUnixHead || d.Kind == resource.HTTPUnixGet {
		sockPath := d.SocketPath
		transport.DialContext = func(ctx context.Context, _, _ string) (net.Conn, error) {
			var dialer net.Dialer
			return dialer.DialContext(ctx, "unix", sockPath)
		}
	}

	if d.Scheme == "https" {
		if tc, err := tlsconf.Build(o.TLS); err == nil {
			transport.TLSClientConfig = tc
		}
		// A TLS material error (bad CA/cert/key/passphrase) is not
		// reported: the transport then keeps Go's default TLS settings,
		// which verify the server certificate and present no client
		// certificate. waitopt.Validate does not check TLS material.
	}

	if o.Proxy != nil {
		transport.Proxy = http.ProxyURL(o.Proxy)
	}

	client := &http.Client{Transport: transport}
	if !o.FollowRedirect {
		client.CheckRedirect = func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	target := d.URL
	if d.Kind == resource.HTTPUnixHead || d.Kind == resource.HTTPUnixGet {
		target = d.Scheme + "://unix" + d.URLPath
	}

	valid := o.ValidateStatus
	if valid == nil {
		valid = defaultValidateStatus
	}

	return &httpProbe{
		method:  method,
		url:     target,
		timeout: o.HTTPTimeout,
		client:  client,
		headers: o.Headers,
		auth:    o.Auth,
		valid:   valid,
	}
}

// Probe issues one request and judges the response (or the redirect it
// stopped on, when followRedirect is false) via valid (spec.md §4.2, §14).
func (p *httpProbe) Probe(ctx context.Context) Result {
	if ctx.Err() != nil {
		return Result{Size: -1, Err: ctx.Err()}
	}

	rctx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(rctx, p.method, p.url, nil)
	if err != nil {
		return Result{Size: -1, Err: err}
	}

	for k, vs := range p.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	if p.auth.Username != "" {
		req.SetBasicAuth(p.auth.Username, p.auth.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Result{Size: -1, Err: err}
	}
	defer resp.Body.Close()

	return Result{Size: -1, Available: p.valid(resp.StatusCode)}
}
