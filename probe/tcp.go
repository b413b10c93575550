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
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/nabbar/wait-on/resource"
)

type tcpProbe struct {
	malformed bool
	addr      string
	timeout   time.Duration
}

func newTCPProbe(d resource.Descriptor, timeout time.Duration) Prober {
	if timeout <= 0 {
		timeout = 300 * time.Millisecond
	}

	return &tcpProbe{
		malformed: d.TCPMalformed,
		addr:      net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		timeout:   timeout,
	}
}

// Probe attempts a TCP connect. A malformed tcp: payload (spec.md §4.1's
// errata) reports unavailable forever without attempting to dial anything,
// preserving the reverse-mode "wait for an unreachable host" use case
// (spec.md §8 scenario 6).
func (p *tcpProbe) Probe(ctx context.Context) Result {
	if p.malformed {
		return Result{Size: -1, Err: fmt.Errorf("tcp: malformed resource payload")}
	}

	if ctx.Err() != nil {
		return Result{Size: -1, Err: ctx.Err()}
	}

	dialer := net.Dialer{Timeout: p.timeout}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := dialer.DialContext(cctx, "tcp", p.addr)
	if err != nil {
		return Result{Size: -1, Err: err}
	}
	defer conn.Close()

	return Result{Size: -1, Available: true}
}
