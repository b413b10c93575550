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
	"os"
)

type fileProbe struct {
	path string
}

func newFileProbe(path string) Prober {
	return &fileProbe{path: path}
}

// Probe stats the file and returns its size, or -1 if the stat failed for
// any reason (absent, permission denied, not a regular entry). The
// distinction between "absent" and "other error" does not matter to the
// stability algorithm (spec.md §4.3), so both collapse to -1.
func (p *fileProbe) Probe(ctx context.Context) Result {
	if ctx.Err() != nil {
		return Result{Size: -1, Err: ctx.Err()}
	}

	fi, err := os.Stat(p.path)
	if err != nil {
		return Result{Size: -1, Err: err}
	}

	return Result{Size: fi.Size(), Available: true}
}
