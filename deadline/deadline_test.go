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

package deadline_test

import (
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/wait-on/aggregate"
	"github.com/nabbar/wait-on/deadline"
)

func TestDeadline(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "deadline suite")
}

var _ = Describe("Race", func() {
	It("returns nil once the aggregator's channel reports AllDone", func() {
		snaps := make(chan aggregate.Snapshot, 1)
		snaps <- aggregate.Snapshot{AllDone: true}
		close(snaps)

		err := deadline.Race(snaps, time.Second)
		Expect(err).To(BeNil())
	})

	It("returns a timeout error listing the pending resources when the timer wins", func() {
		snaps := make(chan aggregate.Snapshot, 1)
		snaps <- aggregate.Snapshot{AllDone: false, Pending: []string{"http://localhost:3002"}}

		err := deadline.Race(snaps, 20*time.Millisecond)
		Expect(err).To(HaveOccurred())
		Expect(strings.HasPrefix(err.Error(), "Timed out waiting for")).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("http://localhost:3002"))
	})

	It("waits indefinitely when timeout is zero", func() {
		snaps := make(chan aggregate.Snapshot, 1)

		done := make(chan liberrResult, 1)
		go func() {
			done <- liberrResult{err: deadline.Race(snaps, 0)}
		}()

		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())

		snaps <- aggregate.Snapshot{AllDone: true}
		close(snaps)

		Eventually(done, time.Second).Should(Receive())
	})
})

type liberrResult struct {
	err error
}
