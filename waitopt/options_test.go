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

package waitopt_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/wait-on/internal/duration"
	"github.com/nabbar/wait-on/waitopt"
)

func TestWaitOpt(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "waitopt suite")
}

var _ = Describe("Validate", func() {
	It("rejects an empty resource list", func() {
		o := waitopt.Default()
		_, err := waitopt.Validate(o)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("resources"))
	})

	It("rejects a negative duration field", func() {
		o := waitopt.Default()
		o.Resources = []string{"tcp:1"}
		o.Delay = duration.Duration(-1)
		_, err := waitopt.Validate(o)
		Expect(err).To(HaveOccurred())
	})

	It("normalizes window up to interval when window is smaller", func() {
		o := waitopt.Default()
		o.Resources = []string{"tcp:1"}
		o.Interval = duration.MustParse("500ms")
		o.Window = duration.MustParse("100ms")

		got, err := waitopt.Validate(o)
		Expect(err).To(BeNil())
		Expect(got.Window).To(Equal(got.Interval))
	})

	It("sets log true when only verbose is set", func() {
		o := waitopt.Default()
		o.Resources = []string{"tcp:1"}
		o.Verbose = true

		got, err := waitopt.Validate(o)
		Expect(err).To(BeNil())
		Expect(got.Log).To(BeTrue())
	})

	It("accepts a valid, fully defaulted configuration", func() {
		o := waitopt.Default()
		o.Resources = []string{"tcp:1"}

		_, err := waitopt.Validate(o)
		Expect(err).To(BeNil())
	})
})
