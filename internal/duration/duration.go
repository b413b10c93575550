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

// Package duration wraps time.Duration with wait-on's own parsing grammar
// (milliseconds, "s", "m", "h" suffixes, floored to an integer millisecond
// count), in the style of golib/duration's Duration wrapper type -- but
// using wait-on's own grammar instead of time.ParseDuration's, since the
// CLI surface (spec.md §6) documents a narrower grammar than Go's stdlib
// understands (no "ns", "us", mixed units, or negative values).
package duration

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Duration is a millisecond-resolution duration.
type Duration time.Duration

var grammar = regexp.MustCompile(`(?i)^([\d.]+)(ms|s|m|h)?$`)

// unit multipliers, in milliseconds.
var unitMs = map[string]float64{
	"":   1,
	"ms": 1,
	"s":  1000,
	"m":  60000,
	"h":  3600000,
}

// Parse parses a string using the grammar `^([\d.]+)(|ms|s|m|h)$`
// (case-insensitive). An absent or "ms" suffix is milliseconds, "s" is
// ×1000, "m" is ×60000, "h" is ×3600000; the result is floored to an
// integer millisecond count, exactly as spec.md §6 documents.
func Parse(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	if s == "" {
		return 0, fmt.Errorf("duration: empty value")
	}

	m := grammar.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("duration: malformed value %q", s)
	}

	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("duration: malformed numeric value %q: %w", m[1], err)
	}

	mult := unitMs[strings.ToLower(m[2])]
	ms := math.Floor(val * mult)

	return Duration(time.Duration(ms) * time.Millisecond), nil
}

// MustParse is Parse but panics on error; used for package-level defaults.
func MustParse(s string) Duration {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns the value as a standard time.Duration.
func (d Duration) Time() time.Duration {
	return time.Duration(d)
}

// Milliseconds returns the value as an integer millisecond count.
func (d Duration) Milliseconds() int64 {
	return time.Duration(d).Milliseconds()
}

// String renders the duration using time.Duration's default formatting.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// IsZero reports whether the duration is exactly zero.
func (d Duration) IsZero() bool {
	return d == 0
}

// MarshalJSON implements json.Marshaler, encoding as a millisecond integer.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(d.Milliseconds(), 10)), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting either a quoted
// string ("500ms") or a bare millisecond integer (500), mirroring
// golib/duration's dual string/numeric unmarshalling.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*d = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		v, err := Parse(s)
		if err != nil {
			return err
		}
		*d = v
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration: malformed numeric JSON value %q: %w", s, err)
	}
	*d = Duration(time.Duration(n) * time.Millisecond)
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler so viper/mapstructure,
// YAML and TOML decoders can all populate a Duration field directly.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Set implements pflag.Value so Duration can be used directly as a CLI
// flag type, parsed with wait-on's own grammar rather than pflag's builtin
// time.Duration flag type.
func (d *Duration) Set(s string) error {
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Type implements pflag.Value.
func (d *Duration) Type() string {
	return "duration"
}
