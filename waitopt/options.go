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

// Package waitopt implements C6: the options object's shape, defaults
// and validation, in the style of golib/httpcli's Options.Validate --
// a go-playground/validator/v10 struct pass translated into a single
// liberr.Error carrying one parent per violated constraint.
package waitopt

import (
	"fmt"
	"net/url"

	libval "github.com/go-playground/validator/v10"

	"github.com/nabbar/wait-on/internal/duration"
	"github.com/nabbar/wait-on/internal/liberr"
	"github.com/nabbar/wait-on/internal/tlsconf"
)

// Error codes for this package, following the MinPkgWaitOpt range.
const (
	ErrValidation liberr.CodeError = iota + liberr.MinPkgWaitOpt
)

func init() {
	if liberr.ExistInMapMessage(ErrValidation) {
		panic("liberr: code range collision in waitopt")
	}
	liberr.RegisterIdFctMessage(ErrValidation, message)
}

func message(code liberr.CodeError) string {
	if code == ErrValidation {
		return "invalid wait-on options"
	}
	return ""
}

// Auth is HTTP basic auth credentials (spec.md §3).
type Auth struct {
	Username string `json:"username,omitempty" yaml:"username,omitempty" mapstructure:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty" mapstructure:"password,omitempty"`
}

// Options is spec.md §3's validated, defaulted options object.
type Options struct {
	// Resources is the list of resource strings to wait on (spec.md §8
	// scenario 8: empty/omitted is CONFIG_INVALID).
	Resources []string `json:"resources" yaml:"resources" mapstructure:"resources" validate:"required,min=1"`

	Delay       duration.Duration `json:"delay" yaml:"delay" mapstructure:"delay" validate:"gte=0"`
	Interval    duration.Duration `json:"interval" yaml:"interval" mapstructure:"interval" validate:"gte=0"`
	Window      duration.Duration `json:"window" yaml:"window" mapstructure:"window" validate:"gte=0"`
	Timeout     duration.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	HTTPTimeout duration.Duration `json:"httpTimeout" yaml:"httpTimeout" mapstructure:"httpTimeout" validate:"gte=0"`
	TCPTimeout  duration.Duration `json:"tcpTimeout" yaml:"tcpTimeout" mapstructure:"tcpTimeout" validate:"gte=0"`

	// Simultaneous bounds in-flight probes per resource. Zero means
	// unbounded (spec.md §3's default of infinity); a value explicitly
	// set below zero is rejected.
	Simultaneous int64 `json:"simultaneous" yaml:"simultaneous" mapstructure:"simultaneous" validate:"gte=0"`

	Reverse bool `json:"reverse" yaml:"reverse" mapstructure:"reverse"`
	Log     bool `json:"log" yaml:"log" mapstructure:"log"`
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`

	FollowRedirect bool `json:"followRedirect" yaml:"followRedirect" mapstructure:"followRedirect"`
	StrictSSL      bool `json:"strictSSL" yaml:"strictSSL" mapstructure:"strictSSL"`

	CA         []string `json:"ca,omitempty" yaml:"ca,omitempty" mapstructure:"ca,omitempty"`
	Cert       string   `json:"cert,omitempty" yaml:"cert,omitempty" mapstructure:"cert,omitempty"`
	Key        string   `json:"key,omitempty" yaml:"key,omitempty" mapstructure:"key,omitempty"`
	Passphrase string   `json:"passphrase,omitempty" yaml:"passphrase,omitempty" mapstructure:"passphrase,omitempty"`

	Proxy   *url.URL            `json:"-" yaml:"-" mapstructure:"-"`
	Auth    Auth                `json:"auth,omitempty" yaml:"auth,omitempty" mapstructure:"auth,omitempty"`
	Headers map[string][]string `json:"headers,omitempty" yaml:"headers,omitempty" mapstructure:"headers,omitempty"`

	// ValidateStatus overrides the default HTTP success predicate
	// (200 <= s < 300). Not config-file representable; set
	// programmatically.
	ValidateStatus func(status int) bool `json:"-" yaml:"-" mapstructure:"-"`
}

// Default returns an Options with every spec.md §3 default applied,
// resources empty (the caller must fill it in before Validate).
func Default() Options {
	return Options{
		Interval:       duration.MustParse("250ms"),
		Window:         duration.MustParse("750ms"),
		TCPTimeout:     duration.MustParse("300ms"),
		FollowRedirect: true,
		StrictSSL:      false,
	}
}

// Validate runs go-playground/validator's struct tags over o and
// normalizes it per spec.md §4.6: window = max(window, interval) and
// log = log || verbose. It returns the normalized Options and a
// non-nil liberr.Error (code ErrValidation, one parent per violated
// constraint) when o fails validation.
func Validate(o Options) (Options, liberr.Error) {
	var e = ErrValidation.Error(nil)

	if err := libval.New().Struct(o); err != nil {
		if _, ok := err.(*libval.InvalidValidationError); ok {
			e.Add(err)
		} else if verrs, ok := err.(libval.ValidationErrors); ok {
			for _, fe := range verrs {
				if fe.Namespace() == "Options.Resources" {
					e.Add(fmt.Errorf("field 'resources' is required: at least one resource must be given"))
					continue
				}
				e.Add(fmt.Errorf("field %q fails constraint %q", fe.Namespace(), fe.ActualTag()))
			}
		} else {
			e.Add(err)
		}
	}

	if e.HasParent() {
		return o, e
	}

	if o.Window.Time() < o.Interval.Time() {
		o.Window = o.Interval
	}
	o.Log = o.Log || o.Verbose

	return o, nil
}

// TLSMaterial renders o's TLS-shaped fields as an internal/tlsconf.Material.
func (o Options) TLSMaterial() tlsconf.Material {
	return tlsconf.Material{
		CA:         o.CA,
		Cert:       o.Cert,
		Key:        o.Key,
		Passphrase: o.Passphrase,
		StrictSSL:  o.StrictSSL,
	}
}
