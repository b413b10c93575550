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

// Package main is the thin CLI wrapper around the waiton engine,
// specified only so its flags constrain the core option names (spec.md
// §6). It follows golib/cobra's configure-then-execute shape, trimmed
// to a single command since wait-on has no subcommand tree.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	spfcbr "github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	waiton "github.com/nabbar/wait-on"
	"github.com/nabbar/wait-on/internal/duration"
	"github.com/nabbar/wait-on/internal/liblog"
	"github.com/nabbar/wait-on/waitopt"
)

var flags struct {
	config         string
	delay          duration.Duration
	httpTimeout    duration.Duration
	interval       duration.Duration
	log            bool
	reverse        bool
	simultaneous   int64
	tcpTimeout     duration.Duration
	timeout        duration.Duration
	verbose        bool
	window         duration.Duration
	followRedirect bool
	strictSSL      bool
}

func newRootCmd() *spfcbr.Command {
	def := waitopt.Default()
	flags.interval = def.Interval
	flags.tcpTimeout = def.TCPTimeout
	flags.window = def.Window
	flags.followRedirect = def.FollowRedirect

	cmd := &spfcbr.Command{
		Use:   "wait-on [resources...]",
		Short: "Block until files, ports, sockets or HTTP(S) endpoints become available",
		RunE:  runRoot,
	}

	fl := cmd.Flags()
	fl.StringVarP(&flags.config, "config", "c", "", "load options from a config file; positional resources override its resources list")
	fl.VarP(&flags.delay, "delay", "d", "delay before the first probe of every resource")
	fl.Var(&flags.httpTimeout, "httpTimeout", "per-HTTP-request timeout")
	fl.VarP(&flags.interval, "interval", "i", "poll period")
	fl.BoolVarP(&flags.log, "log", "l", false, "enable progress logging")
	fl.BoolVarP(&flags.reverse, "reverse", "r", false, "invert the success predicate: succeed when resources are unavailable")
	fl.Int64VarP(&flags.simultaneous, "simultaneous", "s", 0, "max in-flight probes per resource (0 = unbounded)")
	fl.Var(&flags.tcpTimeout, "tcpTimeout", "per-TCP-connect timeout")
	fl.VarP(&flags.timeout, "timeout", "t", "global deadline (0 = none)")
	fl.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging (implies --log)")
	fl.VarP(&flags.window, "window", "w", "file-size stability window")
	fl.BoolVar(&flags.followRedirect, "followRedirect", true, "follow HTTP redirects")
	fl.BoolVar(&flags.strictSSL, "strictSSL", false, "reject unverifiable TLS certificates")

	return cmd
}

func runRoot(cmd *spfcbr.Command, args []string) error {
	o, err := loadOptions(cmd.Flags(), args)
	if err != nil {
		printFailure(err)
		return err
	}

	var log *liblog.Logger
	if o.Log {
		level := liblog.InfoLevel
		if o.Verbose {
			level = liblog.DebugLevel
		}
		log = liblog.New(os.Stderr, true, level)
	}

	if err := waiton.Run(context.Background(), o, log, nil); err != nil {
		printFailure(err)
		return err
	}

	printSuccess()
	return nil
}

// loadOptions merges a --config file (if given) with the flags set on
// the command line. Command-line positional resources always override
// the config file's resources list (spec.md §6).
func loadOptions(fl *pflag.FlagSet, args []string) (waitopt.Options, error) {
	o := waitopt.Default()

	if flags.config != "" {
		path, err := homedir.Expand(flags.config)
		if err != nil {
			return o, fmt.Errorf("wait-on: resolving --config path: %w", err)
		}

		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return o, fmt.Errorf("wait-on: reading config %s: %w", path, err)
		}

		decodeHook := mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
		if err := v.Unmarshal(&o, func(c *mapstructure.DecoderConfig) { c.DecodeHook = decodeHook }); err != nil {
			return o, fmt.Errorf("wait-on: decoding config %s: %w", path, err)
		}
	}

	o.Delay = flags.delay
	o.HTTPTimeout = flags.httpTimeout
	o.Interval = flags.interval
	o.TCPTimeout = flags.tcpTimeout
	o.Timeout = flags.timeout
	o.Window = flags.window
	o.FollowRedirect = flags.followRedirect
	o.StrictSSL = flags.strictSSL
	o.Reverse = flags.reverse || o.Reverse
	o.Log = flags.log || o.Log
	o.Verbose = flags.verbose || o.Verbose
	if flags.simultaneous > 0 {
		o.Simultaneous = flags.simultaneous
	}

	if len(args) > 0 {
		o.Resources = args
	}

	return o, nil
}

func printSuccess() {
	fmt.Fprintln(os.Stdout, color.GreenString("wait-on: all resources are available"))
}

func printFailure(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("wait-on: %s", err.Error()))
}
