/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"errors"
	"fmt"

	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/fixsession"
	"github.com/spf13/cobra"
)

// exitError lets a subcommand's RunE pin the process exit code (config
// error vs. transport/auth failure) while still returning a normal Go
// error for cobra to print.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func configErrorf(format string, args ...any) error {
	return &exitError{code: 1, err: fmt.Errorf(format, args...)}
}

func authErrorf(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

// exitCodeFor classifies an error returned from the root command into
// the process exit code documented by SPEC_FULL.md's CLI harness
// section: 0 clean shutdown, 1 config error, 2 transport/auth failure.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	var cfgErr *fixfield.ConfigError
	if errors.As(err, &cfgErr) {
		return 1
	}
	var sessErr *fixsession.SessionError
	if errors.As(err, &sessErr) {
		return 2
	}
	var transErr *fixsession.TransportError
	if errors.As(err, &transErr) {
		return 2
	}
	return 2
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fixmd",
		Short:         "FIX 4.x/FIXT market-data and order-entry client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newConnectCmd())
	root.AddCommand(newVersionCmd())
	return root
}
