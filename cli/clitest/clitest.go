// © 2026 The Reheader Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clitest provides a harness for table-driven testing of [cli.App]
// implementations.
package clitest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/fieldlabs/reheader/cli"
)

// Case describes a single invocation of an application under test.
type Case[A cli.App] struct {
	// Args are the command-line arguments passed to the application.
	Args []string
	// Stdin is the application's standard input. If nil, an empty reader
	// is used.
	Stdin io.Reader
	// Env contains the environment variables visible to the application.
	Env map[string]string
	// WantErr, if set, asserts that the returned error matches via
	// [errors.Is].
	WantErr error
	// WantErrType, if set, asserts that the returned error matches the
	// type of this value via [errors.As].
	WantErrType error
	// WantInStdout asserts that standard output contains this string.
	WantInStdout string
	// WantInStderr asserts that standard error contains this string.
	WantInStderr string
	// WantNothingPrinted asserts that the application produced no output
	// at all.
	WantNothingPrinted bool
	// CheckFunc runs after the application finished, for custom
	// assertions against the application value.
	CheckFunc func(*testing.T, A)
}

// Run executes each case as a subtest. The setup function constructs a fresh
// application value for every case.
func Run[A cli.App](t *testing.T, setup func(*testing.T) A, cases map[string]Case[A]) {
	t.Helper()
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := setup(t)

			stdin := tc.Stdin
			if stdin == nil {
				stdin = strings.NewReader("")
			}
			var stdout, stderr bytes.Buffer
			env := &cli.Env{
				Args:   tc.Args,
				Stdin:  stdin,
				Stdout: &stdout,
				Stderr: &stderr,
				Getenv: func(key string) string { return tc.Env[key] },
			}

			err := cli.Run(cli.WithEnv(context.Background(), env), app)

			switch {
			case tc.WantErr != nil:
				if !errors.Is(err, tc.WantErr) {
					t.Fatalf("got error %v, want %v", err, tc.WantErr)
				}
			case tc.WantErrType != nil:
				target := reflect.New(reflect.TypeOf(tc.WantErrType))
				if !errors.As(err, target.Interface()) {
					t.Fatalf("got error %v (%T), want type %T", err, err, tc.WantErrType)
				}
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}

			if tc.WantNothingPrinted {
				if stdout.Len() > 0 {
					t.Errorf("stdout should be empty, got: %q", stdout.String())
				}
				if stderr.Len() > 0 {
					t.Errorf("stderr should be empty, got: %q", stderr.String())
				}
			}
			if tc.WantInStdout != "" && !strings.Contains(stdout.String(), tc.WantInStdout) {
				t.Errorf("stdout must contain %q, got: %q", tc.WantInStdout, stdout.String())
			}
			if tc.WantInStderr != "" && !strings.Contains(stderr.String(), tc.WantInStderr) {
				t.Errorf("stderr must contain %q, got: %q", tc.WantInStderr, stderr.String())
			}

			if tc.CheckFunc != nil {
				tc.CheckFunc(t, app)
			}
		})
	}
}
