// © 2026 The Reheader Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package cli

import (
	"bytes"
	"errors"
	"os"
	"os/exec"

	"golang.org/x/term"
)

// IsTerminal reports whether the file descriptor is attached to a terminal.
// It is a variable so tests can stub it out.
var IsTerminal = func(fd int) bool { return term.IsTerminal(fd) }

var errNoPager = errors.New("pager unavailable")

// page pipes b through the user's $PAGER if stderr is a terminal.
// Setting NO_PAGER disables it.
func page(env *Env, b []byte) error {
	pager := env.Getenv("PAGER")
	if pager == "" || env.Getenv("NO_PAGER") != "" {
		return errNoPager
	}
	f, ok := env.Stderr.(*os.File)
	if !ok || !IsTerminal(int(f.Fd())) {
		return errNoPager
	}
	cmd := exec.Command(pager)
	cmd.Stdin = bytes.NewReader(b)
	cmd.Stdout = env.Stderr
	cmd.Stderr = env.Stderr
	return cmd.Run()
}
