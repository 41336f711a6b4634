// © 2026 The Reheader Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package notice

import (
	"errors"
	"regexp"
	"strings"
)

// ErrUnterminatedHeader is reported when a file opens a header block with a
// separator that is never closed by a second one. No sensible output exists
// for such a file, so the caller should leave it untouched.
var ErrUnterminatedHeader = errors.New("header block is never closed by a second separator")

// exemptWindow is the number of leading lines in which a shebang or encoding
// declaration may appear.
const exemptWindow = 2

// exemptRe matches shebang and encoding-declaration lines. Such lines must
// stay ahead of any inserted block to keep their meaning.
var exemptRe = regexp.MustCompile(`^#!|^#.*coding[:=]`)

type state int

const (
	// stateHead scans the first lines of the file, before any header or
	// body has been seen.
	stateHead state = iota
	// stateCopyright consumes an existing header block.
	stateCopyright
	// stateBody passes the rest of the file through unchanged.
	stateBody
)

// Machine is a line-oriented state machine that rewrites the leading comment
// block of a single file. Feed it lines in order, then call Finish.
//
// Lines keep whatever terminator they arrived with; every line outside the
// detected header region is emitted exactly as it came in.
type Machine struct {
	block  *Block // nil in remove mode
	min    string // separator detection threshold
	remove bool

	state  state
	lineNo int
}

// NewInserter returns a machine that replaces an existing notice block with
// block, or inserts block ahead of the file body if none exists.
func NewInserter(block *Block) *Machine {
	return &Machine{
		block: block,
		min:   strings.Repeat(block.Prefix(), SepMin),
	}
}

// NewRemover returns a machine that strips an existing notice block,
// separators included, and leaves everything else alone.
func NewRemover(prefix string) *Machine {
	return &Machine{
		min:    strings.Repeat(prefix, SepMin),
		remove: true,
	}
}

// Feed advances the machine with the next line of the file and returns the
// lines to emit in its place, possibly none.
func (m *Machine) Feed(line string) []string {
	m.lineNo++
	var out []string
	m.state, out = m.step(m.state, line, m.lineNo)
	return out
}

// Finish reports whether the machine ended in a consistent state. A file
// that ends mid-header yields ErrUnterminatedHeader; its partial output must
// be discarded.
func (m *Machine) Finish() error {
	if m.state == stateCopyright {
		return ErrUnterminatedHeader
	}
	return nil
}

// step is the transition function: (state, line, line number) to (next
// state, emitted lines). It has no side effects beyond reading the machine's
// configuration, which keeps transitions directly testable.
func (m *Machine) step(s state, line string, n int) (state, []string) {
	switch s {
	case stateHead:
		if m.isSeparator(line) {
			// The opening separator of an old block. It is being
			// replaced, so drop it.
			return stateCopyright, nil
		}
		if m.remove {
			return stateHead, []string{line}
		}
		if n <= exemptWindow && exemptRe.MatchString(line) {
			return stateHead, []string{line}
		}
		// First body line. The block goes in right before it.
		return stateBody, append(m.block.Rendered(), line)

	case stateCopyright:
		if !m.isSeparator(line) {
			// Old notice text, discarded.
			return stateCopyright, nil
		}
		// The closing separator. The new block's own separators
		// replace the old pair.
		if m.remove {
			return stateBody, nil
		}
		return stateBody, m.block.Rendered()

	default:
		return stateBody, []string{line}
	}
}

func (m *Machine) isSeparator(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), m.min)
}
