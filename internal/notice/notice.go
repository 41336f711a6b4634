// © 2026 The Reheader Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package notice renders canonical notice blocks and locates existing ones
// in the leading comments of source files.
//
// A notice block is a run of comment lines bounded above and below by
// separator lines. A separator is a line whose stripped form starts with the
// comment prefix repeated at least [SepMin] times; the blocks this package
// emits use [SepWidth] repeats. The looser detection threshold lets the tool
// recognize and replace blocks written by hand or by older versions.
package notice

import (
	"slices"
	"strings"
)

const (
	// SepWidth is the width of an emitted separator line.
	SepWidth = 78
	// SepMin is the minimum prefix run recognized as a separator.
	SepMin = 10
)

// Block is a comment-formatted notice, computed once per run and reused for
// every file.
type Block struct {
	prefix   string
	rendered []string
}

// NewBlock renders the raw notice text into an insertable block using the
// given comment prefix. Each text line is stripped of surrounding whitespace
// and prefixed; a blank line renders as the bare prefix. The block is bounded
// by two separator lines.
func NewBlock(prefix, text string) *Block {
	sep := strings.Repeat(prefix, SepWidth) + "\n"
	rendered := []string{sep}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		line = strings.TrimRight(prefix+" "+strings.TrimSpace(line), " \t")
		rendered = append(rendered, line+"\n")
	}
	rendered = append(rendered, sep)
	return &Block{prefix: prefix, rendered: rendered}
}

// Prefix returns the comment prefix the block was rendered with.
func (b *Block) Prefix() string { return b.prefix }

// Rendered returns a copy of the block's lines, each terminated by a newline:
// a separator, the notice lines, and a closing separator.
func (b *Block) Rendered() []string { return slices.Clone(b.rendered) }

// String returns the block as a single string.
func (b *Block) String() string { return strings.Join(b.rendered, "") }
