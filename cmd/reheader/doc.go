// © 2026 The Reheader Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Reheader maintains a canonical copyright notice at the top of source files.

It walks a directory tree, selects files by glob patterns and rewrites each
file's leading comment block: an existing notice block is replaced, a missing
one is inserted, and everything else in the file is preserved byte-for-byte.
A notice block is bounded by separator lines, a comment prefix repeated 78
times; any existing line starting with 10 or more repeats is recognized as a
separator, so older or hand-written blocks are replaced too. A shebang or
encoding declaration in the first two lines always stays ahead of the block.

Usage:

	reheader [flags] root [pattern...]

Patterns are bare file name globs matched against base names anywhere under
root; a leading ~ excludes matching files. When no patterns are given,
*.py is processed and __init__.py is skipped.

The notice text comes from a txtar config file, .reheader.txtar in the root
directory by default:

	-- notice.txt --
	Copyright 2026 Example Corp.
	All rights reserved.
	-- prefix --
	#
	-- patterns.json --
	["*.py", "~__init__.py"]

Only notice.txt is required for inserting; prefix defaults to # and
patterns.json to the built-in defaults. Removing (-remove) needs no config.

Reheader exits with a non-zero status when no files matched the patterns.
Files that cannot be rewritten, for example because a line does not decode
as UTF-8, are restored to their original content, reported, and skipped;
the run continues with the remaining files.
*/
package main

import (
	_ "embed"

	"github.com/fieldlabs/reheader/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
