// © 2026 The Reheader Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package discover enumerates candidate files under a root directory.
//
// Files are selected by glob patterns applied to their base name only: a file
// matches when at least one positive pattern matches it and no negative
// pattern does. A leading "~" marks a pattern as negative.
package discover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fieldlabs/reheader/logger"
)

// ErrBadPattern indicates a pattern that is not a bare file name glob.
var ErrBadPattern = errors.New("bad pattern")

// patternSet holds compiled positive and negative basename globs.
type patternSet struct {
	positive []string
	negative []string
}

// compile splits patterns into positive and negative sets, validating each.
// Patterns must be bare file names: anything containing a path separator is
// rejected before any file I/O happens.
func compile(patterns []string) (*patternSet, error) {
	ps := new(patternSet)
	for _, p := range patterns {
		pat, negative := strings.CutPrefix(p, "~")
		if pat == "" {
			return nil, fmt.Errorf("%w: %q is empty", ErrBadPattern, p)
		}
		if strings.ContainsAny(pat, `/\`) {
			return nil, fmt.Errorf("%w: %q must be a bare file name, without path separators", ErrBadPattern, p)
		}
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("%w: %q has invalid glob syntax", ErrBadPattern, p)
		}
		if negative {
			ps.negative = append(ps.negative, pat)
		} else {
			ps.positive = append(ps.positive, pat)
		}
	}
	return ps, nil
}

func (ps *patternSet) match(name string) bool {
	return matchAny(ps.positive, name) && !matchAny(ps.negative, name)
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		// Patterns are validated in compile, so Match cannot fail.
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Enumerate walks root recursively and returns the paths of all files
// selected by patterns. The order of the returned paths is unspecified.
func Enumerate(ctx context.Context, root string, patterns []string) ([]string, error) {
	ps, err := compile(patterns)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ps.match(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "discovered files",
		slog.String("root", root),
		slog.Any("patterns", patterns),
		slog.Int("count", len(files)))
	return files, nil
}
