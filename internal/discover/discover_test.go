// © 2026 The Reheader Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package discover_test

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/fieldlabs/reheader/internal/discover"
	"github.com/fieldlabs/reheader/testutil"
	"github.com/fieldlabs/reheader/txtar"
)

// tree builds a small directory tree to enumerate.
func tree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	ar := txtar.Parse([]byte(`
-- a.py --
-- b.py --
-- __init__.py --
-- notes.txt --
-- sub/c.py --
-- sub/__init__.py --
-- sub/deep/d.py --
`))
	testutil.ExtractTxtar(t, ar, dir)
	return dir
}

func enumerate(t *testing.T, root string, patterns ...string) []string {
	t.Helper()
	files, err := discover.Enumerate(context.Background(), root, patterns)
	if err != nil {
		t.Fatal(err)
	}
	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatal(err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	slices.Sort(rel)
	return rel
}

func TestEnumerate(t *testing.T) {
	root := tree(t)

	cases := map[string]struct {
		patterns []string
		want     []string
	}{
		"positive only": {
			patterns: []string{"*.py"},
			want:     []string{"__init__.py", "a.py", "b.py", "sub/__init__.py", "sub/c.py", "sub/deep/d.py"},
		},
		"negative excludes by basename everywhere": {
			patterns: []string{"*.py", "~__init__.py"},
			want:     []string{"a.py", "b.py", "sub/c.py", "sub/deep/d.py"},
		},
		"multiple positives": {
			patterns: []string{"*.py", "*.txt", "~__init__.py"},
			want:     []string{"a.py", "b.py", "notes.txt", "sub/c.py", "sub/deep/d.py"},
		},
		"exact name": {
			patterns: []string{"a.py"},
			want:     []string{"a.py"},
		},
		"negative glob": {
			patterns: []string{"*.py", "~*init*"},
			want:     []string{"a.py", "b.py", "sub/c.py", "sub/deep/d.py"},
		},
		"nothing matches": {
			patterns: []string{"*.go"},
			want:     []string{},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := enumerate(t, root, tc.patterns...)
			if !slices.Equal(got, tc.want) {
				t.Errorf("Enumerate(%v) = %v, want %v", tc.patterns, got, tc.want)
			}
		})
	}
}

func TestEnumerateRejectsBadPatterns(t *testing.T) {
	root := tree(t)

	for _, patterns := range [][]string{
		{"sub/*.py"},
		{`sub\*.py`},
		{"~sub/__init__.py"},
		{"~"},
		{"[unclosed"},
	} {
		if _, err := discover.Enumerate(context.Background(), root, patterns); !errors.Is(err, discover.ErrBadPattern) {
			t.Errorf("Enumerate(%v) error = %v, want ErrBadPattern", patterns, err)
		}
	}
}

func TestEnumerateMissingRoot(t *testing.T) {
	if _, err := discover.Enumerate(context.Background(), filepath.Join(t.TempDir(), "nope"), []string{"*.py"}); err == nil {
		t.Fatal("Enumerate of a missing root did not fail")
	}
}
