// © 2026 The Reheader Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package txtar implements a trivial text-based file archive format.
//
// The format consists of an optional comment followed by a sequence of files.
// Each file begins with a marker line of the form "-- NAME --" and runs until
// the next marker or the end of the archive. The format is line-oriented:
// a file body that does not end in a newline gets one added when parsed or
// formatted.
//
// The format is the same as the one used by the Go project's tests and
// by golang.org/x/tools/txtar.
package txtar

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is a single file in an [Archive].
type File struct {
	Name string
	Data []byte
}

// Archive is a collection of files prefixed by an optional comment.
type Archive struct {
	Comment []byte
	Files   []File
}

var (
	markerStart = []byte("-- ")
	markerEnd   = []byte(" --")
)

// Parse parses the serialized form of an [Archive].
// The returned Archive holds slices of data, not copies.
func Parse(data []byte) *Archive {
	a := new(Archive)
	var name string
	a.Comment, name, data = findMarker(data)
	for name != "" {
		f := File{Name: name}
		f.Data, name, data = findMarker(data)
		f.Data = fixNL(f.Data)
		a.Files = append(a.Files, f)
	}
	return a
}

// ParseFile parses the named file as an archive.
func ParseFile(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data), nil
}

// Format serializes the archive back into its textual form.
func Format(a *Archive) []byte {
	var buf bytes.Buffer
	buf.Write(fixNL(a.Comment))
	for _, f := range a.Files {
		fmt.Fprintf(&buf, "-- %s --\n", f.Name)
		buf.Write(fixNL(f.Data))
	}
	return buf.Bytes()
}

// findMarker returns the data before the first marker line, the name on that
// marker, and the data after it. If no marker is found, it returns data, "",
// nil.
func findMarker(data []byte) (before []byte, name string, after []byte) {
	for off := 0; off < len(data); {
		line := data[off:]
		next := len(data)
		if i := bytes.IndexByte(line, '\n'); i >= 0 {
			line = line[:i+1]
			next = off + i + 1
		}
		if n, ok := markerName(line); ok {
			return data[:off], n, data[next:]
		}
		off = next
	}
	return data, "", nil
}

// markerName extracts the file name from a marker line.
func markerName(line []byte) (string, bool) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	if !bytes.HasPrefix(line, markerStart) || !bytes.HasSuffix(line, markerEnd) {
		return "", false
	}
	if len(line) < len(markerStart)+len(markerEnd) {
		return "", false
	}
	name := strings.TrimSpace(string(line[len(markerStart) : len(line)-len(markerEnd)]))
	if name == "" {
		return "", false
	}
	return name, true
}

// fixNL ensures that non-empty data ends in a newline.
func fixNL(data []byte) []byte {
	if len(data) == 0 || data[len(data)-1] == '\n' {
		return data
	}
	d := make([]byte, len(data)+1)
	copy(d, data)
	d[len(data)] = '\n'
	return d
}

// Extract writes each file in the archive beneath dir, creating parent
// directories as needed. File names must be local relative paths.
func Extract(a *Archive, dir string) error {
	for _, f := range a.Files {
		name := filepath.FromSlash(f.Name)
		if !filepath.IsLocal(name) {
			return fmt.Errorf("txtar: refusing to extract non-local file name %q", f.Name)
		}
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// FromDir builds an archive from the contents of dir. File names in the
// archive are slash-separated paths relative to dir.
func FromDir(dir string) (*Archive, error) {
	a := new(Archive)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		a.Files = append(a.Files, File{Name: filepath.ToSlash(rel), Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
