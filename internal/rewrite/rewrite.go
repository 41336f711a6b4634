// © 2026 The Reheader Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package rewrite applies a notice state machine to files on disk.
//
// Each file is rewritten through a backup-then-discard pattern: the original
// is renamed aside, the transformed stream is written to the original path,
// and the backup is removed on success or renamed back on any failure. A
// file's on-disk content is therefore either fully original or fully
// rewritten, never something in between.
package rewrite

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/fieldlabs/reheader/internal/notice"
	"github.com/fieldlabs/reheader/logger"
)

// backupSuffix is appended to a file's path while its rewrite is in flight.
const backupSuffix = ".orig"

// DecodeError reports a line that could not be decoded as text. The file it
// names has been restored to its original content.
type DecodeError struct {
	Path string
	Line int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s:%d: line is not valid UTF-8", e.Path, e.Line)
}

// Options configure a rewrite run. The notice block is computed once and
// shared by every file.
type Options struct {
	// Block is the notice to insert. Ignored in remove mode.
	Block *notice.Block
	// Prefix is the comment prefix, used for separator detection in
	// remove mode.
	Prefix string
	// Remove strips the existing notice block instead of inserting one.
	Remove bool
}

func (o Options) machine() *notice.Machine {
	if o.Remove {
		return notice.NewRemover(o.Prefix)
	}
	return notice.NewInserter(o.Block)
}

// Batch rewrites each file in turn. Per-file failures are logged and
// isolated: a failed file keeps its original content and the batch moves on.
// It returns the number of files rewritten and the number that failed.
func (o Options) Batch(ctx context.Context, paths []string) (rewritten, failed int) {
	for _, path := range paths {
		if err := o.File(path); err != nil {
			logger.Error(ctx, "rewrite failed", slog.String("file", path), slog.Any("err", err))
			failed++
			continue
		}
		logger.Debug(ctx, "rewrote file", slog.String("file", path))
		rewritten++
	}
	return rewritten, failed
}

// File rewrites a single file in place. On any failure the original content
// is restored byte-for-byte and the error is returned.
func (o Options) File(path string) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	backup := path + backupSuffix
	if err := os.Rename(path, backup); err != nil {
		return err
	}
	defer func() {
		if err == nil {
			err = os.Remove(backup)
			return
		}
		// Discard partial output and put the original back.
		os.Remove(path)
		if rerr := os.Rename(backup, path); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()

	in, err := os.Open(backup)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if err := transform(o.machine(), path, in, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// transform streams r through the machine into w, validating that every line
// decodes as text.
func transform(m *notice.Machine, path string, r io.Reader, w io.Writer) error {
	var (
		br     = bufio.NewReader(r)
		bw     = bufio.NewWriter(w)
		lineNo int
	)
	for {
		line, rerr := br.ReadString('\n')
		if len(line) > 0 {
			lineNo++
			if !utf8.ValidString(line) {
				return &DecodeError{Path: path, Line: lineNo}
			}
			for _, emitted := range m.Feed(line) {
				if _, err := bw.WriteString(emitted); err != nil {
					return err
				}
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}
	if err := m.Finish(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return bw.Flush()
}
