// © 2026 The Reheader Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version provides information about the running binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/fieldlabs/reheader/syncx"
)

// CmdName returns the base name of the running binary.
func CmdName() string {
	exe, err := os.Executable()
	if err != nil {
		return "reheader"
	}
	name := filepath.Base(exe)
	// Tests run from binaries like notice.test; strip the suffix.
	return strings.TrimSuffix(name, ".test")
}

// Info describes the built binary.
type Info struct {
	Name      string
	Version   string
	Commit    string
	GoVersion string
}

// String implements the [fmt.Stringer] interface.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", i.Name, i.Version)
	if i.Commit != "" {
		fmt.Fprintf(&sb, " (%s)", i.Commit)
	}
	fmt.Fprintf(&sb, "\nbuilt with %s (%s/%s)\n", i.GoVersion, runtime.GOOS, runtime.GOARCH)
	return sb.String()
}

var info syncx.Lazy[Info]

// Version returns the build information embedded in the binary.
func Version() Info {
	return info.Get(readBuildInfo)
}

func readBuildInfo() Info {
	i := Info{
		Name:      CmdName(),
		Version:   "devel",
		GoVersion: runtime.Version(),
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 8 {
			i.Commit = s.Value[:8]
		}
	}
	return i
}
