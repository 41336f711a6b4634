// © 2026 The Reheader Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lmittmann/tint"

	"github.com/fieldlabs/reheader/cli"
	"github.com/fieldlabs/reheader/internal/discover"
	"github.com/fieldlabs/reheader/internal/notice"
	"github.com/fieldlabs/reheader/internal/rewrite"
	"github.com/fieldlabs/reheader/logger"
)

func main() { cli.Main(new(app)) }

// defaultPatterns select Python sources, skipping package init files.
var defaultPatterns = []string{"*.py", "~__init__.py"}

var (
	errNoFiles  = errors.New("no files matched the patterns")
	errNoNotice = errors.New("config has no notice text to insert")
)

type app struct {
	dryRun  bool
	remove  bool
	config  string
	verbose countFlag
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.dryRun, "dry-run", false, "List matching files without rewriting anything.")
	fs.BoolVar(&a.dryRun, "n", false, "Shorthand for -dry-run.")
	fs.BoolVar(&a.remove, "remove", false, "Strip the notice block instead of inserting one.")
	fs.BoolVar(&a.remove, "r", false, "Shorthand for -remove.")
	fs.StringVar(&a.config, "config", "", "Path to the config `file` (default <root>/.reheader.txtar).")
	fs.Var(&a.verbose, "verbose", "Raise log verbosity. Repeat for more detail.")
	fs.Var(&a.verbose, "v", "Shorthand for -verbose.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	ctx = a.loggerContext(ctx, env)

	if len(env.Args) == 0 {
		return fmt.Errorf("%w: missing root directory", cli.ErrInvalidArgs)
	}
	root := env.Args[0]
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %q is not a directory", cli.ErrInvalidArgs, root)
	}

	cfg, err := a.loadConfig(root)
	if err != nil {
		return err
	}

	patterns := env.Args[1:]
	if len(patterns) == 0 {
		patterns = cfg.patterns
	}

	files, err := discover.Enumerate(ctx, root, patterns)
	if err != nil {
		if errors.Is(err, discover.ErrBadPattern) {
			return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
		}
		return err
	}
	if len(files) == 0 {
		logger.Warn(ctx, "nothing to do",
			slog.String("root", root),
			slog.Any("patterns", patterns))
		return errNoFiles
	}

	if a.dryRun {
		for _, f := range files {
			fmt.Fprintln(env.Stdout, f)
		}
		return nil
	}

	opts := rewrite.Options{Prefix: cfg.prefix, Remove: a.remove}
	if !a.remove {
		if cfg.notice == "" {
			return fmt.Errorf("%s: %w", cfg.path, errNoNotice)
		}
		opts.Block = notice.NewBlock(cfg.prefix, cfg.notice)
	}

	rewritten, failed := opts.Batch(ctx, files)
	logger.Info(ctx, "run finished",
		slog.Int("rewritten", rewritten),
		slog.Int("failed", failed))
	return nil
}

// loggerContext builds the run's logger from the verbosity flags and puts it
// into the context. Log output goes to stderr, colored only when it is a
// terminal.
func (a *app) loggerContext(ctx context.Context, env *cli.Env) context.Context {
	level := new(slog.LevelVar)
	switch {
	case a.verbose >= 2:
		level.Set(slog.LevelDebug)
	case a.verbose == 1:
		level.Set(slog.LevelInfo)
	default:
		level.Set(slog.LevelWarn)
	}

	color := false
	if f, ok := env.Stderr.(*os.File); ok {
		color = cli.IsTerminal(int(f.Fd())) && env.Getenv("NO_COLOR") == ""
	}

	l := logger.New(level)
	l.Attach(tint.NewHandler(env.Stderr, &tint.Options{
		Level:      level,
		NoColor:    !color,
		TimeFormat: time.Kitchen,
	}))
	return logger.Put(ctx, l)
}

// countFlag is a repeatable boolean flag that counts its occurrences.
type countFlag int

func (c *countFlag) String() string { return strconv.Itoa(int(*c)) }

func (c *countFlag) IsBoolFlag() bool { return true }

func (c *countFlag) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if v {
		*c++
	}
	return nil
}

// defaultConfigName is looked up under the root directory when -config is
// not given.
const defaultConfigName = ".reheader.txtar"

func defaultConfig() *config {
	return &config{prefix: "#", patterns: defaultPatterns}
}

func (a *app) loadConfig(root string) (*config, error) {
	path := a.config
	if path == "" {
		path = filepath.Join(root, defaultConfigName)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			// No config is fine for -dry-run and -remove; inserting
			// fails later for lack of notice text.
			cfg := defaultConfig()
			cfg.path = path
			return cfg, nil
		}
	}
	return parseConfig(path)
}
