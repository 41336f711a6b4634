// © 2026 The Reheader Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fieldlabs/reheader/txtar"
)

// config is the parsed form of the tool's txtar config file.
type config struct {
	path     string
	notice   string   // raw notice text, from notice.txt
	prefix   string   // comment prefix, from prefix
	patterns []string // default patterns, from patterns.json
}

// parseConfig reads a txtar config file. Missing optional entries fall back
// to the built-in defaults.
func parseConfig(path string) (*config, error) {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	cfg.path = path
	for _, f := range ar.Files {
		switch f.Name {
		case "notice.txt":
			cfg.notice = string(f.Data)
		case "prefix":
			cfg.prefix = strings.TrimSpace(string(f.Data))
		case "patterns.json":
			if err := json.Unmarshal(f.Data, &cfg.patterns); err != nil {
				return nil, fmt.Errorf("%s: parsing patterns.json: %w", path, err)
			}
		default:
			return nil, fmt.Errorf("%s: unknown config entry %q", path, f.Name)
		}
	}
	if cfg.prefix == "" {
		return nil, fmt.Errorf("%s: prefix must not be empty", path)
	}
	return cfg, nil
}
