// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/katalvlaran/hsic/hsic"
)

// ErrUnknownConfigKey is returned when the config file holds keys the test
// does not consume.
var ErrUnknownConfigKey = errors.New("hsic: unknown config key")

// fileConfig mirrors the TOML config file:
//
//	method   = "perm-gram"
//	nboot    = 1999
//	unbiased = true
//	sigmax   = 0.5
//	sigmay   = 0     # median heuristic
//	seed     = 42
//	workers  = 4
type fileConfig struct {
	Method   string  `toml:"method"`
	NBoot    int     `toml:"nboot"`
	Unbiased bool    `toml:"unbiased"`
	SigmaX   float64 `toml:"sigmax"`
	SigmaY   float64 `toml:"sigmay"`
	Seed     uint64  `toml:"seed"`
	Workers  int     `toml:"workers"`
}

// loadConfig applies the keys present in the TOML file at path on top of
// hsic.DefaultConfig. An empty path yields the defaults.
func loadConfig(path string) (hsic.Config, error) {
	cfg := hsic.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: %w: %s", path, ErrUnknownConfigKey, strings.Join(keys, ", "))
	}

	if md.IsDefined("method") {
		if cfg.Method, err = hsic.ParseMethod(fc.Method); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if md.IsDefined("nboot") {
		cfg.NBoot = fc.NBoot
	}
	if md.IsDefined("unbiased") && fc.Unbiased {
		cfg.Estimator = hsic.Unbiased
	}
	if md.IsDefined("sigmax") {
		cfg.Kernel.X.Sigma = fc.SigmaX
	}
	if md.IsDefined("sigmay") {
		cfg.Kernel.Y.Sigma = fc.SigmaY
	}
	if md.IsDefined("seed") {
		cfg.Seed = fc.Seed
	}
	if md.IsDefined("workers") {
		cfg.Workers = fc.Workers
	}

	return cfg, nil
}
