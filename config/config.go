// Package config loads signcheck.conf files.
//
// Configuration files are looked up from a package's directory upwards. Files closer to the package take precedence
// over files further up. Lists may contain the special element "inherit", which is replaced by the list of the
// parent configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/signcheck/signcheck/analysis/sign"

	"github.com/BurntSushi/toml"
	"golang.org/x/tools/go/analysis"
)

// Dir looks at a list of absolute file names, which should make up a
// single package, and returns the path of the directory that may
// contain a signcheck.conf file. It returns the empty string if no
// such directory could be determined, for example because all files
// were located in Go's build cache.
func Dir(files []string) string {
	if len(files) == 0 {
		return ""
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		cache = ""
	}
	var path string
	for _, p := range files {
		// Files in the build cache belong to cgo-processed or
		// generated sources.
		if cache != "" && strings.HasPrefix(p, cache+string(filepath.Separator)) {
			continue
		}
		path = p
		break
	}

	if path == "" {
		// The package only consists of generated files.
		return ""
	}

	return filepath.Dir(path)
}

func dirAST(pass *analysis.Pass) string {
	var files []string
	for _, f := range pass.Files {
		files = append(files, pass.Fset.PositionFor(f.Pos(), true).Filename)
	}
	return Dir(files)
}

var Analyzer = &analysis.Analyzer{
	Name: "config",
	Doc:  "loads configuration for the current package tree",
	Run: func(pass *analysis.Pass) (interface{}, error) {
		dir := dirAST(pass)
		if dir == "" {
			cfg := DefaultConfig
			return &cfg, nil
		}
		cfg, err := Load(dir)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", ConfigName, err)
		}
		return &cfg, nil
	},
	RunDespiteErrors: true,
	ResultType:       reflect.TypeOf((*Config)(nil)),
}

// For returns the configuration of the package being analyzed by pass. pass.Analyzer must require [Analyzer].
func For(pass *analysis.Pass) *Config {
	return pass.ResultOf[Analyzer].(*Config)
}

func mergeLists(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	for _, el := range b {
		if el == "inherit" {
			out = append(out, a...)
		} else {
			out = append(out, el)
		}
	}
	return out
}

// Merge returns cfg overlaid with the values that ocfg defines explicitly.
func (cfg Config) Merge(ocfg Config) Config {
	if ocfg.meta.IsDefined("checks") {
		cfg.Checks = mergeLists(cfg.Checks, ocfg.Checks)
	}
	if ocfg.meta.IsDefined("sign", "domain") {
		cfg.Sign.Domain = ocfg.Sign.Domain
	}
	if ocfg.meta.IsDefined("sign", "report_possible") {
		cfg.Sign.ReportPossible = ocfg.Sign.ReportPossible
	}
	return cfg
}

type Config struct {
	// Checks lists the checks to run, such as "all", "SG1*" or "-SG1002". Later entries override earlier ones.
	Checks []string   `toml:"checks"`
	Sign   SignConfig `toml:"sign"`

	meta toml.MetaData
}

type SignConfig struct {
	// Domain names the abstract domain, either "simple" or "precise".
	Domain string `toml:"domain"`
	// ReportPossible controls whether values that may be negative are
	// reported, in addition to values that definitely are.
	ReportPossible bool `toml:"report_possible"`
}

// ParsedDomain returns the domain named by c.Domain.
func (c SignConfig) ParsedDomain() (sign.Domain, error) {
	return sign.ParseDomain(c.Domain)
}

var DefaultConfig = Config{
	Checks: []string{"all"},
	Sign: SignConfig{
		Domain:         sign.Precise.String(),
		ReportPossible: true,
	},
}

const ConfigName = "signcheck.conf"

func parseConfigs(dir string) ([]Config, error) {
	var out []Config

	for dir != "" {
		f, err := os.Open(filepath.Join(dir, ConfigName))
		if os.IsNotExist(err) {
			ndir := filepath.Dir(dir)
			if ndir == dir {
				break
			}
			dir = ndir
			continue
		}
		if err != nil {
			return nil, err
		}
		var cfg Config
		meta, err := toml.DecodeReader(f, &cfg)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Join(dir, ConfigName), err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %q", filepath.Join(dir, ConfigName), undecoded[0].String())
		}
		cfg.meta = meta
		out = append(out, cfg)
		ndir := filepath.Dir(dir)
		if ndir == dir {
			break
		}
		dir = ndir
	}
	// The meta of the base config is never accessed.
	out = append(out, DefaultConfig)
	if len(out) < 2 {
		return out, nil
	}
	for i := 0; i < len(out)/2; i++ {
		out[i], out[len(out)-1-i] = out[len(out)-1-i], out[i]
	}
	return out, nil
}

func mergeConfigs(confs []Config) Config {
	if len(confs) == 0 {
		// This shouldn't happen because we always have at least a
		// default config.
		panic("trying to merge zero configs")
	}
	if len(confs) == 1 {
		return confs[0]
	}
	conf := confs[0]
	for _, oconf := range confs[1:] {
		conf = conf.Merge(oconf)
	}
	return conf
}

// Load loads and merges all configuration files that apply to dir.
func Load(dir string) (Config, error) {
	confs, err := parseConfigs(dir)
	if err != nil {
		return Config{}, err
	}
	conf := mergeConfigs(confs)
	if _, err := conf.Sign.ParsedDomain(); err != nil {
		return Config{}, err
	}
	for _, check := range conf.Checks {
		if check == "inherit" {
			// This should never happen, because the default config
			// should not use "inherit"
			panic(`unresolved "inherit"`)
		}
	}
	return conf, nil
}
