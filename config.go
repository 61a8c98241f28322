package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"zonec/compiler"
)

const (
	programName = "zonec"

	Version     = "1.1.0"
	ReleaseDate = "2026-08-30"
)

// configFile is the optional on-disk companion to the command line. Flags
// always win over file settings so a checked-in config can hold the
// durable choices (serial policy, output directory) while the command
// line handles one-offs.
type configFile struct {
	SerialPolicy string `yaml:"serial-policy"`
	Passthrough  bool   `yaml:"passthrough"`
	OutputDir    string `yaml:"output-dir"`
}

// config holds the program-wide settings. It is populated before any
// compile job starts and never changes afterwards, so the parallel jobs
// share it without locking.
type config struct {
	configPath string // "--config"
	outputPath string // "--out": file (single zone) or directory
	policyName string // "--serial-policy"

	passthroughFlag bool // "--passthrough"
	checkFlag       bool // "--check": compile and validate, write nothing

	logMajorFlag bool
	logMinorFlag bool
	logDebugFlag bool

	filterPath string // "--filter <path>": act as a git clean filter

	zonePaths []string // Remaining command line arguments

	policy compiler.SerialPolicy // Converted from policyName
}

func newConfig() *config {
	return &config{}
}

// load merges the optional YAML config file into any settings the command
// line left at their defaults. A missing file is only an error when
// --config named it explicitly.
func (t *config) load() error {
	path := t.configPath
	explicit := path != ""
	if !explicit {
		path = programName + ".yaml"
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return fmt.Errorf("config file: %w", err)
		}
		return nil
	}

	var cf configFile
	err = yaml.Unmarshal(raw, &cf)
	if err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	if t.policyName == "" {
		t.policyName = cf.SerialPolicy
	}
	if cf.Passthrough {
		t.passthroughFlag = true
	}
	if t.outputPath == "" {
		t.outputPath = cf.OutputDir
	}

	return nil
}

// zoneCompiler ties the configuration to the compile jobs. One per
// program run.
type zoneCompiler struct {
	cfg *config
}

func newZoneCompiler() *zoneCompiler {
	return &zoneCompiler{cfg: newConfig()}
}

// ValidateCommandLineOptions checks everything that is likely a typo or
// usage error before any zone is touched.
func (t *zoneCompiler) ValidateCommandLineOptions() error {
	var err error
	t.cfg.policy, err = compiler.ParseSerialPolicy(t.cfg.policyName)
	if err != nil {
		return fmt.Errorf("--serial-policy: %w", err)
	}

	if t.cfg.filterPath != "" {
		if len(t.cfg.zonePaths) > 0 {
			return fmt.Errorf("--filter cannot be combined with zone file arguments")
		}
		if t.cfg.outputPath != "" {
			return fmt.Errorf("--filter writes to stdout; --out makes no sense")
		}
		return nil
	}

	if len(t.cfg.zonePaths) == 0 {
		return fmt.Errorf("need at least one zone source file - consider -h")
	}

	if len(t.cfg.zonePaths) > 1 && !t.cfg.checkFlag {
		fi, serr := os.Stat(t.cfg.outputPath)
		if t.cfg.outputPath == "" || serr != nil || !fi.IsDir() {
			return fmt.Errorf("--out must name an existing directory when compiling multiple zones")
		}
	}

	return nil
}

func (t *config) printVersion() {
	fmt.Printf("Program: %s %s (%s)\n", programName, Version, ReleaseDate)
}
