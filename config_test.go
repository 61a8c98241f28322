package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zonec/compiler"
)

func TestConfigLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zonec.yaml")
	err := os.WriteFile(path, []byte(
		"serial-policy: datestamp\npassthrough: true\noutput-dir: /tmp/zones\n"), 0644)
	if err != nil {
		t.Fatal("Setup failed", err)
	}

	cfg := newConfig()
	cfg.configPath = path
	err = cfg.load()
	if err != nil {
		t.Fatal("Unexpected error", err)
	}
	if cfg.policyName != "datestamp" {
		t.Error("Expected datestamp, got", cfg.policyName)
	}
	if !cfg.passthroughFlag {
		t.Error("Expected passthrough to be set")
	}
	if cfg.outputPath != "/tmp/zones" {
		t.Error("Expected /tmp/zones, got", cfg.outputPath)
	}
}

// Command line settings always win over the config file.
func TestConfigLoadFlagsWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zonec.yaml")
	err := os.WriteFile(path, []byte(
		"serial-policy: datestamp\noutput-dir: /tmp/zones\n"), 0644)
	if err != nil {
		t.Fatal("Setup failed", err)
	}

	cfg := newConfig()
	cfg.configPath = path
	cfg.policyName = "autoincrement"
	cfg.outputPath = "/somewhere/else"
	err = cfg.load()
	if err != nil {
		t.Fatal("Unexpected error", err)
	}
	if cfg.policyName != "autoincrement" {
		t.Error("Flag must win, got", cfg.policyName)
	}
	if cfg.outputPath != "/somewhere/else" {
		t.Error("Flag must win, got", cfg.outputPath)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	cfg := newConfig()
	cfg.configPath = "/nonexistent/zonec.yaml"
	err := cfg.load()
	if err == nil {
		t.Error("An explicitly named config file must exist")
	}

	cfg = newConfig() // Implicit default file absent is fine
	err = cfg.load()
	if err != nil {
		t.Error("Unexpected error", err)
	}
}

func TestConfigLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zonec.yaml")
	err := os.WriteFile(path, []byte("serial-policy: [\n"), 0644)
	if err != nil {
		t.Fatal("Setup failed", err)
	}

	cfg := newConfig()
	cfg.configPath = path
	err = cfg.load()
	if err == nil {
		t.Error("Expected a YAML error")
	}
}

func TestValidateCommandLineOptions(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		policy    string
		filter    string
		out       string
		check     bool
		zonePaths []string
		errorText string // Empty means expected to pass
	}{
		{"", "", "", false, []string{"a.db"}, ""},
		{"bogus", "", "", false, []string{"a.db"}, "serial policy"},
		{"", "", "", false, nil, "at least one"},
		{"", "p/a.db", "", false, []string{"a.db"}, "cannot be combined"},
		{"", "p/a.db", dir, false, nil, "makes no sense"},
		{"", "p/a.db", "", false, nil, ""},
		{"", "", "", false, []string{"a.db", "b.db"}, "existing directory"},
		{"", "", dir, false, []string{"a.db", "b.db"}, ""},
		{"", "", "", true, []string{"a.db", "b.db"}, ""}, // check mode needs no --out
	}

	for ix, tc := range testCases {
		zc := newZoneCompiler()
		zc.cfg.policyName = tc.policy
		zc.cfg.filterPath = tc.filter
		zc.cfg.outputPath = tc.out
		zc.cfg.checkFlag = tc.check
		zc.cfg.zonePaths = tc.zonePaths

		err := zc.ValidateCommandLineOptions()
		if tc.errorText == "" {
			if err != nil {
				t.Error(ix, "Unexpected error", err)
			}
			continue
		}
		if err == nil {
			t.Error(ix, "Expected an error containing", tc.errorText)
			continue
		}
		if !strings.Contains(err.Error(), tc.errorText) {
			t.Error(ix, "Expected", tc.errorText, "in", err.Error())
		}
	}
}

func TestValidateConvertsPolicy(t *testing.T) {
	zc := newZoneCompiler()
	zc.cfg.policyName = "datestamp"
	zc.cfg.zonePaths = []string{"a.db"}
	err := zc.ValidateCommandLineOptions()
	if err != nil {
		t.Fatal("Unexpected error", err)
	}
	if zc.cfg.policy != compiler.SerialDatestamp {
		t.Error("Expected SerialDatestamp, got", zc.cfg.policy)
	}
}
