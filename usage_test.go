package main

import (
	"os"
	"strings"
	"testing"

	"zonec/log"
	"zonec/mock"
)

func TestParseOptionsTernary(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)
	defer log.SetOut(os.Stdout)

	testCases := []struct {
		args     []string
		expected parseResult
	}{
		{[]string{"zonec", "-h"}, parseStop},
		{[]string{"zonec", "--help"}, parseStop},
		{[]string{"zonec", "-v"}, parseStop},
		{[]string{"zonec", "--no-such-option"}, parseFailed},
		{[]string{"zonec", "a.db"}, parseContinue},
		{[]string{"zonec"}, parseContinue}, // Arg check happens later
	}

	for ix, tc := range testCases {
		zc := newZoneCompiler()
		got := zc.parseOptions(tc.args)
		if got != tc.expected {
			t.Error(ix, "Expected", tc.expected, "got", got)
		}
	}
}

func TestParseOptionsUsage(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)
	defer log.SetOut(os.Stdout)

	zc := newZoneCompiler()
	if zc.parseOptions([]string{"zonec", "-h"}) != parseStop {
		t.Fatal("Expected parseStop for -h")
	}
	for _, flag := range []string{"--check", "--passthrough", "--filter",
		"--serial-policy", "--out", "--config"} {
		if !strings.Contains(out.String(), flag) {
			t.Error("Usage output is missing", flag)
		}
	}
}

func TestParseOptionsConfig(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)
	defer log.SetOut(os.Stdout)

	zc := newZoneCompiler()
	got := zc.parseOptions([]string{"zonec",
		"--check", "--passthrough", "--serial-policy", "datestamp",
		"-o", "/tmp/zones", "--log-minor",
		"one.db", "two.db"})
	if got != parseContinue {
		t.Fatal("Expected parseContinue, got", got)
	}

	cfg := zc.cfg
	if !cfg.checkFlag {
		t.Error("Expected --check to be set")
	}
	if !cfg.passthroughFlag {
		t.Error("Expected --passthrough to be set")
	}
	if cfg.policyName != "datestamp" {
		t.Error("Expected datestamp, got", cfg.policyName)
	}
	if cfg.outputPath != "/tmp/zones" {
		t.Error("Expected /tmp/zones, got", cfg.outputPath)
	}
	if !cfg.logMinorFlag {
		t.Error("Expected --log-minor to be set")
	}
	if len(cfg.zonePaths) != 2 || cfg.zonePaths[0] != "one.db" {
		t.Error("Expected two zone paths, got", cfg.zonePaths)
	}
}

func TestParseOptionsVersion(t *testing.T) {
	zc := newZoneCompiler()
	if zc.parseOptions([]string{"zonec", "--version"}) != parseStop {
		t.Error("Expected parseStop for --version")
	}
}
