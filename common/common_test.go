// /home/krylon/go/src/github.com/blicero/feedstore/common/common_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 11:02:36 krylon>

package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blicero/feedstore/common/path"
	"github.com/blicero/feedstore/logdomain"
)

var testDir = time.Now().Format("/tmp/feedstore_common_test_20060102_150405")

func TestSetBaseDir(t *testing.T) {
	var (
		err  error
		info os.FileInfo
	)

	t.Cleanup(func() { os.RemoveAll(testDir) }) // nolint: errcheck

	if err = SetBaseDir(testDir); err != nil {
		t.Fatalf("Cannot set base directory to %s: %s",
			testDir,
			err.Error())
	} else if info, err = os.Stat(testDir); err != nil {
		t.Fatalf("Base directory %s was not created: %s",
			testDir,
			err.Error())
	} else if !info.IsDir() {
		t.Fatalf("%s is not a directory", testDir)
	} else if p := Path(path.Database); p != filepath.Join(testDir, DatabaseName) {
		t.Errorf("Unexpected database path: %s", p)
	}

	// Doing it again must not hurt.
	if err = SetBaseDir(testDir); err != nil {
		t.Errorf("Cannot set base directory to %s a second time: %s",
			testDir,
			err.Error())
	}
} // func TestSetBaseDir(t *testing.T)

func TestSetBaseDirNotADirectory(t *testing.T) {
	var (
		err      error
		filename = testDir + ".file"
	)

	if err = os.WriteFile(filename, []byte("Not a directory"), 0600); err != nil {
		t.Fatalf("Cannot create %s: %s", filename, err.Error())
	}

	defer os.Remove(filename) // nolint: errcheck

	if err = SetBaseDir(filename); !errors.Is(err, ErrNotADirectory) {
		t.Errorf("SetBaseDir(%s) should fail with ErrNotADirectory, not %v",
			filename,
			err)
	}
} // func TestSetBaseDirNotADirectory(t *testing.T)

func TestGetLogger(t *testing.T) {
	var err error

	t.Cleanup(func() { os.RemoveAll(testDir) }) // nolint: errcheck

	if err = SetBaseDir(testDir); err != nil {
		t.Fatalf("Cannot set base directory to %s: %s",
			testDir,
			err.Error())
	}

	for _, dom := range logdomain.AllDomains() {
		if _, err = GetLogger(dom); err != nil {
			t.Errorf("Cannot create Logger for %s: %s",
				dom,
				err.Error())
		}
	}

	if _, err = os.Stat(Path(path.Log)); err != nil {
		t.Errorf("Log file was not created: %s", err.Error())
	}
} // func TestGetLogger(t *testing.T)

func TestSetMinLogLevel(t *testing.T) {
	type testCase struct {
		level string
		valid bool
	}

	var testCases = []testCase{
		{level: "debug", valid: true},
		{level: "CANTHAPPEN", valid: true},
		{level: "verbose", valid: false},
		{level: "TRACE", valid: true},
	}

	for _, c := range testCases {
		var err = SetMinLogLevel(c.level)

		if c.valid && err != nil {
			t.Errorf("Cannot set log level %s: %s", c.level, err.Error())
		} else if !c.valid && err == nil {
			t.Errorf("Log level %s should have been rejected", c.level)
		}
	}
} // func TestSetMinLogLevel(t *testing.T)
