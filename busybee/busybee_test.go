// /home/krylon/go/src/github.com/blicero/feedstore/busybee/busybee_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 20:58:13 krylon>

package busybee

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/blicero/feedstore/common"
	"github.com/blicero/feedstore/common/path"
)

var bee *BusyBee

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = time.Now().Format("/tmp/feedstore_busybee_test_20060102_150405")
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if result = m.Run(); result == 0 {
		fmt.Printf("Removing BaseDir %s\n",
			baseDir)
		_ = os.RemoveAll(baseDir)
	} else {
		fmt.Printf(">>> TEST DIRECTORY: %s\n", baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

func TestCreate(t *testing.T) {
	var err error

	if bee, err = Create(common.Path(path.Cache)); err != nil {
		bee = nil
		t.Fatalf("Failed to create BusyBee: %s", err.Error())
	} else if err = bee.Flush(); err != nil {
		t.Errorf("Flushing an empty cache failed: %s", err.Error())
	}
} // func TestCreate(t *testing.T)

func TestGet(t *testing.T) {
	if bee == nil {
		t.SkipNow()
	}

	var (
		err   error
		val   string
		calls int
		load  = func() (string, error) {
			calls++
			return "value", nil
		}
	)

	for i := 0; i < 3; i++ {
		if val, err = bee.Get("key", load); err != nil {
			t.Fatalf("Get #%d failed: %s", i+1, err.Error())
		} else if val != "value" {
			t.Errorf("Get #%d returned unexpected value %q", i+1, val)
		}
	}

	if calls != 1 {
		t.Errorf("Loader was called %d times (expected 1)", calls)
	}

	if hits, misses := bee.Stats(); hits != 2 || misses != 1 {
		t.Errorf("Unexpected stats: %d hits, %d misses", hits, misses)
	}
} // func TestGet(t *testing.T)

func TestGetError(t *testing.T) {
	if bee == nil {
		t.SkipNow()
	}

	var (
		err    error
		errBad = errors.New("bad")
		calls  int
		load   = func() (string, error) {
			calls++
			return "", errBad
		}
	)

	for i := 0; i < 2; i++ {
		if _, err = bee.Get("bad", load); !errors.Is(err, errBad) {
			t.Errorf("Get #%d should have failed with %v, not %v",
				i+1,
				errBad,
				err)
		}
	}

	if calls != 2 {
		t.Errorf("Failed values should not be cached, Loader was called %d times",
			calls)
	}
} // func TestGetError(t *testing.T)

func TestWarm(t *testing.T) {
	if bee == nil {
		t.SkipNow()
	}

	var (
		cnt  int
		jobs = map[string]Loader{
			"key": func() (string, error) { return "other", nil },
			"bad": func() (string, error) { return "", errors.New("bad") },
		}
	)

	for i := 0; i < 10; i++ {
		var val = fmt.Sprintf("warm%02d", i)
		jobs[val] = func() (string, error) { return val, nil }
	}

	if cnt = bee.Warm(jobs, 4); cnt != 10 {
		t.Errorf("Unexpected number of values added: %d (expected 10)", cnt)
	} else if bee.IsActive() {
		t.Error("BusyBee should not be active after warming up")
	}

	var val, err = bee.Get("warm03", func() (string, error) {
		return "", errors.New("should not be called")
	})

	if err != nil {
		t.Errorf("Warmed value was not cached: %s", err.Error())
	} else if val != "warm03" {
		t.Errorf("Unexpected cached value: %q", val)
	}

	if val, err = bee.Get("key", nil); err != nil || val != "value" {
		t.Errorf("Warm should not replace cached values: %q, %v", val, err)
	}
} // func TestWarm(t *testing.T)

func TestFlush(t *testing.T) {
	if bee == nil {
		t.SkipNow()
	}

	var (
		err error
		val string
	)

	if err = bee.Flush(); err != nil {
		t.Fatalf("Failed to flush cache: %s", err.Error())
	} else if val, err = bee.Get("key", func() (string, error) { return "fresh", nil }); err != nil {
		t.Fatalf("Get failed after Flush: %s", err.Error())
	} else if val != "fresh" {
		t.Errorf("Value survived Flush: %q", val)
	} else if err = bee.Close(); err != nil {
		t.Errorf("Failed to close cache: %s", err.Error())
	}
} // func TestFlush(t *testing.T)
