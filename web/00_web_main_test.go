// /home/krylon/go/src/github.com/blicero/feedstore/web/00_web_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 22:31:50 krylon>

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/blicero/feedstore/busybee"
	"github.com/blicero/feedstore/common"
	"github.com/blicero/feedstore/common/path"
	"github.com/blicero/feedstore/database"
	"github.com/blicero/feedstore/model"
)

const (
	testCategory = "tech"
	testSite     = "Blog"
)

var (
	srv *Server
	ts  *httptest.Server
	db  *database.Database
	bee *busybee.BusyBee
)

var testEntries = []model.EntryRecord{
	{
		Title:   "Post1",
		Link:    "http://blog.example.com/1",
		Content: "<p>Hello <b>World</b></p>",
		Date:    ptime(1700000000),
	},
	{
		Title:   "Post2",
		Link:    "http://blog.example.com/2",
		Content: "<p>Second</p>",
		Date:    ptime(1700000100),
	},
	{
		Title:   "Undated",
		Link:    "http://blog.example.com/3",
		Content: "<p>Whenever</p>",
	},
}

func ptime(sec int64) *time.Time {
	var t = time.Unix(sec, 0)
	return &t
} // func ptime(sec int64) *time.Time

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = time.Now().Format("/tmp/feedstore_web_test_20060102_150405")
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if err = prepare(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Failed to prepare database: %s\n",
			err.Error(),
		)
		os.Exit(1)
	}

	result = m.Run()

	closeServer()

	if result == 0 {
		// If any test failed, we keep the test directory (and the
		// database inside it) around, so we can manually inspect it
		// if needed.
		// If all tests pass, OTOH, we can safely remove the directory.
		fmt.Printf("Removing BaseDir %s\n",
			baseDir)
		_ = os.RemoveAll(baseDir)
	} else {
		fmt.Printf(">>> TEST DIRECTORY: %s\n", baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

// closeServer stops the test server and releases the cache file, so the
// next Server created in this process can open it again.
func closeServer() {
	srv = nil

	if ts != nil {
		ts.Close()
		ts = nil
	}

	if bee != nil {
		bee.Close() // nolint: errcheck
		bee = nil
	}
} // func closeServer()

// prepare builds the database that is served by the tests and opens it
// read-only.
func prepare() error {
	var (
		err     error
		siteKey string
		wdb     *database.Database
		dbpath  = common.Path(path.Database)
	)

	if wdb, err = database.Open(dbpath); err != nil {
		return err
	} else if err = wdb.CategoryAdd(testCategory); err != nil {
		return err
	} else if siteKey, err = wdb.SiteAdd(testCategory, &model.SiteRecord{Title: testSite}); err != nil {
		return err
	}

	for i := range testEntries {
		if _, err = wdb.EntryAdd(siteKey, testSite, testCategory, &testEntries[i]); err != nil {
			return err
		}
	}

	if err = wdb.Compact(); err != nil {
		return err
	} else if err = wdb.Close(); err != nil {
		return err
	} else if db, err = database.OpenReadOnly(dbpath); err != nil {
		return err
	}

	return nil
} // func prepare() error

// get requests the given path from the test server and decodes the Reply.
// If payload is not nil, the Reply's payload is decoded into it.
func get(t *testing.T, p string, payload any) (int, *Reply) {
	t.Helper()

	var (
		err  error
		res  *http.Response
		body Reply
	)

	if res, err = http.Get(ts.URL + p); err != nil {
		t.Fatalf("GET %s failed: %s", p, err.Error())
	}

	defer res.Body.Close() // nolint: errcheck

	if err = json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("Cannot decode response to %s: %s", p, err.Error())
	} else if payload != nil && body.Status {
		if err = json.Unmarshal(body.Payload, payload); err != nil {
			t.Fatalf("Cannot decode payload of %s: %s", p, err.Error())
		}
	}

	return res.StatusCode, &body
} // func get(t *testing.T, p string, payload any) (int, *Reply)
