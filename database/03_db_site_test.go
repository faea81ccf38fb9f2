// /home/krylon/go/src/github.com/blicero/feedstore/database/03_db_site_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 14:02:17 krylon>

package database

import (
	"errors"
	"sync"
	"testing"

	"github.com/blicero/feedstore/ident"
	"github.com/blicero/feedstore/model"
)

func TestSiteAdd(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err    error
		k1, k2 string
		url    string
		s1     = &model.SiteRecord{Title: siteTitle, Link: "http://x"}
		s2     = &model.SiteRecord{Title: siteTitle, Link: "http://y", Description: "Other"}
	)

	if k1, err = db.SiteAdd(catTech, s1); err != nil {
		t.Fatalf("Failed to add Site %s: %s", s1.Title, err.Error())
	} else if k1 != ident.SiteKey(siteTitle) {
		t.Fatalf("Unexpected key for Site %s: %s", s1.Title, k1)
	} else if k2, err = db.SiteAdd(catTech, s2); err != nil {
		t.Fatalf("Failed to add Site %s a second time: %s", s2.Title, err.Error())
	} else if k2 != k1 {
		t.Fatalf("Key changed from %s to %s", k1, k2)
	}

	if cnt := rowCount(t, db, "SELECT COUNT(*) FROM Sites WHERE key = ?", k1); cnt != 1 {
		t.Errorf("Unexpected number of Sites: %d (expected 1)", cnt)
	}

	if cnt := rowCount(t, db, "SELECT COUNT(*) FROM SiteCategories WHERE siteKey = ?", k1); cnt != 1 {
		t.Errorf("Unexpected number of Site links: %d (expected 1)", cnt)
	}

	if err = db.db.QueryRow("SELECT url FROM Sites WHERE key = ?", k1).Scan(&url); err != nil {
		t.Fatalf("Cannot load URL of Site %s: %s", k1, err.Error())
	} else if url != s1.Link {
		t.Errorf("URL of Site was overwritten: %q (expected %q)",
			url,
			s1.Link)
	}

	// Linking the same Site to another Category adds a link, but no Site.
	if k2, err = db.SiteAdd(catScience, s1); err != nil {
		t.Fatalf("Failed to link Site %s to %s: %s",
			s1.Title,
			catScience,
			err.Error())
	} else if k2 != k1 {
		t.Errorf("Key changed from %s to %s", k1, k2)
	}

	if cnt := rowCount(t, db, "SELECT COUNT(*) FROM Sites WHERE key = ?", k1); cnt != 1 {
		t.Errorf("Unexpected number of Sites: %d (expected 1)", cnt)
	}

	if cnt := rowCount(t, db, "SELECT COUNT(*) FROM SiteCategories WHERE siteKey = ?", k1); cnt != 2 {
		t.Errorf("Unexpected number of Site links: %d (expected 2)", cnt)
	}
} // func TestSiteAdd(t *testing.T)

func TestSiteAddInvalid(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var err error

	if _, err = db.SiteAdd(catTech, nil); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Adding a nil Site should fail with ErrInvalidValue, not %v", err)
	}

	if _, err = db.SiteAdd("", &model.SiteRecord{Title: siteTitle}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Adding a Site without Category should fail with ErrInvalidValue, not %v", err)
	}
} // func TestSiteAddInvalid(t *testing.T)

func TestSiteAddCreatedAt(t *testing.T) {
	const (
		updated = 1600000000
		now     = 1700000000
	)

	var (
		err       error
		key       string
		createdAt int64
		d         = openFresh(t)
	)

	d.now = fixedClock(now)

	type testCase struct {
		site     model.SiteRecord
		expected int64
	}

	var testCases = []testCase{
		{
			site:     model.SiteRecord{Title: "With Date", UpdatedAt: ptime(updated)},
			expected: updated,
		},
		{
			site:     model.SiteRecord{Title: "Without Date"},
			expected: now,
		},
	}

	for _, c := range testCases {
		if key, err = d.SiteAdd(catTech, &c.site); err != nil {
			t.Fatalf("Failed to add Site %s: %s", c.site.Title, err.Error())
		} else if err = d.db.QueryRow("SELECT createdAt FROM Sites WHERE key = ?", key).Scan(&createdAt); err != nil {
			t.Fatalf("Cannot load Site %s: %s", c.site.Title, err.Error())
		} else if createdAt != c.expected {
			t.Errorf("Unexpected createdAt for Site %s: %d (expected %d)",
				c.site.Title,
				createdAt,
				c.expected)
		}
	}
} // func TestSiteAddCreatedAt(t *testing.T)

func TestSiteAddConcurrent(t *testing.T) {
	const workerCnt = 10

	var (
		wg   sync.WaitGroup
		d    = openFresh(t)
		keys = make(chan string, workerCnt)
		errs = make(chan error, workerCnt)
	)

	for i := 0; i < workerCnt; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var s = &model.SiteRecord{Title: siteTitle, Link: "http://x"}
			if key, err := d.SiteAdd(catTech, s); err != nil {
				errs <- err
			} else {
				keys <- key
			}
		}()
	}

	wg.Wait()
	close(keys)
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent SiteAdd failed: %s", err.Error())
	}

	for key := range keys {
		if key != ident.SiteKey(siteTitle) {
			t.Errorf("Unexpected key: %s", key)
		}
	}

	if cnt := rowCount(t, d, "SELECT COUNT(*) FROM Sites"); cnt != 1 {
		t.Errorf("Unexpected number of Sites: %d (expected 1)", cnt)
	}

	if cnt := rowCount(t, d, "SELECT COUNT(*) FROM SiteCategories"); cnt != 1 {
		t.Errorf("Unexpected number of Site links: %d (expected 1)", cnt)
	}
} // func TestSiteAddConcurrent(t *testing.T)
