// /home/krylon/go/src/github.com/blicero/feedstore/database/timeline.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 11:27:04 krylon>

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/blicero/feedstore/database/query"
	"github.com/blicero/feedstore/model"
)

// PageSize is the number of Entries per page in a timeline.
const PageSize = 50

// maxPage is the largest page number whose offset does not overflow.
const maxPage = math.MaxInt64 / PageSize

func pageOffset(page int64) (int64, error) {
	if page < 0 || page > maxPage {
		return 0, ErrInvalidValue
	}

	return page * PageSize, nil
} // func pageOffset(page int64) (int64, error)

// rows executes a query that returns rows, retrying if the database is busy.
func (db *Database) rows(qid query.ID, args ...any) (*sql.Rows, error) {
	var (
		err   error
		stmt  *sql.Stmt
		rows  *sql.Rows
		tries int
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	}

EXEC_QUERY:
	if rows, err = stmt.Query(args...); err != nil {
		if worthARetry(err) && tries < maxRetries {
			tries++
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Query %s failed: %s\n",
			qid,
			err.Error())
		return nil, err
	}

	return rows, nil
} // func (db *Database) rows(qid query.ID, args ...any) (*sql.Rows, error)

// CategoryGetAll returns all Categories along with the Sites linked to them.
// Categories appear in the order they were first linked to a Site, Sites in
// the order they were linked.
func (db *Database) CategoryGetAll() ([]model.Category, error) {
	const qid query.ID = query.SiteCategoryGetAll
	var (
		err   error
		msg   string
		rows  *sql.Rows
		cats  = make([]model.Category, 0, 8)
		index = make(map[string]int)
	)

	if rows, err = db.rows(qid); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	for rows.Next() {
		var (
			idx   int
			found bool
			name  string
			site  model.SiteRef
		)

		if err = rows.Scan(&name, &site.Key, &site.Title); err != nil {
			msg = fmt.Sprintf("Error scanning row for Category: %s",
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return nil, errors.New(msg)
		} else if idx, found = index[name]; !found {
			idx = len(cats)
			index[name] = idx
			cats = append(cats, model.Category{Name: name})
		}

		cats[idx].Sites = append(cats[idx].Sites, site)
	}

	if err = rows.Err(); err != nil {
		db.log.Printf("[ERROR] Failed to iterate over Categories: %s\n",
			err.Error())
		return nil, err
	}

	return cats, nil
} // func (db *Database) CategoryGetAll() ([]model.Category, error)

// EntryGetByCategory returns one page of the timeline of the given Category,
// newest Entries first. Entries without a publication date are never part
// of a Category timeline. Entries with the same date are ordered by key.
func (db *Database) EntryGetByCategory(category string, page int64) ([]model.TimelineEntry, error) {
	const qid query.ID = query.EntryGetByCategory
	var (
		err     error
		msg     string
		offset  int64
		rows    *sql.Rows
		entries = make([]model.TimelineEntry, 0, PageSize)
	)

	if offset, err = pageOffset(page); err != nil {
		return nil, err
	} else if rows, err = db.rows(qid, category, PageSize, offset); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	for rows.Next() {
		var (
			stamp int64
			e     model.TimelineEntry
		)

		if err = rows.Scan(&e.Key, &e.Title, &e.Site.Key, &e.Site.Title, &stamp); err != nil {
			msg = fmt.Sprintf("Error scanning row for Category %s: %s",
				category,
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return nil, errors.New(msg)
		}

		var t = time.Unix(stamp, 0)
		e.Timestamp = &t
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		db.log.Printf("[ERROR] Failed to iterate over timeline of Category %s: %s\n",
			category,
			err.Error())
		return nil, err
	}

	return entries, nil
} // func (db *Database) EntryGetByCategory(category string, page int64) ([]model.TimelineEntry, error)

// EntryGetBySite returns one page of the timeline of the given Site, newest
// Entries first. Entries without a publication date come last, ties are
// broken by the time the Entry was stored (newest first), then by key.
func (db *Database) EntryGetBySite(siteKey string, page int64) ([]model.TimelineEntry, error) {
	const qid query.ID = query.EntryGetBySite
	var (
		err     error
		msg     string
		offset  int64
		rows    *sql.Rows
		entries = make([]model.TimelineEntry, 0, PageSize)
	)

	if offset, err = pageOffset(page); err != nil {
		return nil, err
	} else if rows, err = db.rows(qid, siteKey, PageSize, offset); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	for rows.Next() {
		var (
			stamp sql.NullInt64
			e     = model.TimelineEntry{Site: model.SiteRef{Key: siteKey}}
		)

		if err = rows.Scan(&e.Key, &e.Site.Title, &e.Title, &stamp); err != nil {
			msg = fmt.Sprintf("Error scanning row for Site %s: %s",
				siteKey,
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return nil, errors.New(msg)
		} else if stamp.Valid {
			var t = time.Unix(stamp.Int64, 0)
			e.Timestamp = &t
		}

		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		db.log.Printf("[ERROR] Failed to iterate over timeline of Site %s: %s\n",
			siteKey,
			err.Error())
		return nil, err
	}

	return entries, nil
} // func (db *Database) EntryGetBySite(siteKey string, page int64) ([]model.TimelineEntry, error)

// EntryGetContent loads the title, content and URL of a single Entry.
// If there is no Entry with the given key, it returns nil and no error.
func (db *Database) EntryGetContent(key string) (*model.Content, error) {
	const qid query.ID = query.EntryGetContent
	var (
		err  error
		msg  string
		rows *sql.Rows
	)

	if rows, err = db.rows(qid, key); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var c = new(model.Content)

		if err = rows.Scan(&c.Title, &c.Content, &c.URL); err != nil {
			msg = fmt.Sprintf("Error scanning row for Entry %s: %s",
				key,
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return nil, errors.New(msg)
		}

		return c, nil
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	db.log.Printf("[INFO] Entry %s was not found in database\n", key)
	return nil, nil
} // func (db *Database) EntryGetContent(key string) (*model.Content, error)

// EntryCountByCategory returns the number of Entries in the timeline of the
// given Category.
func (db *Database) EntryCountByCategory(category string) (int64, error) {
	return db.count(nil, query.EntryCountByCategory, category)
} // func (db *Database) EntryCountByCategory(category string) (int64, error)

// EntryCountBySite returns the number of Entries in the timeline of the
// given Site.
func (db *Database) EntryCountBySite(siteKey string) (int64, error) {
	return db.count(nil, query.EntryCountBySite, siteKey)
} // func (db *Database) EntryCountBySite(siteKey string) (int64, error)
