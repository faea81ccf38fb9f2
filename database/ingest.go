// /home/krylon/go/src/github.com/blicero/feedstore/database/ingest.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 19:10:37 krylon>

package database

import (
	"database/sql"
	"time"

	"github.com/blicero/feedstore/common"
	"github.com/blicero/feedstore/database/query"
	"github.com/blicero/feedstore/model"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
} // func nullString(s string) sql.NullString

func nullInt(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: *i, Valid: true}
} // func nullInt(i *int64) sql.NullInt64

// CategoryAdd adds a Category to the database, unless it exists already.
func (db *Database) CategoryAdd(name string) (err error) {
	var (
		cnt    int64
		tx     *sql.Tx
		status bool
	)

	if db.readOnly {
		return ErrReadOnly
	} else if name == "" {
		return ErrInvalidValue
	} else if tx, err = db.begin(); err != nil {
		db.log.Printf("[ERROR] Failed to insert Category %s: %s\n",
			name,
			err.Error())
		return err
	}

	defer func() {
		if cerr := db.finish(tx, status); cerr != nil {
			err = cerr
		}
	}()

	if cnt, err = db.count(tx, query.CategoryExists, name); err != nil {
		db.log.Printf("[ERROR] Failed to insert Category %s: %s\n",
			name,
			err.Error())
		return err
	} else if cnt > 0 {
		return nil
	} else if err = db.exec(tx, query.CategoryAdd, name); err != nil {
		if isConstraintViolation(err) {
			db.log.Printf("[DEBUG] Category %s was added concurrently\n",
				name)
			return nil
		}

		db.log.Printf("[ERROR] Failed to insert Category %s: %s\n",
			name,
			err.Error())
		return err
	}

	db.log.Printf("[INFO] Add Category %s\n", name)
	status = true
	return nil
} // func (db *Database) CategoryAdd(name string) error

// SiteAdd links a Site to a Category and adds the Site itself, unless it
// exists already. It returns the Site's key.
//
// If the Site is already linked to the Category, nothing is written, and the
// key is returned all the same.
// On failure, the error is logged and returned along with an empty key.
func (db *Database) SiteAdd(category string, s *model.SiteRecord) (key string, err error) {
	var (
		cnt     int64
		tx      *sql.Tx
		status  bool
		updated time.Time
	)

	if db.readOnly {
		return "", ErrReadOnly
	} else if category == "" || s == nil {
		return "", ErrInvalidValue
	}

	key = s.Key()

	if s.UpdatedAt != nil {
		updated = *s.UpdatedAt
	} else {
		updated = db.now()
	}

	if tx, err = db.begin(); err != nil {
		db.log.Printf("[ERROR] Failed to insert Site %s: %s\n",
			s.Title,
			err.Error())
		return "", err
	}

	defer func() {
		if cerr := db.finish(tx, status); cerr != nil {
			key = ""
			err = cerr
		}
	}()

	if cnt, err = db.count(tx, query.SiteCategoryExists, category, key); err != nil {
		db.log.Printf("[ERROR] Failed to insert Site %s: %s\n",
			s.Title,
			err.Error())
		return "", err
	} else if cnt > 0 {
		if common.Debug {
			db.log.Printf("[TRACE] Site %s is already linked to Category %s\n",
				s.Title,
				category)
		}
		return key, nil
	} else if err = db.exec(tx, query.SiteCategoryAdd, category, key, s.Title); err != nil {
		if isConstraintViolation(err) {
			db.log.Printf("[DEBUG] Site %s was linked to Category %s concurrently\n",
				s.Title,
				category)
			return key, nil
		}

		db.log.Printf("[ERROR] Failed to link Site %s to Category %s: %s\n",
			s.Title,
			category,
			err.Error())
		return "", err
	} else if cnt, err = db.count(tx, query.SiteExists, key); err != nil {
		db.log.Printf("[ERROR] Failed to insert Site %s: %s\n",
			s.Title,
			err.Error())
		return "", err
	} else if cnt == 0 {
		if err = db.exec(
			tx,
			query.SiteAdd,
			key,
			s.Title,
			nullString(s.Link),
			nullString(s.Description),
			updated.Unix()); err != nil {
			if !isConstraintViolation(err) {
				db.log.Printf("[ERROR] Failed to insert Site %s: %s\n",
					s.Title,
					err.Error())
				return "", err
			}

			db.log.Printf("[DEBUG] Site %s was added concurrently\n",
				s.Title)
		} else {
			db.log.Printf("[INFO] Add Site %s (%s)\n",
				s.Title,
				key)
		}
	}

	status = true
	return key, nil
} // func (db *Database) SiteAdd(category string, s *model.SiteRecord) (string, error)

// EntryAdd adds an Entry along with its link to the given Category.
// If an Entry with the same key exists already, nothing is written, even if
// it was added under a different Category. In that case, EntryAdd returns
// false and no error.
func (db *Database) EntryAdd(siteKey, siteTitle, category string, e *model.EntryRecord) (added bool, err error) {
	var (
		cnt         int64
		key         string
		tx          *sql.Tx
		status      bool
		contentTime sql.NullInt64
	)

	if db.readOnly {
		return false, ErrReadOnly
	} else if siteKey == "" || category == "" || e == nil {
		return false, ErrInvalidValue
	}

	key = e.Key()
	contentTime = nullInt(e.ContentTime())

	if tx, err = db.begin(); err != nil {
		db.log.Printf("[ERROR] Failed to insert Entry %s: %s\n",
			e.Title,
			err.Error())
		return false, err
	}

	defer func() {
		if cerr := db.finish(tx, status); cerr != nil {
			added = false
			err = cerr
		}
	}()

	if cnt, err = db.count(tx, query.EntryExists, key); err != nil {
		db.log.Printf("[ERROR] Failed to insert Entry %s: %s\n",
			e.Title,
			err.Error())
		return false, err
	} else if cnt > 0 {
		return false, nil
	} else if err = db.exec(
		tx,
		query.EntryAdd,
		key,
		siteKey,
		siteTitle,
		e.Title,
		e.Link,
		e.Content,
		contentTime,
		db.now().Unix()); err != nil {
		if isConstraintViolation(err) {
			db.log.Printf("[DEBUG] Entry %s was added concurrently\n",
				e.Title)
			return false, nil
		}

		db.log.Printf("[ERROR] Failed to insert Entry %s: %s\n",
			e.Title,
			err.Error())
		return false, err
	} else if err = db.exec(
		tx,
		query.EntryCategoryAdd,
		category,
		key,
		e.Title,
		siteKey,
		siteTitle,
		contentTime); err != nil {
		db.log.Printf("[ERROR] Failed to link Entry %s to Category %s: %s\n",
			e.Title,
			category,
			err.Error())
		return false, err
	}

	if common.Debug {
		db.log.Printf("[TRACE] Add Entry %s (%s)\n",
			e.Title,
			key)
	}

	status = true
	return true, nil
} // func (db *Database) EntryAdd(siteKey, siteTitle, category string, e *model.EntryRecord) (bool, error)

// EntryExists returns true if an Entry with the given title and URL has been
// stored before.
func (db *Database) EntryExists(title, url string) (bool, error) {
	var (
		err error
		cnt int64
		e   = model.EntryRecord{Title: title, Link: url}
	)

	if cnt, err = db.count(nil, query.EntryExists, e.Key()); err != nil {
		return false, err
	}

	return cnt > 0, nil
} // func (db *Database) EntryExists(title, url string) (bool, error)
