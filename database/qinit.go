// /home/krylon/go/src/github.com/blicero/feedstore/database/qinit.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 17:02:56 krylon>

package database

// Table and column names are read verbatim by the browser client, so they
// must not change.
// Tables are not declared STRICT, the client's SQLite build may be too old
// to open them.
var initQueries = []string{
	`
CREATE TABLE IF NOT EXISTS Categories (
    name                TEXT PRIMARY KEY NOT NULL
)
`,

	`
CREATE TABLE IF NOT EXISTS Sites (
    key                 TEXT PRIMARY KEY NOT NULL,
    title               TEXT NOT NULL,
    url                 TEXT,
    description         TEXT,
    createdAt           INTEGER NOT NULL,
    CHECK (length(key) = 64)
)
`,

	`
CREATE TABLE IF NOT EXISTS SiteCategories (
    category            TEXT NOT NULL,
    siteKey             TEXT NOT NULL,
    siteTitle           TEXT NOT NULL
)
`,
	"CREATE UNIQUE INDEX IF NOT EXISTS site_category_idx ON SiteCategories (category, siteKey)",

	`
CREATE TABLE IF NOT EXISTS Entries (
    key                 TEXT PRIMARY KEY NOT NULL,
    siteKey             TEXT NOT NULL,
    siteTitle           TEXT NOT NULL,
    title               TEXT NOT NULL,
    url                 TEXT NOT NULL,
    content             TEXT NOT NULL,
    contentTime         INTEGER,
    createdAt           INTEGER NOT NULL,
    CHECK (length(key) = 64)
)
`,
	`CREATE INDEX IF NOT EXISTS site_content_time_created_at_idx
    ON Entries (siteKey, contentTime, createdAt)`,

	`
CREATE TABLE IF NOT EXISTS EntryCategories (
    category            TEXT NOT NULL,
    entryKey            TEXT NOT NULL,
    entryTitle          TEXT NOT NULL,
    siteKey             TEXT NOT NULL,
    siteTitle           TEXT NOT NULL,
    entryContentTime    INTEGER
)
`,
	`CREATE INDEX IF NOT EXISTS category_siteKey_entryKey_idx
    ON EntryCategories (category, siteKey, entryKey)`,
	`CREATE INDEX IF NOT EXISTS category_content_time_idx
    ON EntryCategories (category, entryContentTime)`,
}
