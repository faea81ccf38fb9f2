// /home/krylon/go/src/github.com/blicero/feedstore/database/qdb.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 17:31:08 krylon>

package database

import "github.com/blicero/feedstore/database/query"

var dbQueries = map[query.ID]string{
	query.CategoryAdd:    "INSERT INTO Categories (name) VALUES (?)",
	query.CategoryExists: "SELECT COUNT(name) FROM Categories WHERE name = ?",
	query.SiteAdd: `
INSERT INTO Sites (key, title, url, description, createdAt)
           VALUES (  ?,     ?,   ?,           ?,         ?)
`,
	query.SiteExists: "SELECT COUNT(key) FROM Sites WHERE key = ?",
	query.SiteCategoryAdd: `
INSERT INTO SiteCategories (category, siteKey, siteTitle)
                    VALUES (       ?,       ?,         ?)
`,
	query.SiteCategoryExists: `
SELECT COUNT(siteKey)
FROM SiteCategories
WHERE category = ? AND siteKey = ?
`,
	query.SiteCategoryGetAll: `
SELECT
    category,
    siteKey,
    siteTitle
FROM SiteCategories
ORDER BY rowid
`,
	query.EntryAdd: `
INSERT INTO Entries (key, siteKey, siteTitle, title, url, content, contentTime, createdAt)
             VALUES (  ?,       ?,         ?,     ?,   ?,       ?,           ?,         ?)
`,
	query.EntryExists: "SELECT COUNT(key) FROM Entries WHERE key = ?",
	query.EntryCategoryAdd: `
INSERT INTO EntryCategories (category, entryKey, entryTitle, siteKey, siteTitle, entryContentTime)
                     VALUES (       ?,        ?,          ?,       ?,         ?,                ?)
`,
	query.EntryGetByCategory: `
SELECT
    entryKey,
    entryTitle,
    siteKey,
    siteTitle,
    entryContentTime
FROM EntryCategories
WHERE category = ? AND entryContentTime IS NOT NULL
ORDER BY entryContentTime DESC, entryKey ASC
LIMIT ? OFFSET ?
`,
	query.EntryGetBySite: `
SELECT
    key,
    siteTitle,
    title,
    contentTime
FROM Entries
WHERE siteKey = ?
ORDER BY contentTime DESC NULLS LAST, createdAt DESC, key ASC
LIMIT ? OFFSET ?
`,
	query.EntryGetContent: "SELECT title, content, url FROM Entries WHERE key = ?",
	query.EntryCountByCategory: `
SELECT COUNT(entryKey)
FROM EntryCategories
WHERE category = ? AND entryContentTime IS NOT NULL
`,
	query.EntryCountBySite: "SELECT COUNT(key) FROM Entries WHERE siteKey = ?",
}
