// /home/krylon/go/src/github.com/blicero/feedstore/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 16:48:30 krylon>

// Package query provides symbolic constants to identify database queries.
package query

//go:generate stringer -type=ID

// ID represents a database query
type ID uint8

const (
	CategoryAdd ID = iota
	CategoryExists
	SiteAdd
	SiteExists
	SiteCategoryAdd
	SiteCategoryExists
	SiteCategoryGetAll
	EntryAdd
	EntryExists
	EntryCategoryAdd
	EntryGetByCategory
	EntryGetBySite
	EntryGetContent
	EntryCountByCategory
	EntryCountBySite
)

// AllQueries returns a slice of all queries.
func AllQueries() []ID {
	return []ID{
		CategoryAdd,
		CategoryExists,
		SiteAdd,
		SiteExists,
		SiteCategoryAdd,
		SiteCategoryExists,
		SiteCategoryGetAll,
		EntryAdd,
		EntryExists,
		EntryCategoryAdd,
		EntryGetByCategory,
		EntryGetBySite,
		EntryGetContent,
		EntryCountByCategory,
		EntryCountBySite,
	}
} // func AllQueries() []ID
