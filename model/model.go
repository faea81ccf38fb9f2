// /home/krylon/go/src/github.com/blicero/feedstore/model/model.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 16:20:45 krylon>

// Package model provides the data types used across the application.
package model

import (
	"fmt"
	"time"

	"github.com/blicero/feedstore/ident"
)

// SiteRecord is a feed source as handed to us by the feed parser.
type SiteRecord struct {
	Title       string
	Link        string
	Description string
	UpdatedAt   *time.Time
}

// Key returns the Site's content-addressed key.
func (s *SiteRecord) Key() string {
	return ident.SiteKey(s.Title)
} // func (s *SiteRecord) Key() string

func (s *SiteRecord) String() string {
	return fmt.Sprintf(`{ Title: %q, Link: %q }`,
		s.Title,
		s.Link)
}

// EntryRecord is a single article as handed to us by the feed parser.
// Date is nil if the feed did not supply a publication date.
type EntryRecord struct {
	Title   string
	Link    string
	Content string
	Date    *time.Time
}

// Key returns the Entry's content-addressed key.
func (e *EntryRecord) Key() string {
	return ident.EntryKey(e.Title, e.Link)
} // func (e *EntryRecord) Key() string

// ContentTime returns the Entry's publication time in seconds since the
// epoch, or nil if it is unknown.
func (e *EntryRecord) ContentTime() *int64 {
	if e.Date == nil {
		return nil
	}

	var stamp = e.Date.Unix()
	return &stamp
} // func (e *EntryRecord) ContentTime() *int64

func (e *EntryRecord) String() string {
	return fmt.Sprintf(`{ Title: %q, Link: %q }`,
		e.Title,
		e.Link)
}

// SiteRef is the minimal reference to a Site needed for navigation.
type SiteRef struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Category groups the Sites that were linked to it.
type Category struct {
	Name  string    `json:"name"`
	Sites []SiteRef `json:"sites"`
}

// TimelineEntry is one line in a category or site timeline.
type TimelineEntry struct {
	Key       string     `json:"key"`
	Title     string     `json:"title"`
	Site      SiteRef    `json:"site"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Content is what the client needs to display a single Entry.
type Content struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}
