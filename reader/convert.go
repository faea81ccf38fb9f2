// /home/krylon/go/src/github.com/blicero/feedstore/reader/convert.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 17:02:33 krylon>

package reader

import (
	"github.com/blicero/feedstore/model"
	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
)

// Convert turns a parsed feed into the records we store.
// Items that have neither a title nor a link are dropped.
func Convert(f *gofeed.Feed) (model.SiteRecord, []model.EntryRecord) {
	var site = model.SiteRecord{
		Title:       lo.Ternary(f.Title != "", f.Title, f.Link),
		Link:        f.Link,
		Description: f.Description,
	}

	if f.UpdatedParsed != nil {
		site.UpdatedAt = f.UpdatedParsed
	} else if f.PublishedParsed != nil {
		site.UpdatedAt = f.PublishedParsed
	}

	var items = lo.Filter(f.Items, func(i *gofeed.Item, _ int) bool {
		return i != nil && (i.Title != "" || i.Link != "")
	})

	return site, lo.Map(items, func(i *gofeed.Item, _ int) model.EntryRecord {
		return convertItem(i)
	})
} // func Convert(f *gofeed.Feed) (model.SiteRecord, []model.EntryRecord)

func convertItem(i *gofeed.Item) model.EntryRecord {
	var e = model.EntryRecord{
		Title:   i.Title,
		Link:    i.Link,
		Content: lo.Ternary(i.Content != "", i.Content, i.Description),
	}

	if i.PublishedParsed != nil {
		e.Date = i.PublishedParsed
	} else if i.UpdatedParsed != nil {
		e.Date = i.UpdatedParsed
	}

	return e
} // func convertItem(i *gofeed.Item) model.EntryRecord
