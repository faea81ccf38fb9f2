// /home/krylon/go/src/github.com/blicero/feedstore/reader/reader.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 09. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 17:48:09 krylon>

// Package reader fetches feeds and stores their contents in the database.
package reader

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/blicero/feedstore/blacklist"
	"github.com/blicero/feedstore/common"
	"github.com/blicero/feedstore/database"
	"github.com/blicero/feedstore/logdomain"
	"github.com/blicero/krylib"
	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
)

const userAgent = common.AppName + "/" + common.Version

// Report summarizes the outcome of an ingestion run.
type Report struct {
	RunID            string
	Started          time.Time
	Finished         time.Time
	FeedsOK          int
	FeedsFailed      int
	CategoriesFailed int
	Sites            int
	EntriesAdded     int
	EntriesSkipped   int
	EntriesFailed    int
	EntriesBlocked   int
}

func (r *Report) merge(other *Report) {
	r.FeedsOK += other.FeedsOK
	r.FeedsFailed += other.FeedsFailed
	r.CategoriesFailed += other.CategoriesFailed
	r.Sites += other.Sites
	r.EntriesAdded += other.EntriesAdded
	r.EntriesSkipped += other.EntriesSkipped
	r.EntriesFailed += other.EntriesFailed
	r.EntriesBlocked += other.EntriesBlocked
} // func (r *Report) merge(other *Report)

func (r *Report) String() string {
	return fmt.Sprintf(
		"Run %s: %d feeds ok, %d failed, %d categories failed, %d sites, %d entries added, %d skipped, %d failed, %d blocked, took %s",
		r.RunID,
		r.FeedsOK,
		r.FeedsFailed,
		r.CategoriesFailed,
		r.Sites,
		r.EntriesAdded,
		r.EntriesSkipped,
		r.EntriesFailed,
		r.EntriesBlocked,
		r.Finished.Sub(r.Started))
} // func (r *Report) String() string

type job struct {
	category string
	url      string
}

// Reader fetches feeds and hands their contents to the database.
type Reader struct {
	log *log.Logger
	db  *database.Database
}

// New creates a Reader that stores what it reads in the given Database.
func New(db *database.Database) (*Reader, error) {
	var (
		err error
		rdr = &Reader{db: db}
	)

	if db == nil || db.IsReadOnly() {
		return nil, database.ErrReadOnly
	} else if rdr.log, err = common.GetLogger(logdomain.Reader); err != nil {
		return nil, err
	}

	return rdr, nil
} // func New(db *database.Database) (*Reader, error)

// Run fetches all feeds in the list and stores their contents.
// Errors are logged and counted in the Report, they do not stop the run.
// If the context is cancelled, feeds that have not been started are skipped.
func (r *Reader) Run(ctx context.Context, fl *FeedList) Report {
	var (
		err     error
		bl      *blacklist.Blacklist
		wg      sync.WaitGroup
		lock    sync.Mutex
		workers = krylib.Min(fl.Workers, fl.FeedCount())
		jobs    = make(chan job)
		rep     = Report{
			RunID:   uuid.NewString(),
			Started: time.Now(),
		}
	)

	if bl, err = blacklist.New(fl.Blacklist); err != nil {
		r.log.Printf("[ERROR] Cannot compile blacklist, Entries will not be filtered: %s\n",
			err.Error())
		bl = nil
	}

	r.log.Printf("[INFO] Start run %s: %d feeds, %d workers\n",
		rep.RunID,
		fl.FeedCount(),
		workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var tally = r.worker(ctx, id, rep.RunID, fl.FetchTimeout(), bl, jobs)
			lock.Lock()
			rep.merge(&tally)
			lock.Unlock()
		}(i + 1)
	}

DISPATCH:
	for _, c := range fl.Categories {
		for _, u := range c.Feeds {
			select {
			case <-ctx.Done():
				r.log.Printf("[INFO] Run %s was cancelled: %s\n",
					rep.RunID,
					ctx.Err())
				break DISPATCH
			case jobs <- job{category: c.Name, url: u}:
			}
		}
	}

	close(jobs)
	wg.Wait()

	rep.Finished = time.Now()
	r.log.Printf("[INFO] %s\n", rep.String())

	if bl != nil && bl.Len() > 0 {
		r.log.Printf("[DEBUG] Blacklist matches: %s\n", bl.String())
	}

	return rep
} // func (r *Reader) Run(ctx context.Context, fl *FeedList) Report

func (r *Reader) worker(ctx context.Context, id int, runID string, timeout time.Duration, bl *blacklist.Blacklist, jobs <-chan job) Report {
	var (
		tally  Report
		parser = gofeed.NewParser()
	)

	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: timeout}

	for j := range jobs {
		if common.Debug {
			r.log.Printf("[TRACE] Run %s, worker %02d: fetch %s\n",
				runID,
				id,
				j.url)
		}

		r.ingest(ctx, parser, j, timeout, bl, &tally)
	}

	return tally
} // func (r *Reader) worker(ctx context.Context, id int, runID string, timeout time.Duration, bl *blacklist.Blacklist, jobs <-chan job) Report

func (r *Reader) ingest(ctx context.Context, parser *gofeed.Parser, j job, timeout time.Duration, bl *blacklist.Blacklist, tally *Report) {
	var (
		err     error
		key     string
		added   bool
		feed    *gofeed.Feed
		fctx    context.Context
		cancel  context.CancelFunc
		skipped int
	)

	fctx, cancel = context.WithTimeout(ctx, timeout)
	defer cancel()

	if feed, err = parser.ParseURLWithContext(j.url, fctx); err != nil {
		r.log.Printf("[ERROR] Failed to fetch %s: %s\n",
			j.url,
			err.Error())
		tally.FeedsFailed++
		return
	}

	var site, entries = Convert(feed)

	if site.Title == "" {
		site.Title = j.url
	}

	// A missing Category row does not keep us from storing the Site
	// and its Entries.
	if err = r.db.CategoryAdd(j.category); err != nil {
		r.log.Printf("[ERROR] Failed to add Category %s for %s: %s\n",
			j.category,
			j.url,
			err.Error())
		tally.CategoriesFailed++
	}

	if key, err = r.db.SiteAdd(j.category, &site); err != nil {
		tally.FeedsFailed++
		return
	}

	tally.FeedsOK++
	tally.Sites++

	for idx := range entries {
		if ctx.Err() != nil {
			skipped = len(entries) - idx
			r.log.Printf("[INFO] Skip %d remaining entries of %s\n",
				skipped,
				site.Title)
			tally.EntriesSkipped += skipped
			return
		} else if bl.Match(&entries[idx]) {
			tally.EntriesBlocked++
		} else if added, err = r.db.EntryAdd(key, site.Title, j.category, &entries[idx]); err != nil {
			tally.EntriesFailed++
		} else if added {
			tally.EntriesAdded++
		} else {
			tally.EntriesSkipped++
		}
	}

	r.log.Printf("[DEBUG] Ingested %d entries from %s (%s)\n",
		len(entries),
		site.Title,
		j.url)
} // func (r *Reader) ingest(ctx context.Context, parser *gofeed.Parser, j job, timeout time.Duration, bl *blacklist.Blacklist, tally *Report)
