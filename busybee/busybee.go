// /home/krylon/go/src/github.com/blicero/feedstore/busybee/busybee.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 20:31:44 krylon>

// Package busybee implements ahead-of-time rendering of API responses,
// caching the results for (hopefully) improved performance in the web frontend.
//
// The database the responses are computed from does not change while it is
// being served, so cached values never expire. The cache is flushed whenever
// a new database is served.
package busybee

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	bt "go.etcd.io/bbolt" // Use the BoltDB backend

	"github.com/blicero/feedstore/common"
	"github.com/blicero/feedstore/logdomain"
	"github.com/faabiosr/cachego"
	"github.com/faabiosr/cachego/bolt"
)

const openTimeout = time.Second * 5

// Loader computes a value that is to be cached.
type Loader func() (string, error)

// BusyBee caches rendered responses and computes them ahead of time on request.
type BusyBee struct {
	active atomic.Bool
	hits   atomic.Int64
	misses atomic.Int64
	log    *log.Logger
	cdb    *bt.DB
	cache  cachego.Cache
}

// Create opens the cache file at the given path, creating it if needed.
func Create(path string) (*BusyBee, error) {
	var (
		err error
		bee = new(BusyBee)
	)

	if bee.log, err = common.GetLogger(logdomain.BusyBee); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Failed to create Logger for BusyBee: %s\n",
			err.Error())
		return nil, err
	} else if bee.cdb, err = bt.Open(path, 0600, &bt.Options{Timeout: openTimeout}); err != nil {
		bee.log.Printf("[ERROR] Failed to open cache at %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	bee.cache = bolt.New(bee.cdb)

	return bee, nil
} // func Create(path string) (*BusyBee, error)

// Close closes the underlying cache file.
func (bee *BusyBee) Close() error {
	return bee.cdb.Close()
} // func (bee *BusyBee) Close() error

// IsActive returns true while the BusyBee is warming up the cache.
func (bee *BusyBee) IsActive() bool {
	return bee.active.Load()
} // func (bee *BusyBee) IsActive() bool

// Stats returns the number of cache hits and misses so far.
func (bee *BusyBee) Stats() (int64, int64) {
	return bee.hits.Load(), bee.misses.Load()
} // func (bee *BusyBee) Stats() (int64, int64)

// Flush removes all values from the cache.
func (bee *BusyBee) Flush() error {
	var err error

	if err = bee.cache.Flush(); errors.Is(err, bt.ErrBucketNotFound) {
		// Nothing has been cached, yet.
		return nil
	} else if err != nil {
		bee.log.Printf("[ERROR] Failed to flush cache: %s\n",
			err.Error())
	}

	return err
} // func (bee *BusyBee) Flush() error

// Get returns the cached value for the given key. If there is none, it calls
// the Loader and caches its result. Values for which the Loader returns an
// error are not cached.
func (bee *BusyBee) Get(key string, load Loader) (string, error) {
	var (
		err error
		val string
	)

	if val, err = bee.cache.Fetch(key); err == nil {
		bee.hits.Add(1)
		return val, nil
	}

	bee.misses.Add(1)

	if val, err = load(); err != nil {
		return "", err
	} else if err = bee.cache.Save(key, val, 0); err != nil {
		bee.log.Printf("[ERROR] Failed to cache value for %s: %s\n",
			key,
			err.Error())
	}

	return val, nil
} // func (bee *BusyBee) Get(key string, load Loader) (string, error)

// Warm computes the values for all the given keys that are not cached, yet,
// using up to cnt workers. It returns the number of values that were added.
func (bee *BusyBee) Warm(jobs map[string]Loader, cnt int) int {
	type job struct {
		key  string
		load Loader
	}

	var (
		wg    sync.WaitGroup
		added atomic.Int64
		q     = make(chan job)
	)

	if !bee.active.CompareAndSwap(false, true) {
		bee.log.Println("[INFO] BusyBee is already warming up the cache")
		return 0
	}

	defer bee.active.Store(false)

	if cnt < 1 {
		cnt = 1
	}

	for i := 0; i < cnt; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range q {
				if bee.cache.Contains(j.key) {
					continue
				}

				var val, err = j.load()

				if err != nil {
					bee.log.Printf("[ERROR] Failed to compute value for %s: %s\n",
						j.key,
						err.Error())
				} else if err = bee.cache.Save(j.key, val, 0); err != nil {
					bee.log.Printf("[ERROR] Failed to cache value for %s: %s\n",
						j.key,
						err.Error())
				} else {
					added.Add(1)
				}
			}
		}()
	}

	for k, l := range jobs {
		q <- job{key: k, load: l}
	}

	close(q)
	wg.Wait()

	bee.log.Printf("[DEBUG] Warmed up cache with %d of %d values\n",
		added.Load(),
		len(jobs))

	return int(added.Load())
} // func (bee *BusyBee) Warm(jobs map[string]Loader, cnt int) int
