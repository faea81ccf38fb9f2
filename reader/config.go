// /home/krylon/go/src/github.com/blicero/feedstore/reader/config.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 16:41:20 krylon>

package reader

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/blicero/feedstore/common"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// defaultTimeout is the number of seconds we wait for a single feed.
const defaultTimeout = 30

// ErrInvalidFeedList is returned if the feed list fails validation.
var ErrInvalidFeedList = errors.New("Invalid feed list")

// CategoryFeeds lists the feeds to be ingested under a Category.
type CategoryFeeds struct {
	Name  string   `yaml:"name"`
	Feeds []string `yaml:"feeds"`
}

// FeedList is the set of feeds to ingest, along with settings for the run.
type FeedList struct {
	Workers    int             `yaml:"workers"`
	Timeout    int             `yaml:"timeout"`
	Categories []CategoryFeeds `yaml:"categories"`
	Blacklist  []string        `yaml:"blacklist"`
}

// FetchTimeout returns the time we allow for fetching a single feed.
func (fl *FeedList) FetchTimeout() time.Duration {
	return time.Duration(fl.Timeout) * time.Second
} // func (fl *FeedList) FetchTimeout() time.Duration

// FeedCount returns the total number of feeds in the list.
func (fl *FeedList) FeedCount() int {
	return lo.SumBy(fl.Categories, func(c CategoryFeeds) int { return len(c.Feeds) })
} // func (fl *FeedList) FeedCount() int

// LoadFeedList reads a feed list from the YAML file at the given path.
func LoadFeedList(path string) (*FeedList, error) {
	var (
		err  error
		data []byte
	)

	if data, err = os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("failed to read feed list %s: %w", path, err)
	}

	return ParseFeedList(data)
} // func LoadFeedList(path string) (*FeedList, error)

// ParseFeedList parses a feed list, fills in default values and validates it.
func ParseFeedList(data []byte) (*FeedList, error) {
	var (
		err error
		fl  FeedList
	)

	if err = yaml.Unmarshal(data, &fl); err != nil {
		return nil, fmt.Errorf("failed to parse feed list: %w", err)
	}

	fl.setDefaults()

	if err = fl.validate(); err != nil {
		return nil, err
	}

	return &fl, nil
} // func ParseFeedList(data []byte) (*FeedList, error)

func (fl *FeedList) setDefaults() {
	if fl.Workers <= 0 {
		fl.Workers = common.WorkerCntReader
	}

	if fl.Timeout <= 0 {
		fl.Timeout = defaultTimeout
	}

	for i := range fl.Categories {
		fl.Categories[i].Name = strings.TrimSpace(fl.Categories[i].Name)
		fl.Categories[i].Feeds = lo.Uniq(lo.Map(
			fl.Categories[i].Feeds,
			func(u string, _ int) string { return strings.TrimSpace(u) }))
	}
} // func (fl *FeedList) setDefaults()

func (fl *FeedList) validate() error {
	for _, p := range fl.Blacklist {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("%w: invalid blacklist pattern %q: %s",
				ErrInvalidFeedList,
				p,
				err.Error())
		}
	}

	for idx, c := range fl.Categories {
		if c.Name == "" {
			return fmt.Errorf("%w: Category #%d has no name",
				ErrInvalidFeedList,
				idx+1)
		} else if lo.Contains(c.Feeds, "") {
			return fmt.Errorf("%w: Category %s contains an empty feed URL",
				ErrInvalidFeedList,
				c.Name)
		}
	}

	return nil
} // func (fl *FeedList) validate() error
