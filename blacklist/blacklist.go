// /home/krylon/go/src/github.com/blicero/feedstore/blacklist/blacklist.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 11. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 10:12:40 krylon>

// Package blacklist provides a way to filter Entries with regular expressions.
package blacklist

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/blicero/feedstore/common"
	"github.com/blicero/feedstore/logdomain"
	"github.com/blicero/feedstore/model"
)

// Pattern is a single item, it includes both the regular expression and a
// counter for how many times it matched Entries.
// This information is used in sorting the blacklist, so Patterns with more matches
// move to the front of the list.
type Pattern struct {
	Pattern *regexp.Regexp
	Cnt     atomic.Int64
}

// Match checks if the receiver Pattern matches the title or the content of
// the given Entry.
func (p *Pattern) Match(e *model.EntryRecord) bool {
	if p.Pattern.MatchString(e.Title) || p.Pattern.MatchString(e.Content) {
		p.Cnt.Add(1)
		return true
	}
	return false
} // func (p *Pattern) Match(e *model.EntryRecord) bool

// MarshalJSON renders the Pattern and its match count.
func (p *Pattern) MarshalJSON() ([]byte, error) {
	var s = fmt.Sprintf(`{"pattern":%s,"cnt":%d}`,
		quote(p.Pattern.String()),
		p.Cnt.Load(),
	)

	return []byte(s), nil
} // func (p *Pattern) MarshalJSON() ([]byte, error)

func quote(s string) string {
	var buf, _ = json.Marshal(s)
	return string(buf)
} // func quote(s string) string

// Blacklist is a collection of Patterns.
type Blacklist struct {
	lock sync.RWMutex
	log  *log.Logger
	List []*Pattern
}

// New compiles the given regular expressions into a Blacklist.
func New(patterns []string) (*Blacklist, error) {
	var (
		err error
		bl  = &Blacklist{List: make([]*Pattern, 0, len(patterns))}
	)

	if bl.log, err = common.GetLogger(logdomain.Reader); err != nil {
		return nil, err
	}

	for _, s := range patterns {
		if err = bl.AddString(s); err != nil {
			bl.log.Printf("[ERROR] Invalid blacklist pattern %q: %s\n",
				s,
				err.Error())
			return nil, err
		}
	}

	return bl, nil
} // func New(patterns []string) (*Blacklist, error)

func (bl *Blacklist) Len() int           { return len(bl.List) }
func (bl *Blacklist) Swap(i, j int)      { bl.List[i], bl.List[j] = bl.List[j], bl.List[i] }
func (bl *Blacklist) Less(i, j int) bool { return bl.List[i].Cnt.Load() > bl.List[j].Cnt.Load() }

// Match checks if the given Entry is matched by any of the patterns in the Blacklist.
// A nil Blacklist matches nothing.
func (bl *Blacklist) Match(e *model.EntryRecord) bool {
	if bl == nil {
		return false
	}

	bl.lock.RLock()
	defer bl.lock.RUnlock()

	for _, p := range bl.List {
		if p.Match(e) {
			if common.Debug {
				bl.log.Printf("[TRACE] Blacklist Pattern %q matches Entry %q\n",
					p.Pattern,
					e.Title)
			}
			return true
		}
	}

	return false
} // func (bl *Blacklist) Match(e *model.EntryRecord) bool

// Sort sorts the Patterns of the Blacklist so that Patterns with larger match
// counts move to the front.
func (bl *Blacklist) Sort() {
	bl.lock.Lock()
	defer bl.lock.Unlock()

	sort.Sort(bl)
} // func (bl *Blacklist) Sort()

// String renders the Patterns along with their match counts, most frequent
// matches first.
func (bl *Blacklist) String() string {
	bl.Sort()
	bl.lock.RLock()
	defer bl.lock.RUnlock()

	var buf, err = json.Marshal(bl.List)

	if err != nil {
		return fmt.Sprintf("Blacklist(%s)", err.Error())
	}

	return string(buf)
} // func (bl *Blacklist) String() string

// AddString creates a new Pattern from the given string and adds it to the Blacklist.
func (bl *Blacklist) AddString(s string) error {
	var p = new(Pattern)
	var err error

	if p.Pattern, err = regexp.Compile(s); err != nil {
		return err
	}

	bl.lock.Lock()
	defer bl.lock.Unlock()
	bl.List = append(bl.List, p)
	return nil
} // func (bl *Blacklist) AddString(s string) error
