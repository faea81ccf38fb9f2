// /home/krylon/go/src/github.com/blicero/feedstore/ident/ident.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 15:40:02 krylon>

// Package ident computes the content-addressed keys that identify Sites and
// Entries in the database.
//
// Keys are not normalized in any way: two titles that differ only in case
// or whitespace yield different keys.
package ident

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyLength is the length of a key in characters.
const KeyLength = sha256.Size * 2

// Identity returns the hex-encoded SHA-256 digest of the concatenation of
// the given parts, in the order they are given.
func Identity(parts ...string) string {
	var hash = sha256.New()

	for _, p := range parts {
		hash.Write([]byte(p)) // nolint: errcheck
	}

	return hex.EncodeToString(hash.Sum(nil))
} // func Identity(parts ...string) string

// SiteKey returns the key of the Site with the given title.
func SiteKey(title string) string {
	return Identity(title)
} // func SiteKey(title string) string

// EntryKey returns the key of the Entry with the given title and URL.
func EntryKey(title, url string) string {
	return Identity(title, url)
} // func EntryKey(title, url string) string

// Valid returns true if s looks like a key produced by Identity.
func Valid(s string) bool {
	if len(s) != KeyLength {
		return false
	}

	for _, c := range s {
		if !(('0' <= c && c <= '9') || ('a' <= c && c <= 'f')) {
			return false
		}
	}

	return true
} // func Valid(s string) bool
