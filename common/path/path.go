// /home/krylon/go/src/github.com/blicero/feedstore/common/path/path.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 14:05:40 krylon>

// Package path provides symbolic constants for the files and directories
// the application keeps below its base directory.
package path

//go:generate stringer -type=ID

// ID identifies a path.
type ID uint8

const (
	Base ID = iota
	Database
	Log
	Cache
	Feeds
)
