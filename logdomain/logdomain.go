// /home/krylon/go/src/github.com/blicero/feedstore/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 14:02:11 krylon>

// Package logdomain provides symbolic constants for the various parts of the
// application that write log messages.
package logdomain

//go:generate stringer -type=ID

// ID identifies a log domain.
type ID uint8

const (
	Common ID = iota
	Database
	Reader
	Web
	BusyBee
)

// AllDomains returns a slice of all log domains.
func AllDomains() []ID {
	return []ID{
		Common,
		Database,
		Reader,
		Web,
		BusyBee,
	}
} // func AllDomains() []ID
