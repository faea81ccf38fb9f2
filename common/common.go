// /home/krylon/go/src/github.com/blicero/feedstore/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 15:11:23 krylon>

// Package common provides constants, variables and functions used
// throughout the application.
package common

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/blicero/feedstore/common/path"
	"github.com/blicero/feedstore/logdomain"
	"github.com/blicero/krylib"
	"github.com/hashicorp/logutils"
)

// Debug indicates whether to emit additional log messages and perform
// additional sanity checks.
// Version is the version number to display.
// AppName is the name of the application.
// TimestampFormat is the format string used to render timestamps.
const (
	Debug           = true
	Version         = "0.1.0"
	AppName         = "FeedStore"
	TimestampFormat = "2006-01-02 15:04:05"
	DatabaseName    = "data.sqlite3"
)

// WorkerCntReader is the default number of workers fetching feeds.
// Port is the default TCP port the web server listens on.
const (
	WorkerCntReader = 8
	Port            = 4211
)

// BuildStamp is the time the binary was built.
var BuildStamp = time.Now()

// LogLevels are the names of the log levels supported by the logger.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// ErrNotADirectory is returned when the base directory exists but is
// something other than a directory.
var ErrNotADirectory = errors.New("base directory is not a directory")

var (
	baseDir     = filepath.Join(os.Getenv("HOME"), "."+strings.ToLower(AppName))
	minLogLevel = logutils.LogLevel("TRACE")
	logLock     sync.Mutex
	logFilter   *logutils.LevelFilter
	logFile     *os.File
)

// Path returns the absolute path of the file system object identified by the
// given ID.
func Path(p path.ID) string {
	switch p {
	case path.Base:
		return baseDir
	case path.Database:
		return filepath.Join(baseDir, DatabaseName)
	case path.Log:
		return filepath.Join(baseDir, strings.ToLower(AppName)+".log")
	case path.Cache:
		return filepath.Join(baseDir, "cache.db")
	case path.Feeds:
		return filepath.Join(baseDir, "feeds.yaml")
	default:
		panic(fmt.Sprintf("Invalid path ID %d", p))
	}
} // func Path(p path.ID) string

// SetBaseDir sets the application's base directory and initializes it.
// This should only be done during initialization.
func SetBaseDir(dir string) error {
	logLock.Lock()
	if logFile != nil {
		logFile.Close() // nolint: errcheck
		logFile = nil
		logFilter = nil
	}
	baseDir = dir
	logLock.Unlock()

	return InitApp()
} // func SetBaseDir(dir string) error

// InitApp makes sure the base directory exists and is usable.
// If the base directory exists, but is not a directory, or if its status
// cannot be checked, an error is returned.
func InitApp() error {
	var (
		err    error
		exists bool
		info   os.FileInfo
	)

	if exists, err = krylib.Fexists(baseDir); err != nil {
		return fmt.Errorf("cannot access base directory %s: %w",
			baseDir,
			err)
	} else if !exists {
		if err = os.MkdirAll(baseDir, 0755); err != nil {
			return fmt.Errorf("cannot create base directory %s: %w",
				baseDir,
				err)
		}
		return nil
	} else if info, err = os.Stat(baseDir); err != nil {
		return fmt.Errorf("cannot access base directory %s: %w",
			baseDir,
			err)
	} else if !info.IsDir() {
		return fmt.Errorf("%s: %w", baseDir, ErrNotADirectory)
	}

	return nil
} // func InitApp() error

// SetMinLogLevel sets the minimum level for log messages to be written.
// Loggers that have already been created are affected as well.
func SetMinLogLevel(level string) error {
	var lvl = logutils.LogLevel(strings.ToUpper(level))

	for _, l := range LogLevels {
		if l == lvl {
			logLock.Lock()
			minLogLevel = lvl
			if logFilter != nil {
				logFilter.SetMinLevel(lvl)
			}
			logLock.Unlock()
			return nil
		}
	}

	return fmt.Errorf("invalid log level %q", level)
} // func SetMinLogLevel(level string) error

// GetLogger returns a Logger for the given log domain.
// All Loggers share one level filter that writes to stdout and the log file.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err     error
		logName = fmt.Sprintf("%s.%-10s ", AppName, dom)
	)

	logLock.Lock()
	defer logLock.Unlock()

	if logFilter == nil {
		if logFile, err = os.OpenFile(
			Path(path.Log),
			os.O_WRONLY|os.O_APPEND|os.O_CREATE,
			0600); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open log file %s: %s\n",
				Path(path.Log),
				err.Error())
			return nil, err
		}

		logFilter = &logutils.LevelFilter{
			Levels:   LogLevels,
			MinLevel: minLogLevel,
			Writer:   io.MultiWriter(os.Stdout, logFile),
		}
	}

	return log.New(logFilter, logName, log.Ldate|log.Ltime|log.Lshortfile), nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)
