// /home/krylon/go/src/github.com/blicero/feedstore/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 09. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 23:40:12 krylon>

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blicero/feedstore/busybee"
	"github.com/blicero/feedstore/common"
	"github.com/blicero/feedstore/common/path"
	"github.com/blicero/feedstore/database"
	"github.com/blicero/feedstore/reader"
	"github.com/blicero/feedstore/web"
)

const shutdownTimeout = time.Second * 10

func main() {
	fmt.Printf("%s %s built on %s\n",
		common.AppName,
		common.Version,
		common.BuildStamp.Format(common.TimestampFormat))

	var (
		err             error
		serve, warm     bool
		noCompact       bool
		minlog          = "TRACE"
		baseDir         = common.Path(path.Base)
		dbPath          string
		feedPath        string
		workerCntReader int
		addr            = fmt.Sprintf("[::1]:%d", common.Port)
	)

	flag.StringVar(&baseDir, "basedir", baseDir, "Path for application-specific files")
	flag.StringVar(&dbPath, "db", "", "Path of the database file (default: inside the base directory)")
	flag.StringVar(&feedPath, "feeds", "", "Path of the feed list (default: inside the base directory)")
	flag.StringVar(&addr, "addr", addr, "Address for the web server to listen on")
	flag.StringVar(&minlog, "loglevel", minlog, "Minimum level for log messages to be logged")
	flag.IntVar(&workerCntReader, "readercount", 0, "The number of workers for the Reader (overrides the feed list)")
	flag.BoolVar(&serve, "serve", false, "Serve the database read-only instead of fetching feeds")
	flag.BoolVar(&warm, "warm", false, "Precompute the first page of every timeline before serving")
	flag.BoolVar(&noCompact, "nocompact", false, "Do not compact the database after fetching feeds")
	flag.Parse()

	if baseDir != common.Path(path.Base) {
		if err = common.SetBaseDir(baseDir); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Failed to set Base Directory to %s: %s\n",
				baseDir,
				err.Error())
			os.Exit(1)
		}
	} else if err = common.InitApp(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Error initializing application environment: %s\n",
			err.Error())
		os.Exit(2)
	}

	if err = common.SetMinLogLevel(minlog); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Invalid log level %q: %s\n",
			minlog,
			err.Error())
		os.Exit(1)
	}

	if dbPath == "" {
		dbPath = common.Path(path.Database)
	}

	if feedPath == "" {
		feedPath = common.Path(path.Feeds)
	}

	var ctx, stop = signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGQUIT,
		syscall.SIGTERM)
	defer stop()

	if serve {
		err = runServer(ctx, dbPath, addr, warm)
	} else {
		err = runReader(ctx, dbPath, feedPath, workerCntReader, !noCompact)
	}

	if err != nil {
		fmt.Fprintf(
			os.Stderr,
			"%s\n",
			err.Error())
		os.Exit(3)
	}
} // func main()

func runReader(ctx context.Context, dbPath, feedPath string, workers int, compact bool) error {
	var (
		err error
		db  *database.Database
		rdr *reader.Reader
		fl  *reader.FeedList
		rep reader.Report
	)

	if fl, err = reader.LoadFeedList(feedPath); err != nil {
		return fmt.Errorf("Error loading feed list: %w", err)
	} else if workers > 0 {
		fl.Workers = workers
	}

	if db, err = database.Open(dbPath); err != nil {
		return fmt.Errorf("Error opening database %s: %w", dbPath, err)
	}

	defer db.Close() // nolint: errcheck

	if rdr, err = reader.New(db); err != nil {
		return fmt.Errorf("Error creating Reader: %w", err)
	}

	rep = rdr.Run(ctx, fl)

	fmt.Println(rep.String())

	if compact && ctx.Err() == nil {
		if err = db.Compact(); err != nil {
			return fmt.Errorf("Error compacting database: %w", err)
		}
	}

	return nil
} // func runReader(ctx context.Context, dbPath, feedPath string, workers int, compact bool) error

func runServer(ctx context.Context, dbPath, addr string, warm bool) error {
	var (
		err error
		db  *database.Database
		bee *busybee.BusyBee
		srv *web.Server
	)

	if db, err = database.OpenReadOnly(dbPath); err != nil {
		return fmt.Errorf("Error opening database %s: %w", dbPath, err)
	}

	defer db.Close() // nolint: errcheck

	if bee, err = busybee.Create(common.Path(path.Cache)); err != nil {
		return fmt.Errorf("Failed to create BusyBee: %w", err)
	}

	defer bee.Close() // nolint: errcheck

	// The database may have changed since the cache was filled.
	if err = bee.Flush(); err != nil {
		return fmt.Errorf("Failed to flush cache: %w", err)
	} else if srv, err = web.Create(addr, db, bee); err != nil {
		return fmt.Errorf("Error creating Web server: %w", err)
	} else if warm {
		go srv.Warm()
	}

	go srv.ListenAndServe()

	<-ctx.Done()

	fmt.Fprintln(os.Stderr, "Received signal, quitting.")

	var sctx, cancel = context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(sctx)
} // func runServer(ctx context.Context, dbPath, addr string, warm bool) error
