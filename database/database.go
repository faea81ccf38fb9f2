// /home/krylon/go/src/github.com/blicero/feedstore/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 18:24:51 krylon>

// Package database provides persistence.
//
// A Database opened for writing holds exactly one connection, so all
// transactions on it are serialized, and it is safe for concurrent use by
// multiple goroutines. Transactions are started with BEGIN IMMEDIATE, which
// extends that guarantee to other processes writing the same file.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sync"
	"time"

	"github.com/blicero/feedstore/common"
	"github.com/blicero/feedstore/database/query"
	"github.com/blicero/feedstore/logdomain"
	"github.com/mattn/go-sqlite3"
)

var (
	openLock sync.Mutex
	idCnt    int64
)

// ErrInvalidValue indicates that one or more parameters passed to a method
// had values that are invalid for that operation.
var ErrInvalidValue = errors.New("Invalid value for parameter")

// ErrReadOnly is returned when a write operation is attempted on a Database
// that was opened read-only.
var ErrReadOnly = errors.New("Database is opened read-only")

// If a query returns an error and the error text is matched by this regex, we
// consider the error as transient and try again after a short delay.
var retryPat = regexp.MustCompile("(?i)database is (?:locked|busy)")

// worthARetry returns true if an error returned from the database
// is matched by the retryPat regex.
func worthARetry(e error) bool {
	return retryPat.MatchString(e.Error())
} // func worthARetry(e error) bool

// isConstraintViolation returns true if the error was caused by a
// UNIQUE or PRIMARY KEY constraint.
func isConstraintViolation(e error) bool {
	var serr sqlite3.Error

	if errors.As(e, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
} // func isConstraintViolation(e error) bool

// retryDelay is the amount of time we wait before we repeat a database
// operation that failed due to a transient error.
// maxRetries is the number of times we try before giving up.
const (
	retryDelay  = 25 * time.Millisecond
	maxRetries  = 64
	busyTimeout = 5000
)

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()

// Database wraps a database connection and associated state.
type Database struct {
	id       int64
	db       *sql.DB
	log      *log.Logger
	path     string
	readOnly bool
	qLock    sync.Mutex
	queries  map[query.ID]*sql.Stmt
	now      func() time.Time
}

// Open opens a Database for writing. If the database specified by the path
// does not exist, yet, it is created. The schema is brought up to date
// every time.
func Open(path string) (*Database, error) {
	var connstring = fmt.Sprintf(
		"%s?_locking=NORMAL&_journal=WAL&_txlock=immediate&_busy_timeout=%d",
		path,
		busyTimeout)

	return open(path, connstring, false)
} // func Open(path string) (*Database, error)

// OpenReadOnly opens an existing Database for reading. The file is treated as
// immutable, so it must not be written to while it is open.
func OpenReadOnly(path string) (*Database, error) {
	var connstring = fmt.Sprintf("file:%s?mode=ro&immutable=1", path)

	return open(path, connstring, true)
} // func OpenReadOnly(path string) (*Database, error)

func open(path, connstring string, readOnly bool) (*Database, error) {
	var (
		err error
		db  = &Database{
			path:     path,
			readOnly: readOnly,
			queries:  make(map[query.ID]*sql.Stmt),
			now:      time.Now,
		}
	)

	openLock.Lock()
	idCnt++
	db.id = idCnt
	openLock.Unlock()

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	} else if common.Debug {
		db.log.Printf("[DEBUG] Open database %s (read-only: %t)\n",
			path,
			readOnly)
	}

	if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Failed to open %s: %s\n",
			path,
			err.Error())
		return nil, err
	} else if err = db.db.Ping(); err != nil {
		db.log.Printf("[ERROR] Failed to connect to %s: %s\n",
			path,
			err.Error())
		db.db.Close() // nolint: errcheck
		return nil, err
	}

	if !readOnly {
		db.db.SetMaxOpenConns(1)

		if err = db.EnsureSchema(); err != nil {
			db.db.Close() // nolint: errcheck
			return nil, err
		}
	}

	if err = db.prepareAll(); err != nil {
		db.Close() // nolint: errcheck
		return nil, err
	}

	return db, nil
} // func open(path, connstring string, readOnly bool) (*Database, error)

// EnsureSchema creates all tables and indices that do not exist, yet.
// It is safe to call on a populated database, any number of times.
func (db *Database) EnsureSchema() error {
	var (
		err error
		tx  *sql.Tx
	)

	if db.readOnly {
		return ErrReadOnly
	} else if common.Debug {
		db.log.Printf("[DEBUG] Ensure schema of %s\n",
			db.path)
	}

	if tx, err = db.begin(); err != nil {
		return err
	}

	for _, q := range initQueries {
		db.log.Printf("[TRACE] Execute init query:\n%s\n",
			q)
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
				return rbErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) EnsureSchema() error

// Close closes the database.
// Closing the last connection to a database in WAL mode checkpoints it.
func (db *Database) Close() error {
	var err error

	db.qLock.Lock()
	defer db.qLock.Unlock()

	for key, stmt := range db.queries {
		if err = stmt.Close(); err != nil {
			db.log.Printf("[CRITICAL] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err = db.db.Close(); err != nil {
		db.log.Printf("[CRITICAL] Cannot close database: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) Close() error

// IsReadOnly returns true if the Database was opened read-only.
func (db *Database) IsReadOnly() bool {
	return db.readOnly
} // func (db *Database) IsReadOnly() bool

// Path returns the path of the database file.
func (db *Database) Path() string {
	return db.path
} // func (db *Database) Path() string

// prepareAll prepares every known query up front. A writable Database only
// has one connection; preparing a statement on the pool while a transaction
// holds that connection would block forever.
func (db *Database) prepareAll() error {
	var err error

	for _, qid := range query.AllQueries() {
		if _, err = db.getQuery(qid); err != nil {
			return err
		}
	}

	return nil
} // func (db *Database) prepareAll() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt  *sql.Stmt
		found bool
		err   error
		tries int
	)

	db.qLock.Lock()
	defer db.qLock.Unlock()

	if stmt, found = db.queries[id]; found {
		return stmt, nil
	} else if _, found = dbQueries[id]; !found {
		return nil, fmt.Errorf("Unknown Query %d",
			id)
	}

	db.log.Printf("[TRACE] Prepare query %s\n", id)

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) && tries < maxRetries {
			tries++
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.queries[id] = stmt
	return stmt, nil
} // func (db *Database) getQuery(query.ID) (*sql.Stmt, error)

// begin starts a write transaction.
func (db *Database) begin() (*sql.Tx, error) {
	var (
		err   error
		tx    *sql.Tx
		tries int
	)

BEGIN_TX:
	if tx, err = db.db.Begin(); err != nil {
		if worthARetry(err) && tries < maxRetries {
			tries++
			waitForRetry()
			goto BEGIN_TX
		}

		db.log.Printf("[ERROR] Failed to start transaction: %s\n",
			err.Error())
		return nil, err
	}

	return tx, nil
} // func (db *Database) begin() (*sql.Tx, error)

// finish commits the transaction if status is true and rolls it back
// otherwise. A failed commit is reported, a failed rollback is only logged.
func (db *Database) finish(tx *sql.Tx, status bool) error {
	var err error

	if status {
		if err = tx.Commit(); err != nil {
			db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
				err.Error())
			return err
		}
	} else if err = tx.Rollback(); err != nil {
		db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
			err.Error())
	}

	return nil
} // func (db *Database) finish(tx *sql.Tx, status bool) error

// count executes a query that yields a single number.
// If tx is not nil, the query is executed within that transaction.
func (db *Database) count(tx *sql.Tx, qid query.ID, args ...any) (int64, error) {
	var (
		err   error
		cnt   int64
		stmt  *sql.Stmt
		tries int
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return 0, err
	} else if tx != nil {
		stmt = tx.Stmt(stmt)
	}

EXEC_QUERY:
	if err = stmt.QueryRow(args...).Scan(&cnt); err != nil {
		if worthARetry(err) && tries < maxRetries {
			tries++
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Query %s failed: %s\n",
			qid,
			err.Error())
		return 0, err
	}

	return cnt, nil
} // func (db *Database) count(tx *sql.Tx, qid query.ID, args ...any) (int64, error)

// exec executes a query that does not return any rows within the given
// transaction.
func (db *Database) exec(tx *sql.Tx, qid query.ID, args ...any) error {
	var (
		err   error
		stmt  *sql.Stmt
		tries int
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(args...); err != nil {
		if worthARetry(err) && tries < maxRetries {
			tries++
			waitForRetry()
			goto EXEC_QUERY
		}

		return err
	}

	return nil
} // func (db *Database) exec(tx *sql.Tx, qid query.ID, args ...any) error

// Compact checkpoints the database, switches it back to a rollback journal
// and rebuilds the file, so it takes as little space as possible.
// It must not be called while other goroutines write to the Database.
// Compacting is optional, it does not change the data.
func (db *Database) Compact() error {
	var (
		err      error
		errs     []error
		mQueries = []string{
			"PRAGMA wal_checkpoint(TRUNCATE)",
			"ANALYZE",
			"PRAGMA journal_mode = DELETE",
			"PRAGMA page_size = 4096",
			"VACUUM",
		}
	)

	if db.readOnly {
		return ErrReadOnly
	}

	db.log.Printf("[INFO] Compact database %s\n", db.path)

	for _, q := range mQueries {
		if _, err = db.db.Exec(q); err != nil {
			db.log.Printf("[ERROR] Failed to execute %s: %s\n",
				q,
				err.Error())
			errs = append(errs, fmt.Errorf("%s: %w", q, err))
		}
	}

	return errors.Join(errs...)
} // func (db *Database) Compact() error
