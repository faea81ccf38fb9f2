// /home/krylon/go/src/github.com/blicero/feedstore/web/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 28. 09. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 22:04:39 krylon>

// Package web provides a JSON API to browse a feed database.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/blicero/feedstore/busybee"
	"github.com/blicero/feedstore/common"
	"github.com/blicero/feedstore/database"
	"github.com/blicero/feedstore/ident"
	"github.com/blicero/feedstore/logdomain"
	"github.com/blicero/feedstore/model"
	"github.com/gorilla/mux"
	"github.com/jaytaylor/html2text"
)

const warmWorkers = 4

// ErrObjectNotFound indicates that the requested object does not exist.
var ErrObjectNotFound = errors.New("Object was not found in database")

// Server wraps the state required for the web interface
type Server struct {
	Addr   string
	log    *log.Logger
	db     *database.Database
	bee    *busybee.BusyBee
	router *mux.Router
	web    http.Server
}

// Create creates and returns a new Server. If bee is nil, responses are not
// cached.
func Create(addr string, db *database.Database, bee *busybee.BusyBee) (*Server, error) {
	var (
		err error
		srv = &Server{
			Addr: addr,
			db:   db,
			bee:  bee,
		}
	)

	if srv.log, err = common.GetLogger(logdomain.Web); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Error creating Logger: %s\n",
			err.Error())
		return nil, err
	} else if db == nil {
		srv.log.Printf("[CANTHAPPEN] Database is nil!\n")
		return nil, errors.New("Database is nil")
	} else if !db.IsReadOnly() {
		srv.log.Printf("[WARN] Serving database %s, which is opened for writing\n",
			db.Path())
	}

	srv.router = mux.NewRouter()
	srv.web.Addr = addr
	srv.web.ErrorLog = srv.log
	srv.web.Handler = srv.router

	srv.router.HandleFunc("/api/categories", srv.handleCategories).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/category/{name}/{page:(?:\\d+)}", srv.handleCategoryTimeline).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/site/{key}/{page:(?:\\d+)}", srv.handleSiteTimeline).Methods(http.MethodGet)
	srv.router.HandleFunc("/api/entry/{key}", srv.handleEntry).Methods(http.MethodGet)

	return srv, nil
} // func Create(addr string, db *database.Database, bee *busybee.BusyBee) (*Server, error)

// ListenAndServe runs the server's  ListenAndServe method
func (srv *Server) ListenAndServe() {
	srv.log.Printf("[DEBUG] Server start listening on %s.\n", srv.Addr)
	defer srv.log.Println("[DEBUG] Server has quit.")
	srv.web.ListenAndServe() // nolint: errcheck
} // func (srv *Server) ListenAndServe()

// Shutdown stops the server gracefully.
func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.web.Shutdown(ctx)
} // func (srv *Server) Shutdown(ctx context.Context) error

// Warm renders the Category list and the first page of every timeline
// ahead of time. It returns the number of responses that were cached.
func (srv *Server) Warm() int {
	var (
		err   error
		cats  []model.Category
		sites = make(map[string]bool)
		jobs  = make(map[string]busybee.Loader)
	)

	if srv.bee == nil {
		return 0
	} else if cats, err = srv.db.CategoryGetAll(); err != nil {
		srv.log.Printf("[ERROR] Cannot load Categories to warm up cache: %s\n",
			err.Error())
		return 0
	}

	jobs[keyCategories] = srv.loadCategories

	for _, c := range cats {
		var name = c.Name
		jobs[keyCategory(name, 0)] = func() (string, error) {
			return srv.loadCategoryTimeline(name, 0)
		}

		for _, s := range c.Sites {
			if sites[s.Key] {
				continue
			}

			var key = s.Key
			sites[key] = true
			jobs[keySite(key, 0)] = func() (string, error) {
				return srv.loadSiteTimeline(key, 0)
			}
		}
	}

	return srv.bee.Warm(jobs, warmWorkers)
} // func (srv *Server) Warm() int

const keyCategories = "categories"

func keyCategory(name string, page int64) string {
	return fmt.Sprintf("category/%s/%d", name, page)
} // func keyCategory(name string, page int64) string

func keySite(key string, page int64) string {
	return fmt.Sprintf("site/%s/%d", key, page)
} // func keySite(key string, page int64) string

func keyEntry(key string, asText bool) string {
	return fmt.Sprintf("entry/%s/%t", key, asText)
} // func keyEntry(key string, asText bool) string

func (srv *Server) cached(key string, load busybee.Loader) (string, error) {
	if srv.bee == nil {
		return load()
	}

	return srv.bee.Get(key, load)
} // func (srv *Server) cached(key string, load busybee.Loader) (string, error)

func marshal(v any) (string, error) {
	var (
		err error
		buf []byte
	)

	if buf, err = json.Marshal(v); err != nil {
		return "", err
	}

	return string(buf), nil
} // func marshal(v any) (string, error)

func (srv *Server) loadCategories() (string, error) {
	var (
		err  error
		cats []model.Category
	)

	if cats, err = srv.db.CategoryGetAll(); err != nil {
		return "", err
	}

	return marshal(cats)
} // func (srv *Server) loadCategories() (string, error)

func (srv *Server) loadCategoryTimeline(name string, page int64) (string, error) {
	var (
		err error
		tl  = Timeline{Page: page}
	)

	if tl.Entries, err = srv.db.EntryGetByCategory(name, page); err != nil {
		return "", err
	} else if tl.Total, err = srv.db.EntryCountByCategory(name); err != nil {
		return "", err
	}

	return marshal(&tl)
} // func (srv *Server) loadCategoryTimeline(name string, page int64) (string, error)

func (srv *Server) loadSiteTimeline(key string, page int64) (string, error) {
	var (
		err error
		tl  = Timeline{Page: page}
	)

	if tl.Entries, err = srv.db.EntryGetBySite(key, page); err != nil {
		return "", err
	} else if tl.Total, err = srv.db.EntryCountBySite(key); err != nil {
		return "", err
	}

	return marshal(&tl)
} // func (srv *Server) loadSiteTimeline(key string, page int64) (string, error)

func (srv *Server) loadEntry(key string, asText bool) (string, error) {
	var (
		err error
		c   *model.Content
	)

	if c, err = srv.db.EntryGetContent(key); err != nil {
		return "", err
	} else if c == nil {
		return "", ErrObjectNotFound
	} else if asText {
		if c.Content, err = html2text.FromString(c.Content); err != nil {
			srv.log.Printf("[ERROR] Cannot render content of Entry %s as text: %s\n",
				key,
				err.Error())
			return "", err
		}
	}

	return marshal(c)
} // func (srv *Server) loadEntry(key string, asText bool) (string, error)

func statusFor(err error) int {
	switch {
	case errors.Is(err, database.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, ErrObjectNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
} // func statusFor(err error) int

func errJSON(msg string) []byte {
	return []byte(fmt.Sprintf(`{"status":false,"message":%q}`, msg))
} // func errJSON(msg string) []byte

func (srv *Server) sendReply(w http.ResponseWriter, hstatus int, res *Reply) {
	var (
		err  error
		rbuf []byte
	)

	res.Timestamp = time.Now()
	if rbuf, err = json.Marshal(res); err != nil {
		srv.log.Printf("[ERROR] Error serializing response: %s\n",
			err.Error())
		rbuf = errJSON(err.Error())
		hstatus = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.WriteHeader(hstatus)
	if _, err = w.Write(rbuf); err != nil {
		srv.log.Printf("[ERROR] Failed to send result: %s\n",
			err.Error())
	}
} // func (srv *Server) sendReply(w http.ResponseWriter, hstatus int, res *Reply)

func (srv *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	srv.log.Printf("[TRACE] Handle request for %s from %s\n",
		r.URL.EscapedPath(),
		r.RemoteAddr)

	var (
		err     error
		payload string
		res     Reply
		hstatus = http.StatusOK
	)

	if payload, err = srv.cached(keyCategories, srv.loadCategories); err != nil {
		res.Message = fmt.Sprintf("Failed to load Categories: %s",
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = statusFor(err)
	} else {
		res.Payload = json.RawMessage(payload)
		res.Status = true
	}

	srv.sendReply(w, hstatus, &res)
} // func (srv *Server) handleCategories(w http.ResponseWriter, r *http.Request)

func (srv *Server) handleCategoryTimeline(w http.ResponseWriter, r *http.Request) {
	srv.log.Printf("[TRACE] Handle request for %s from %s\n",
		r.URL.EscapedPath(),
		r.RemoteAddr)

	var (
		err     error
		page    int64
		payload string
		res     Reply
		hstatus = http.StatusOK
		vars    = mux.Vars(r)
		name    = vars["name"]
	)

	if page, err = strconv.ParseInt(vars["page"], 10, 64); err != nil {
		res.Message = fmt.Sprintf("Cannot parse page %q: %s",
			vars["page"],
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = http.StatusBadRequest
		goto SEND_RESPONSE
	} else if payload, err = srv.cached(keyCategory(name, page), func() (string, error) {
		return srv.loadCategoryTimeline(name, page)
	}); err != nil {
		res.Message = fmt.Sprintf("Failed to load timeline of Category %s: %s",
			name,
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = statusFor(err)
		goto SEND_RESPONSE
	}

	res.Payload = json.RawMessage(payload)
	res.Status = true

SEND_RESPONSE:
	srv.sendReply(w, hstatus, &res)
} // func (srv *Server) handleCategoryTimeline(w http.ResponseWriter, r *http.Request)

func (srv *Server) handleSiteTimeline(w http.ResponseWriter, r *http.Request) {
	srv.log.Printf("[TRACE] Handle request for %s from %s\n",
		r.URL.EscapedPath(),
		r.RemoteAddr)

	var (
		err     error
		page    int64
		payload string
		res     Reply
		hstatus = http.StatusOK
		vars    = mux.Vars(r)
		key     = vars["key"]
	)

	if !ident.Valid(key) {
		res.Message = fmt.Sprintf("Invalid Site key %q", key)
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = http.StatusBadRequest
		goto SEND_RESPONSE
	} else if page, err = strconv.ParseInt(vars["page"], 10, 64); err != nil {
		res.Message = fmt.Sprintf("Cannot parse page %q: %s",
			vars["page"],
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = http.StatusBadRequest
		goto SEND_RESPONSE
	} else if payload, err = srv.cached(keySite(key, page), func() (string, error) {
		return srv.loadSiteTimeline(key, page)
	}); err != nil {
		res.Message = fmt.Sprintf("Failed to load timeline of Site %s: %s",
			key,
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = statusFor(err)
		goto SEND_RESPONSE
	}

	res.Payload = json.RawMessage(payload)
	res.Status = true

SEND_RESPONSE:
	srv.sendReply(w, hstatus, &res)
} // func (srv *Server) handleSiteTimeline(w http.ResponseWriter, r *http.Request)

func (srv *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	srv.log.Printf("[TRACE] Handle request for %s from %s\n",
		r.URL.EscapedPath(),
		r.RemoteAddr)

	var (
		err     error
		asText  bool
		payload string
		res     Reply
		hstatus = http.StatusOK
		key     = mux.Vars(r)["key"]
		format  = r.URL.Query().Get("format")
	)

	switch format {
	case "", "html":
	case "text":
		asText = true
	default:
		res.Message = fmt.Sprintf("Unknown format %q", format)
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = http.StatusBadRequest
		goto SEND_RESPONSE
	}

	if !ident.Valid(key) {
		res.Message = fmt.Sprintf("Invalid Entry key %q", key)
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = http.StatusBadRequest
		goto SEND_RESPONSE
	} else if payload, err = srv.cached(keyEntry(key, asText), func() (string, error) {
		return srv.loadEntry(key, asText)
	}); err != nil {
		res.Message = fmt.Sprintf("Failed to load Entry %s: %s",
			key,
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = statusFor(err)
		goto SEND_RESPONSE
	}

	res.Payload = json.RawMessage(payload)
	res.Status = true

SEND_RESPONSE:
	srv.sendReply(w, hstatus, &res)
} // func (srv *Server) handleEntry(w http.ResponseWriter, r *http.Request)
