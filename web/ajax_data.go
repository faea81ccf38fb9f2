// /home/krylon/go/src/github.com/blicero/feedstore/web/ajax_data.go
// -*- mode: go; coding: utf-8; -*-
// Created on 29. 09. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 21:10:02 krylon>

package web

import (
	"encoding/json"
	"time"

	"github.com/blicero/feedstore/model"
)

// Reply is the format used to reply to API requests.
type Reply struct {
	Timestamp time.Time       `json:"timestamp"`
	Status    bool            `json:"status"`
	Message   string          `json:"message,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Timeline is the payload for one page of a category or site timeline.
type Timeline struct {
	Page    int64                 `json:"page"`
	Total   int64                 `json:"total"`
	Entries []model.TimelineEntry `json:"entries"`
}
