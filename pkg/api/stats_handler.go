// Copyright 2026 European Digital Reading Lab. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package api

import (
	"net/http"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"
)

// GetStats provides a summary of key metrics about the system.
func (a *APICtrl) GetStats(w http.ResponseWriter, r *http.Request) {

	articles, err := a.Store.Article().Count()
	if err != nil {
		log.Errorf("Get Stats: failed to count articles: %v", err)
		render.Render(w, r, ErrServer(err))
		return
	}
	activities, err := a.Store.Activity().Count()
	if err != nil {
		log.Errorf("Get Stats: failed to count activities: %v", err)
		render.Render(w, r, ErrServer(err))
		return
	}

	if err := render.Render(w, r, &StatsResponse{Articles: articles, Activities: activities}); err != nil {
		render.Render(w, r, ErrRender(err))
	}
}

// --
// Request and Response payloads for the REST api.
// --

// StatsResponse is the response payload for system stats.
type StatsResponse struct {
	Articles   int64 `json:"articles"`
	Activities int64 `json:"activities"`
}

// Render processes responses before marshalling.
func (s *StatsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
