// Copyright 2026 European Digital Reading Lab. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/edrlab/feed-server/pkg/page"
	"github.com/edrlab/feed-server/pkg/stor"
)

// ListActivities returns one page of the activity feed, ordered by creation time.
func (a *APICtrl) ListActivities(w http.ResponseWriter, r *http.Request) {
	log.Debug("List Activities")

	activities, err := a.Store.Activity().List(Pagination(r))
	if err != nil {
		render.Render(w, r, ErrPagination(err))
		return
	}
	if err := render.Render(w, r, NewActivityPageResponse(activities)); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// SearchActivities returns one page of activities corresponding to a specific criteria.
func (a *APICtrl) SearchActivities(w http.ResponseWriter, r *http.Request) {
	var activities *page.Response[stor.Activity]
	var err error

	// by actor
	if actor := r.URL.Query().Get("actor"); actor != "" {
		// URL decode the actor (can contain special chars like @ in emails)
		if decodedActor, err := url.QueryUnescape(actor); err == nil {
			actor = decodedActor
		}
		activities, err = a.Store.Activity().FindByActor(actor, Pagination(r))
	} else {
		render.Render(w, r, ErrNotFound)
		return
	}
	if err != nil {
		render.Render(w, r, ErrPagination(err))
		return
	}
	if err := render.Render(w, r, NewActivityPageResponse(activities)); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// ListArticleActivities returns one page of the feed of a specific article.
func (a *APICtrl) ListArticleActivities(w http.ResponseWriter, r *http.Request) {

	articleID := chi.URLParam(r, "articleID")
	if articleID == "" {
		render.Render(w, r, ErrInvalidRequest(errors.New("missing required article identifier")))
		return
	}

	activities, err := a.Store.Activity().FindByArticle(articleID, Pagination(r))
	if err != nil {
		render.Render(w, r, ErrPagination(err))
		return
	}
	if err := render.Render(w, r, NewActivityPageResponse(activities)); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// CreateActivity appends a new activity to the feed.
func (a *APICtrl) CreateActivity(w http.ResponseWriter, r *http.Request) {

	// get the payload
	data := &ActivityRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	activity := data.Activity

	// the related article must exist
	if _, err := a.Store.Article().Get(activity.ArticleID); err != nil {
		render.Render(w, r, ErrInvalidRequest(errors.New("unknown article identifier")))
		return
	}

	// db create
	err := a.Store.Activity().Create(activity)
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, NewActivityResponse(activity)); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// GetActivity returns a specific activity
func (a *APICtrl) GetActivity(w http.ResponseWriter, r *http.Request) {

	var activity *stor.Activity
	var err error

	if activityID := chi.URLParam(r, "activityID"); activityID != "" {
		activity, err = a.Store.Activity().Get(activityID)
	} else {
		render.Render(w, r, ErrInvalidRequest(errors.New("missing required activity identifier")))
		return
	}
	if err != nil {
		render.Render(w, r, ErrNotFound)
		return
	}
	if err := render.Render(w, r, NewActivityResponse(activity)); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// --
// Request and Response payloads for the REST api.
// --

// ActivityRequest is the request activity payload.
type ActivityRequest struct {
	*stor.Activity
}

// ActivityResponse is the response activity payload.
type ActivityResponse struct {
	*stor.Activity
}

// ActivityPageResponse is one page of the feed plus the cursor of the next page.
type ActivityPageResponse struct {
	*page.Response[stor.Activity]
}

// NewActivityPageResponse creates a rendered page of activities.
func NewActivityPageResponse(activities *page.Response[stor.Activity]) *ActivityPageResponse {
	return &ActivityPageResponse{Response: activities}
}

// NewActivityResponse creates a rendered activity.
func NewActivityResponse(activity *stor.Activity) *ActivityResponse {
	return &ActivityResponse{Activity: activity}
}

// Bind post-processes requests after unmarshalling.
func (a *ActivityRequest) Bind(r *http.Request) error {
	// an activity created without an identifier gets one
	if a.Activity.UUID == "" {
		a.Activity.UUID = uuid.New().String()
	}
	return a.Activity.Validate()
}

// Render processes responses before marshalling.
func (a *ActivityResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// Render processes responses before marshalling.
func (p *ActivityPageResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
