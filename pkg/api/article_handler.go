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

// ListArticles returns one page of articles, ordered by title.
func (a *APICtrl) ListArticles(w http.ResponseWriter, r *http.Request) {
	log.Debug("List Articles")

	articles, err := a.Store.Article().List(Pagination(r))
	if err != nil {
		render.Render(w, r, ErrPagination(err))
		return
	}
	if err := render.Render(w, r, NewArticlePageResponse(articles)); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// SearchArticles returns one page of articles corresponding to a specific criteria.
func (a *APICtrl) SearchArticles(w http.ResponseWriter, r *http.Request) {
	var articles *page.Response[stor.Article]
	var err error

	// by author
	if author := r.URL.Query().Get("author"); author != "" {
		if decodedAuthor, err := url.QueryUnescape(author); err == nil {
			author = decodedAuthor
		}
		articles, err = a.Store.Article().FindByAuthor(author, Pagination(r))
	} else {
		render.Render(w, r, ErrNotFound)
		return
	}
	if err != nil {
		render.Render(w, r, ErrPagination(err))
		return
	}
	if err := render.Render(w, r, NewArticlePageResponse(articles)); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// CreateArticle adds a new Article to the database.
func (a *APICtrl) CreateArticle(w http.ResponseWriter, r *http.Request) {

	// get the payload
	data := &ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	article := data.Article

	// db create
	err := a.Store.Article().Create(article)
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, NewArticleResponse(article)); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// GetArticle returns a specific article
func (a *APICtrl) GetArticle(w http.ResponseWriter, r *http.Request) {

	var article *stor.Article
	var err error

	if articleID := chi.URLParam(r, "articleID"); articleID != "" {
		article, err = a.Store.Article().Get(articleID)
	} else {
		render.Render(w, r, ErrInvalidRequest(errors.New("missing required article identifier")))
		return
	}
	if err != nil {
		render.Render(w, r, ErrNotFound)
		return
	}
	if err := render.Render(w, r, NewArticleResponse(article)); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// UpdateArticle updates an existing article
func (a *APICtrl) UpdateArticle(w http.ResponseWriter, r *http.Request) {

	// get the existing article
	articleID := chi.URLParam(r, "articleID")
	if articleID == "" {
		render.Render(w, r, ErrInvalidRequest(errors.New("missing required article identifier")))
		return
	}
	article, err := a.Store.Article().Get(articleID)
	if err != nil {
		render.Render(w, r, ErrNotFound)
		return
	}

	// get the payload
	data := &ArticleRequest{Article: article}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	// db update
	err = a.Store.Article().Update(article)
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	if err := render.Render(w, r, NewArticleResponse(article)); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// DeleteArticle removes an article from the database.
func (a *APICtrl) DeleteArticle(w http.ResponseWriter, r *http.Request) {

	articleID := chi.URLParam(r, "articleID")
	if articleID == "" {
		render.Render(w, r, ErrInvalidRequest(errors.New("missing required article identifier")))
		return
	}
	article, err := a.Store.Article().Get(articleID)
	if err != nil {
		render.Render(w, r, ErrNotFound)
		return
	}

	// db delete
	err = a.Store.Article().Delete(article)
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	if err := render.Render(w, r, NewArticleResponse(article)); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
}

// --
// Request and Response payloads for the REST api.
// --

// ArticleRequest is the request article payload.
type ArticleRequest struct {
	*stor.Article
}

// ArticleResponse is the response article payload.
type ArticleResponse struct {
	*stor.Article
}

// ArticlePageResponse is one page of articles plus the cursor of the next page.
type ArticlePageResponse struct {
	*page.Response[stor.Article]
}

// NewArticlePageResponse creates a rendered page of articles.
func NewArticlePageResponse(articles *page.Response[stor.Article]) *ArticlePageResponse {
	return &ArticlePageResponse{Response: articles}
}

// NewArticleResponse creates a rendered article.
func NewArticleResponse(article *stor.Article) *ArticleResponse {
	return &ArticleResponse{Article: article}
}

// Bind post-processes requests after unmarshalling.
func (a *ArticleRequest) Bind(r *http.Request) error {
	// an article created without an identifier gets one
	if a.Article.UUID == "" {
		a.Article.UUID = uuid.New().String()
	}
	return a.Article.Validate()
}

// Render processes responses before marshalling.
func (a *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// Render processes responses before marshalling.
func (p *ArticlePageResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
