// Copyright 2026 European Digital Reading Lab. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/edrlab/feed-server/pkg/api"
	"github.com/edrlab/feed-server/pkg/page"
)

func (s *Server) setRoutes() *chi.Mux {

	// Set api controller dependencies
	a := api.NewAPICtrl(s.Config, s.Store)

	// Define the router
	r := chi.NewRouter()

	// Recovery middleware
	r.Use(middleware.Recoverer)

	// Heartbeat (excluded from logs)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("The Feed Server is running!"))
	})

	// Group for all other routes
	r.Group(func(r chi.Router) {
		// Logger middleware
		r.Use(middleware.Logger)

		r.NotFound(notFoundProblemDetail)

		// CORS Configuration
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:8090", "http://localhost:8091"}, // URLs of the React frontend
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300, // Maximum value not ignored by any of major browsers
		}))

		// Private Routes
		// Require Authentication
		credentials := make(map[string]string)
		credentials[s.Config.Access.Username] = s.Config.Access.Password

		r.Group(func(r chi.Router) {
			r.Use(middleware.BasicAuth("restricted", credentials))
			r.Use(render.SetContentType(render.ContentTypeJSON))

			// Articles, CRUD
			r.Route("/articles", func(r chi.Router) {
				r.With(paginate).Get("/", a.ListArticles)         // GET /articles/
				r.With(paginate).Get("/search", a.SearchArticles) // GET /articles/search{?author}
				r.Post("/", a.CreateArticle)                      // POST /articles

				r.Route("/{articleID}", func(r chi.Router) {
					r.Get("/", a.GetArticle)                                      // GET /articles/123
					r.Put("/", a.UpdateArticle)                                   // PUT /articles/123
					r.Delete("/", a.DeleteArticle)                                // DELETE /articles/123
					r.With(paginate).Get("/activities", a.ListArticleActivities) // GET /articles/123/activities
				})
			})

			// Activity feed
			r.Route("/activities", func(r chi.Router) {
				r.With(paginate).Get("/", a.ListActivities)         // GET /activities/
				r.With(paginate).Get("/search", a.SearchActivities) // GET /activities/search{?actor}
				r.Post("/", a.CreateActivity)                       // POST /activities

				r.Route("/{activityID}", func(r chi.Router) {
					r.Get("/", a.GetActivity) // GET /activities/123
				})
			})
		})

		// Admin routes
		r.Post("/admin/login", Login(s.Config)) // POST /admin/login
		// Require JWT Authentication
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(s.Config))
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Get("/admin/stats", a.GetStats) // GET /admin/stats
		})

	})

	return r
}

// paginate middleware; stores the pagination parameters of the request in the context
func paginate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p page.Request

		// read query parameters
		q := r.URL.Query()
		p.Cursor = q.Get("cursor")
		if l := q.Get("limit"); l != "" {
			// a non numeric or out of range limit is not an error, the engine falls back to its default
			if val, err := strconv.Atoi(l); err == nil {
				p.Limit = val
			}
		}
		p.SortBy = q.Get("sort_by")
		p.SortOrder = page.ParseSortOrder(q.Get("sort_order"))

		ctx := context.WithValue(r.Context(), api.RequestKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// notFoundProblemDetail formats not found errors as problem details, for the sake of consistency.
func notFoundProblemDetail(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{"type": "about:blank", "title": "Endpoint not found."}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)

	json.NewEncoder(w).Encode(response)
}
