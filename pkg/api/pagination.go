package api

import (
	"net/http"

	"github.com/edrlab/feed-server/pkg/page"
)

// PaginationKey is used to store pagination parameters in the context.
type PaginationKey string

const RequestKey PaginationKey = "pagination"

// Pagination returns the pagination parameters set by the paginate middleware.
func Pagination(r *http.Request) page.Request {
	if req, ok := r.Context().Value(RequestKey).(page.Request); ok {
		return req
	}
	return page.Request{}
}
