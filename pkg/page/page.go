// Copyright 2026 European Digital Reading Lab. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

// The page package implements cursor based ("keyset") pagination over gorm queries.
//
// A page of results is addressed by an opaque cursor which encodes the
// composite sort key of the last row of the previous page. The engine builds
// a range predicate over a two-column composite key, fetches one row more
// than the requested page size to detect a next page, and returns the page
// together with the cursor of the next one.
//
// Precondition: the combination of the two key columns must be unique per
// row (e.g. (created_at, uuid) backed by an ordered index). The engine does
// not verify this; two rows sharing the same composite key are ambiguous at
// a page boundary.
package page

// SortOrder is the direction of the composite key ordering.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// Request carries the pagination parameters of one paginated call, as
// received from the transport layer.
type Request struct {
	// Cursor is the opaque position returned by a previous call; empty on the first page.
	Cursor string `json:"cursor,omitempty"`
	// Limit is the requested page size; values outside (0,100] fall back to the default.
	Limit int `json:"limit,omitempty"`
	// SortBy is carried for the caller's own use; the engine does not interpret it.
	SortBy string `json:"sort_by,omitempty"`
	// SortOrder defaults to ascending.
	SortOrder SortOrder `json:"sort_order,omitempty"`
}

// Response is one page of results.
type Response[T any] struct {
	Data []T `json:"data"`
	// NextCursor is set iff more rows exist beyond this page.
	NextCursor string `json:"next_cursor,omitempty"`
}

// ParseSortOrder maps a query parameter to a sort order; anything but "desc" is ascending.
func ParseSortOrder(s string) SortOrder {
	if s == string(SortOrderDesc) {
		return SortOrderDesc
	}
	return SortOrderAsc
}
