// Copyright 2026 European Digital Reading Lab. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package page

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// DefaultLimit is the page size used when the request carries no usable limit.
	DefaultLimit = 10
	// MaxLimit is the largest page size a caller may request.
	MaxLimit = 100
)

// Paginator runs one cursor-paginated fetch over a gorm query. T is the row
// type, K1 and K2 the typed components of the composite sort key.
//
// The key column names are code constants owned by the calling repository,
// never user input; they are interpolated verbatim into the SQL fragment.
type Paginator[T any, K1, K2 any] struct {
	key1, key2   string
	parser1      KeyParser[K1]
	parser2      KeyParser[K2]
	retrieveKeys func(row *T) (string, string)
	request      Request
}

// NewPaginator creates a paginator for the given pair of key types.
func NewPaginator[T any, K1, K2 any](parser1 KeyParser[K1], parser2 KeyParser[K2]) *Paginator[T, K1, K2] {
	return &Paginator[T, K1, K2]{
		parser1:      parser1,
		parser2:      parser2,
		retrieveKeys: func(*T) (string, string) { return "", "" },
	}
}

// Keys sets the two columns of the composite sort key. Their combination
// must be unique per row (see the package doc).
func (p *Paginator[T, K1, K2]) Keys(key1, key2 string) *Paginator[T, K1, K2] {
	p.key1 = key1
	p.key2 = key2
	return p
}

// RetrieveKeys sets the function mapping a row to the textual form of its
// composite key, used to build the next cursor.
func (p *Paginator[T, K1, K2]) RetrieveKeys(f func(row *T) (string, string)) *Paginator[T, K1, K2] {
	p.retrieveKeys = f
	return p
}

// Request sets the pagination parameters of the call.
func (p *Paginator[T, K1, K2]) Request(request Request) *Paginator[T, K1, K2] {
	p.request = request
	return p
}

// Paginate fetches one page from the given base query, which must already
// carry its business filters but no ordering or limit.
func (p *Paginator[T, K1, K2]) Paginate(query *gorm.DB) (*Response[T], error) {

	// a descending sort means the page starts strictly below the cursor
	smaller := p.request.SortOrder == SortOrderDesc

	limit := DefaultLimit
	if p.request.Limit > 0 && p.request.Limit <= MaxLimit {
		limit = p.request.Limit
	}

	// the range predicate only exists when a cursor was supplied;
	// a first page request scans from the start of the key order
	if p.request.Cursor != "" {
		v1, v2, err := DecodeCursor(p.request.Cursor)
		if err != nil {
			return nil, err
		}
		key1, err := p.parser1.ParseKey(v1)
		if err != nil {
			return nil, err
		}
		key2, err := p.parser2.ParseKey(v2)
		if err != nil {
			return nil, err
		}

		op := ">"
		if smaller {
			op = "<"
		}
		// lexicographic tuple comparison with the second key as tie-break
		query = query.Where(
			fmt.Sprintf("%s %s ? OR (%s = ? AND %s %s ?)", p.key1, op, p.key1, p.key2, op),
			key1, key1, key2,
		)
	}

	direction := "ASC"
	if smaller {
		direction = "DESC"
	}

	// we add 1 to the limit to detect a next page (the extra row is discarded)
	data := []T{}
	err := query.
		Order(fmt.Sprintf("%s %s, %s %s", p.key1, direction, p.key2, direction)).
		Limit(limit + 1).
		Find(&data).Error
	if err != nil {
		log.Errorf("failed to run pagination query: %v", err)
		return nil, internalError(err)
	}

	res := &Response[T]{Data: data}

	// limit+1 rows fetched means there is a next page
	if len(res.Data) == limit+1 {
		res.Data = res.Data[:limit]
		last := &res.Data[len(res.Data)-1]
		v1, v2 := p.retrieveKeys(last)
		cursor, err := EncodeCursor(v1, v2)
		if err != nil {
			log.Errorf("failed to serialize next cursor: %v", err)
			return nil, err
		}
		res.NextCursor = cursor
	}

	return res, nil
}
