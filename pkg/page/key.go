// Copyright 2026 European Digital Reading Lab. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package page

import "time"

// KeyParser converts the textual form of a cursor key component into the
// typed value bound to the corresponding column of the range predicate.
// A new key type is supported by adding a small variant implementing this
// interface.
type KeyParser[K any] interface {
	ParseKey(value string) (K, error)
}

// StringKey parses a plain string key; it cannot fail.
type StringKey struct{}

func (StringKey) ParseKey(value string) (string, error) {
	return value, nil
}

// TimeKey parses an RFC 3339 timestamp key, with or without fractional seconds.
type TimeKey struct{}

func (TimeKey) ParseKey(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, invalidArgument("failed to parse date time from string")
	}
	return t, nil
}

// FormatTimeKey is the inverse of TimeKey: callers use it to produce the
// textual form of a timestamp key when extracting cursor keys from a row.
func FormatTimeKey(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
