// Copyright 2026 European Digital Reading Lab. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package page

import (
	"encoding/base64"
	"encoding/json"
)

// A cursor is the URL-safe base64 encoding of a JSON array of exactly two
// strings, the textual composite key of the last row of the previous page.
// It is an opaque position marker, not a security boundary: cursors are
// neither signed nor encrypted.

// EncodeCursor serializes a composite key pair as an opaque cursor string.
func EncodeCursor(v1, v2 string) (string, error) {
	payload, err := json.Marshal([]string{v1, v2})
	if err != nil {
		return "", internalError(err)
	}
	return base64.URLEncoding.EncodeToString(payload), nil
}

// DecodeCursor reverses EncodeCursor. Any cursor not produced by this
// package fails with an InvalidArgument error, never a panic.
func DecodeCursor(cursor string) (string, string, error) {
	payload, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return "", "", invalidArgument("invalid cursor")
	}
	var values []string
	if err := json.Unmarshal(payload, &values); err != nil {
		return "", "", invalidArgument("invalid cursor")
	}
	if len(values) != 2 {
		return "", "", invalidArgument("invalid cursor")
	}
	return values[0], values[1], nil
}
