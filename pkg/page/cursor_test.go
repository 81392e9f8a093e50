package page

import (
	"encoding/base64"
	"testing"
)

// TestCursorRoundTrip checks that any pair of key values survives the cursor encoding.
func TestCursorRoundTrip(t *testing.T) {

	pairs := [][2]string{
		{"2024-01-01T00:00:00Z", "42"},
		{"2026-08-29T10:15:30.123456789Z", "b0e9f841-7f43-41a4-9c58-7e7a4e8b2f91"},
		{"a plain title", "another value"},
		{"", ""},
		{"accentué, même", "日本語"},
		{`quotes " and \ slashes`, "null"},
	}

	for _, pair := range pairs {
		cursor, err := EncodeCursor(pair[0], pair[1])
		if err != nil {
			t.Fatalf("Failed to encode cursor for %q: %v", pair, err)
		}
		v1, v2, err := DecodeCursor(cursor)
		if err != nil {
			t.Fatalf("Failed to decode cursor for %q: %v", pair, err)
		}
		if v1 != pair[0] || v2 != pair[1] {
			t.Errorf("Round trip mismatch: got (%q, %q), want (%q, %q)", v1, v2, pair[0], pair[1])
		}
	}
}

// TestDecodeMalformedCursor checks that adversarial cursors degrade to an
// invalid argument error, never a crash or a partial result.
func TestDecodeMalformedCursor(t *testing.T) {

	b64 := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

	cursors := map[string]string{
		"not base64":          "%%%not-base64%%%",
		"wrong alphabet":      "a+b/c=",
		"not json":            b64("not json at all"),
		"json object":         b64(`{"v1":"a","v2":"b"}`),
		"json string":         b64(`"just a string"`),
		"one element":         b64(`["a"]`),
		"three elements":      b64(`["a","b","c"]`),
		"empty array":         b64(`[]`),
		"non string elements": b64(`[1,2]`),
	}

	for name, cursor := range cursors {
		_, _, err := DecodeCursor(cursor)
		if err == nil {
			t.Errorf("Expected an error for a %s cursor", name)
			continue
		}
		if !IsInvalidArgument(err) {
			t.Errorf("Expected an invalid argument error for a %s cursor, got: %v", name, err)
		}
	}
}
