package page

import (
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// note is the row type used by the paginator tests; uuid makes both
// composite keys, (created_at, uuid) and (label, uuid), unique per row.
type note struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	UUID      string    `gorm:"uniqueIndex"`
	Label     string    `gorm:"index"`
}

// some global vars shared by all tests
var db *gorm.DB
var notes []note // the full dataset in ascending (created_at, uuid) order

func TestMain(m *testing.M) {

	// create / open an sqlite db in memory
	var err error
	db, err = gorm.Open(sqlite.Open("file:pagetest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("Failed to open the test database")
	}
	if err = db.AutoMigrate(&note{}); err != nil {
		panic("Failed to migrate the test database")
	}

	// generate notes; two consecutive notes share the same timestamp, so
	// every page boundary can exercise the uuid tie-break
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		notes = append(notes, note{
			CreatedAt: base.Add(time.Duration(i/2) * time.Minute),
			UUID:      fmt.Sprintf("%02d-4dc5-47a8-a946-af4f051d0ab1", i),
			Label:     fmt.Sprintf("note %02d", i),
		})
	}

	// store in random order, the key order must come from the query alone
	stored := make([]note, len(notes))
	copy(stored, notes)
	rand.Shuffle(len(stored), func(i, j int) { stored[i], stored[j] = stored[j], stored[i] })
	for _, n := range stored {
		if err := db.Create(&n).Error; err != nil {
			panic("Failed to create a note")
		}
	}

	code := m.Run()
	os.Exit(code)
}

// notePaginator paginates notes on (created_at, uuid), a time/string key pair.
func notePaginator(req Request) *Paginator[note, time.Time, string] {
	return NewPaginator[note, time.Time, string](TimeKey{}, StringKey{}).
		Keys("created_at", "uuid").
		RetrieveKeys(func(n *note) (string, string) {
			return FormatTimeKey(n.CreatedAt), n.UUID
		}).
		Request(req)
}

// labelPaginator paginates notes on (label, uuid), a string/string key pair.
func labelPaginator(req Request) *Paginator[note, string, string] {
	return NewPaginator[note, string, string](StringKey{}, StringKey{}).
		Keys("label", "uuid").
		RetrieveKeys(func(n *note) (string, string) {
			return n.Label, n.UUID
		}).
		Request(req)
}

func sameNotes(got []note, want []note) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i].UUID != want[i].UUID {
			return false
		}
	}
	return true
}

// walkNotes follows next cursors from the first page to the last one and
// returns the concatenation of all pages.
func walkNotes(t *testing.T, limit int, order SortOrder) []note {
	var all []note
	cursor := ""
	for i := 0; ; i++ {
		if i > len(notes) {
			t.Fatal("Pagination did not terminate")
		}
		res, err := notePaginator(Request{Cursor: cursor, Limit: limit, SortOrder: order}).
			Paginate(db.Model(&note{}))
		if err != nil {
			t.Fatalf("Failed to paginate: %v", err)
		}
		if len(res.Data) > limit {
			t.Fatalf("Page too large: got %d notes, limit %d", len(res.Data), limit)
		}
		all = append(all, res.Data...)
		if res.NextCursor == "" {
			break
		}
		cursor = res.NextCursor
	}
	return all
}

func TestDefaultLimit(t *testing.T) {

	// no cursor, no limit: first page of the default size
	res, err := notePaginator(Request{}).Paginate(db.Model(&note{}))
	if err != nil {
		t.Fatalf("Failed to paginate: %v", err)
	}
	if len(res.Data) != DefaultLimit {
		t.Fatalf("Incorrect default page size: %d", len(res.Data))
	}
	if res.NextCursor == "" {
		t.Error("Expected a next cursor on a non final page")
	}
	if !sameNotes(res.Data, notes[:DefaultLimit]) {
		t.Error("First page differs from the start of the ordered dataset")
	}
}

func TestLimitClamp(t *testing.T) {

	// out of range limits are not rejected, they fall back to the default
	for _, limit := range []int{0, -5, MaxLimit + 1, 500} {
		res, err := notePaginator(Request{Limit: limit}).Paginate(db.Model(&note{}))
		if err != nil {
			t.Fatalf("Failed to paginate with limit %d: %v", limit, err)
		}
		if len(res.Data) != DefaultLimit {
			t.Errorf("Limit %d: got %d notes, want the default %d", limit, len(res.Data), DefaultLimit)
		}
	}

	// the maximum limit is usable as is
	res, err := notePaginator(Request{Limit: MaxLimit}).Paginate(db.Model(&note{}))
	if err != nil {
		t.Fatalf("Failed to paginate with the max limit: %v", err)
	}
	if len(res.Data) != len(notes) {
		t.Errorf("Max limit: got %d notes, want the full dataset", len(res.Data))
	}
	if res.NextCursor != "" {
		t.Error("Expected no next cursor on the final page")
	}
}

func TestWalkAscending(t *testing.T) {

	// pages must partition the dataset: no gap, no duplicate
	all := walkNotes(t, 7, SortOrderAsc)
	if !sameNotes(all, notes) {
		t.Error("Ascending walk differs from the ordered dataset")
	}
}

func TestWalkDescending(t *testing.T) {

	reversed := make([]note, len(notes))
	for i, n := range notes {
		reversed[len(notes)-1-i] = n
	}

	all := walkNotes(t, 6, SortOrderDesc)
	if !sameNotes(all, reversed) {
		t.Error("Descending walk differs from the reverse ordered dataset")
	}
}

func TestTieBreakAtPageBoundary(t *testing.T) {

	// limit 3 puts the boundary of the first page inside a timestamp tie:
	// notes[2] and notes[3] share the same created_at
	res, err := notePaginator(Request{Limit: 3}).Paginate(db.Model(&note{}))
	if err != nil {
		t.Fatalf("Failed to paginate: %v", err)
	}
	if !sameNotes(res.Data, notes[:3]) {
		t.Fatal("Unexpected first page")
	}

	next, err := notePaginator(Request{Cursor: res.NextCursor, Limit: 3}).Paginate(db.Model(&note{}))
	if err != nil {
		t.Fatalf("Failed to paginate with a cursor: %v", err)
	}
	if !sameNotes(next.Data, notes[3:6]) {
		t.Fatal("Unexpected second page")
	}
	if !next.Data[0].CreatedAt.Equal(res.Data[2].CreatedAt) {
		t.Error("Expected the second page to resume inside the timestamp tie")
	}
}

func TestExactLimitIsLastPage(t *testing.T) {

	// a result set of exactly limit rows is a single final page
	res, err := notePaginator(Request{Limit: 10}).
		Paginate(db.Model(&note{}).Where("label < ?", "note 10"))
	if err != nil {
		t.Fatalf("Failed to paginate: %v", err)
	}
	if len(res.Data) != 10 {
		t.Fatalf("Incorrect page size: %d", len(res.Data))
	}
	if res.NextCursor != "" {
		t.Error("Expected no next cursor when the result set is exactly one page")
	}
}

func TestOneRowBeyondLimit(t *testing.T) {

	// a result set of limit+1 rows yields a full page plus a single row page
	filter := func() *gorm.DB { return db.Model(&note{}).Where("label < ?", "note 11") }

	res, err := notePaginator(Request{Limit: 10}).Paginate(filter())
	if err != nil {
		t.Fatalf("Failed to paginate: %v", err)
	}
	if len(res.Data) != 10 || res.NextCursor == "" {
		t.Fatalf("Expected a full first page with a next cursor, got %d notes", len(res.Data))
	}

	next, err := notePaginator(Request{Cursor: res.NextCursor, Limit: 10}).Paginate(filter())
	if err != nil {
		t.Fatalf("Failed to paginate with a cursor: %v", err)
	}
	if len(next.Data) != 1 {
		t.Fatalf("Expected a single note on the last page, got %d", len(next.Data))
	}
	if next.NextCursor != "" {
		t.Error("Expected no next cursor on the last page")
	}
}

func TestCursorPastEnd(t *testing.T) {

	last := notes[len(notes)-1]
	cursor, err := EncodeCursor(FormatTimeKey(last.CreatedAt), last.UUID)
	if err != nil {
		t.Fatalf("Failed to encode a cursor: %v", err)
	}

	res, err := notePaginator(Request{Cursor: cursor}).Paginate(db.Model(&note{}))
	if err != nil {
		t.Fatalf("Failed to paginate: %v", err)
	}
	if len(res.Data) != 0 {
		t.Errorf("Expected an empty page beyond the last row, got %d notes", len(res.Data))
	}
	if res.NextCursor != "" {
		t.Error("Expected no next cursor on an empty page")
	}
}

func TestInvalidCursor(t *testing.T) {

	_, err := notePaginator(Request{Cursor: "obviously-not-a-cursor"}).Paginate(db.Model(&note{}))
	if err == nil {
		t.Fatal("Expected an error for a malformed cursor")
	}
	if !IsInvalidArgument(err) {
		t.Errorf("Expected an invalid argument error, got: %v", err)
	}
}

func TestInvalidKeyInCursor(t *testing.T) {

	// a well formed cursor carrying an unparsable timestamp
	cursor, err := EncodeCursor("not a timestamp", notes[0].UUID)
	if err != nil {
		t.Fatalf("Failed to encode a cursor: %v", err)
	}

	_, err = notePaginator(Request{Cursor: cursor}).Paginate(db.Model(&note{}))
	if err == nil {
		t.Fatal("Expected an error for an unparsable key value")
	}
	if !IsInvalidArgument(err) {
		t.Errorf("Expected an invalid argument error, got: %v", err)
	}
}

func TestStringKeyPair(t *testing.T) {

	// same dataset, paginated on the (label, uuid) string pair
	var all []note
	cursor := ""
	for i := 0; ; i++ {
		if i > len(notes) {
			t.Fatal("Pagination did not terminate")
		}
		res, err := labelPaginator(Request{Cursor: cursor, Limit: 8}).Paginate(db.Model(&note{}))
		if err != nil {
			t.Fatalf("Failed to paginate on string keys: %v", err)
		}
		all = append(all, res.Data...)
		if res.NextCursor == "" {
			break
		}
		cursor = res.NextCursor
	}
	// labels sort in the same order as timestamps in this dataset
	if !sameNotes(all, notes) {
		t.Error("String key walk differs from the ordered dataset")
	}
}

func TestStorageFailure(t *testing.T) {

	// a query against a missing table must surface as an opaque internal error
	_, err := notePaginator(Request{}).Paginate(db.Table("missing_table"))
	if err == nil {
		t.Fatal("Expected an error for a failing query")
	}
	if !IsInternal(err) {
		t.Errorf("Expected an internal error, got: %v", err)
	}
	if err.Error() != "internal error" {
		t.Errorf("Internal error must stay opaque, got: %v", err)
	}
}
