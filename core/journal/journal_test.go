package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func sampleEntries(base time.Time) []Entry {
	return []Entry{
		{Timestamp: base, ScheduleID: 1, CompanyID: 1, UF: "BAHIA", ScheduleDate: "2024-06-01", TotalVehicles: 6, TotalCapacityKg: 10000},
		{Timestamp: base.Add(time.Hour), ScheduleID: 2, CompanyID: 2, UF: "CEARA", ScheduleDate: "2024-06-01", TotalVehicles: 3, TotalCapacityKg: 4500},
		{Timestamp: base.Add(2 * time.Hour), ScheduleID: 3, CompanyID: 1, UF: "BAHIA", ScheduleDate: "2024-06-02", TotalVehicles: 2, TotalCapacityKg: 5000},
	}
}

func runStoreTests(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for _, e := range sampleEntries(base) {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := store.Query(ctx, Query{})
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}

	byCompany, err := store.Query(ctx, Query{CompanyID: 1})
	if err != nil {
		t.Fatalf("query company: %v", err)
	}
	if len(byCompany) != 2 {
		t.Fatalf("company 1: expected 2 entries, got %d", len(byCompany))
	}
	for _, e := range byCompany {
		if e.CompanyID != 1 {
			t.Errorf("stray company %d in filtered result", e.CompanyID)
		}
	}

	window, err := store.Query(ctx, Query{Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute)})
	if err != nil {
		t.Fatalf("query window: %v", err)
	}
	if len(window) != 1 || window[0].ScheduleID != 2 {
		t.Fatalf("window: expected schedule 2 only, got %+v", window)
	}
}

func TestJSONLStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	store, err := NewJSONLStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	runStoreTests(t, store)
}

func TestJSONLStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	store, err := NewJSONLStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	res, err := store.Query(context.Background(), Query{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(res) != 0 {
		t.Fatalf("expected no entries, got %d", len(res))
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	runStoreTests(t, store)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	e := Entry{Timestamp: time.Now().UTC(), ScheduleID: 7, CompanyID: 1, UF: "BAHIA", ScheduleDate: "2024-06-01", TotalVehicles: 1, TotalCapacityKg: 1500}
	if err := store.Append(ctx, e); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	store, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = store.Close() }()
	res, err := store.Query(ctx, Query{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(res) != 1 || res[0].ScheduleID != 7 {
		t.Fatalf("expected the persisted entry, got %+v", res)
	}
}

func TestQueryMatches(t *testing.T) {
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	e := Entry{Timestamp: base, CompanyID: 2}

	cases := []struct {
		name string
		q    Query
		want bool
	}{
		{"empty query", Query{}, true},
		{"company match", Query{CompanyID: 2}, true},
		{"company mismatch", Query{CompanyID: 1}, false},
		{"inside window", Query{Start: base.Add(-time.Hour), End: base.Add(time.Hour)}, true},
		{"before start", Query{Start: base.Add(time.Minute)}, false},
		{"after end", Query{End: base.Add(-time.Minute)}, false},
	}
	for _, c := range cases {
		if got := c.q.matches(e); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}
