package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/quantpanel/panel/internal/store"
	"github.com/quantpanel/panel/internal/wide"
)

// testStore opens a store in a temp dir; cleanup closes it.
func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "panel.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testTable(t *testing.T) *wide.Table {
	t.Helper()
	index := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	tbl, err := wide.New("date", index, []wide.Column{
		{Name: "AAPL", Values: []float64{185.5, wide.Missing(), 187.2}},
		{Name: "MSFT", Values: []float64{0, 401.1, 399.9}},
	})
	if err != nil {
		t.Fatalf("wide.New: %v", err)
	}
	return tbl
}

func TestPanelRoundTrip(t *testing.T) {
	s := testStore(t)
	want := testTable(t)

	if err := s.PutPanel("prices", want); err != nil {
		t.Fatalf("PutPanel: %v", err)
	}
	got, found, err := s.GetPanel("prices")
	if err != nil {
		t.Fatalf("GetPanel: %v", err)
	}
	if !found {
		t.Fatal("panel not found after put")
	}
	if !got.Equal(want) {
		t.Error("round-tripped panel differs; missing markers must survive storage")
	}
}

func TestGetPanelNotFound(t *testing.T) {
	s := testStore(t)
	_, found, err := s.GetPanel("nope")
	if err != nil {
		t.Fatalf("GetPanel: %v", err)
	}
	if found {
		t.Error("expected found=false for unknown panel")
	}
}

func TestPutPanelOverwrites(t *testing.T) {
	s := testStore(t)
	if err := s.PutPanel("p", testTable(t)); err != nil {
		t.Fatalf("PutPanel: %v", err)
	}

	index := []time.Time{time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	small, err := wide.New("date", index, []wide.Column{{Name: "X", Values: []float64{1}}})
	if err != nil {
		t.Fatalf("wide.New: %v", err)
	}
	if err := s.PutPanel("p", small); err != nil {
		t.Fatalf("PutPanel overwrite: %v", err)
	}

	got, found, err := s.GetPanel("p")
	if err != nil || !found {
		t.Fatalf("GetPanel: found=%v err=%v", found, err)
	}
	if got.Len() != 1 {
		t.Errorf("expected overwritten panel with 1 row, got %d", got.Len())
	}
}

func TestListPanels(t *testing.T) {
	s := testStore(t)
	if err := s.PutPanel("b", testTable(t)); err != nil {
		t.Fatal(err)
	}
	if err := s.PutPanel("a", testTable(t)); err != nil {
		t.Fatal(err)
	}

	infos, err := s.ListPanels()
	if err != nil {
		t.Fatalf("ListPanels: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 panels, got %d", len(infos))
	}
	// bbolt iterates keys in byte order
	if infos[0].Name != "a" || infos[1].Name != "b" {
		t.Errorf("expected key order [a b], got [%s %s]", infos[0].Name, infos[1].Name)
	}
	if infos[0].Rows != 3 || infos[0].Columns != 2 {
		t.Errorf("info shape: rows=%d columns=%d", infos[0].Rows, infos[0].Columns)
	}
	if infos[0].Start != "2024-01-01" || infos[0].End != "2024-01-03" {
		t.Errorf("info range: %s..%s", infos[0].Start, infos[0].End)
	}
	if infos[0].SavedAt.IsZero() {
		t.Error("SavedAt not stamped")
	}
}

func TestDeletePanel(t *testing.T) {
	s := testStore(t)
	if err := s.PutPanel("p", testTable(t)); err != nil {
		t.Fatal(err)
	}
	if err := s.DeletePanel("p"); err != nil {
		t.Fatalf("DeletePanel: %v", err)
	}
	_, found, err := s.GetPanel("p")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("panel still present after delete")
	}
	// Deleting a missing key is not an error.
	if err := s.DeletePanel("p"); err != nil {
		t.Errorf("repeat delete: %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := testStore(t)
	snap := store.Snapshot{
		ID:          "abc123",
		Name:        "daily-momentum",
		CommandLine: "factor momentum prices.csv --window 5",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := s.PutSnapshot(snap); err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}

	got, found, err := s.GetSnapshot("abc123")
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if !found {
		t.Fatal("snapshot not found after put")
	}
	if got != snap {
		t.Errorf("snapshot differs:\n got  %+v\n want %+v", got, snap)
	}

	_, found, err = s.GetSnapshot("missing")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("expected found=false for unknown snapshot")
	}
}

func TestListAndDeleteSnapshots(t *testing.T) {
	s := testStore(t)
	for _, id := range []string{"one", "two"} {
		if err := s.PutSnapshot(store.Snapshot{ID: id, Name: id}); err != nil {
			t.Fatal(err)
		}
	}
	snaps, err := s.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if err := s.DeleteSnapshot("one"); err != nil {
		t.Fatalf("DeleteSnapshot: %v", err)
	}
	snaps, err = s.ListSnapshots()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 || snaps[0].ID != "two" {
		t.Errorf("expected only snapshot two to remain, got %+v", snaps)
	}
}

func TestStatsAndClear(t *testing.T) {
	s := testStore(t)
	if err := s.PutPanel("p", testTable(t)); err != nil {
		t.Fatal(err)
	}
	if err := s.PutSnapshot(store.Snapshot{ID: "x"}); err != nil {
		t.Fatal(err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	counts := map[string]int{}
	for _, st := range stats {
		counts[st.Name] = st.Count
		if st.Count > 0 && st.Bytes == 0 {
			t.Errorf("bucket %s: count %d but zero bytes", st.Name, st.Count)
		}
	}
	if counts["panels"] != 1 || counts["snapshots"] != 1 {
		t.Errorf("counts: %v", counts)
	}

	if err := s.ClearBucket("panels"); err != nil {
		t.Fatalf("ClearBucket: %v", err)
	}
	_, found, _ := s.GetPanel("p")
	if found {
		t.Error("panel survived ClearBucket")
	}
	if _, found, _ := s.GetSnapshot("x"); !found {
		t.Error("snapshot should survive clearing the panels bucket")
	}

	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if _, found, _ := s.GetSnapshot("x"); found {
		t.Error("snapshot survived ClearAll")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.db")
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	if err := s.PutPanel("p", testTable(t)); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	_, found, err := s2.GetPanel("p")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Error("panel lost across reopen")
	}
}
