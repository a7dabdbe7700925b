// Package store provides a thin bbolt wrapper for panel's local data store.
//
// Design philosophy: the store is an intentional data accumulator, not a
// transparent cache. Panels are written explicitly via `store put` and read
// back by name. No TTL, no auto-invalidation — you own your data.
//
// Buckets:
//
//	panels    — named wide tables, serialised as JSON with null for missing
//	snapshots — saved command lines for reproducible workflows
//	_meta     — internal: schema version, created_at
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/quantpanel/panel/internal/wide"
)

// Current schema version. Bump when bucket layout or key format changes.
const schemaVersion = 1

// Bucket name constants.
var (
	bucketPanels    = []byte("panels")
	bucketSnapshots = []byte("snapshots")
	bucketInternal  = []byte("_meta")
)

// AllBuckets lists every user-facing bucket for stats and clear operations.
var AllBuckets = []string{"panels", "snapshots"}

// Store wraps a bbolt database.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the bbolt database at path.
// Parent directories are created automatically.
// Runs schema migrations on every open.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening db %s: %w", path, err)
	}
	slog.Debug("store opened", "path", path)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the filesystem path of the open database.
func (s *Store) Path() string {
	return s.db.Path()
}

// migrate ensures all buckets exist and schema is current.
func (s *Store) migrate() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketPanels, bucketSnapshots, bucketInternal} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}

		meta := tx.Bucket(bucketInternal)
		if meta.Get([]byte("schema_version")) == nil {
			if err := meta.Put([]byte("schema_version"), []byte(fmt.Sprintf("%d", schemaVersion))); err != nil {
				return err
			}
			if err := meta.Put([]byte("created_at"), []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
				return err
			}
		}
		return nil
	})
}

// ─── Panels ───────────────────────────────────────────────────────────────────

// storedColumn is the JSON-safe on-disk representation of one value column.
// Values are *float64 so that missing markers are stored as JSON null rather
// than NaN, which encoding/json cannot handle.
type storedColumn struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"` // null = missing
}

// storedPanel is the on-disk envelope for a named wide table.
type storedPanel struct {
	Name       string         `json:"name"`
	TimeColumn string         `json:"time_column"`
	Index      []string       `json:"index"` // YYYY-MM-DD
	Columns    []storedColumn `json:"columns"`
	SavedAt    time.Time      `json:"saved_at"`
}

// tableToStored converts a wide.Table to its on-disk form (missing → null).
func tableToStored(name string, t *wide.Table) storedPanel {
	index := make([]string, 0, t.Len())
	for _, d := range t.Index() {
		index = append(index, d.Format("2006-01-02"))
	}
	var cols []storedColumn
	for _, cn := range t.Columns() {
		vals, _ := t.Values(cn)
		sc := storedColumn{Name: cn, Values: make([]*float64, len(vals))}
		for i, v := range vals {
			if !wide.IsMissing(v) {
				v := v
				sc.Values[i] = &v
			}
		}
		cols = append(cols, sc)
	}
	return storedPanel{
		Name:       name,
		TimeColumn: t.TimeColumn(),
		Index:      index,
		Columns:    cols,
	}
}

// storedToTable converts the on-disk form back to a wide.Table (null → missing).
func storedToTable(p storedPanel) (*wide.Table, error) {
	index := make([]time.Time, len(p.Index))
	for i, s := range p.Index {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("stored panel %s: bad date %q: %w", p.Name, s, err)
		}
		index[i] = d
	}
	cols := make([]wide.Column, 0, len(p.Columns))
	for _, sc := range p.Columns {
		c := wide.Column{Name: sc.Name, Values: make([]float64, len(sc.Values))}
		for i, v := range sc.Values {
			if v != nil {
				c.Values[i] = *v
			} else {
				c.Values[i] = wide.Missing()
			}
		}
		cols = append(cols, c)
	}
	return wide.New(p.TimeColumn, index, cols)
}

// PutPanel stores a wide table under name, stamping SavedAt.
func (s *Store) PutPanel(name string, t *wide.Table) error {
	envelope := tableToStored(name, t)
	envelope.SavedAt = time.Now().UTC()
	b, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("encoding panel: %w", err)
	}
	slog.Debug("store put panel", "name", name, "rows", t.Len(), "columns", len(t.Columns()))
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPanels).Put([]byte(name), b)
	})
}

// GetPanel retrieves a panel by name.
// Returns (table, true, nil) if found, (nil, false, nil) if not found.
func (s *Store) GetPanel(name string) (*wide.Table, bool, error) {
	var envelope storedPanel
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketPanels).Get([]byte(name))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &envelope)
	})
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	t, err := storedToTable(envelope)
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// PanelInfo summarises one stored panel for listings.
type PanelInfo struct {
	Name    string    `json:"name"`
	Rows    int       `json:"rows"`
	Columns int       `json:"columns"`
	Start   string    `json:"start,omitempty"`
	End     string    `json:"end,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

// ListPanels returns summaries of all stored panels in key order.
func (s *Store) ListPanels() ([]PanelInfo, error) {
	var infos []PanelInfo
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPanels).ForEach(func(k, v []byte) error {
			var p storedPanel
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			info := PanelInfo{
				Name:    p.Name,
				Rows:    len(p.Index),
				Columns: len(p.Columns),
				SavedAt: p.SavedAt,
			}
			if len(p.Index) > 0 {
				info.Start = p.Index[0]
				info.End = p.Index[len(p.Index)-1]
			}
			infos = append(infos, info)
			return nil
		})
	})
	return infos, err
}

// DeletePanel removes a panel by name.
func (s *Store) DeletePanel(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPanels).Delete([]byte(name))
	})
}

// ─── Snapshots ────────────────────────────────────────────────────────────────

// Snapshot represents a saved command for reproducible workflows.
type Snapshot struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CommandLine string    `json:"command_line"`
	CreatedAt   time.Time `json:"created_at"`
}

// PutSnapshot saves a snapshot. The key is snap:<ID>.
func (s *Store) PutSnapshot(snap Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Put([]byte("snap:"+snap.ID), b)
	})
}

// GetSnapshot retrieves a snapshot by ID.
func (s *Store) GetSnapshot(id string) (Snapshot, bool, error) {
	var snap Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketSnapshots).Get([]byte("snap:" + id))
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &snap)
	})
	if err != nil {
		return snap, false, err
	}
	return snap, snap.ID != "", nil
}

// ListSnapshots returns all snapshots in key order.
func (s *Store) ListSnapshots() ([]Snapshot, error) {
	var snaps []Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).ForEach(func(k, v []byte) error {
			var snap Snapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				return err
			}
			snaps = append(snaps, snap)
			return nil
		})
	})
	return snaps, err
}

// DeleteSnapshot removes a snapshot by ID.
func (s *Store) DeleteSnapshot(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Delete([]byte("snap:" + id))
	})
}

// ─── Stats & Maintenance ──────────────────────────────────────────────────────

// BucketStats holds row count and byte size for a single bucket.
type BucketStats struct {
	Name  string
	Count int
	Bytes int64
}

// Stats returns row counts and approximate sizes for all buckets.
func (s *Store) Stats() ([]BucketStats, error) {
	buckets := map[string][]byte{
		"panels":    bucketPanels,
		"snapshots": bucketSnapshots,
	}

	var stats []BucketStats
	err := s.db.View(func(tx *bolt.Tx) error {
		for name, bname := range buckets {
			b := tx.Bucket(bname)
			if b == nil {
				continue
			}
			var count int
			var bytes int64
			b.ForEach(func(k, v []byte) error {
				count++
				bytes += int64(len(k) + len(v))
				return nil
			})
			stats = append(stats, BucketStats{Name: name, Count: count, Bytes: bytes})
		}
		return nil
	})
	return stats, err
}

// ClearBucket deletes all entries in the named bucket.
func (s *Store) ClearBucket(name string) error {
	bname := []byte(name)
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bname); err != nil {
			return fmt.Errorf("clearing bucket %s: %w", name, err)
		}
		_, err := tx.CreateBucket(bname)
		return err
	})
}

// ClearAll deletes all entries from every user-facing bucket.
func (s *Store) ClearAll() error {
	for _, name := range AllBuckets {
		if err := s.ClearBucket(name); err != nil {
			return err
		}
	}
	return nil
}
