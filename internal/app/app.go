// Package app wires together configuration and the local store into a single
// Deps struct that commands receive at runtime.
package app

import (
	"fmt"

	"github.com/quantpanel/panel/internal/config"
	"github.com/quantpanel/panel/internal/store"
)

// Deps holds all runtime dependencies injected into command Run functions.
// The store is opened lazily: only commands that call RequireStore pay the
// cost of opening the database.
type Deps struct {
	Config *config.Config
	Store  *store.Store
}

// New builds a Deps from resolved config.
func New(cfg *config.Config) *Deps {
	return &Deps{Config: cfg}
}

// RequireStore opens the bbolt database at the configured path if it is not
// open already.
func (d *Deps) RequireStore() error {
	if d.Store != nil {
		return nil
	}
	if d.Config.DBPath == "" {
		return fmt.Errorf("no database path configured (set --db, %s, or db_path in config.json)", config.EnvDBPath)
	}
	s, err := store.Open(d.Config.DBPath)
	if err != nil {
		return err
	}
	d.Store = s
	return nil
}

// Close releases the store if it was opened.
func (d *Deps) Close() error {
	if d.Store == nil {
		return nil
	}
	err := d.Store.Close()
	d.Store = nil
	return err
}
