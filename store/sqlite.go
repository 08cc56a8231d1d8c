// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	seq    INTEGER PRIMARY KEY AUTOINCREMENT,
	ns     TEXT NOT NULL,
	name   TEXT NOT NULL,
	member TEXT NOT NULL,
	UNIQUE (ns, name, member)
)`

// DB is a SQLite database holding any number of SetStore namespaces in
// a single table.
type DB struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the SQLite database at path.
// The special path ":memory:" opens a private in-memory database.
func OpenSQLite(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("asynchttp/store: cannot open database %s: %w", path, err)
	}
	// One connection serialises writers and keeps ":memory:" databases
	// from splitting across connections.
	db.SetMaxOpenConns(1)
	for _, stmt := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA synchronous = FULL", schema} {
		if _, err = db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("asynchttp/store: cannot initialise database %s: %w", path, err)
		}
	}
	return &DB{db: db}, nil
}

// Close closes the database. Namespaces obtained from it must not be
// used afterwards.
func (d *DB) Close() error {
	return d.db.Close()
}

// Namespace returns the SetStore holding the keys of namespace name.
// Keys in different namespaces never collide.
func (d *DB) Namespace(name string) SetStore {
	return &sqliteSet{db: d.db, ns: name}
}

type sqliteSet struct {
	db *sql.DB
	ns string
}

func (s *sqliteSet) Entries() (map[string][]string, error) {
	rows, err := s.db.Query(`SELECT name, member FROM entries WHERE ns = ? ORDER BY seq`, s.ns)
	if err != nil {
		return nil, fmt.Errorf("asynchttp/store: query %s: %w", s.ns, err)
	}
	defer rows.Close()

	m := make(map[string][]string)
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("asynchttp/store: scan %s: %w", s.ns, err)
		}
		m[key] = append(m[key], value)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("asynchttp/store: iterate %s: %w", s.ns, err)
	}
	return m, nil
}

func (s *sqliteSet) Members(key string) ([]string, error) {
	rows, err := s.db.Query(`SELECT member FROM entries WHERE ns = ? AND name = ? ORDER BY seq`, s.ns, key)
	if err != nil {
		return nil, fmt.Errorf("asynchttp/store: query %s/%s: %w", s.ns, key, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err = rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("asynchttp/store: scan %s/%s: %w", s.ns, key, err)
		}
		values = append(values, value)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("asynchttp/store: iterate %s/%s: %w", s.ns, key, err)
	}
	return values, nil
}

func (s *sqliteSet) Add(key, value string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO entries (ns, name, member) VALUES (?, ?, ?)`, s.ns, key, value)
	if err != nil {
		return fmt.Errorf("asynchttp/store: add %s/%s: %w", s.ns, key, err)
	}
	return nil
}

func (s *sqliteSet) Replace(key string, values []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("asynchttp/store: replace %s/%s: %w", s.ns, key, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if _, err = tx.Exec(`DELETE FROM entries WHERE ns = ? AND name = ?`, s.ns, key); err != nil {
		return fmt.Errorf("asynchttp/store: replace %s/%s: %w", s.ns, key, err)
	}
	for _, value := range values {
		if _, err = tx.Exec(`INSERT OR IGNORE INTO entries (ns, name, member) VALUES (?, ?, ?)`, s.ns, key, value); err != nil {
			return fmt.Errorf("asynchttp/store: replace %s/%s: %w", s.ns, key, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("asynchttp/store: replace %s/%s: %w", s.ns, key, err)
	}
	return nil
}

func (s *sqliteSet) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM entries WHERE ns = ? AND name = ?`, s.ns, key); err != nil {
		return fmt.Errorf("asynchttp/store: delete %s/%s: %w", s.ns, key, err)
	}
	return nil
}

func (s *sqliteSet) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM entries WHERE ns = ?`, s.ns); err != nil {
		return fmt.Errorf("asynchttp/store: clear %s: %w", s.ns, err)
	}
	return nil
}
