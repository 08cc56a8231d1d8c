// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package store provides durable key to set-of-strings storage.
//
// The cookie jar files each origin's cookies under the origin's key, one
// string per cookie, and the client configuration keeps its scalar
// entries as single-member sets in a separate namespace. Three
// implementations are provided: Memory for tests and ephemeral
// sessions, File for a JSON document on any afero filesystem, and
// SQLite for a database file shared by several namespaces.
package store

// A SetStore is a durable mapping from string keys to ordered sets of
// strings.
//
// Every mutating method must be durable before it returns: after a
// process restart a SetStore opened on the same backing storage reports
// exactly the entries written before. Values within a key keep their
// insertion order and are unique; adding a value already present is a
// no-op.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type SetStore interface {
	// Entries returns a copy of every key and its values.
	Entries() (map[string][]string, error)

	// Members returns the values stored under key, or nil if there are
	// none.
	Members(key string) ([]string, error)

	// Add adds value to the set stored under key, creating the key if
	// necessary.
	Add(key, value string) error

	// Replace replaces the set stored under key. An empty values slice
	// deletes the key.
	Replace(key string, values []string) error

	// Delete removes key and all its values.
	Delete(key string) error

	// Clear removes every key.
	Clear() error
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func copyEntries(m map[string][]string) map[string][]string {
	c := make(map[string][]string, len(m))
	for k, v := range m {
		c[k] = append([]string(nil), v...)
	}
	return c
}
