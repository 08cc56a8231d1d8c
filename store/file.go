// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// File is a SetStore kept as a JSON document on an afero filesystem.
//
// The document is read once by NewFile and rewritten in full on every
// mutation: the new content goes to a temporary file in the same
// directory, which is then renamed over the document, so a crash never
// leaves a half-written store behind. Use one File per namespace.
type File struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
	data map[string][]string
}

// NewFile opens the store document at path on fs, creating an empty
// store if the document does not exist yet. Pass afero.NewOsFs() for the
// real filesystem.
func NewFile(fs afero.Fs, path string) (*File, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	f := &File{
		fs:   fs,
		path: path,
		data: make(map[string][]string),
	}
	b, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return f, nil
	} else if err != nil {
		return nil, fmt.Errorf("asynchttp/store: read %s: %w", path, err)
	}
	if len(b) == 0 {
		return f, nil
	}
	if err = json.Unmarshal(b, &f.data); err != nil {
		return nil, fmt.Errorf("asynchttp/store: parse %s: %w", path, err)
	}
	for k, v := range f.data {
		if v = dedupe(v); len(v) == 0 {
			delete(f.data, k)
		} else {
			f.data[k] = v
		}
	}
	return f, nil
}

// Path returns the location of the store document.
func (f *File) Path() string {
	return f.path
}

func (f *File) Entries() (map[string][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyEntries(f.data), nil
}

func (f *File) Members(key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.data[key]...), nil
}

func (f *File) Add(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old := f.data[key]
	if contains(old, value) {
		return nil
	}
	f.data[key] = append(append([]string(nil), old...), value)
	return f.flush(key, old)
}

func (f *File) Replace(key string, values []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old := f.data[key]
	if values = dedupe(values); len(values) == 0 {
		delete(f.data, key)
	} else {
		f.data[key] = values
	}
	return f.flush(key, old)
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.data[key]
	if !ok {
		return nil
	}
	delete(f.data, key)
	return f.flush(key, old)
}

func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old := f.data
	f.data = make(map[string][]string)
	if err := f.write(); err != nil {
		f.data = old
		return err
	}
	return nil
}

// flush writes the document, restoring key to old if the write fails so
// memory never runs ahead of the durable copy.
func (f *File) flush(key string, old []string) error {
	err := f.write()
	if err == nil {
		return nil
	}
	if old == nil {
		delete(f.data, key)
	} else {
		f.data[key] = old
	}
	return err
}

func (f *File) write() error {
	b, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("asynchttp/store: encode %s: %w", f.path, err)
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err = f.fs.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("asynchttp/store: create directory %s: %w", dir, err)
		}
	}
	tmp := f.path + ".tmp"
	if err = afero.WriteFile(f.fs, tmp, b, 0o600); err != nil {
		return fmt.Errorf("asynchttp/store: write %s: %w", tmp, err)
	}
	if err = f.fs.Rename(tmp, f.path); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("asynchttp/store: rename %s: %w", tmp, err)
	}
	return nil
}
