// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/gogama/asynchttp/store"
	"github.com/gogama/asynchttp/timeout"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Store drivers accepted in the store section of a File.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// A File is the YAML configuration file read at process start.
type File struct {
	Base      BaseSection    `yaml:"base"`
	Timeouts  TimeoutSection `yaml:"timeouts"`
	Store     StoreSection   `yaml:"store"`
	Metrics   MetricsSection `yaml:"metrics"`
	UserAgent string         `yaml:"user_agent,omitempty"`
}

// BaseSection seeds the base address. It is ignored if Host is empty.
type BaseSection struct {
	Scheme string `yaml:"scheme"`
	Host   string `yaml:"host"`
	Port   int    `yaml:"port,omitempty"`
}

// TimeoutSection seeds the default timeouts. Zero values are ignored.
type TimeoutSection struct {
	Connect time.Duration `yaml:"connect"`
	Read    time.Duration `yaml:"read"`
}

// StoreSection selects where cookies and settings are kept.
//
// For the file driver, Path is a directory holding cookies.json and
// settings.json. For the sqlite driver, Path is the database file.
type StoreSection struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path,omitempty"`
}

// MetricsSection configures metrics output. If Textfile is non-empty,
// metrics are written there in the Prometheus text format.
type MetricsSection struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// DefaultFile returns the configuration used when no file is given.
func DefaultFile() *File {
	return &File{
		Base: BaseSection{Scheme: "https"},
		Timeouts: TimeoutSection{
			Connect: 15 * time.Second,
			Read:    30 * time.Second,
		},
		Store: StoreSection{Driver: DriverMemory},
	}
}

// Load reads and parses a YAML configuration file from fs, starting
// from DefaultFile.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	f := DefaultFile()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validate(f); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return f, nil
}

// validate checks the configuration for errors.
func validate(f *File) error {
	if f.Base.Host != "" {
		if f.Base.Scheme == "" {
			f.Base.Scheme = "https"
		}
		if err := f.base().validate(); err != nil {
			return err
		}
	}

	if t := (timeout.Config{Connect: f.Timeouts.Connect, Read: f.Timeouts.Read}); !t.Valid() {
		if t.Connect < 0 {
			return fmt.Errorf("timeouts.connect must not be negative")
		}
		return fmt.Errorf("timeouts.read must not be negative")
	}

	switch f.Store.Driver {
	case "":
		f.Store.Driver = DriverMemory
	case DriverMemory:
	case DriverFile, DriverSQLite:
		if f.Store.Path == "" {
			return fmt.Errorf("store.path is required for driver %q", f.Store.Driver)
		}
	default:
		return fmt.Errorf("store.driver must be one of memory, file, sqlite")
	}

	return nil
}

func (f *File) base() Base {
	return Base{Scheme: f.Base.Scheme, Host: f.Base.Host, Port: f.Base.Port}
}

// Apply seeds r with the base address and default timeouts given in f.
// Sections left empty leave the corresponding values in r untouched.
func (f *File) Apply(r *Resolver) error {
	if f.Base.Host != "" {
		if err := r.SetBase(f.base()); err != nil {
			return err
		}
	}
	if f.Timeouts.Connect > 0 {
		if err := r.SetConnectTimeout(f.Timeouts.Connect); err != nil {
			return err
		}
	}
	if f.Timeouts.Read > 0 {
		if err := r.SetReadTimeout(f.Timeouts.Read); err != nil {
			return err
		}
	}
	return nil
}

// Stores holds the two namespaces opened from a StoreSection.
type Stores struct {
	Cookies  store.SetStore
	Settings store.SetStore
	io.Closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open opens the cookie and settings namespaces selected by s. The file
// driver uses fs; the sqlite driver always uses the operating system's
// filesystem.
func (s StoreSection) Open(fs afero.Fs) (*Stores, error) {
	switch s.Driver {
	case DriverMemory, "":
		return &Stores{Cookies: store.NewMemory(), Settings: store.NewMemory(), Closer: nopCloser{}}, nil
	case DriverFile:
		cookies, err := store.NewFile(fs, filepath.Join(s.Path, "cookies.json"))
		if err != nil {
			return nil, err
		}
		settings, err := store.NewFile(fs, filepath.Join(s.Path, "settings.json"))
		if err != nil {
			return nil, err
		}
		return &Stores{Cookies: cookies, Settings: settings, Closer: nopCloser{}}, nil
	case DriverSQLite:
		db, err := store.OpenSQLite(s.Path)
		if err != nil {
			return nil, err
		}
		return &Stores{Cookies: db.Namespace("cookies"), Settings: db.Namespace("settings"), Closer: db}, nil
	default:
		return nil, fmt.Errorf("asynchttp/config: unknown store driver %q", s.Driver)
	}
}
