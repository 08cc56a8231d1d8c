// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jar

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/gogama/asynchttp/logger"
	"github.com/gogama/asynchttp/store"
)

// A Jar is a durable, origin-keyed cookie store.
//
// Cookies are filed under the origin key of the URL they were received
// from (see Key) in the order they were added. Every mutation is written
// through to the backing SetStore before it returns, so cookies survive
// process restarts: constructing a new Jar over the same SetStore
// restores them.
//
// A Jar is safe for concurrent use by multiple goroutines. A single
// mutex serialises every operation, including the durable writes.
type Jar struct {
	mu      sync.Mutex
	store   store.SetStore
	log     logger.Logger
	keys    []string
	cookies map[string][]*http.Cookie
}

// An Option configures a Jar.
type Option func(*Jar)

// WithLogger sets the logger used to report entries skipped while
// loading and malformed Set-Cookie values.
func WithLogger(l logger.Logger) Option {
	return func(j *Jar) {
		j.log = l
	}
}

// New constructs a Jar over s, loading every cookie persisted in s.
//
// Loading is lenient: a durable key that is not a valid origin key, or a
// stored value that is not a valid cookie, is skipped with a warning and
// loading continues. An error is returned only if s itself cannot be
// read.
func New(s store.SetStore, opts ...Option) (*Jar, error) {
	if s == nil {
		panic("asynchttp/jar: nil store")
	}
	j := &Jar{
		store:   s,
		cookies: make(map[string][]*http.Cookie),
	}
	for _, opt := range opts {
		opt(j)
	}
	j.log = logger.OrNop(j.log)
	if err := j.load(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Jar) load() error {
	entries, err := j.store.Entries()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		u, err := ParseKey(k)
		if err != nil {
			j.log.Warning("[jar] skipping stored origin %q: %v", k, err)
			continue
		}
		key := Key(u)
		for _, text := range entries[k] {
			c, err := Parse(text)
			if err != nil {
				j.log.Warning("[jar] skipping stored cookie under %s: %v", key, err)
				continue
			}
			j.appendLocked(key, c)
		}
	}
	return nil
}

// Add appends cookie to the sequence filed under origin and persists its
// wire-text form to the origin's durable set before returning.
//
// If the durable write fails, the in-memory append is undone and the
// error is returned.
func (j *Jar) Add(origin *url.URL, cookie *http.Cookie) error {
	key := Key(origin)
	j.mu.Lock()
	defer j.mu.Unlock()
	_, existed := j.cookies[key]
	j.appendLocked(key, cookie)
	if err := j.store.Add(key, Format(cookie)); err != nil {
		seq := j.cookies[key]
		j.cookies[key] = seq[:len(seq)-1]
		if !existed {
			j.dropKeyLocked(key)
		}
		return err
	}
	return nil
}

// Get returns a copy of the cookies filed under origin, in the order
// they were added.
//
// For an origin the jar has never seen, Get returns an empty slice AND
// records origin as known, so it is reported by Origins from then on.
// The side effect is in memory only; nothing is written to durable
// storage. Use Peek for a read without side effects.
func (j *Jar) Get(origin *url.URL) []*http.Cookie {
	key := Key(origin)
	j.mu.Lock()
	defer j.mu.Unlock()
	seq, ok := j.cookies[key]
	if !ok {
		j.keys = append(j.keys, key)
		j.cookies[key] = []*http.Cookie{}
		return []*http.Cookie{}
	}
	return append([]*http.Cookie{}, seq...)
}

// Peek returns a copy of the cookies filed under origin and whether the
// origin is known, without modifying the jar.
func (j *Jar) Peek(origin *url.URL) ([]*http.Cookie, bool) {
	key := Key(origin)
	j.mu.Lock()
	defer j.mu.Unlock()
	seq, ok := j.cookies[key]
	return append([]*http.Cookie{}, seq...), ok
}

// All returns every cookie in the jar, flattened across origins. The
// order is stable for a given jar state: origins in the order they
// became known, cookies in the order they were added.
func (j *Jar) All() []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.allLocked()
}

func (j *Jar) allLocked() []*http.Cookie {
	all := []*http.Cookie{}
	for _, key := range j.keys {
		all = append(all, j.cookies[key]...)
	}
	return all
}

// Origins returns the origin of every key currently known to the jar.
func (j *Jar) Origins() []*url.URL {
	j.mu.Lock()
	defer j.mu.Unlock()
	origins := make([]*url.URL, 0, len(j.keys))
	for _, key := range j.keys {
		u, err := url.Parse(key)
		if err != nil {
			continue
		}
		origins = append(origins, u)
	}
	return origins
}

// Remove removes the first cookie filed under origin that is Equal to
// cookie, rewriting the origin's durable set. It reports whether a
// cookie was removed; an unknown origin or a missing cookie yields false
// and leaves the jar unchanged.
func (j *Jar) Remove(origin *url.URL, cookie *http.Cookie) (bool, error) {
	key := Key(origin)
	j.mu.Lock()
	defer j.mu.Unlock()
	seq, ok := j.cookies[key]
	if !ok {
		return false, nil
	}
	i := indexOf(seq, cookie)
	if i < 0 {
		return false, nil
	}
	rest := make([]*http.Cookie, 0, len(seq)-1)
	rest = append(rest, seq[:i]...)
	rest = append(rest, seq[i+1:]...)
	texts := make([]string, len(rest))
	for n, c := range rest {
		texts[n] = Format(c)
	}
	if err := j.store.Replace(key, texts); err != nil {
		return false, err
	}
	j.cookies[key] = rest
	return true, nil
}

// RemoveAll removes every cookie from durable storage and from memory.
func (j *Jar) RemoveAll() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.store.Clear(); err != nil {
		return err
	}
	j.keys = nil
	j.cookies = make(map[string][]*http.Cookie)
	return nil
}

// CookieHeader returns the value of the Cookie request header built from
// every cookie in the jar: each cookie's "name=value" pair followed by a
// ";" separator. It returns "" if the jar is empty, in which case the
// header should be omitted.
func (j *Jar) CookieHeader() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	var b strings.Builder
	for _, c := range j.allLocked() {
		b.WriteString(Pair(c))
		b.WriteString(";")
	}
	return b.String()
}

// Absorb parses each Set-Cookie header value and adds the resulting
// cookies under origin. A malformed value is logged and skipped without
// affecting the others. Absorb returns the number of cookies added and
// the first storage error encountered, if any; a storage error does not
// stop the remaining values from being processed.
func (j *Jar) Absorb(origin *url.URL, setCookies []string) (int, error) {
	var n int
	var firstErr error
	for _, v := range setCookies {
		c, err := Parse(v)
		if err != nil {
			j.log.Warning("[jar] skipping Set-Cookie from %s: %v", Key(origin), err)
			continue
		}
		if err = j.Add(origin, c); err != nil {
			j.log.Error("[jar] cannot persist cookie %s from %s: %v", c.Name, Key(origin), err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		n++
	}
	return n, firstErr
}

func (j *Jar) appendLocked(key string, c *http.Cookie) {
	seq, ok := j.cookies[key]
	if !ok {
		j.keys = append(j.keys, key)
	}
	j.cookies[key] = append(seq, c)
}

func (j *Jar) dropKeyLocked(key string) {
	delete(j.cookies, key)
	for i, k := range j.keys {
		if k == key {
			j.keys = append(j.keys[:i], j.keys[i+1:]...)
			return
		}
	}
}

func indexOf(seq []*http.Cookie, c *http.Cookie) int {
	for i, x := range seq {
		if Equal(x, c) {
			return i
		}
	}
	return -1
}
