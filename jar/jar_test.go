// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jar

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gogama/asynchttp/logger"
	"github.com/gogama/asynchttp/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, s string) *url.URL {
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

func names(cookies []*http.Cookie) []string {
	n := make([]string, len(cookies))
	for i, c := range cookies {
		n[i] = c.Name
	}
	return n
}

func TestNew(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		assert.PanicsWithValue(t, "asynchttp/jar: nil store", func() {
			_, _ = New(nil)
		})
	})
	t.Run("store error", func(t *testing.T) {
		s := &mockStore{}
		s.Test(t)
		s.On("Entries").Return(map[string][]string(nil), errors.New("disk on fire")).Once()
		j, err := New(s)
		assert.Nil(t, j)
		assert.EqualError(t, err, "disk on fire")
		s.AssertExpectations(t)
	})
	t.Run("skips malformed entries", func(t *testing.T) {
		s := store.NewMemory()
		require.NoError(t, s.Add("not a key", "a=1"))
		require.NoError(t, s.Add("https://example.com/", "a=1"))
		require.NoError(t, s.Add("https://example.com/", "=novalue"))
		require.NoError(t, s.Add("https://example.com/", "b=2; Path=/x"))
		rec := &logger.Recorder{}
		j, err := New(s, WithLogger(rec))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, names(j.All()))
		assert.Len(t, rec.Warnings(), 2)
		assert.Len(t, j.Origins(), 1)
	})
}

func TestJar_Add(t *testing.T) {
	t.Run("appends in order", func(t *testing.T) {
		j, err := New(store.NewMemory())
		require.NoError(t, err)
		u := mustURL(t, "https://Example.COM/api")
		require.NoError(t, j.Add(u, &http.Cookie{Name: "a", Value: "1"}))
		require.NoError(t, j.Add(u, &http.Cookie{Name: "b", Value: "2"}))
		require.NoError(t, j.Add(u, &http.Cookie{Name: "c", Value: "3"}))
		assert.Equal(t, []string{"a", "b", "c"}, names(j.Get(mustURL(t, "https://example.com/api"))))
	})
	t.Run("rolls back on storage failure", func(t *testing.T) {
		s := &mockStore{}
		s.Test(t)
		s.On("Entries").Return(map[string][]string{}, nil).Once()
		s.On("Add", "https://example.com/", "a=1").Return(errors.New("read-only")).Once()
		j, err := New(s)
		require.NoError(t, err)
		err = j.Add(mustURL(t, "https://example.com"), &http.Cookie{Name: "a", Value: "1"})
		assert.EqualError(t, err, "read-only")
		assert.Empty(t, j.All())
		assert.Empty(t, j.Origins())
		s.AssertExpectations(t)
	})
}

func TestJar_Get(t *testing.T) {
	j, err := New(store.NewMemory())
	require.NoError(t, err)
	u := mustURL(t, "https://example.com/")
	require.NoError(t, j.Add(u, &http.Cookie{Name: "a", Value: "1"}))

	t.Run("returns a copy", func(t *testing.T) {
		got := j.Get(u)
		got[0] = &http.Cookie{Name: "z", Value: "9"}
		assert.Equal(t, []string{"a"}, names(j.Get(u)))
	})
	t.Run("unknown origin", func(t *testing.T) {
		v := mustURL(t, "https://other.example.com/")
		_, ok := j.Peek(v)
		assert.False(t, ok)
		assert.Empty(t, j.Get(v))
		got, ok := j.Peek(v)
		assert.True(t, ok)
		assert.Empty(t, got)
		assert.Len(t, j.Origins(), 2)
	})
}

func TestJar_Remove(t *testing.T) {
	s := store.NewMemory()
	j, err := New(s)
	require.NoError(t, err)
	u := mustURL(t, "https://example.com/")
	require.NoError(t, j.Add(u, &http.Cookie{Name: "a", Value: "1"}))
	require.NoError(t, j.Add(u, &http.Cookie{Name: "b", Value: "2", Domain: "example.com"}))

	removed, err := j.Remove(u, &http.Cookie{Name: "B", Domain: "EXAMPLE.com"})
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []string{"a"}, names(j.Get(u)))
	members, err := s.Members("https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a=1"}, members)

	t.Run("idempotent", func(t *testing.T) {
		removed, err := j.Remove(u, &http.Cookie{Name: "b", Domain: "example.com"})
		require.NoError(t, err)
		assert.False(t, removed)
		assert.Equal(t, []string{"a"}, names(j.Get(u)))
	})
	t.Run("unknown origin", func(t *testing.T) {
		removed, err := j.Remove(mustURL(t, "http://nowhere/"), &http.Cookie{Name: "a"})
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestJar_RemoveAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	open := func() *Jar {
		s, err := store.NewFile(fs, "/cookies.json")
		require.NoError(t, err)
		j, err := New(s)
		require.NoError(t, err)
		return j
	}
	j := open()
	require.NoError(t, j.Add(mustURL(t, "https://a.example/"), &http.Cookie{Name: "a", Value: "1"}))
	require.NoError(t, j.Add(mustURL(t, "https://b.example/"), &http.Cookie{Name: "b", Value: "2"}))
	require.NoError(t, j.RemoveAll())
	assert.Empty(t, j.All())
	assert.Empty(t, j.Origins())
	assert.Empty(t, open().All())
}

func TestJar_Restart(t *testing.T) {
	fs := afero.NewMemMapFs()
	open := func() *Jar {
		s, err := store.NewFile(fs, "/state/cookies.json")
		require.NoError(t, err)
		j, err := New(s)
		require.NoError(t, err)
		return j
	}
	u := mustURL(t, "https://example.com/")
	v := mustURL(t, "http://localhost:8080/x")
	j := open()
	require.NoError(t, j.Add(u, &http.Cookie{Name: "a", Value: "1", Path: "/", HttpOnly: true}))
	require.NoError(t, j.Add(u, &http.Cookie{Name: "b", Value: "2"}))
	require.NoError(t, j.Add(v, &http.Cookie{Name: "c", Value: "3"}))

	k := open()
	assert.Equal(t, []string{"a", "b"}, names(k.Get(u)))
	assert.Equal(t, []string{"c"}, names(k.Get(v)))
	assert.True(t, k.Get(u)[0].HttpOnly)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, names(k.All()))
	assert.ElementsMatch(t, strings.Split(j.CookieHeader(), ";"), strings.Split(k.CookieHeader(), ";"))
}

func TestJar_CookieHeader(t *testing.T) {
	j, err := New(store.NewMemory())
	require.NoError(t, err)
	assert.Equal(t, "", j.CookieHeader())

	require.NoError(t, j.Add(mustURL(t, "https://a.example/"), &http.Cookie{Name: "a", Value: "1", Path: "/"}))
	require.NoError(t, j.Add(mustURL(t, "https://b.example/"), &http.Cookie{Name: "b", Value: "2"}))
	h := j.CookieHeader()
	assert.Contains(t, h, "a=1;")
	assert.Contains(t, h, "b=2;")
	assert.NotContains(t, h, "Path")
}

func TestJar_Absorb(t *testing.T) {
	rec := &logger.Recorder{}
	j, err := New(store.NewMemory(), WithLogger(rec))
	require.NoError(t, err)
	u := mustURL(t, "https://example.com/login")

	n, err := j.Absorb(u, []string{"a=1; Path=/", "this is not a cookie", "b=2; HttpOnly"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "b"}, names(j.Get(u)))
	assert.Len(t, rec.Warnings(), 1)

	t.Run("storage error", func(t *testing.T) {
		s := &mockStore{}
		s.Test(t)
		s.On("Entries").Return(map[string][]string{}, nil).Once()
		s.On("Add", "https://example.com/", "a=1").Return(errors.New("full")).Once()
		s.On("Add", "https://example.com/", "b=2").Return(nil).Once()
		rec := &logger.Recorder{}
		j, err := New(s, WithLogger(rec))
		require.NoError(t, err)
		n, err := j.Absorb(mustURL(t, "https://example.com/"), []string{"a=1", "b=2"})
		assert.EqualError(t, err, "full")
		assert.Equal(t, 1, n)
		assert.Len(t, rec.Errors(), 1)
		s.AssertExpectations(t)
	})
}

func TestJar_Concurrent(t *testing.T) {
	s, err := store.NewFile(afero.NewMemMapFs(), "/cookies.json")
	require.NoError(t, err)
	j, err := New(s)
	require.NoError(t, err)
	u := mustURL(t, "https://example.com/")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, j.Add(u, &http.Cookie{Name: fmt.Sprintf("c%d", i), Value: "v"}))
			_ = j.CookieHeader()
			_ = j.All()
		}(i)
	}
	wg.Wait()
	assert.Len(t, j.Get(u), 16)
	members, err := s.Members("https://example.com/")
	require.NoError(t, err)
	assert.Len(t, members, 16)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Entries() (map[string][]string, error) {
	args := m.Called()
	return args.Get(0).(map[string][]string), args.Error(1)
}

func (m *mockStore) Members(key string) ([]string, error) {
	args := m.Called(key)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStore) Add(key, value string) error {
	return m.Called(key, value).Error(0)
}

func (m *mockStore) Replace(key string, values []string) error {
	return m.Called(key, values).Error(0)
}

func (m *mockStore) Delete(key string) error {
	return m.Called(key).Error(0)
}

func (m *mockStore) Clear() error {
	return m.Called().Error(0)
}
