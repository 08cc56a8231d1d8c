// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/gogama/asynchttp/store"
	"github.com/gogama/asynchttp/timeout"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBase(t *testing.T) {
	testCases := []struct {
		in   string
		want Base
		str  string
	}{
		{"https://api.example.com", Base{"https", "api.example.com", 0}, "https://api.example.com"},
		{"http://localhost:8080/ignored?q", Base{"http", "localhost", 8080}, "http://localhost:8080"},
		{"http://[::1]:9000", Base{"http", "::1", 9000}, "http://[::1]:9000"},
		{"http://[::1]", Base{"http", "::1", 0}, "http://[::1]"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			b, err := ParseBase(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, b)
			assert.Equal(t, tc.str, b.String())
		})
	}
	for _, bad := range []string{"ftp://example.com", "https://", "::not a url", "http://host:99999"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseBase(bad)
			assert.Error(t, err)
		})
	}
}

func TestResolver_Base(t *testing.T) {
	assert.PanicsWithValue(t, "asynchttp/config: nil store", func() {
		NewResolver(nil)
	})

	s := store.NewMemory()
	r := NewResolver(s)
	assert.False(t, r.HasBase())
	_, err := r.Base()
	assert.ErrorIs(t, err, ErrNoBase)

	require.NoError(t, r.SetBase(Base{Scheme: "HTTPS", Host: "api.example.com", Port: 8443}))
	assert.True(t, r.HasBase())
	b, err := r.Base()
	require.NoError(t, err)
	assert.Equal(t, Base{"https", "api.example.com", 8443}, b)

	t.Run("survives restart", func(t *testing.T) {
		b, err := NewResolver(s).Base()
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com:8443", b.String())
	})
	t.Run("port cleared", func(t *testing.T) {
		require.NoError(t, r.SetBase(Base{Scheme: "http", Host: "h"}))
		b, err := r.Base()
		require.NoError(t, err)
		assert.Equal(t, 0, b.Port)
	})
	t.Run("invalid rejected", func(t *testing.T) {
		assert.Error(t, r.SetBase(Base{Scheme: "gopher", Host: "h"}))
		b, err := r.Base()
		require.NoError(t, err)
		assert.Equal(t, "http://h", b.String())
	})
	t.Run("clear", func(t *testing.T) {
		require.NoError(t, r.ClearBase())
		assert.False(t, r.HasBase())
	})
}

func TestResolver_Timeouts(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := store.NewFile(fs, "/settings.json")
	require.NoError(t, err)
	r := NewResolver(s)
	assert.Equal(t, timeout.Default, r.Defaults())

	require.NoError(t, r.SetConnectTimeout(2*time.Second))
	require.NoError(t, r.SetReadTimeout(5*time.Second))
	assert.Error(t, r.SetReadTimeout(-time.Second))

	s2, err := store.NewFile(fs, "/settings.json")
	require.NoError(t, err)
	r2 := NewResolver(s2)
	assert.Equal(t, timeout.Config{Connect: 2 * time.Second, Read: 5 * time.Second}, r2.Defaults())

	require.NoError(t, r2.SetConnectTimeout(0))
	d, err := r2.ConnectTimeout()
	require.NoError(t, err)
	assert.Equal(t, timeout.Default.Connect, d)

	t.Run("corrupt value falls back", func(t *testing.T) {
		m := store.NewMemory()
		require.NoError(t, store.PutString(m, keyReadTimeout, "soon"))
		r := NewResolver(m)
		_, err := r.ReadTimeout()
		assert.Error(t, err)
		assert.Equal(t, timeout.Default, r.Defaults())
	})
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(store.NewMemory())

	t.Run("absolute verbatim", func(t *testing.T) {
		u, err := r.Resolve("https://example.com/a?b=c")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a?b=c", u.String())
	})
	t.Run("relative without base", func(t *testing.T) {
		u, err := r.Resolve("/users/1")
		assert.Nil(t, u)
		assert.ErrorIs(t, err, ErrNoBase)
	})
	t.Run("malformed", func(t *testing.T) {
		_, err := r.Resolve("http://[::1")
		var urlErr *url.Error
		assert.ErrorAs(t, err, &urlErr)
	})

	require.NoError(t, r.SetBase(Base{Scheme: "http", Host: "localhost", Port: 8080}))
	t.Run("relative with base", func(t *testing.T) {
		u, err := r.Resolve("/users/1?x=y")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/users/1?x=y", u.String())
	})
	t.Run("query only", func(t *testing.T) {
		u, err := r.Resolve("?page=2")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080?page=2", u.String())
	})
	t.Run("bad concatenation", func(t *testing.T) {
		_, err := r.Resolve("api")
		assert.Error(t, err)
	})
}
