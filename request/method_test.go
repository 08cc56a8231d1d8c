// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethods(t *testing.T) {
	methods := Methods()
	assert.Len(t, methods, 9)
	for _, m := range methods {
		assert.True(t, m.Valid(), m.String())
	}
	assert.False(t, Method("BREW").Valid())
	assert.False(t, Method("get").Valid())
	assert.False(t, Method("").Valid())
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, GET, m)
	m, err = ParseMethod("post")
	require.NoError(t, err)
	assert.Equal(t, POST, m)
	m, err = ParseMethod("Options")
	require.NoError(t, err)
	assert.Equal(t, OPTIONS, m)
	m, err = ParseMethod("brew")
	require.NoError(t, err)
	assert.Equal(t, Method("BREW"), m)
	assert.False(t, m.Valid())
	_, err = ParseMethod("GE T")
	assert.Error(t, err)
	_, err = ParseMethod("GET\r\n")
	assert.Error(t, err)
}

func TestStates(t *testing.T) {
	assert.Len(t, stateNames, int(stateSentinel))
	states := States()
	assert.Len(t, states, int(stateSentinel))
	for i, s := range states {
		assert.Equal(t, State(i), s)
	}
	assert.Equal(t, "Created", Created.Name())
	assert.Equal(t, "CookiesUpdated", CookiesUpdated.String())
	assert.Equal(t, "Unknown", State(100).Name())
	assert.True(t, Completed.Terminal())
	assert.True(t, Failed.Terminal())
	assert.False(t, BodyRead.Terminal())
}
