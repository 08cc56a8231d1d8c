// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package asynchttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	events := Events()
	assert.Len(t, eventNames, numEvents)
	assert.Len(t, events, numEvents)
	for i, evt := range events {
		assert.Equal(t, Event(i), evt, "events must be listed in firing order")
	}
}

func TestEvent_Name(t *testing.T) {
	testCases := []struct {
		evt  Event
		name string
	}{
		{BeforeExecutionStart, "BeforeExecutionStart"},
		{AfterResolve, "AfterResolve"},
		{BeforeSend, "BeforeSend"},
		{BeforeReadBody, "BeforeReadBody"},
		{AfterExecutionEnd, "AfterExecutionEnd"},
		{eventSentinel, "Event(5)"},
		{Event(-1), "Event(-1)"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.name, testCase.evt.Name())
		assert.Equal(t, testCase.name, testCase.evt.String())
	}
}
