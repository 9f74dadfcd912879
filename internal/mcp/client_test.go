// Copyright 2025 RentScout Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mcp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoClient(t *testing.T) (*Client, *int) {
	t.Helper()
	calls := 0
	s := NewServer("s", "1.0.0", nil)
	s.MustRegister(echoTool(t, &calls))
	r := NewRegistry()
	r.MustRegisterServer(s)
	return NewClient(r), &calls
}

func TestClientCallEndToEnd(t *testing.T) {
	c, _ := newEchoClient(t)

	result, err := c.Call("s", "echo", map[string]any{"msg": "hi"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"echo": map[string]any{"msg": "hi"}}, result)
}

func TestClientCallErrorCarriesCode(t *testing.T) {
	c, calls := newEchoClient(t)

	result, err := c.Call("s", "echo", nil)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "msg")

	var callErr *CallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, CodeInvalidParams, callErr.Code)
	assert.Zero(t, *calls)

	_, err = c.Call("s", "unknown", nil)
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, CodeMethodNotFound, callErr.Code)

	_, err = c.Call("nowhere", "echo", nil)
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, CodeServerError, callErr.Code)
}

func TestClientHandlerFailure(t *testing.T) {
	boom, err := NewTool("boom", "fails", ToolSchema{Type: "object"},
		func(map[string]any) (map[string]any, error) { return nil, errors.New("backend down") })
	require.NoError(t, err)
	s := NewServer("s", "1.0.0", nil)
	s.MustRegister(boom)
	r := NewRegistry()
	r.MustRegisterServer(s)
	c := NewClient(r)

	result, err := c.Call("s", "boom", nil)
	assert.Nil(t, result)
	var callErr *CallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, CodeInternalError, callErr.Code)
	assert.Contains(t, callErr.Message, "backend down")
}

func TestClientIntrospection(t *testing.T) {
	c, _ := newEchoClient(t)

	tools := c.ListAvailableTools()
	assert.Equal(t, map[string][]string{"s": {"echo"}}, tools)

	info, ok := c.ToolInfo("s", "echo")
	require.True(t, ok)
	assert.Equal(t, "echo", info.Name)
	assert.Contains(t, info.InputSchema.Required, "msg")

	_, ok = c.ToolInfo("s", "absent")
	assert.False(t, ok)
	_, ok = c.ToolInfo("absent", "echo")
	assert.False(t, ok)
}
