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
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStdio(t *testing.T, registry *Registry, input string) []rpcResponse {
	t.Helper()
	var out bytes.Buffer
	h := NewStdioHost(registry, "test-host", "0.0.1")
	h.in = strings.NewReader(input)
	h.out = &out
	require.NoError(t, h.Run())

	var responses []rpcResponse
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var resp rpcResponse
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestStdioInitializeAndList(t *testing.T) {
	calls := 0
	s := NewServer("s", "1.0.0", nil)
	s.MustRegister(echoTool(t, &calls))
	r := NewRegistry()
	r.MustRegisterServer(s)

	input := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n"
	responses := runStdio(t, r, input)
	require.Len(t, responses, 2)

	init := responses[0].Result.(map[string]any)
	assert.Equal(t, protocolVersion, init["protocolVersion"])

	list := responses[1].Result.(map[string]any)
	tools := list["tools"].([]any)
	require.Len(t, tools, 1)
	assert.Equal(t, "s.echo", tools[0].(map[string]any)["name"])
}

func TestStdioCallTool(t *testing.T) {
	calls := 0
	s := NewServer("s", "1.0.0", nil)
	s.MustRegister(echoTool(t, &calls))
	r := NewRegistry()
	r.MustRegisterServer(s)

	input := `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"s.echo","arguments":{"msg":"hi"}}}` + "\n"
	responses := runStdio(t, r, input)
	require.Len(t, responses, 1)
	require.Nil(t, responses[0].Error)

	result := responses[0].Result.(map[string]any)
	content := result["content"].([]any)
	require.Len(t, content, 1)
	text := content[0].(map[string]any)["text"].(string)
	assert.Contains(t, text, `"msg":"hi"`)
	assert.Equal(t, 1, calls)
}

func TestStdioErrors(t *testing.T) {
	r := NewRegistry()

	input := `not json` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"no/such"}` + "\n" +
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"flat_name"}}` + "\n" +
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"ghost.echo"}}` + "\n"
	responses := runStdio(t, r, input)
	require.Len(t, responses, 4)

	assert.Equal(t, CodeParseError, responses[0].Error.Code)
	assert.Equal(t, CodeMethodNotFound, responses[1].Error.Code)
	assert.Equal(t, CodeInvalidParams, responses[2].Error.Code)
	assert.Equal(t, CodeServerError, responses[3].Error.Code)
}
