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
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const protocolVersion = "2024-11-05"

// StdioHost serves the registry over line-delimited JSON-RPC on
// stdin/stdout. Tools are advertised with namespaced names,
// "<server>.<tool>", so one host can front every registered server.
// Logging goes to stderr; stdout carries only responses.
type StdioHost struct {
	registry *Registry
	name     string
	version  string

	in  io.Reader
	out io.Writer
	log *slog.Logger
}

func NewStdioHost(registry *Registry, name, version string) *StdioHost {
	return &StdioHost{
		registry: registry,
		name:     name,
		version:  version,
		in:       os.Stdin,
		out:      os.Stdout,
		log:      slog.With("component", "mcp.stdio"),
	}
}

// rpcRequest and rpcResponse are the host's wire envelopes. They are kept
// separate from the in-process Request/Response types: wire IDs may be
// numbers and params arrive as raw JSON.
type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

type callToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Run reads requests until stdin closes.
func (h *StdioHost) Run() error {
	scanner := bufio.NewScanner(h.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req rpcRequest
		if err := json.Unmarshal(line, &req); err != nil {
			h.send(rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &Error{
				Code:    CodeParseError,
				Message: "parse error",
			}})
			continue
		}

		if resp := h.handle(&req); resp != nil {
			h.send(*resp)
		}
	}
	return scanner.Err()
}

func (h *StdioHost) handle(req *rpcRequest) *rpcResponse {
	switch req.Method {
	case "initialize":
		return &rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{"listChanged": false},
			},
			"serverInfo": map[string]any{
				"name":    h.name,
				"version": h.version,
			},
		}}
	case "initialized", "notifications/initialized":
		// Notification, no response.
		return nil
	case "tools/list":
		return &rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{
			"tools": h.namespacedTools(),
		}}
	case "tools/call":
		return h.callTool(req)
	case "shutdown":
		return &rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{}}
	default:
		return &rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &Error{
			Code:    CodeMethodNotFound,
			Message: fmt.Sprintf("method not found: %s", req.Method),
		}}
	}
}

func (h *StdioHost) namespacedTools() []Tool {
	var tools []Tool
	for _, serverName := range h.registry.ListServers() {
		server := h.registry.GetServer(serverName)
		if server == nil {
			continue
		}
		for _, t := range server.ListTools() {
			t.Name = serverName + "." + t.Name
			tools = append(tools, t)
		}
	}
	return tools
}

func (h *StdioHost) callTool(req *rpcRequest) *rpcResponse {
	var params callToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &Error{
			Code:    CodeInvalidParams,
			Message: "invalid params",
		}}
	}

	serverName, toolName, ok := strings.Cut(params.Name, ".")
	if !ok {
		return &rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &Error{
			Code:    CodeInvalidParams,
			Message: fmt.Sprintf("tool name %q is not namespaced as server.tool", params.Name),
		}}
	}

	resp := h.registry.CallTool(serverName, toolName, params.Arguments, "")
	if resp.Error != nil {
		return &rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: resp.Error}
	}

	text, err := json.Marshal(resp.Result)
	if err != nil {
		return &rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &Error{
			Code:    CodeInternalError,
			Message: fmt.Sprintf("marshaling result: %v", err),
		}}
	}
	return &rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{
		"content": []map[string]any{{"type": "text", "text": string(text)}},
	}}
}

func (h *StdioHost) send(resp rpcResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		h.log.Error("failed to marshal response", "error", err)
		return
	}
	if _, err := fmt.Fprintln(h.out, string(data)); err != nil {
		h.log.Error("failed to send response", "error", err)
	}
}
