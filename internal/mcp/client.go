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
	"fmt"
	"log/slog"
)

// CallError is what Client.Call returns when a tool call produces an error
// response. The numeric code is carried so callers can branch with
// errors.As instead of parsing the message.
type CallError struct {
	Code    int
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("mcp error (%d): %s", e.Code, e.Message)
}

// Client is the caller-facing facade over a registry. It holds no state of
// its own beyond the registry reference.
type Client struct {
	registry *Registry
	log      *slog.Logger
}

func NewClient(registry *Registry) *Client {
	return &Client{
		registry: registry,
		log:      slog.With("component", "mcp.client"),
	}
}

// Call invokes server/tool with params and unwraps the response, returning
// the result map on success and a *CallError otherwise.
func (c *Client) Call(serverName, toolName string, params map[string]any) (map[string]any, error) {
	resp := c.registry.CallTool(serverName, toolName, params, "")
	if resp.Error != nil {
		c.log.Error("call failed",
			"server", serverName, "tool", toolName,
			"code", resp.Error.Code, "error", resp.Error.Message)
		return nil, &CallError{Code: resp.Error.Code, Message: resp.Error.Message}
	}
	return resp.Result, nil
}

// ListAvailableTools maps each server name to its tool names, in
// registration order; the usual input for advertising capabilities to an
// LLM-driven caller.
func (c *Client) ListAvailableTools() map[string][]string {
	out := make(map[string][]string)
	for serverName, tools := range c.registry.AllTools() {
		names := make([]string, len(tools))
		for i, t := range tools {
			names[i] = t.Name
		}
		out[serverName] = names
	}
	return out
}

// ToolInfo returns the descriptor for one tool, if both the server and the
// tool exist.
func (c *Client) ToolInfo(serverName, toolName string) (Tool, bool) {
	server := c.registry.GetServer(serverName)
	if server == nil {
		return Tool{}, false
	}
	return server.Tool(toolName)
}
