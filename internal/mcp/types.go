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

// Package mcp implements the in-process tool dispatch core: named servers
// exposing schema-described tools, a registry routing (server, tool, params)
// triples, and a client facade that unwraps responses into plain results.
package mcp

import "fmt"

// Error codes shared by all servers, numbered per JSON-RPC 2.0 so the
// stdio host can pass them through unchanged.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeServerError    = -32000
)

// Request is one tool invocation. The ID is used only for correlation and
// logging; it carries no ordering semantics.
type Request struct {
	ID     string         `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params,omitempty"`
}

// Response echoes the request ID and carries exactly one of Result or Error.
type Response struct {
	ID     string         `json:"id"`
	Result map[string]any `json:"result,omitempty"`
	Error  *Error         `json:"error,omitempty"`
}

type Error struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("mcp error (%d): %s", e.Code, e.Message)
}

// Handler executes a tool call with the validated params and returns a
// result map. Returning an error is the single failure convention for
// handlers; the dispatch layer converts it into an InternalError response.
type Handler func(params map[string]any) (map[string]any, error)

// Tool is an immutable unit of capability: a name, a description, a schema
// for its parameters, and the handler that executes it. The handler is not
// part of the serialized descriptor.
type Tool struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	InputSchema ToolSchema `json:"inputSchema"`

	handler Handler
}

// ToolSchema is the JSON-Schema subset understood by the dispatch layer:
// a flat object with typed properties and a required-field list.
type ToolSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
}

// NewTool builds a tool from its descriptor parts. It fails when the schema
// names a required field that is not declared, or when a property uses a
// type tag outside the closed vocabulary; a typo like "int" is a
// construction error here rather than a silently skipped check at call time.
func NewTool(name, description string, schema ToolSchema, handler Handler) (*Tool, error) {
	if name == "" {
		return nil, fmt.Errorf("tool name must not be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("tool %s: handler must not be nil", name)
	}
	for _, field := range schema.Required {
		if _, ok := schema.Properties[field]; !ok {
			return nil, fmt.Errorf("tool %s: required field %q is not declared in properties", name, field)
		}
	}
	for field, prop := range schema.Properties {
		if _, err := fieldTypeOf(prop.Type); err != nil {
			return nil, fmt.Errorf("tool %s: field %q: %w", name, field, err)
		}
	}
	return &Tool{
		Name:        name,
		Description: description,
		InputSchema: schema,
		handler:     handler,
	}, nil
}

// MustTool is NewTool for tool sets assembled at process start, where a bad
// schema is a programming error.
func MustTool(name, description string, schema ToolSchema, handler Handler) *Tool {
	t, err := NewTool(name, description, schema, handler)
	if err != nil {
		panic(err)
	}
	return t
}

// Descriptor returns the serializable part of the tool.
func (t *Tool) Descriptor() Tool {
	return Tool{Name: t.Name, Description: t.Description, InputSchema: t.InputSchema}
}
