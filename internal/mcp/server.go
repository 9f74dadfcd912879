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
	"sync"
)

// Server is a named, versioned collection of tools sharing a capability
// domain. Tools are registered during construction; the set is effectively
// frozen once calls begin.
type Server struct {
	name         string
	version      string
	capabilities []string

	mu    sync.RWMutex
	tools map[string]*Tool
	order []string

	rejectDuplicates bool
	log              *slog.Logger
}

type ServerOption func(*Server)

// RejectDuplicates makes registering a tool under an already-taken name an
// error. The default keeps the last registration, matching the historic
// last-wins behavior; the policy is an explicit choice either way.
func RejectDuplicates() ServerOption {
	return func(s *Server) { s.rejectDuplicates = true }
}

func NewServer(name, version string, capabilities []string, opts ...ServerOption) *Server {
	s := &Server{
		name:         name,
		version:      version,
		capabilities: capabilities,
		tools:        make(map[string]*Tool),
		log:          slog.With("component", "mcp.server", "server", name),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Name() string    { return s.name }
func (s *Server) Version() string { return s.version }

func (s *Server) Capabilities() []string {
	out := make([]string, len(s.capabilities))
	copy(out, s.capabilities)
	return out
}

// RegisterTool adds a tool to the server. Under the default policy a
// duplicate name overwrites the previous registration.
func (s *Server) RegisterTool(t *Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tools[t.Name]; exists {
		if s.rejectDuplicates {
			return fmt.Errorf("server %s: tool already registered: %s", s.name, t.Name)
		}
	} else {
		s.order = append(s.order, t.Name)
	}
	s.tools[t.Name] = t
	s.log.Info("registered tool", "tool", t.Name)
	return nil
}

// MustRegister registers tools built at process start, panicking on error.
func (s *Server) MustRegister(tools ...*Tool) *Server {
	for _, t := range tools {
		if err := s.RegisterTool(t); err != nil {
			panic(err)
		}
	}
	return s
}

// ListTools returns the tool descriptors in registration order. Handlers
// are not observable from outside the server.
func (s *Server) ListTools() []Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Tool, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.tools[name].Descriptor())
	}
	return out
}

// Tool returns the named tool descriptor, if registered.
func (s *Server) Tool(name string) (Tool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tools[name]
	if !ok {
		return Tool{}, false
	}
	return t.Descriptor(), true
}

// Info describes the server for introspection.
func (s *Server) Info() map[string]any {
	tools := s.ListTools()
	descriptors := make([]any, len(tools))
	for i, t := range tools {
		descriptors[i] = t
	}
	return map[string]any{
		"name":         s.name,
		"version":      s.version,
		"capabilities": s.Capabilities(),
		"tools":        descriptors,
	}
}

// Call dispatches one request: look the tool up, validate params against
// its schema, execute the handler, and wrap the outcome. It always returns
// exactly one response echoing the request ID. Validation failures never
// reach the handler; handler errors and panics never cross the dispatch
// boundary as anything other than an InternalError response.
func (s *Server) Call(req Request) Response {
	s.mu.RLock()
	tool, ok := s.tools[req.Method]
	s.mu.RUnlock()
	if !ok {
		return Response{ID: req.ID, Error: &Error{
			Code:    CodeMethodNotFound,
			Message: fmt.Sprintf("tool not found: %s", req.Method),
		}}
	}

	params := req.Params
	if params == nil {
		params = map[string]any{}
	}
	if verr := tool.InputSchema.Validate(params); verr != nil {
		return Response{ID: req.ID, Error: verr}
	}

	result, err := s.execute(tool, params)
	if err != nil {
		s.log.Error("tool call failed", "tool", req.Method, "request_id", req.ID, "error", err)
		return Response{ID: req.ID, Error: &Error{
			Code:    CodeInternalError,
			Message: err.Error(),
		}}
	}
	return Response{ID: req.ID, Result: result}
}

func (s *Server) execute(tool *Tool, params map[string]any) (result map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return tool.handler(params)
}
