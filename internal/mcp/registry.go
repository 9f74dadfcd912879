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

	"github.com/google/uuid"
)

// Registry maps server names to servers. The hosting application builds
// one explicitly at startup and passes it to whatever needs to dispatch
// calls; there is no package-level singleton.
type Registry struct {
	mu      sync.RWMutex
	servers map[string]*Server
	order   []string

	rejectDuplicates bool
	log              *slog.Logger
}

type RegistryOption func(*Registry)

// RejectDuplicateServers makes registering a server under a taken name an
// error instead of an overwrite.
func RejectDuplicateServers() RegistryOption {
	return func(r *Registry) { r.rejectDuplicates = true }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		servers: make(map[string]*Server),
		log:     slog.With("component", "mcp.registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterServer stores the server by its name. Duplicate names overwrite
// under the default policy, same as tool registration.
func (r *Registry) RegisterServer(s *Server) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.servers[s.Name()]; exists {
		if r.rejectDuplicates {
			return fmt.Errorf("server already registered: %s", s.Name())
		}
	} else {
		r.order = append(r.order, s.Name())
	}
	r.servers[s.Name()] = s
	r.log.Info("registered server", "server", s.Name(), "version", s.Version())
	return nil
}

// MustRegisterServer panics on a registration error; for wiring done once
// at process start.
func (r *Registry) MustRegisterServer(servers ...*Server) *Registry {
	for _, s := range servers {
		if err := r.RegisterServer(s); err != nil {
			panic(err)
		}
	}
	return r
}

// GetServer returns the named server, or nil when absent. It never errors.
func (r *Registry) GetServer(name string) *Server {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.servers[name]
}

// ListServers returns the registered server names in registration order.
func (r *Registry) ListServers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// AllTools lists every server's tool descriptors, keyed by server name.
func (r *Registry) AllTools() map[string][]Tool {
	r.mu.RLock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	r.mu.RUnlock()

	out := make(map[string][]Tool, len(names))
	for _, name := range names {
		if s := r.GetServer(name); s != nil {
			out[name] = s.ListTools()
		}
	}
	return out
}

// CallTool routes a call to the named server. An unknown server name
// produces a ServerError response directly; no request is ever built
// against a server in that case. An empty requestID is replaced with a
// generated one.
func (r *Registry) CallTool(serverName, toolName string, params map[string]any, requestID string) Response {
	if requestID == "" {
		requestID = "req_" + uuid.NewString()
	}
	server := r.GetServer(serverName)
	if server == nil {
		return Response{ID: requestID, Error: &Error{
			Code:    CodeServerError,
			Message: fmt.Sprintf("server not found: %s", serverName),
		}}
	}
	return server.Call(Request{ID: requestID, Method: toolName, Params: params})
}
