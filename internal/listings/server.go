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

package listings

import (
	"context"
	"errors"
	"fmt"

	"rentscout-mcp/internal/mcp"
)

const (
	ServerName    = "listings-server"
	serverVersion = "1.0.0"

	defaultSearchLimit = 10
)

type handlers struct {
	store Store
}

// NewServer builds the listings MCP server around the given store.
func NewServer(store Store) *mcp.Server {
	h := &handlers{store: store}

	s := mcp.NewServer(ServerName, serverVersion, []string{
		"apartment_search",
		"listing_lookup",
	})
	s.MustRegister(
		mcp.MustTool("search_listings",
			"Search apartment listings by location and maximum price",
			mcp.ToolSchema{
				Type: "object",
				Properties: map[string]mcp.Property{
					"city":      {Type: "string", Description: "City to search in (optional)"},
					"state":     {Type: "string", Description: "Two-letter state code"},
					"max_price": {Type: "integer", Description: "Maximum monthly rent in dollars"},
					"limit":     {Type: "integer", Description: "Maximum rows to return", Default: defaultSearchLimit},
				},
				Required: []string{"state", "max_price"},
			},
			h.searchListings),
		mcp.MustTool("get_listing",
			"Fetch a single listing by its id",
			mcp.ToolSchema{
				Type: "object",
				Properties: map[string]mcp.Property{
					"listing_id": {Type: "integer", Description: "Listing id"},
				},
				Required: []string{"listing_id"},
			},
			h.getListing),
	)
	return s
}

func (h *handlers) searchListings(params map[string]any) (map[string]any, error) {
	city := mcp.StringArg(params, "city", "")
	state := mcp.StringArg(params, "state", "")
	maxPrice := mcp.FloatArg(params, "max_price", 0)
	limit := mcp.IntArg(params, "limit", defaultSearchLimit)

	if maxPrice <= 0 {
		return nil, fmt.Errorf("max_price must be positive")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	found, err := h.store.Search(context.Background(), city, state, maxPrice, limit)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]any, len(found))
	for i, l := range found {
		rows[i] = l.asMap()
	}
	return map[string]any{
		"status":   "success",
		"listings": rows,
		"count":    len(rows),
		"source":   h.store.Source(),
	}, nil
}

func (h *handlers) getListing(params map[string]any) (map[string]any, error) {
	id := mcp.IntArg(params, "listing_id", 0)

	l, err := h.store.Get(context.Background(), int64(id))
	if errors.Is(err, ErrNotFound) {
		return map[string]any{
			"status":     "not_found",
			"listing_id": id,
			"source":     h.store.Source(),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status":  "success",
		"listing": l.asMap(),
		"source":  h.store.Source(),
	}, nil
}
