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
	"testing"

	"rentscout-mcp/internal/mcp"
)

func newListingsClient() *mcp.Client {
	registry := mcp.NewRegistry()
	registry.MustRegisterServer(NewServer(MockStore{}))
	return mcp.NewClient(registry)
}

func TestMockSearchFiltersAndSorts(t *testing.T) {
	rows, err := MockStore{}.Search(context.Background(), "Austin", "TX", 2000, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows under $2000, want 3", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Price < rows[i-1].Price {
			t.Fatalf("rows not sorted by price: %v before %v", rows[i-1].Price, rows[i].Price)
		}
	}
	for _, l := range rows {
		if l.Price >= 2000 {
			t.Fatalf("listing %q priced %.0f exceeds max", l.Name, l.Price)
		}
	}
}

func TestMockSearchHonorsLimit(t *testing.T) {
	rows, err := MockStore{}.Search(context.Background(), "", "TX", 5000, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want limit of 2", len(rows))
	}
}

func TestMockGetNotFound(t *testing.T) {
	_, err := MockStore{}.Get(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSearchListingsTool(t *testing.T) {
	client := newListingsClient()

	result, err := client.Call(ServerName, "search_listings", map[string]any{
		"city":      "Austin",
		"state":     "TX",
		"max_price": 1900,
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result["status"] != "success" || result["source"] != "mock" {
		t.Fatalf("unexpected result: %v", result)
	}
	if result["count"].(int) != 3 {
		t.Fatalf("count = %v, want 3", result["count"])
	}
	rows := result["listings"].([]map[string]any)
	if rows[0]["name"] != "Mueller Commons" {
		t.Fatalf("cheapest listing = %v, want Mueller Commons", rows[0]["name"])
	}
}

func TestSearchListingsRequiresState(t *testing.T) {
	client := newListingsClient()

	_, err := client.Call(ServerName, "search_listings", map[string]any{
		"max_price": 1900,
	})
	var callErr *mcp.CallError
	if !errors.As(err, &callErr) || callErr.Code != mcp.CodeInvalidParams {
		t.Fatalf("err = %v, want InvalidParams CallError", err)
	}
}

func TestGetListingTool(t *testing.T) {
	client := newListingsClient()

	result, err := client.Call(ServerName, "get_listing", map[string]any{
		"listing_id": 2,
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	listing := result["listing"].(map[string]any)
	if listing["name"] != "Lamar Flats" {
		t.Fatalf("listing = %v", listing)
	}

	result, err = client.Call(ServerName, "get_listing", map[string]any{
		"listing_id": 404,
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result["status"] != "not_found" {
		t.Fatalf("status = %v, want not_found", result["status"])
	}
}
