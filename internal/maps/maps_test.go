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

package maps

import (
	"context"
	"testing"

	"rentscout-mcp/internal/mcp"
)

func minuteMatrix(minutes [][]float64) [][]Leg {
	out := make([][]Leg, len(minutes))
	for i, row := range minutes {
		out[i] = make([]Leg, len(row))
		for j, m := range row {
			out[i][j] = Leg{Minutes: m, Miles: m / 2}
		}
	}
	return out
}

func TestNearestNeighborBeatsGivenOrder(t *testing.T) {
	// Start at 0; visiting 1 then 2 then 3 in the given order is clearly
	// worse than the greedy 0→3→2→1.
	matrix := minuteMatrix([][]float64{
		{0, 30, 20, 5},
		{30, 0, 8, 25},
		{20, 8, 0, 6},
		{5, 25, 6, 0},
	})

	order, total := nearestNeighborOrder(matrix)

	if order[0] != 0 {
		t.Fatalf("route must begin at start location, got %v", order)
	}
	seen := make(map[int]bool)
	for _, idx := range order {
		if seen[idx] {
			t.Fatalf("index %d visited twice in %v", idx, order)
		}
		seen[idx] = true
	}
	if len(order) != len(matrix) {
		t.Fatalf("order %v drops stops, want all %d", order, len(matrix))
	}

	naive := pathMinutes(matrix, []int{0, 1, 2, 3})
	if total > naive {
		t.Fatalf("greedy total %.0f exceeds naive order total %.0f", total, naive)
	}
	if got := pathMinutes(matrix, order); got != total {
		t.Fatalf("reported total %.0f disagrees with recomputed %.0f", total, got)
	}
}

func TestNearestNeighborTieBreaksToLowestIndex(t *testing.T) {
	matrix := minuteMatrix([][]float64{
		{0, 10, 10},
		{10, 0, 10},
		{10, 10, 0},
	})

	order, _ := nearestNeighborOrder(matrix)
	if order[1] != 1 || order[2] != 2 {
		t.Fatalf("tie should go to the lowest index, got %v", order)
	}
}

func TestMockMatrixDeterministic(t *testing.T) {
	addrs := []string{"start", "A St, Austin, TX", "B St, Austin, TX"}

	first, err := MockBackend{}.Matrix(context.Background(), addrs)
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	second, err := MockBackend{}.Matrix(context.Background(), addrs)
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Fatalf("matrix not deterministic at [%d][%d]", i, j)
			}
			if i == j && first[i][j].Minutes != 0 {
				t.Fatalf("self travel time must be zero, got %v", first[i][j])
			}
			if i != j && first[i][j].Minutes <= 0 {
				t.Fatalf("travel time must be positive, got %v", first[i][j])
			}
		}
	}
}

func TestOptimizeViewingRouteTool(t *testing.T) {
	client := newMapsClient()

	result, err := client.Call(ServerName, "optimize_viewing_route", map[string]any{
		"properties": []any{
			map[string]any{"address": "812 W 12th St, Austin, TX", "name": "Arbor Lofts"},
			map[string]any{"address": "2200 S Lamar Blvd, Austin, TX", "name": "Lamar Flats"},
			map[string]any{"address": "501 E 5th St, Austin, TX", "name": "Fifth & Red"},
		},
		"start_location": "Austin-Bergstrom Airport, Austin, TX",
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result["status"] != "success" || result["optimization_method"] != "nearest_neighbor" {
		t.Fatalf("unexpected result: %v", result)
	}
	route := result["optimized_route"].([]map[string]any)
	if len(route) != 4 {
		t.Fatalf("route has %d stops, want start + 3 viewings", len(route))
	}
	if route[0]["type"] != "start" {
		t.Fatalf("first stop type = %v, want start", route[0]["type"])
	}

	// Every property appears exactly once.
	seen := make(map[string]bool)
	for _, stop := range route[1:] {
		if stop["type"] != "viewing" {
			t.Fatalf("stop type = %v, want viewing", stop["type"])
		}
		addr := stop["location"].(string)
		if seen[addr] {
			t.Fatalf("address %q visited twice", addr)
		}
		seen[addr] = true
	}
	if len(seen) != 3 {
		t.Fatalf("route covers %d properties, want 3", len(seen))
	}
}

func TestCalculateTravelTimeTool(t *testing.T) {
	client := newMapsClient()

	result, err := client.Call(ServerName, "calculate_travel_time", map[string]any{
		"origin":      "812 W 12th St, Austin, TX",
		"destination": "501 E 5th St, Austin, TX",
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result["status"] != "success" || result["source"] != "mock" {
		t.Fatalf("unexpected result: %v", result)
	}
	if result["travel_time_minutes"].(float64) <= 0 {
		t.Fatalf("travel time must be positive: %v", result["travel_time_minutes"])
	}
}

func TestValidateAddressTool(t *testing.T) {
	client := newMapsClient()

	result, err := client.Call(ServerName, "validate_address", map[string]any{
		"address":             "812 W 12th St, Austin, TX",
		"include_coordinates": true,
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result["status"] != "valid" {
		t.Fatalf("status = %v, want valid", result["status"])
	}
	coords := result["coordinates"].(map[string]any)
	if coords["lat"].(float64) == 0 {
		t.Fatal("expected coordinates for a supported address")
	}

	result, err = client.Call(ServerName, "validate_address", map[string]any{
		"address": "1 Main St, Springfield",
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result["status"] != "invalid" {
		t.Fatalf("status = %v, want invalid", result["status"])
	}
	if result["suggestion"] != "1 Main St, Springfield, Austin, TX" {
		t.Fatalf("suggestion = %v", result["suggestion"])
	}
}

func newMapsClient() *mcp.Client {
	registry := mcp.NewRegistry()
	registry.MustRegisterServer(NewServer(MockBackend{}))
	return mcp.NewClient(registry)
}
