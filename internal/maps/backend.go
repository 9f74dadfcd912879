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

// Package maps provides the maps MCP server: travel-time estimation,
// viewing-route optimization, and address validation, backed by the Google
// Maps APIs or a deterministic mock.
package maps

import "context"

// Leg is the travel cost between two points.
type Leg struct {
	Minutes float64
	Miles   float64
}

// Location is a geocoded point.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Backend is the maps capability behind the server. The mock and Google
// implementations must produce identically shaped results; only the
// numbers differ.
type Backend interface {
	Source() string
	// TravelTime estimates one origin→destination leg.
	TravelTime(ctx context.Context, origin, destination string) (Leg, error)
	// Matrix returns the full pairwise leg matrix for the given addresses:
	// result[i][j] is the cost of travelling from addresses[i] to
	// addresses[j].
	Matrix(ctx context.Context, addresses []string) ([][]Leg, error)
	// Geocode resolves an address to a location and its standardized form.
	Geocode(ctx context.Context, address string) (Location, string, error)
}
