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
	"fmt"

	gmaps "googlemaps.github.io/maps"
)

const metersPerMile = 1609.344

// GoogleBackend answers from the Google Maps Distance Matrix and Geocoding
// APIs, driving mode.
type GoogleBackend struct {
	client *gmaps.Client
}

func NewGoogleBackend(apiKey string) (*GoogleBackend, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return &GoogleBackend{client: client}, nil
}

func (g *GoogleBackend) Source() string { return "google_maps" }

func (g *GoogleBackend) TravelTime(ctx context.Context, origin, destination string) (Leg, error) {
	matrix, err := g.matrix(ctx, []string{origin}, []string{destination})
	if err != nil {
		return Leg{}, err
	}
	return matrix[0][0], nil
}

func (g *GoogleBackend) Matrix(ctx context.Context, addresses []string) ([][]Leg, error) {
	return g.matrix(ctx, addresses, addresses)
}

func (g *GoogleBackend) matrix(ctx context.Context, origins, destinations []string) ([][]Leg, error) {
	resp, err := g.client.DistanceMatrix(ctx, &gmaps.DistanceMatrixRequest{
		Origins:      origins,
		Destinations: destinations,
		Mode:         gmaps.TravelModeDriving,
	})
	if err != nil {
		return nil, fmt.Errorf("distance matrix: %w", err)
	}
	if len(resp.Rows) != len(origins) {
		return nil, fmt.Errorf("distance matrix: got %d rows for %d origins", len(resp.Rows), len(origins))
	}

	out := make([][]Leg, len(resp.Rows))
	for i, row := range resp.Rows {
		out[i] = make([]Leg, len(row.Elements))
		for j, el := range row.Elements {
			if el.Status != "OK" {
				return nil, fmt.Errorf("no route from %q to %q: %s", origins[i], destinations[j], el.Status)
			}
			out[i][j] = Leg{
				Minutes: el.Duration.Minutes(),
				Miles:   float64(el.Distance.Meters) / metersPerMile,
			}
		}
	}
	return out, nil
}

func (g *GoogleBackend) Geocode(ctx context.Context, address string) (Location, string, error) {
	results, err := g.client.Geocode(ctx, &gmaps.GeocodingRequest{Address: address})
	if err != nil {
		return Location{}, "", fmt.Errorf("geocode: %w", err)
	}
	if len(results) == 0 {
		return Location{}, "", fmt.Errorf("no geocoding result for %q", address)
	}
	r := results[0]
	return Location{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng}, r.FormattedAddress, nil
}
