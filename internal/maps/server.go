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
	"time"

	"rentscout-mcp/internal/mcp"
)

const (
	ServerName    = "maps-server"
	serverVersion = "1.0.0"

	defaultViewingMinutes = 90
	defaultBufferMinutes  = 15
)

type handlers struct {
	backend Backend
	now     func() time.Time
}

// NewServer builds the maps MCP server around the given backend.
func NewServer(backend Backend) *mcp.Server {
	h := &handlers{backend: backend, now: time.Now}

	s := mcp.NewServer(ServerName, serverVersion, []string{
		"route_optimization",
		"distance_calculation",
		"address_validation",
		"travel_time_estimation",
		"viewing_route_planning",
	})
	s.MustRegister(
		mcp.MustTool("optimize_viewing_route",
			"Order multiple apartment viewings to reduce total travel time",
			mcp.ToolSchema{
				Type: "object",
				Properties: map[string]mcp.Property{
					"properties":     {Type: "array", Description: "Properties to visit, each with an address"},
					"start_location": {Type: "string", Description: "Where the route begins"},
					"viewing_duration_minutes": {
						Type: "integer", Description: "Time spent at each property", Default: defaultViewingMinutes,
					},
					"buffer_minutes": {
						Type: "integer", Description: "Slack between viewings", Default: defaultBufferMinutes,
					},
				},
				Required: []string{"properties", "start_location"},
			},
			h.optimizeViewingRoute),
		mcp.MustTool("calculate_travel_time",
			"Estimate travel time and distance between two locations",
			mcp.ToolSchema{
				Type: "object",
				Properties: map[string]mcp.Property{
					"origin":         {Type: "string", Description: "Starting location"},
					"destination":    {Type: "string", Description: "Destination address"},
					"departure_time": {Type: "string", Description: "RFC3339 departure time, or \"now\"", Default: "now"},
				},
				Required: []string{"origin", "destination"},
			},
			h.calculateTravelTime),
		mcp.MustTool("validate_address",
			"Validate and standardize a property address",
			mcp.ToolSchema{
				Type: "object",
				Properties: map[string]mcp.Property{
					"address":             {Type: "string", Description: "Address to validate"},
					"include_coordinates": {Type: "boolean", Description: "Include lat/lng in the result", Default: false},
				},
				Required: []string{"address"},
			},
			h.validateAddress),
	)
	return s
}

func (h *handlers) optimizeViewingRoute(params map[string]any) (map[string]any, error) {
	properties := mcp.MapsArg(params, "properties")
	startLocation := mcp.StringArg(params, "start_location", "")
	viewingMinutes := mcp.IntArg(params, "viewing_duration_minutes", defaultViewingMinutes)
	bufferMinutes := mcp.IntArg(params, "buffer_minutes", defaultBufferMinutes)

	if len(properties) == 0 {
		return nil, fmt.Errorf("properties is empty")
	}

	addresses := make([]string, 0, len(properties)+1)
	addresses = append(addresses, startLocation)
	for i, p := range properties {
		addr := mcp.StringArg(p, "address", "")
		if addr == "" {
			return nil, fmt.Errorf("properties[%d] has no address", i)
		}
		addresses = append(addresses, addr)
	}

	matrix, err := h.backend.Matrix(context.Background(), addresses)
	if err != nil {
		return nil, err
	}

	order, totalMinutes := nearestNeighborOrder(matrix)
	startAt := h.now()
	stops := buildItinerary(order, matrix, addresses, properties, startAt, viewingMinutes, bufferMinutes)

	route := make([]map[string]any, len(stops))
	var completion time.Time
	for i, stop := range stops {
		entry := map[string]any{
			"order":        stop.Order,
			"location":     stop.Location,
			"type":         stop.Type,
			"arrival_time": stop.Arrival.Format(time.RFC3339),
		}
		if stop.Type == "viewing" {
			entry["departure_time"] = stop.Departure.Format(time.RFC3339)
			entry["travel_time_from_previous_minutes"] = stop.TravelFromPrev
			entry["viewing_duration_minutes"] = stop.ViewingDuration
			entry["property_data"] = stop.Property
			completion = stop.Departure
		}
		route[i] = entry
	}

	return map[string]any{
		"status":                    "success",
		"optimized_route":           route,
		"total_properties":          len(properties),
		"total_travel_time_minutes": totalMinutes,
		"total_duration_minutes":    int(completion.Sub(startAt).Minutes()),
		"estimated_completion_time": completion.Format(time.RFC3339),
		"optimization_method":       "nearest_neighbor",
		"source":                    h.backend.Source(),
	}, nil
}

func (h *handlers) calculateTravelTime(params map[string]any) (map[string]any, error) {
	origin := mcp.StringArg(params, "origin", "")
	destination := mcp.StringArg(params, "destination", "")

	leg, err := h.backend.TravelTime(context.Background(), origin, destination)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"status":              "success",
		"origin":              origin,
		"destination":         destination,
		"travel_time_minutes": leg.Minutes,
		"distance_miles":      leg.Miles,
		"source":              h.backend.Source(),
	}, nil
}

func (h *handlers) validateAddress(params map[string]any) (map[string]any, error) {
	address := mcp.StringArg(params, "address", "")
	includeCoords := mcp.BoolArg(params, "include_coordinates", false)

	loc, formatted, err := h.backend.Geocode(context.Background(), address)
	if err != nil {
		return map[string]any{
			"status":     "invalid",
			"error":      err.Error(),
			"suggestion": address + ", Austin, TX",
			"source":     h.backend.Source(),
		}, nil
	}

	result := map[string]any{
		"status":               "valid",
		"standardized_address": formatted,
		"source":               h.backend.Source(),
	}
	if includeCoords {
		result["coordinates"] = map[string]any{"lat": loc.Lat, "lng": loc.Lng}
	}
	return result, nil
}
