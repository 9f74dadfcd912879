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
	"math"
	"time"
)

// nearestNeighborOrder greedily visits the closest unvisited stop from the
// current one. Index 0 is the start location and is always first. Ties go
// to the lowest index. The output is a permutation of all indices; global
// optimality is not guaranteed.
func nearestNeighborOrder(matrix [][]Leg) (order []int, totalMinutes float64) {
	n := len(matrix)
	if n == 0 {
		return nil, 0
	}
	order = make([]int, 1, n)
	visited := make([]bool, n)
	visited[0] = true
	current := 0

	for len(order) < n {
		next := -1
		best := math.MaxFloat64
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if matrix[current][j].Minutes < best {
				best = matrix[current][j].Minutes
				next = j
			}
		}
		order = append(order, next)
		visited[next] = true
		totalMinutes += best
		current = next
	}
	return order, totalMinutes
}

// pathMinutes sums the travel time of visiting stops in the given order.
func pathMinutes(matrix [][]Leg, order []int) float64 {
	total := 0.0
	for i := 1; i < len(order); i++ {
		total += matrix[order[i-1]][order[i]].Minutes
	}
	return total
}

// itineraryStop is one entry in the timed route.
type itineraryStop struct {
	Order           int
	Location        string
	Type            string // "start" or "viewing"
	Arrival         time.Time
	Departure       time.Time
	TravelFromPrev  float64 // minutes
	Property        map[string]any
	ViewingDuration int // minutes
}

// buildItinerary walks the ordered stops, adding travel, viewing, and
// buffer time. addresses[0] is the start location; properties[i]
// corresponds to addresses[i+1].
func buildItinerary(order []int, matrix [][]Leg, addresses []string, properties []map[string]any,
	startAt time.Time, viewingMinutes, bufferMinutes int) []itineraryStop {

	stops := make([]itineraryStop, 0, len(order))
	current := startAt

	for i, idx := range order {
		if i == 0 {
			stops = append(stops, itineraryStop{
				Order:     0,
				Location:  addresses[idx],
				Type:      "start",
				Arrival:   current,
				Departure: current,
			})
			continue
		}

		travel := matrix[order[i-1]][idx].Minutes
		arrival := current.Add(time.Duration(travel * float64(time.Minute)))
		departure := arrival.Add(time.Duration(viewingMinutes) * time.Minute)

		stops = append(stops, itineraryStop{
			Order:           i,
			Location:        addresses[idx],
			Type:            "viewing",
			Arrival:         arrival,
			Departure:       departure,
			TravelFromPrev:  travel,
			Property:        properties[idx-1],
			ViewingDuration: viewingMinutes,
		})
		current = departure.Add(time.Duration(bufferMinutes) * time.Minute)
	}
	return stops
}
