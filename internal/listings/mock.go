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
	"sort"
	"strings"
)

// MockStore serves a fixed Austin inventory so every tool works without
// a database.
type MockStore struct{}

var mockListings = []Listing{
	{ID: 1, Name: "Arbor Lofts", Address: "812 W 12th St", City: "Austin", State: "TX", Price: 1650, BedInfo: "1 bed / 1 bath", Phone: "+15125550142"},
	{ID: 2, Name: "Lamar Flats", Address: "2200 S Lamar Blvd", City: "Austin", State: "TX", Price: 1895, BedInfo: "2 bed / 2 bath", Phone: "+15125550177"},
	{ID: 3, Name: "Fifth & Red", Address: "501 E 5th St", City: "Austin", State: "TX", Price: 2250, BedInfo: "2 bed / 1 bath", Phone: "+15125550198"},
	{ID: 4, Name: "Mueller Commons", Address: "4550 Mueller Blvd", City: "Austin", State: "TX", Price: 1425, BedInfo: "studio", Phone: "+15125550113"},
	{ID: 5, Name: "Barton Creek View", Address: "3816 S Congress Ave", City: "Austin", State: "TX", Price: 2875, BedInfo: "3 bed / 2 bath", Phone: "+15125550164"},
}

func (MockStore) Source() string { return "mock" }

func (MockStore) Search(_ context.Context, city, state string, maxPrice float64, limit int) ([]Listing, error) {
	var out []Listing
	for _, l := range mockListings {
		if !strings.EqualFold(l.State, state) || l.Price >= maxPrice {
			continue
		}
		if city != "" && !strings.EqualFold(l.City, city) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (MockStore) Get(_ context.Context, id int64) (Listing, error) {
	for _, l := range mockListings {
		if l.ID == id {
			return l, nil
		}
	}
	return Listing{}, ErrNotFound
}
