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

// Package listings serves apartment inventory from a shared TiDB table,
// with an in-memory mock for keyless development.
package listings

import "context"

// Listing is one row of the apartments table.
type Listing struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Price   float64 `json:"price"`
	BedInfo string  `json:"bed_info"`
	Phone   string  `json:"phone"`
}

// Store abstracts where listings come from. Implementations must be safe
// for concurrent use.
type Store interface {
	// Source identifies the backing data for result tagging.
	Source() string
	// Search returns listings in state (and city, when non-empty) priced
	// below maxPrice, cheapest first, at most limit rows.
	Search(ctx context.Context, city, state string, maxPrice float64, limit int) ([]Listing, error)
	// Get returns the listing with the given id, or ErrNotFound.
	Get(ctx context.Context, id int64) (Listing, error)
}

type notFoundError struct{}

func (notFoundError) Error() string { return "listing not found" }

// ErrNotFound is returned by Store.Get when no row matches.
var ErrNotFound = notFoundError{}

func (l Listing) asMap() map[string]any {
	return map[string]any{
		"id":       l.ID,
		"name":     l.Name,
		"address":  l.Address,
		"city":     l.City,
		"state":    l.State,
		"price":    l.Price,
		"bed_info": l.BedInfo,
		"phone":    l.Phone,
	}
}
