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

package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// mockSlotHours is the fixed daily cadence the mock offers: mid-morning,
// early and late afternoon.
var mockSlotHours = []int{10, 14, 16}

const mockSlotCap = 10

// MockBackend fabricates deterministic availability and event IDs so the
// server stays callable without Google credentials.
type MockBackend struct{}

func (MockBackend) Source() string { return "mock" }

// FreeSlots returns up to mockSlotCap weekday slots at the fixed hours.
func (MockBackend) FreeSlots(_ context.Context, start, end time.Time, duration time.Duration) ([]Slot, error) {
	var slots []Slot
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		for _, hour := range mockSlotHours {
			slotStart := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
			slots = append(slots, Slot{
				Start:           slotStart,
				End:             slotStart.Add(duration),
				DurationMinutes: int(duration.Minutes()),
			})
			if len(slots) == mockSlotCap {
				return slots, nil
			}
		}
	}
	return slots, nil
}

func (MockBackend) CreateEvent(_ context.Context, ev Event) (*CreatedEvent, error) {
	return &CreatedEvent{
		ID:     "mock_event_" + uuid.NewString(),
		Link:   GoogleLink(ev.Summary, ev.Start, ev.End, ev.Location, ev.Description),
		Status: "created",
	}, nil
}
