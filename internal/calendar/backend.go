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

// Package calendar provides the calendar MCP server: availability lookup,
// viewing-event creation, and add-to-calendar link generation, backed by
// either Google Calendar or a deterministic mock.
package calendar

import (
	"context"
	"time"
)

// Slot is one bookable viewing window.
type Slot struct {
	Start           time.Time
	End             time.Time
	DurationMinutes int
}

// Event describes a viewing event to create.
type Event struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Attendees   []string
}

// CreatedEvent reports the outcome of event creation.
type CreatedEvent struct {
	ID     string
	Link   string
	Status string
}

// Backend is the calendar capability behind the server. Exactly one
// implementation is chosen at construction; mock and real must satisfy the
// same slot invariants (weekday business hours, start before end), which
// the contract test pins down.
type Backend interface {
	// Source tags results so callers can tell synthetic data from live data.
	Source() string
	// FreeSlots returns bookable windows between start and end (inclusive
	// dates), each of the requested duration.
	FreeSlots(ctx context.Context, start, end time.Time, duration time.Duration) ([]Slot, error)
	// CreateEvent books a viewing.
	CreateEvent(ctx context.Context, ev Event) (*CreatedEvent, error)
}

// Viewing appointments happen during business hours on weekdays.
const (
	businessStartHour = 9
	businessEndHour   = 18
	slotStep          = 30 * time.Minute
)

type interval struct {
	start, end time.Time
}

// businessHoursSlots sweeps each weekday between start and end dates in
// 30-minute steps across 09:00-18:00, keeping every window of the given
// duration that does not overlap a busy interval.
func businessHoursSlots(start, end time.Time, duration time.Duration, busy []interval) []Slot {
	var slots []Slot
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), businessStartHour, 0, 0, 0, day.Location())
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), businessEndHour, 0, 0, 0, day.Location())

		for cur := dayStart; !cur.Add(duration).After(dayEnd); cur = cur.Add(slotStep) {
			slotEnd := cur.Add(duration)
			if overlapsAny(cur, slotEnd, busy) {
				continue
			}
			slots = append(slots, Slot{
				Start:           cur,
				End:             slotEnd,
				DurationMinutes: int(duration.Minutes()),
			})
		}
	}
	return slots
}

func overlapsAny(start, end time.Time, busy []interval) bool {
	for _, b := range busy {
		if start.Before(b.end) && b.start.Before(end) {
			return true
		}
	}
	return false
}
