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
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// GoogleBackend serves availability and event creation from the user's
// primary Google calendar.
type GoogleBackend struct {
	service *gcal.Service
}

func NewGoogleBackend(service *gcal.Service) *GoogleBackend {
	return &GoogleBackend{service: service}
}

func (g *GoogleBackend) Source() string { return "google_calendar" }

// FreeSlots queries freebusy for the primary calendar and sweeps business
// hours for windows clear of every busy block.
func (g *GoogleBackend) FreeSlots(ctx context.Context, start, end time.Time, duration time.Duration) ([]Slot, error) {
	dayEnd := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())

	resp, err := g.service.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: start.Format(time.RFC3339),
		TimeMax: dayEnd.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: "primary"}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	var busy []interval
	if cal, ok := resp.Calendars["primary"]; ok {
		for _, period := range cal.Busy {
			bs, err := time.Parse(time.RFC3339, period.Start)
			if err != nil {
				continue
			}
			be, err := time.Parse(time.RFC3339, period.End)
			if err != nil {
				continue
			}
			busy = append(busy, interval{start: bs.In(start.Location()), end: be.In(start.Location())})
		}
	}

	return businessHoursSlots(start, end, duration, busy), nil
}

// CreateEvent inserts the viewing into the primary calendar, notifying
// attendees.
func (g *GoogleBackend) CreateEvent(ctx context.Context, ev Event) (*CreatedEvent, error) {
	event := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       &gcal.EventDateTime{DateTime: ev.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: ev.End.Format(time.RFC3339)},
	}
	if len(ev.Attendees) > 0 {
		attendees := make([]*gcal.EventAttendee, len(ev.Attendees))
		for i, email := range ev.Attendees {
			attendees[i] = &gcal.EventAttendee{Email: email}
		}
		event.Attendees = attendees
	}

	created, err := g.service.Events.Insert("primary", event).
		SendNotifications(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("events insert: %w", err)
	}

	status := created.Status
	if status == "" {
		status = "created"
	}
	return &CreatedEvent{ID: created.Id, Link: created.HtmlLink, Status: status}, nil
}
