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
	"strings"
	"time"

	"rentscout-mcp/internal/mcp"
)

const (
	ServerName     = "calendar-server"
	serverVersion  = "1.0.0"
	defaultViewing = 90 // minutes
)

type handlers struct {
	backend Backend
}

// NewServer builds the calendar MCP server around the given backend.
func NewServer(backend Backend) *mcp.Server {
	h := &handlers{backend: backend}

	s := mcp.NewServer(ServerName, serverVersion, []string{
		"calendar_read",
		"calendar_write",
		"availability_check",
		"event_creation",
		"reminder_management",
	})
	s.MustRegister(
		mcp.MustTool("get_availability",
			"Check calendar availability for apartment viewing scheduling",
			mcp.ToolSchema{
				Type: "object",
				Properties: map[string]mcp.Property{
					"start_date": {Type: "string", Description: "Start date in YYYY-MM-DD format"},
					"end_date":   {Type: "string", Description: "End date in YYYY-MM-DD format"},
					"duration_minutes": {
						Type:        "integer",
						Description: "Duration of each viewing slot in minutes",
						Default:     defaultViewing,
					},
				},
				Required: []string{"start_date", "end_date"},
			},
			h.getAvailability),
		mcp.MustTool("create_viewing_event",
			"Create an apartment viewing calendar event with property details",
			mcp.ToolSchema{
				Type: "object",
				Properties: map[string]mcp.Property{
					"property_data": {Type: "object", Description: "Property information including address, price, agent details"},
					"viewing_time":  {Type: "object", Description: "Viewing time slot with start and end times (RFC3339)"},
					"attendees":     {Type: "array", Description: "Email addresses of attendees"},
					"multi_agent_insights": {
						Type:        "object",
						Description: "Price, ROI, and safety insight fields woven into the event description",
					},
				},
				Required: []string{"property_data", "viewing_time"},
			},
			h.createViewingEvent),
		mcp.MustTool("create_bulk_viewing_events",
			"Create multiple viewing events in one call",
			mcp.ToolSchema{
				Type: "object",
				Properties: map[string]mcp.Property{
					"viewing_schedule": {Type: "array", Description: "List of viewing appointments, each with property and time_slot"},
					"user_email":       {Type: "string", Description: "User email added to attendees"},
				},
				Required: []string{"viewing_schedule"},
			},
			h.createBulkViewingEvents),
		mcp.MustTool("generate_calendar_links",
			"Generate add-to-calendar links (Google, Outlook, Yahoo, ICS) for an event",
			mcp.ToolSchema{
				Type: "object",
				Properties: map[string]mcp.Property{
					"title":       {Type: "string", Description: "Event title"},
					"start":       {Type: "string", Description: "Event start in RFC3339"},
					"end":         {Type: "string", Description: "Event end in RFC3339"},
					"location":    {Type: "string", Description: "Event location"},
					"description": {Type: "string", Description: "Event description"},
				},
				Required: []string{"title", "start", "end"},
			},
			h.generateCalendarLinks),
	)
	return s
}

func (h *handlers) getAvailability(params map[string]any) (map[string]any, error) {
	startDate := mcp.StringArg(params, "start_date", "")
	endDate := mcp.StringArg(params, "end_date", "")
	duration := time.Duration(mcp.IntArg(params, "duration_minutes", defaultViewing)) * time.Minute

	start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date %q: %w", startDate, err)
	}
	end, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date %q: %w", endDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end_date %s is before start_date %s", endDate, startDate)
	}

	slots, err := h.backend.FreeSlots(context.Background(), start, end, duration)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"status":             "success",
		"availability_slots": slotMaps(slots),
		"source":             h.backend.Source(),
	}, nil
}

func (h *handlers) createViewingEvent(params map[string]any) (map[string]any, error) {
	property := mcp.MapArg(params, "property_data")
	viewing := mcp.MapArg(params, "viewing_time")
	attendees := mcp.StringsArg(params, "attendees")
	insights := mcp.MapArg(params, "multi_agent_insights")

	start, end, err := viewingWindow(viewing)
	if err != nil {
		return nil, err
	}

	address := mcp.Stringify(property["address"])
	summary := "Apartment Viewing: " + mcp.Stringify(firstNonNil(property["name"], property["address"]))
	ev := Event{
		Summary:     summary,
		Description: viewingDescription(property, insights),
		Location:    address,
		Start:       start,
		End:         end,
		Attendees:   attendees,
	}

	created, err := h.backend.CreateEvent(context.Background(), ev)
	if err != nil {
		return nil, err
	}

	link := created.Link
	if link == "" {
		link = GoogleLink(ev.Summary, ev.Start, ev.End, ev.Location, ev.Description)
	}
	return map[string]any{
		"status":        created.Status,
		"event_id":      created.ID,
		"calendar_link": link,
		"source":        h.backend.Source(),
	}, nil
}

func (h *handlers) createBulkViewingEvents(params map[string]any) (map[string]any, error) {
	schedule := mcp.MapsArg(params, "viewing_schedule")
	userEmail := mcp.StringArg(params, "user_email", "")

	results := make([]map[string]any, 0, len(schedule))
	successful := 0
	for _, viewing := range schedule {
		eventParams := map[string]any{
			"property_data":        viewing["property"],
			"viewing_time":         viewing["time_slot"],
			"multi_agent_insights": viewing["insights"],
		}
		if userEmail != "" {
			eventParams["attendees"] = []string{userEmail}
		}

		property := mcp.MapArg(eventParams, "property_data")
		entry := map[string]any{"property_address": mcp.Stringify(property["address"])}

		result, err := h.createViewingEvent(eventParams)
		if err != nil {
			entry["result"] = map[string]any{"status": "error", "error": err.Error()}
		} else {
			entry["result"] = result
			if result["status"] == "created" || result["status"] == "confirmed" {
				successful++
			}
		}
		results = append(results, entry)
	}

	return map[string]any{
		"status":            "completed",
		"total_events":      len(results),
		"successful_events": successful,
		"results":           results,
		"source":            h.backend.Source(),
	}, nil
}

func (h *handlers) generateCalendarLinks(params map[string]any) (map[string]any, error) {
	title := mcp.StringArg(params, "title", "")
	startStr := mcp.StringArg(params, "start", "")
	endStr := mcp.StringArg(params, "end", "")

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid start %q: %w", startStr, err)
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, fmt.Errorf("invalid end %q: %w", endStr, err)
	}

	links := AllLinks(title, start, end,
		mcp.StringArg(params, "location", ""),
		mcp.StringArg(params, "description", ""))
	return map[string]any{
		"status": "success",
		"title":  title,
		"links":  links,
	}, nil
}

// viewingWindow extracts start/end from a viewing_time object; a missing
// end defaults to start plus the standard viewing duration.
func viewingWindow(viewing map[string]any) (time.Time, time.Time, error) {
	startStr := mcp.StringArg(viewing, "start", "")
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("viewing_time.start %q is not RFC3339: %w", startStr, err)
	}

	endStr := mcp.StringArg(viewing, "end", "")
	if endStr == "" {
		return start, start.Add(defaultViewing * time.Minute), nil
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("viewing_time.end %q is not RFC3339: %w", endStr, err)
	}
	return start, end, nil
}

// viewingDescription interpolates property details and any supplied
// multi-source insight fields into the event body. Purely presentational.
func viewingDescription(property, insights map[string]any) string {
	var b strings.Builder
	b.WriteString("Apartment viewing\n\n")
	fmt.Fprintf(&b, "Address: %s\n", mcp.Stringify(property["address"]))
	fmt.Fprintf(&b, "Price: %s\n", mcp.Stringify(property["price"]))
	if property["bedrooms"] != nil || property["bathrooms"] != nil {
		fmt.Fprintf(&b, "Layout: %sBR/%sBA\n",
			mcp.Stringify(property["bedrooms"]), mcp.Stringify(property["bathrooms"]))
	}
	if property["phone"] != nil {
		fmt.Fprintf(&b, "Contact: %s\n", mcp.Stringify(property["phone"]))
	}

	if len(insights) > 0 {
		b.WriteString("\nInsights\n")
		for _, f := range []struct{ key, label string }{
			{"agent1_score", "Investment score"},
			{"market_position", "Market position"},
			{"roi_projection", "ROI projection"},
			{"safety_score", "Safety score"},
			{"walkability", "Walkability"},
			{"lifestyle_fit", "Lifestyle fit"},
			{"coordination_score", "Coordination score"},
		} {
			if v, ok := insights[f.key]; ok {
				fmt.Fprintf(&b, "%s: %s\n", f.label, mcp.Stringify(v))
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func slotMaps(slots []Slot) []map[string]any {
	out := make([]map[string]any, len(slots))
	for i, s := range slots {
		out[i] = map[string]any{
			"start":            s.Start.Format(time.RFC3339),
			"end":              s.End.Format(time.RFC3339),
			"duration_minutes": s.DurationMinutes,
		}
	}
	return out
}

func firstNonNil(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
