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
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Add-to-calendar deep links let a recipient put a viewing on whichever
// calendar they use without granting any API access.

const linkTimeFormat = "20060102T150405Z"

// GoogleLink builds a calendar.google.com render URL for the event.
func GoogleLink(title string, start, end time.Time, location, description string) string {
	v := url.Values{}
	v.Set("action", "TEMPLATE")
	v.Set("text", title)
	v.Set("dates", start.UTC().Format(linkTimeFormat)+"/"+end.UTC().Format(linkTimeFormat))
	if description != "" {
		v.Set("details", description)
	}
	if location != "" {
		v.Set("location", location)
	}
	return "https://calendar.google.com/calendar/render?" + v.Encode()
}

// OutlookLink builds an outlook.live.com compose deeplink.
func OutlookLink(title string, start, end time.Time, location, description string) string {
	v := url.Values{}
	v.Set("path", "/calendar/action/compose")
	v.Set("rru", "addevent")
	v.Set("subject", title)
	v.Set("startdt", start.UTC().Format(time.RFC3339))
	v.Set("enddt", end.UTC().Format(time.RFC3339))
	if description != "" {
		v.Set("body", description)
	}
	if location != "" {
		v.Set("location", location)
	}
	return "https://outlook.live.com/calendar/0/deeplink/compose?" + v.Encode()
}

// YahooLink builds a calendar.yahoo.com event URL.
func YahooLink(title string, start, end time.Time, location, description string) string {
	v := url.Values{}
	v.Set("v", "60")
	v.Set("title", title)
	v.Set("st", start.UTC().Format(linkTimeFormat))
	v.Set("et", end.UTC().Format(linkTimeFormat))
	if description != "" {
		v.Set("desc", description)
	}
	if location != "" {
		v.Set("in_loc", location)
	}
	return "https://calendar.yahoo.com/?" + v.Encode()
}

// ICS renders an RFC 5545 calendar object for mail attachments and
// download links.
func ICS(title string, start, end time.Time, location, description string) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//rentscout-mcp//viewing-scheduler//EN\r\n")
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "DTSTAMP:%s\r\n", time.Now().UTC().Format(linkTimeFormat))
	fmt.Fprintf(&b, "DTSTART:%s\r\n", start.UTC().Format(linkTimeFormat))
	fmt.Fprintf(&b, "DTEND:%s\r\n", end.UTC().Format(linkTimeFormat))
	fmt.Fprintf(&b, "SUMMARY:%s\r\n", icsEscape(title))
	if location != "" {
		fmt.Fprintf(&b, "LOCATION:%s\r\n", icsEscape(location))
	}
	if description != "" {
		fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", icsEscape(description))
	}
	b.WriteString("END:VEVENT\r\n")
	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func icsEscape(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}

// AllLinks bundles every link format for one event.
func AllLinks(title string, start, end time.Time, location, description string) map[string]any {
	return map[string]any{
		"google":  GoogleLink(title, start, end, location, description),
		"outlook": OutlookLink(title, start, end, location, description),
		"yahoo":   YahooLink(title, start, end, location, description),
		"ics":     ICS(title, start, end, location, description),
	}
}
