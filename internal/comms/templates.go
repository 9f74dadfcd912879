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

package comms

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"rentscout-mcp/internal/mcp"
)

type coordinationViewing struct {
	Index   int
	Name    string
	Address string
	Price   string
	When    string
	Score   string
	MapsURL string
}

type coordinationData struct {
	UserName string
	Total    int
	Viewings []coordinationViewing
}

var coordinationTmpl = template.Must(template.New("coordination").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: 'Segoe UI', Arial, sans-serif; line-height: 1.6; color: #333; }
    .header { background-color: #2b5876; color: white; padding: 24px; text-align: center; }
    .viewing { background-color: #ffffff; margin: 16px 0; padding: 16px; border-radius: 8px; border: 1px solid #e0e0e0; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Your Apartment Viewing Schedule</h1>
  </div>
  <div style="padding: 20px;">
    <h2>Hi {{.UserName}},</h2>
    <p>We scheduled <strong>{{.Total}} apartment viewings</strong> for you.</p>
{{range .Viewings}}    <div class="viewing">
      <h4>Viewing #{{.Index}}: {{.Name}}{{if .Score}} (score: {{.Score}}/100){{end}}</h4>
      <p><strong>When:</strong> {{.When}}<br>
      <strong>Where:</strong> {{.Address}}<br>
      <strong>Price:</strong> {{.Price}}</p>
      <p><a href="{{.MapsURL}}">View on Google Maps</a></p>
    </div>
{{end}}  </div>
</body>
</html>
`))

// coordinationEmail renders the HTML itinerary sent after bulk scheduling.
func coordinationEmail(userProfile map[string]any, schedule []map[string]any) (string, error) {
	data := coordinationData{
		UserName: mcp.StringArg(userProfile, "name", "Valued Client"),
		Total:    len(schedule),
	}

	for i, viewing := range schedule {
		property := mcp.MapArg(viewing, "property")
		timeSlot := mcp.MapArg(viewing, "time_slot")
		address := mcp.Stringify(property["address"])

		when := "Time TBD"
		if startStr := mcp.StringArg(timeSlot, "start", ""); startStr != "" {
			if start, err := time.Parse(time.RFC3339, startStr); err == nil {
				when = start.Format("Monday, January 2 at 3:04 PM")
			}
		}

		score := ""
		if v, ok := viewing["coordination_score"]; ok {
			score = mcp.Stringify(v)
		}

		data.Viewings = append(data.Viewings, coordinationViewing{
			Index:   i + 1,
			Name:    mcp.Stringify(firstNonNil(property["name"], property["address"])),
			Address: address,
			Price:   mcp.Stringify(property["price"]),
			When:    when,
			Score:   score,
			MapsURL: "https://maps.google.com/?q=" + url.QueryEscape(address),
		})
	}

	var b strings.Builder
	if err := coordinationTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering coordination email: %w", err)
	}
	return b.String(), nil
}

// agentContactMessage renders the plain-text scheduling request sent to a
// property agent.
func agentContactMessage(property, user, viewingTime map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello,\n\n")
	fmt.Fprintf(&b, "My client %s would like to schedule a viewing of %s.\n\n",
		mcp.Stringify(user["name"]), mcp.Stringify(property["address"]))

	if startStr := mcp.StringArg(viewingTime, "start", ""); startStr != "" {
		if start, err := time.Parse(time.RFC3339, startStr); err == nil {
			fmt.Fprintf(&b, "Requested time: %s\n", start.Format("Monday, January 2 at 3:04 PM"))
		} else {
			fmt.Fprintf(&b, "Requested time: %s\n", startStr)
		}
	}
	if phone := mcp.Stringify(user["phone"]); phone != "N/A" {
		fmt.Fprintf(&b, "Client phone: %s\n", phone)
	}
	if email := mcp.Stringify(user["email"]); email != "N/A" {
		fmt.Fprintf(&b, "Client email: %s\n", email)
	}
	b.WriteString("\nPlease confirm whether this time works.\n")
	return b.String()
}

func firstNonNil(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
