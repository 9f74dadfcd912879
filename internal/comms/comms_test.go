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
	"context"
	"errors"
	"strings"
	"testing"

	"rentscout-mcp/internal/mcp"
)

// failingMailer simulates an SMTP outage.
type failingMailer struct{}

func (failingMailer) Source() string { return "smtp" }
func (failingMailer) Send(context.Context, string, string, string, bool) error {
	return errors.New("dial tcp: connection refused")
}

// recordingMailer captures the last send for assertions.
type recordingMailer struct {
	to, subject, body string
	isHTML            bool
}

func (r *recordingMailer) Source() string { return "mock" }
func (r *recordingMailer) Send(_ context.Context, to, subject, body string, isHTML bool) error {
	r.to, r.subject, r.body, r.isHTML = to, subject, body, isHTML
	return nil
}

func newCommsClient(mailer Mailer, texter Texter) *mcp.Client {
	registry := mcp.NewRegistry()
	registry.MustRegisterServer(NewServer(mailer, texter))
	return mcp.NewClient(registry)
}

func TestSendEmailMock(t *testing.T) {
	client := newCommsClient(NewMockMailer(), NewMockTexter())

	result, err := client.Call(ServerName, "send_email", map[string]any{
		"to_email": "client@example.com",
		"subject":  "Viewing confirmed",
		"message":  "See you at 10am.",
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result["status"] != "sent" {
		t.Fatalf("status = %v, want sent", result["status"])
	}
	if result["source"] != "mock" {
		t.Fatalf("source = %v, want mock", result["source"])
	}
}

func TestSendEmailTransportFailureIsAResultNotAnError(t *testing.T) {
	client := newCommsClient(failingMailer{}, NewMockTexter())

	result, err := client.Call(ServerName, "send_email", map[string]any{
		"to_email": "client@example.com",
		"subject":  "Viewing confirmed",
		"message":  "See you at 10am.",
	})
	if err != nil {
		t.Fatalf("transport failure crossed the dispatch boundary: %v", err)
	}
	if result["status"] != "error" {
		t.Fatalf("status = %v, want error", result["status"])
	}
	if !strings.Contains(result["error"].(string), "connection refused") {
		t.Fatalf("error = %v, want the transport cause", result["error"])
	}
}

func TestSendEmailRequiresSubject(t *testing.T) {
	client := newCommsClient(NewMockMailer(), NewMockTexter())

	_, err := client.Call(ServerName, "send_email", map[string]any{
		"to_email": "client@example.com",
		"message":  "no subject",
	})
	var callErr *mcp.CallError
	if !errors.As(err, &callErr) || callErr.Code != mcp.CodeInvalidParams {
		t.Fatalf("err = %v, want InvalidParams", err)
	}
	if !strings.Contains(callErr.Message, "subject") {
		t.Fatalf("message = %q, want it to name the missing field", callErr.Message)
	}
}

func TestSendSMSMock(t *testing.T) {
	client := newCommsClient(NewMockMailer(), NewMockTexter())

	result, err := client.Call(ServerName, "send_sms", map[string]any{
		"to_phone": "+15125550147",
		"message":  "Your viewing is confirmed for 10am.",
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result["status"] != "sent" || result["message_id"] != "mock_sms" {
		t.Fatalf("unexpected result: %v", result)
	}

	result, err = client.Call(ServerName, "send_sms", map[string]any{
		"to_phone": "512-555-0147", // not E.164
		"message":  "hi",
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result["status"] != "error" {
		t.Fatalf("status = %v, want error for malformed number", result["status"])
	}
}

func TestContactPropertyAgent(t *testing.T) {
	rec := &recordingMailer{}
	client := newCommsClient(rec, NewMockTexter())

	result, err := client.Call(ServerName, "contact_property_agent", map[string]any{
		"property_data": map[string]any{
			"address":     "812 W 12th St, Austin, TX",
			"agent_email": "agent@example.com",
		},
		"user_data": map[string]any{
			"name":  "Jordan Reyes",
			"email": "jordan@example.com",
		},
		"viewing_time": map[string]any{"start": "2025-01-06T10:00:00-06:00"},
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result["status"] != "contacted" || result["method"] != "email" {
		t.Fatalf("unexpected result: %v", result)
	}
	if rec.to != "agent@example.com" {
		t.Fatalf("sent to %q, want agent@example.com", rec.to)
	}
	if !strings.Contains(rec.body, "Jordan Reyes") || !strings.Contains(rec.body, "812 W 12th St") {
		t.Fatalf("agent message missing client or property details:\n%s", rec.body)
	}
}

func TestSendCoordinationEmail(t *testing.T) {
	rec := &recordingMailer{}
	client := newCommsClient(rec, NewMockTexter())

	result, err := client.Call(ServerName, "send_coordination_email", map[string]any{
		"user_profile": map[string]any{
			"name":  "Jordan Reyes",
			"email": "jordan@example.com",
		},
		"viewing_schedule": []any{
			map[string]any{
				"property": map[string]any{
					"name":    "The Arbor Lofts",
					"address": "812 W 12th St, Austin, TX",
					"price":   "$1,850/mo",
				},
				"time_slot":          map[string]any{"start": "2025-01-06T10:00:00-06:00"},
				"coordination_score": 92,
			},
		},
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result["status"] != "sent" {
		t.Fatalf("status = %v, want sent", result["status"])
	}
	if !rec.isHTML {
		t.Fatal("coordination email must be HTML")
	}
	for _, want := range []string{"Jordan Reyes", "The Arbor Lofts", "$1,850/mo", "score: 92"} {
		if !strings.Contains(rec.body, want) {
			t.Errorf("coordination email missing %q", want)
		}
	}
}
