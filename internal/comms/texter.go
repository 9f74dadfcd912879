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
	"fmt"
	"log/slog"
	"regexp"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Texter delivers one SMS and returns the provider message ID.
type Texter interface {
	Source() string
	Send(ctx context.Context, to, body string) (string, error)
}

var e164 = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

// TwilioTexter sends through the Twilio Messaging API.
type TwilioTexter struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioTexter(accountSID, authToken, from string) *TwilioTexter {
	return &TwilioTexter{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func (t *TwilioTexter) Source() string { return "twilio" }

func (t *TwilioTexter) Send(_ context.Context, to, body string) (string, error) {
	if !e164.MatchString(to) {
		return "", fmt.Errorf("phone number %q is not in E.164 format", to)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio send: %w", err)
	}
	if resp.Sid != nil {
		return *resp.Sid, nil
	}
	return "", nil
}

// MockTexter logs the message and fabricates a message ID.
type MockTexter struct {
	log *slog.Logger
}

func NewMockTexter() *MockTexter {
	return &MockTexter{log: slog.With("component", "comms.mock-texter")}
}

func (m *MockTexter) Source() string { return "mock" }

func (m *MockTexter) Send(_ context.Context, to, body string) (string, error) {
	if !e164.MatchString(to) {
		return "", fmt.Errorf("phone number %q is not in E.164 format", to)
	}
	m.log.Info("mock sms send", "to", to, "chars", len(body))
	return "mock_sms", nil
}
