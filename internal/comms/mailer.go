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

// Package comms provides the communication MCP server: email over SMTP,
// SMS over Twilio, and the templated messages built on top of them. Both
// transports degrade to logging mocks when credentials are absent.
package comms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Mailer delivers one email. Implementations tag their results via Source.
type Mailer interface {
	Source() string
	Send(ctx context.Context, to, subject, body string, isHTML bool) error
}

// SMTPMailer sends through a real SMTP endpoint.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: from}, nil
}

func (m *SMTPMailer) Source() string { return "smtp" }

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string, isHTML bool) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject(subject)
	if isHTML {
		msg.SetBodyString(mail.TypeTextHTML, body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, body)
	}
	return m.client.DialAndSendWithContext(ctx, msg)
}

// MockMailer records the send in the log and reports success, keeping the
// server callable without SMTP credentials.
type MockMailer struct {
	log *slog.Logger
}

func NewMockMailer() *MockMailer {
	return &MockMailer{log: slog.With("component", "comms.mock-mailer")}
}

func (m *MockMailer) Source() string { return "mock" }

func (m *MockMailer) Send(_ context.Context, to, subject, _ string, _ bool) error {
	m.log.Info("mock email send", "to", to, "subject", subject)
	return nil
}
