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

	"rentscout-mcp/internal/mcp"
)

const (
	ServerName    = "communication-server"
	serverVersion = "1.0.0"
)

type handlers struct {
	mailer Mailer
	texter Texter
}

// NewServer builds the communication MCP server. Transport failures are
// reported inside tool results (status "error"), never as dispatch errors:
// a failed email must not look like a broken server.
func NewServer(mailer Mailer, texter Texter) *mcp.Server {
	h := &handlers{mailer: mailer, texter: texter}

	s := mcp.NewServer(ServerName, serverVersion, []string{
		"email_send",
		"sms_send",
		"template_generation",
		"multi_agent_coordination_email",
		"property_agent_contact",
	})
	s.MustRegister(
		mcp.MustTool("send_email",
			"Send an email with apartment viewing details",
			mcp.ToolSchema{
				Type: "object",
				Properties: map[string]mcp.Property{
					"to_email": {Type: "string", Description: "Recipient email address"},
					"subject":  {Type: "string", Description: "Email subject"},
					"message":  {Type: "string", Description: "Email content"},
					"is_html":  {Type: "boolean", Description: "Whether message contains HTML", Default: false},
				},
				Required: []string{"to_email", "subject", "message"},
			},
			h.sendEmail),
		mcp.MustTool("send_sms",
			"Send an SMS message to a phone number in E.164 format",
			mcp.ToolSchema{
				Type: "object",
				Properties: map[string]mcp.Property{
					"to_phone": {Type: "string", Description: "Recipient phone number (E.164)"},
					"message":  {Type: "string", Description: "SMS content"},
				},
				Required: []string{"to_phone", "message"},
			},
			h.sendSMS),
		mcp.MustTool("contact_property_agent",
			"Contact a property agent to schedule or confirm a viewing",
			mcp.ToolSchema{
				Type: "object",
				Properties: map[string]mcp.Property{
					"property_data":  {Type: "object", Description: "Property information including agent contact details"},
					"user_data":      {Type: "object", Description: "Client name and contact details"},
					"viewing_time":   {Type: "object", Description: "Requested viewing slot"},
					"contact_method": {Type: "string", Description: "email or sms", Default: "email"},
				},
				Required: []string{"property_data", "user_data", "viewing_time"},
			},
			h.contactPropertyAgent),
		mcp.MustTool("send_coordination_email",
			"Send the full viewing-schedule itinerary email",
			mcp.ToolSchema{
				Type: "object",
				Properties: map[string]mcp.Property{
					"user_profile":         {Type: "object", Description: "Recipient profile with name and email"},
					"viewing_schedule":     {Type: "array", Description: "Scheduled viewings with property and time_slot"},
					"multi_agent_insights": {Type: "object", Description: "Optional insight fields"},
				},
				Required: []string{"user_profile", "viewing_schedule"},
			},
			h.sendCoordinationEmail),
	)
	return s
}

func (h *handlers) sendEmail(params map[string]any) (map[string]any, error) {
	to := mcp.StringArg(params, "to_email", "")
	subject := mcp.StringArg(params, "subject", "")
	message := mcp.StringArg(params, "message", "")
	isHTML := mcp.BoolArg(params, "is_html", false)

	if err := h.mailer.Send(context.Background(), to, subject, message, isHTML); err != nil {
		return map[string]any{
			"status":    "error",
			"recipient": to,
			"error":     err.Error(),
			"source":    h.mailer.Source(),
		}, nil
	}
	return map[string]any{
		"status":    "sent",
		"recipient": to,
		"subject":   subject,
		"source":    h.mailer.Source(),
	}, nil
}

func (h *handlers) sendSMS(params map[string]any) (map[string]any, error) {
	to := mcp.StringArg(params, "to_phone", "")
	message := mcp.StringArg(params, "message", "")

	sid, err := h.texter.Send(context.Background(), to, message)
	if err != nil {
		return map[string]any{
			"status":    "error",
			"recipient": to,
			"error":     err.Error(),
			"source":    h.texter.Source(),
		}, nil
	}
	return map[string]any{
		"status":     "sent",
		"recipient":  to,
		"message_id": sid,
		"source":     h.texter.Source(),
	}, nil
}

func (h *handlers) contactPropertyAgent(params map[string]any) (map[string]any, error) {
	property := mcp.MapArg(params, "property_data")
	user := mcp.MapArg(params, "user_data")
	viewingTime := mcp.MapArg(params, "viewing_time")
	method := mcp.StringArg(params, "contact_method", "email")

	message := agentContactMessage(property, user, viewingTime)

	switch method {
	case "email":
		agentEmail := mcp.StringArg(property, "agent_email", "")
		if agentEmail == "" {
			return map[string]any{
				"status": "error",
				"error":  "property_data.agent_email is missing",
				"method": method,
			}, nil
		}
		subject := fmt.Sprintf("Viewing request: %s", mcp.Stringify(property["address"]))
		result, err := h.sendEmail(map[string]any{
			"to_email": agentEmail,
			"subject":  subject,
			"message":  message,
		})
		if err != nil {
			return nil, err
		}
		if result["status"] == "sent" {
			result["status"] = "contacted"
		}
		result["method"] = method
		return result, nil
	case "sms":
		agentPhone := mcp.StringArg(property, "phone", "")
		result, err := h.sendSMS(map[string]any{
			"to_phone": agentPhone,
			"message":  message,
		})
		if err != nil {
			return nil, err
		}
		if result["status"] == "sent" {
			result["status"] = "contacted"
		}
		result["method"] = method
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported contact_method %q (want email or sms)", method)
	}
}

func (h *handlers) sendCoordinationEmail(params map[string]any) (map[string]any, error) {
	userProfile := mcp.MapArg(params, "user_profile")
	schedule := mcp.MapsArg(params, "viewing_schedule")

	toEmail := mcp.StringArg(userProfile, "email", "")
	if toEmail == "" {
		return nil, fmt.Errorf("user_profile.email is missing")
	}

	body, err := coordinationEmail(userProfile, schedule)
	if err != nil {
		return nil, err
	}

	return h.sendEmail(map[string]any{
		"to_email": toEmail,
		"subject":  fmt.Sprintf("Your apartment viewing schedule: %d viewings", len(schedule)),
		"message":  body,
		"is_html":  true,
	})
}
