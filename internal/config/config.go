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

// Package config gathers the environment-variable configuration consumed
// by the concrete servers. Every value is optional: a missing credential
// selects the corresponding mock backend, never a startup failure.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	// SMTP email delivery.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	// Twilio SMS delivery.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// Google Maps routing and geocoding.
	MapsAPIKey string

	// Google Calendar OAuth files.
	GoogleCredentialsFile string
	GoogleTokenFile       string

	// Listings database (TiDB speaks the MySQL protocol).
	ListingsDSN string
}

func FromEnv() Config {
	return Config{
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     intEnv("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		EmailFrom:    fallbackEnv("EMAIL_FROM", os.Getenv("SMTP_USERNAME")),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),

		MapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),

		GoogleCredentialsFile: fallbackEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		GoogleTokenFile:       fallbackEnv("GOOGLE_TOKEN_FILE", "token.json"),

		ListingsDSN: os.Getenv("TIDB_DSN"),
	}
}

// SMTPConfigured reports whether enough is present to attempt real email.
func (c Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != ""
}

// TwilioConfigured reports whether enough is present to attempt real SMS.
func (c Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

func fallbackEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
