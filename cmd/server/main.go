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

// Command server hosts the rentscout tool servers over stdio. Each backend
// is selected once at startup: real when its credentials resolve, mock
// otherwise, so the process always comes up.
package main

import (
	"context"
	"log/slog"
	"os"

	"rentscout-mcp/internal/auth"
	"rentscout-mcp/internal/calendar"
	"rentscout-mcp/internal/comms"
	"rentscout-mcp/internal/config"
	"rentscout-mcp/internal/listings"
	"rentscout-mcp/internal/maps"
	"rentscout-mcp/internal/mcp"
)

const (
	appName    = "rentscout-mcp"
	appVersion = "1.0.0"
)

func main() {
	// Stdout carries the RPC stream, so all logging goes to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := config.FromEnv()

	registry := mcp.NewRegistry()
	registry.MustRegisterServer(calendar.NewServer(calendarBackend(ctx, cfg, logger)))
	registry.MustRegisterServer(comms.NewServer(mailer(cfg, logger), texter(cfg, logger)))
	registry.MustRegisterServer(maps.NewServer(mapsBackend(cfg, logger)))
	registry.MustRegisterServer(listings.NewServer(listingsStore(ctx, cfg, logger)))

	host := mcp.NewStdioHost(registry, appName, appVersion)
	if err := host.Run(); err != nil {
		logger.Error("stdio host stopped", "error", err)
		os.Exit(1)
	}
}

func calendarBackend(ctx context.Context, cfg config.Config, log *slog.Logger) calendar.Backend {
	svc, err := auth.CalendarService(ctx, cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
	if err != nil {
		log.Warn("calendar credentials unavailable, using mock backend", "error", err)
		return calendar.MockBackend{}
	}
	log.Info("calendar backend ready", "source", "google")
	return calendar.NewGoogleBackend(svc)
}

func mailer(cfg config.Config, log *slog.Logger) comms.Mailer {
	if !cfg.SMTPConfigured() {
		log.Warn("SMTP not configured, using mock mailer")
		return comms.NewMockMailer()
	}
	m, err := comms.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	if err != nil {
		log.Warn("SMTP client setup failed, using mock mailer", "error", err)
		return comms.NewMockMailer()
	}
	log.Info("mailer ready", "host", cfg.SMTPHost)
	return m
}

func texter(cfg config.Config, log *slog.Logger) comms.Texter {
	if !cfg.TwilioConfigured() {
		log.Warn("Twilio not configured, using mock texter")
		return comms.NewMockTexter()
	}
	log.Info("texter ready", "from", cfg.TwilioFromNumber)
	return comms.NewTwilioTexter(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
}

func mapsBackend(cfg config.Config, log *slog.Logger) maps.Backend {
	if cfg.MapsAPIKey == "" {
		log.Warn("Google Maps API key not set, using mock backend")
		return maps.MockBackend{}
	}
	b, err := maps.NewGoogleBackend(cfg.MapsAPIKey)
	if err != nil {
		log.Warn("Google Maps client setup failed, using mock backend", "error", err)
		return maps.MockBackend{}
	}
	log.Info("maps backend ready", "source", "google")
	return b
}

func listingsStore(ctx context.Context, cfg config.Config, log *slog.Logger) listings.Store {
	if cfg.ListingsDSN == "" {
		log.Warn("TIDB_DSN not set, using mock listings store")
		return listings.MockStore{}
	}
	s, err := listings.OpenSQL(ctx, cfg.ListingsDSN)
	if err != nil {
		log.Warn("listings database unavailable, using mock store", "error", err)
		return listings.MockStore{}
	}
	log.Info("listings store ready", "source", "tidb")
	return s
}
