package main

import (
	"context"

	"github.com/mempirate/pdfmon/config"
	"github.com/mempirate/pdfmon/extract"
	"github.com/mempirate/pdfmon/log"
	"github.com/mempirate/pdfmon/monitor"
	"github.com/mempirate/pdfmon/notify"
	"github.com/mempirate/pdfmon/state"
)

func main() {
	cfg := config.FromEnv()

	log := log.NewLogger("main")
	log.Info().Str("url", cfg.WebsiteURL).Str("statePath", cfg.StatePath).Msg("Starting PDF monitor run")

	if cfg.PushoverUserKey == "" || cfg.PushoverAppToken == "" {
		log.Warn().Msg("Pushover credentials not set, notifications are disabled")
	}

	m := monitor.New(
		cfg.WebsiteURL,
		extract.New(cfg.HTTPTimeout),
		state.NewFileStore(cfg.StatePath),
		notify.NewPushover(cfg.PushoverUserKey, cfg.PushoverAppToken, cfg.HTTPTimeout),
	)

	outcome := m.Run(context.Background())
	log.Info().Str("outcome", string(outcome)).Msg("Run finished")
}
