package notify

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mempirate/pdfmon/log"
)

const (
	// DefaultEndpoint is the Pushover message API.
	DefaultEndpoint = "https://api.pushover.net/1/messages.json"

	// Title is the fixed notification title.
	Title = "Lingen PDF Monitor"
)

// Pushover delivers messages through the Pushover push API. Delivery is
// best-effort: every failure is logged and swallowed, so a broken
// notification channel can never abort a run.
type Pushover struct {
	log      zerolog.Logger
	client   *http.Client
	endpoint string

	userKey  string
	appToken string
}

func NewPushover(userKey, appToken string, timeout time.Duration) *Pushover {
	return &Pushover{
		log:      log.NewLogger("notify"),
		client:   &http.Client{Timeout: timeout},
		endpoint: DefaultEndpoint,
		userKey:  userKey,
		appToken: appToken,
	}
}

// Notify sends the message. If either credential is missing, sending is
// skipped. Notify never returns an error.
func (p *Pushover) Notify(ctx context.Context, message string) {
	if p.userKey == "" || p.appToken == "" {
		p.log.Info().Msg("Pushover keys missing, no notification sent")
		return
	}

	form := url.Values{
		"token":   {p.appToken},
		"user":    {p.userKey},
		"title":   {Title},
		"message": {message},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to create Pushover request")
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to send Pushover notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		p.log.Error().Int("status", resp.StatusCode).Str("body", strings.TrimSpace(string(body))).Msg("Pushover rejected notification")
		return
	}

	p.log.Info().Msg("Pushover notification sent")
}
