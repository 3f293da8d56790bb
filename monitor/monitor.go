package monitor

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mempirate/pdfmon/links"
	"github.com/mempirate/pdfmon/log"
)

// Outcome is the terminal result of a single run.
type Outcome string

const (
	// OutcomeFetchFailed means the page could not be fetched or parsed.
	// State is left untouched: a transient fetch failure must not be
	// mistaken for "no PDFs found".
	OutcomeFetchFailed Outcome = "fetch-failed"
	// OutcomeNoLinks means the page yielded zero PDF links. This is
	// treated as a likely parsing or availability problem, so state is
	// neither consulted nor modified.
	OutcomeNoLinks Outcome = "no-links-found"
	// OutcomeNoNewLinks means every link on the page was already known.
	OutcomeNoNewLinks Outcome = "no-new-links"
	// OutcomeNewLinks means new links were found, notified and saved.
	OutcomeNewLinks Outcome = "new-links-notified"
)

// Extractor produces the current link set from the monitored page.
type Extractor interface {
	Extract(ctx context.Context, url string) (links.Set, error)
}

// Store loads and saves the persisted link set.
type Store interface {
	Load() links.Set
	Save(links.Set) error
}

// Notifier delivers a message. It must be best-effort and never fail the
// caller.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Monitor runs the fetch, diff, notify, persist pipeline exactly once.
type Monitor struct {
	log       zerolog.Logger
	url       string
	extractor Extractor
	store     Store
	notifier  Notifier
}

func New(url string, extractor Extractor, store Store, notifier Notifier) *Monitor {
	return &Monitor{
		log:       log.NewLogger("monitor"),
		url:       url,
		extractor: extractor,
		store:     store,
		notifier:  notifier,
	}
}

// Run performs one pass and returns its terminal outcome. New links are
// notified before the full current set replaces the persisted state; when
// nothing changed, the state file is not rewritten.
func (m *Monitor) Run(ctx context.Context) Outcome {
	current, err := m.extractor.Extract(ctx, m.url)
	if err != nil {
		m.log.Error().Err(err).Str("url", m.url).Msg("Failed to fetch page")
		return OutcomeFetchFailed
	}

	if current.Len() == 0 {
		m.log.Warn().Str("url", m.url).Msg("Page contained no PDF links, leaving state untouched")
		return OutcomeNoLinks
	}

	old := m.store.Load()
	newLinks := current.Diff(old)

	if newLinks.Len() == 0 {
		m.log.Info().Int("known", current.Len()).Msg("No new PDFs found")
		return OutcomeNoNewLinks
	}

	sorted := newLinks.Sorted()
	m.notifier.Notify(ctx, formatMessage(sorted))

	// The full current set supersedes the prior state, dropping links
	// that are no longer on the page.
	if err := m.store.Save(current); err != nil {
		m.log.Error().Err(err).Msg("Failed to save state, next run will re-notify")
	}

	for _, link := range sorted {
		m.log.Info().Str("link", link).Msg("New PDF found")
	}

	return OutcomeNewLinks
}

func formatMessage(sorted []string) string {
	return "Neue PDFs entdeckt:\n" + strings.Join(sorted, "\n")
}
