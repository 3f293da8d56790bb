package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mempirate/pdfmon/links"
	"github.com/mempirate/pdfmon/notify"
)

type fakeExtractor struct {
	set links.Set
	err error
}

func (f *fakeExtractor) Extract(ctx context.Context, url string) (links.Set, error) {
	return f.set, f.err
}

type fakeStore struct {
	prior links.Set

	loadCalls int
	saved     []links.Set
	saveErr   error
}

func (f *fakeStore) Load() links.Set {
	f.loadCalls++
	return f.prior
}

func (f *fakeStore) Save(set links.Set) error {
	f.saved = append(f.saved, set)
	return f.saveErr
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(ctx context.Context, message string) {
	f.messages = append(f.messages, message)
}

func run(t *testing.T, extractor *fakeExtractor, store *fakeStore) (Outcome, *fakeNotifier) {
	t.Helper()
	notifier := &fakeNotifier{}
	m := New("https://example.com/page.html", extractor, store, notifier)
	return m.Run(context.Background()), notifier
}

func TestRunNewLinks(t *testing.T) {
	store := &fakeStore{prior: links.New("https://example.com/a.pdf")}
	extractor := &fakeExtractor{set: links.New("https://example.com/a.pdf", "https://example.com/b.pdf")}

	outcome, notifier := run(t, extractor, store)

	assert.Equal(t, OutcomeNewLinks, outcome)

	// Only the new link is announced.
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Neue PDFs entdeckt:\nhttps://example.com/b.pdf", notifier.messages[0])

	// The full current set is saved, not just the delta.
	require.Len(t, store.saved, 1)
	assert.Equal(t, []string{"https://example.com/a.pdf", "https://example.com/b.pdf"}, store.saved[0].Sorted())
}

func TestRunMessageListsSortedNewLinks(t *testing.T) {
	store := &fakeStore{prior: links.New()}
	extractor := &fakeExtractor{set: links.New(
		"https://example.com/c.pdf",
		"https://example.com/a.pdf",
		"https://example.com/b.pdf",
	)}

	_, notifier := run(t, extractor, store)

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Neue PDFs entdeckt:\nhttps://example.com/a.pdf\nhttps://example.com/b.pdf\nhttps://example.com/c.pdf", notifier.messages[0])
}

func TestRunNoNewLinks(t *testing.T) {
	store := &fakeStore{prior: links.New("https://example.com/a.pdf", "https://example.com/b.pdf")}
	extractor := &fakeExtractor{set: links.New("https://example.com/a.pdf")}

	outcome, notifier := run(t, extractor, store)

	// A link disappearing from the page is not news, and the state file
	// keeps the old set.
	assert.Equal(t, OutcomeNoNewLinks, outcome)
	assert.Empty(t, notifier.messages)
	assert.Empty(t, store.saved)
}

func TestRunEqualSets(t *testing.T) {
	store := &fakeStore{prior: links.New("https://example.com/a.pdf")}
	extractor := &fakeExtractor{set: links.New("https://example.com/a.pdf")}

	outcome, notifier := run(t, extractor, store)

	assert.Equal(t, OutcomeNoNewLinks, outcome)
	assert.Empty(t, notifier.messages)
	assert.Empty(t, store.saved)
}

func TestRunFetchFailure(t *testing.T) {
	store := &fakeStore{prior: links.New("https://example.com/a.pdf")}
	extractor := &fakeExtractor{err: errors.New("connection refused")}

	outcome, notifier := run(t, extractor, store)

	assert.Equal(t, OutcomeFetchFailed, outcome)
	assert.Empty(t, notifier.messages)
	assert.Equal(t, 0, store.loadCalls, "state must not be consulted after a fetch failure")
	assert.Empty(t, store.saved)
}

func TestRunEmptyExtraction(t *testing.T) {
	store := &fakeStore{prior: links.New("https://example.com/a.pdf")}
	extractor := &fakeExtractor{set: links.New()}

	outcome, notifier := run(t, extractor, store)

	assert.Equal(t, OutcomeNoLinks, outcome)
	assert.Empty(t, notifier.messages)
	assert.Equal(t, 0, store.loadCalls)
	assert.Empty(t, store.saved)
}

func TestRunSaveFailureKeepsOutcome(t *testing.T) {
	store := &fakeStore{prior: links.New(), saveErr: errors.New("disk full")}
	extractor := &fakeExtractor{set: links.New("https://example.com/a.pdf")}

	outcome, notifier := run(t, extractor, store)

	assert.Equal(t, OutcomeNewLinks, outcome)
	assert.Len(t, notifier.messages, 1)
}

func TestRunWithoutCredentialsStillSaves(t *testing.T) {
	store := &fakeStore{prior: links.New()}
	extractor := &fakeExtractor{set: links.New("https://example.com/a.pdf")}

	// A real notifier with no credentials skips sending without error.
	m := New("https://example.com/page.html", extractor, store, notify.NewPushover("", "", time.Second))
	outcome := m.Run(context.Background())

	assert.Equal(t, OutcomeNewLinks, outcome)
	require.Len(t, store.saved, 1)
	assert.Equal(t, []string{"https://example.com/a.pdf"}, store.saved[0].Sorted())
}
