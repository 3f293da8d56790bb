package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/mempirate/pdfmon/links"
	"github.com/mempirate/pdfmon/log"
)

// UserAgent identifies the monitor to the fetched site.
const UserAgent = "Mozilla/5.0 (compatible; Lingen-PDF-Monitor/1.0; +github-actions)"

// StatusError is returned when the server answers with a non-success status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.Code)
}

// Extractor fetches a single page and collects the absolute URLs of all
// PDF documents linked from it.
type Extractor struct {
	log    zerolog.Logger
	client *http.Client
}

func New(timeout time.Duration) *Extractor {
	return &Extractor{
		log: log.NewLogger("extract"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Extract downloads the page at rawURL and returns the set of absolute PDF
// URLs found in its anchor elements. An href matches when its lowercase,
// whitespace-trimmed form ends in ".pdf". Relative hrefs are resolved
// against the final request URL, so redirects are handled correctly.
// A page without any matching links yields an empty set, not an error.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (links.Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse HTML")
	}

	// Resolve against the URL the response actually came from, not the
	// one we asked for.
	base := resp.Request.URL

	set := links.New()
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)

		if !strings.HasSuffix(strings.ToLower(href), ".pdf") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			e.log.Debug().Str("href", href).Err(err).Msg("Skipping unparseable href")
			return
		}

		set.Add(base.ResolveReference(ref).String())
	})

	return set, nil
}
