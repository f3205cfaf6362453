// Package scraper handles pre-flight web lookups for diagnostics.
package scraper

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"

	"github.com/gocolly/colly"
)

// Scraper handles web lookup operations.
type Scraper struct {
	collector *colly.Collector
}

// New returns a new Scraper instance.
func New() *Scraper {
	collector := colly.NewCollector()
	collector.SetRequestTimeout(15 * time.Second)

	// Lookups are independent, a short link and its expanded form may both
	// be checked in one batch
	collector.AllowURLRevisit = true

	return &Scraper{
		collector: collector,
	}
}

// IsShortLink reports whether the URL points at the platform's short-link
// host.
func IsShortLink(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	return host == consts.ShortLinkHost || host == "www."+consts.ShortLinkHost
}

// ResolveShortLink follows a short link's redirects and returns the
// canonical URL it lands on.
func (s *Scraper) ResolveShortLink(shortURL string) (string, error) {
	c := s.collector.Clone()

	var finalURL string
	c.OnResponse(func(r *colly.Response) {
		finalURL = r.Request.URL.String()
	})

	if err := c.Visit(shortURL); err != nil {
		return "", fmt.Errorf("error visiting webpage %q: %w", shortURL, err)
	}
	if finalURL == "" {
		return "", fmt.Errorf("no response for %q", shortURL)
	}

	logging.D(1, "Resolved %s to %s", shortURL, finalURL)
	return finalURL, nil
}

// PageTitle fetches a page's title, preferring the og:title tag over the
// document title.
func (s *Scraper) PageTitle(pageURL string) (string, error) {
	c := s.collector.Clone()

	var docTitle, ogTitle string
	c.OnHTML("title", func(e *colly.HTMLElement) {
		if docTitle == "" {
			docTitle = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML(`meta[property="og:title"]`, func(e *colly.HTMLElement) {
		ogTitle = strings.TrimSpace(e.Attr("content"))
	})

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("error visiting webpage %q: %w", pageURL, err)
	}

	if ogTitle != "" {
		logging.D(2, "Scraped og:title: %s", ogTitle)
		return ogTitle, nil
	}
	if docTitle != "" {
		logging.D(2, "Scraped title: %s", docTitle)
	} else {
		logging.D(1, "Title not found")
	}
	return docTitle, nil
}
