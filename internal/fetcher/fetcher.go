// Package fetcher loads the schedule page and returns its visible text.
//
// The arrival calculations only ever see plain text; how it was obtained
// (headless browser, plain HTTP, a saved file or a stored snapshot) is
// decided here.
package fetcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"nextbus/internal/config"
	"nextbus/internal/store"
)

// Fetcher produces the visible text of a schedule page.
type Fetcher interface {
	// Name identifies the fetcher in logs.
	Name() string

	// FetchText returns the text content of the page at url.
	FetchText(ctx context.Context, url string) (string, error)
}

// New returns the fetcher selected by cfg. The replay fetcher reads from s,
// which may be nil for the other kinds.
func New(cfg *config.Config, s store.Store) (Fetcher, error) {
	switch cfg.Fetcher {
	case config.FetcherBrowser:
		return &BrowserFetcher{
			ChromePath:   cfg.ChromePath,
			UserAgent:    cfg.UserAgent,
			WaitSelector: cfg.WaitSelector,
			Settle:       cfg.Settle,
		}, nil
	case config.FetcherHTTP:
		return NewHTTPFetcher(nil, cfg.UserAgent), nil
	case config.FetcherFile:
		return &FileFetcher{Path: cfg.PageFile}, nil
	case config.FetcherReplay:
		if s == nil {
			return nil, fmt.Errorf("replay fetcher needs a store")
		}
		return &ReplayFetcher{Store: s, Key: cfg.ReplayKey}, nil
	default:
		return nil, fmt.Errorf("unknown fetcher %q", cfg.Fetcher)
	}
}

// visibleText returns the text nodes under the document body, one per
// line, skipping scripts and styles. Keeping nodes on separate lines stops
// neighbouring table cells from running together ("5:45 PM6:15 PM").
func visibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, template").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var lines []string
	collectText(root, &lines)
	return strings.Join(lines, "\n")
}

func collectText(sel *goquery.Selection, lines *[]string) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		if goquery.NodeName(node) == "#text" {
			if text := strings.Join(strings.Fields(node.Text()), " "); text != "" {
				*lines = append(*lines, text)
			}
			return
		}
		collectText(node, lines)
	})
}
