package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"nextbus/internal/store"
)

// FileFetcher reads a previously saved page instead of hitting the live
// site. HTML files are reduced to their visible text; other files are
// assumed to hold text already.
type FileFetcher struct {
	Path string
}

func (f *FileFetcher) Name() string {
	return "file"
}

// FetchText ignores url; the page always comes from Path.
func (f *FileFetcher) FetchText(ctx context.Context, url string) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading saved page: %w", err)
	}

	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".html", ".htm":
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("parsing HTML: %w", err)
		}
		return visibleText(doc), nil
	default:
		return string(data), nil
	}
}

// ReplayFetcher returns the text of a snapshot captured earlier.
type ReplayFetcher struct {
	Store store.Store
	Key   string
}

func (f *ReplayFetcher) Name() string {
	return "replay"
}

// FetchText ignores url; the page comes from the stored snapshot.
func (f *ReplayFetcher) FetchText(ctx context.Context, url string) (string, error) {
	snap, err := store.LoadSnapshot(f.Store, f.Key)
	if err != nil {
		return "", err
	}
	return snap.Text, nil
}
