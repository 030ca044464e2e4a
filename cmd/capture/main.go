// Fetches the schedule page with the configured fetcher and saves its text
// as a snapshot, locally or in a Cloud Storage bucket. Prints the snapshot
// key, which nextbus --replay accepts.
//
// Usage: CHROME_PATH=/path/to/chromium go run ./cmd/capture [--gcs-bucket bucket]
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"nextbus/internal/config"
	"nextbus/internal/fetcher"
	"nextbus/internal/store"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load("capture", os.Args[1:], os.LookupEnv)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	s, closeStore, err := store.Open(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile, cfg.StoreDir)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	f, err := fetcher.New(cfg, s)
	if err != nil {
		log.Fatalf("Failed to create fetcher: %v", err)
	}

	snap, err := capture(ctx, cfg, f, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.GCSBucket != "" {
		log.Printf("Stored snapshot in GCS bucket %s", cfg.GCSBucket)
	} else {
		log.Printf("Stored snapshot in %s", cfg.StoreDir)
	}
	fmt.Println(snap.Key)
}

func capture(ctx context.Context, cfg *config.Config, f fetcher.Fetcher, s store.Store) (*store.Snapshot, error) {
	url := cfg.URL()
	log.Printf("Fetching %s (%s)", url, f.Name())

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	text, err := f.FetchText(fetchCtx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	snap := &store.Snapshot{
		URL:       url,
		StopID:    cfg.StopID,
		Route:     cfg.Route,
		Direction: cfg.Direction,
		FetchedAt: time.Now().UTC(),
		Text:      text,
	}
	if err := store.SaveSnapshot(s, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
