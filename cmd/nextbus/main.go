// Reports how many minutes until the next buses at the configured stop.
//
// Usage: nextbus [--stop 1235] [--route 18] [--direction EAST] [--page testPage.txt]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"nextbus/internal/clock"
	"nextbus/internal/config"
	"nextbus/internal/fetcher"
	"nextbus/internal/report"
	"nextbus/internal/schedule"
	"nextbus/internal/store"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	cfg, err := config.Load("nextbus", os.Args[1:], os.LookupEnv)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := run(context.Background(), cfg, clock.Real(), os.Stdout); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, c clock.Clock, out io.Writer) error {
	var s store.Store
	if cfg.Fetcher == config.FetcherReplay {
		opened, closeStore, err := store.Open(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile, cfg.StoreDir)
		if err != nil {
			return fmt.Errorf("opening snapshot store: %w", err)
		}
		defer closeStore()
		s = opened
	}

	f, err := fetcher.New(cfg, s)
	if err != nil {
		return err
	}

	url := cfg.URL()
	log.Printf("Fetching %s (%s)", url, f.Name())

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	text, err := f.FetchText(fetchCtx, url)
	if err != nil {
		return fmt.Errorf("fetching page: %w", err)
	}

	times := schedule.ParseTimes(text)
	log.Printf("Found %d scheduled times on page", len(times))

	now := clock.CurrentMoment(c, clock.FixedOffset(cfg.UTCOffsetHours))
	stop := schedule.StopInfo{StopID: cfg.StopID, Route: cfg.Route, Direction: cfg.Direction}

	r, err := schedule.BuildReport(stop, times, now)
	if err != nil {
		return err
	}
	return report.Write(out, r)
}
