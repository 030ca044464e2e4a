// Package config assembles the run configuration for the stop being watched.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables, then command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"nextbus/internal/clock"
)

const (
	DefaultStopID    = "1235"
	DefaultRoute     = "18"
	DefaultDirection = "EAST"
	DefaultBaseURL   = "https://myride.ometro.com/Schedule"
)

// Fetcher kinds.
const (
	FetcherBrowser = "browser"
	FetcherHTTP    = "http"
	FetcherFile    = "file"
	FetcherReplay  = "replay"
)

// Config describes which schedule page to load and how to load it.
type Config struct {
	StopID         string `yaml:"stop_id"`
	Route          string `yaml:"route"`
	Direction      string `yaml:"direction"`
	BaseURL        string `yaml:"base_url"`
	UTCOffsetHours int    `yaml:"utc_offset_hours"`

	Fetcher      string        `yaml:"fetcher"`
	ChromePath   string        `yaml:"chrome_path"`
	UserAgent    string        `yaml:"user_agent"`
	WaitSelector string        `yaml:"wait_selector"`
	Settle       time.Duration `yaml:"settle"`
	Timeout      time.Duration `yaml:"timeout"`
	PageFile     string        `yaml:"page_file"`

	StoreDir           string `yaml:"store_dir"`
	GCSBucket          string `yaml:"gcs_bucket"`
	GCSCredentialsFile string `yaml:"gcs_credentials_file"`
	ReplayKey          string `yaml:"replay_key"`
}

// Default returns the configuration for route 18 eastbound at stop 1235.
func Default() *Config {
	return &Config{
		StopID:         DefaultStopID,
		Route:          DefaultRoute,
		Direction:      DefaultDirection,
		BaseURL:        DefaultBaseURL,
		UTCOffsetHours: clock.DefaultOffsetHours,
		Fetcher:        FetcherBrowser,
		WaitSelector:   "body",
		Settle:         2 * time.Second,
		Timeout:        60 * time.Second,
		StoreDir:       "snapshots",
	}
}

// URL returns the schedule page address for the configured stop.
func (c *Config) URL() string {
	q := url.Values{}
	q.Set("stopCode", c.StopID)
	q.Set("routeNumber", c.Route)
	q.Set("directionName", c.Direction)
	return c.BaseURL + "?" + q.Encode()
}

// Validate reports the first problem with the configuration, if any.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StopID) == "" {
		return errors.New("stop id is required")
	}
	if strings.TrimSpace(c.Route) == "" {
		return errors.New("route is required")
	}
	if strings.TrimSpace(c.Direction) == "" {
		return errors.New("direction is required")
	}
	if c.UTCOffsetHours < -12 || c.UTCOffsetHours > 14 {
		return fmt.Errorf("utc offset %d out of range [-12, 14]", c.UTCOffsetHours)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	switch c.Fetcher {
	case FetcherBrowser, FetcherHTTP:
		if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
			return fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
		}
	case FetcherFile:
		if c.PageFile == "" {
			return errors.New("file fetcher needs a page file")
		}
	case FetcherReplay:
		if c.ReplayKey == "" {
			return errors.New("replay fetcher needs a snapshot key")
		}
	default:
		return fmt.Errorf("unknown fetcher %q", c.Fetcher)
	}
	return nil
}

// LoadFile merges a YAML file into c. Fields absent from the file keep
// their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
		return nil
	}

	str("BUS_STOP_ID", &c.StopID)
	str("BUS_ROUTE", &c.Route)
	str("BUS_DIRECTION", &c.Direction)
	str("BUS_BASE_URL", &c.BaseURL)
	str("BUS_FETCHER", &c.Fetcher)
	str("CHROME_PATH", &c.ChromePath)
	str("BUS_USER_AGENT", &c.UserAgent)
	str("BUS_WAIT_SELECTOR", &c.WaitSelector)
	str("BUS_PAGE_FILE", &c.PageFile)
	str("STORE_DIR", &c.StoreDir)
	str("GCS_BUCKET", &c.GCSBucket)
	str("GCS_CREDENTIALS_FILE", &c.GCSCredentialsFile)
	str("BUS_REPLAY_KEY", &c.ReplayKey)

	if v, ok := lookup("BUS_UTC_OFFSET"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BUS_UTC_OFFSET: %w", err)
		}
		c.UTCOffsetHours = n
	}
	if err := dur("BUS_SETTLE", &c.Settle); err != nil {
		return err
	}
	return dur("BUS_TIMEOUT", &c.Timeout)
}

// Load builds a Config from defaults, the file named by --config (or
// BUS_CONFIG), the environment and the given command-line arguments.
// It returns pflag.ErrHelp when -h/--help was requested.
func Load(name string, args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	// Flags are parsed into a scratch copy so they can be applied after
	// the file and environment layers.
	flags := *cfg
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "YAML config file (env BUS_CONFIG)")
	fs.StringVarP(&flags.StopID, "stop", "s", flags.StopID, "stop code")
	fs.StringVarP(&flags.Route, "route", "r", flags.Route, "route number")
	fs.StringVarP(&flags.Direction, "direction", "d", flags.Direction, "direction name")
	fs.StringVar(&flags.BaseURL, "base-url", flags.BaseURL, "schedule page base URL")
	fs.IntVar(&flags.UTCOffsetHours, "utc-offset", flags.UTCOffsetHours, "fixed offset from UTC in hours (no DST)")
	fs.StringVarP(&flags.Fetcher, "fetcher", "f", flags.Fetcher, "page fetcher: browser, http, file or replay")
	fs.StringVar(&flags.ChromePath, "chrome-path", flags.ChromePath, "Chrome/Chromium binary")
	fs.StringVar(&flags.UserAgent, "user-agent", flags.UserAgent, "browser user agent")
	fs.StringVar(&flags.WaitSelector, "wait", flags.WaitSelector, "CSS selector to wait for before reading the page")
	fs.DurationVar(&flags.Settle, "settle", flags.Settle, "extra wait for scripts after the page is visible")
	fs.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "overall fetch timeout")
	fs.StringVarP(&flags.PageFile, "page", "p", flags.PageFile, "saved page to read instead of fetching (implies --fetcher=file)")
	fs.StringVar(&flags.StoreDir, "store-dir", flags.StoreDir, "local snapshot directory")
	fs.StringVar(&flags.GCSBucket, "gcs-bucket", flags.GCSBucket, "Cloud Storage bucket for snapshots")
	fs.StringVar(&flags.GCSCredentialsFile, "gcs-credentials", flags.GCSCredentialsFile, "service account JSON for Cloud Storage")
	fs.StringVar(&flags.ReplayKey, "replay", flags.ReplayKey, "snapshot key to replay (implies --fetcher=replay)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	path := *configPath
	if path == "" {
		path, _ = lookup("BUS_CONFIG")
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "stop":
			cfg.StopID = flags.StopID
		case "route":
			cfg.Route = flags.Route
		case "direction":
			cfg.Direction = flags.Direction
		case "base-url":
			cfg.BaseURL = flags.BaseURL
		case "utc-offset":
			cfg.UTCOffsetHours = flags.UTCOffsetHours
		case "fetcher":
			cfg.Fetcher = flags.Fetcher
		case "chrome-path":
			cfg.ChromePath = flags.ChromePath
		case "user-agent":
			cfg.UserAgent = flags.UserAgent
		case "wait":
			cfg.WaitSelector = flags.WaitSelector
		case "settle":
			cfg.Settle = flags.Settle
		case "timeout":
			cfg.Timeout = flags.Timeout
		case "page":
			cfg.PageFile = flags.PageFile
			if !fs.Changed("fetcher") {
				cfg.Fetcher = FetcherFile
			}
		case "store-dir":
			cfg.StoreDir = flags.StoreDir
		case "gcs-bucket":
			cfg.GCSBucket = flags.GCSBucket
		case "gcs-credentials":
			cfg.GCSCredentialsFile = flags.GCSCredentialsFile
		case "replay":
			cfg.ReplayKey = flags.ReplayKey
			if !fs.Changed("fetcher") {
				cfg.Fetcher = FetcherReplay
			}
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
