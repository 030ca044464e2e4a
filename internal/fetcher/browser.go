package fetcher

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher renders the page in headless Chrome so script-built
// schedules are present before the text is read.
type BrowserFetcher struct {
	// ChromePath overrides the browser binary. Falls back to CHROME_PATH,
	// then to chromedp's own lookup.
	ChromePath string
	UserAgent  string

	// WaitSelector must be visible before the page is read. Defaults to body.
	WaitSelector string

	// Settle gives client-side rendering time to finish after WaitSelector
	// is visible.
	Settle time.Duration
}

func (f *BrowserFetcher) Name() string {
	return "browser"
}

func (f *BrowserFetcher) FetchText(ctx context.Context, url string) (string, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, f.allocatorOptions()...)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	waitSelector := f.WaitSelector
	if waitSelector == "" {
		waitSelector = "body"
	}

	var text string
	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitVisible(waitSelector, chromedp.ByQuery),
	}
	if f.Settle > 0 {
		actions = append(actions, chromedp.Sleep(f.Settle))
	}
	actions = append(actions, chromedp.Text(`body`, &text, chromedp.ByQuery))

	if err := chromedp.Run(chromeCtx, actions...); err != nil {
		return "", fmt.Errorf("rendering %s: %w", url, err)
	}

	return text, nil
}

// allocatorOptions starts from chromedp's defaults, which already run
// headless with a throwaway profile directory per browser.
func (f *BrowserFetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)

	chromePath := f.ChromePath
	if chromePath == "" {
		chromePath = os.Getenv("CHROME_PATH")
	}
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	opts = append(opts,
		chromedp.Headless,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if f.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(f.UserAgent))
	}
	return opts
}
