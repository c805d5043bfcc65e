// Package pdf converts HTML documents to PDF using a headless Chrome
// instance driven over the DevTools protocol.
package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Renderer produces a PDF document from an HTML string.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// A4 paper dimensions in inches.
const (
	a4WidthInches  = 21.0 / 2.54
	a4HeightInches = 29.7 / 2.54
)

type rendererConfig struct {
	chromePath string
	timeout    time.Duration
	noSandbox  bool
}

// Option configures a ChromeRenderer.
type Option func(*rendererConfig)

// WithChromePath sets the Chrome or Chromium executable to launch.
// By default standard locations are searched.
func WithChromePath(path string) Option {
	return func(c *rendererConfig) {
		c.chromePath = path
	}
}

// WithTimeout bounds a single render. Defaults to 30 seconds; a zero
// or negative value disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *rendererConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox, required when running as
// root inside containers.
func WithNoSandbox() Option {
	return func(c *rendererConfig) {
		c.noSandbox = true
	}
}

// ChromeRenderer renders certificates with a fresh browser process per
// call. The process is released on every exit path, including render
// failures and context cancellation.
type ChromeRenderer struct {
	cfg rendererConfig
}

func NewChromeRenderer(opts ...Option) *ChromeRenderer {
	cfg := rendererConfig{timeout: 30 * time.Second}
	for _, o := range opts {
		o(&cfg)
	}
	return &ChromeRenderer{cfg: cfg}
}

// Render loads html directly into a blank page (no network navigation)
// and prints it as a single landscape A4 PDF with background graphics,
// letting the document's own @page CSS take precedence over the paper
// size.
func (r *ChromeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	if r.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.timeout)
		defer cancel()
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-first-run", true),
	)
	if r.cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.cfg.chromePath))
	}
	if r.cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = printParams().Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf: rendering document: %w", err)
	}
	return buf, nil
}

// printParams builds the fixed certificate print settings.
func printParams() *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithPaperWidth(a4WidthInches).
		WithPaperHeight(a4HeightInches).
		WithLandscape(true).
		WithPrintBackground(true).
		WithPreferCSSPageSize(true).
		WithMarginTop(0).
		WithMarginRight(0).
		WithMarginBottom(0).
		WithMarginLeft(0)
}
