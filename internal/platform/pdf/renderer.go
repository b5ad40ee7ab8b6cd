package pdf

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

const ContentType = "application/pdf"

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns a named template and its data into a finished document.
type Renderer interface {
	Render(ctx context.Context, name string, data any) ([]byte, error)
}

type Options struct {
	Assets  AssetResolver
	Timeout time.Duration
	// ExecPath overrides the Chrome/Chromium binary lookup.
	ExecPath string
}

// ChromeRenderer executes html/template templates and prints them with headless Chrome.
type ChromeRenderer struct {
	log  *logger.Logger
	opts Options
}

func NewChromeRenderer(log *logger.Logger, opts Options) *ChromeRenderer {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	return &ChromeRenderer{log: log.With("service", "ChromeRenderer"), opts: opts}
}

// RenderHTML executes the template without printing. Asset lookups happen here,
// so a missing image fails before Chrome is started.
func (r *ChromeRenderer) RenderHTML(name string, data any) (string, error) {
	return renderHTML(r.opts.Assets, name, data)
}

func (r *ChromeRenderer) Render(ctx context.Context, name string, data any) ([]byte, error) {
	start := time.Now()
	html, err := r.RenderHTML(name, data)
	if err != nil {
		return nil, err
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if r.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.opts.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, r.opts.Timeout)
	defer cancelTimeout()

	var out []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			out = buf
			return nil
		}),
	)
	if err != nil {
		r.log.Error("PDF print failed", "template", name, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("print %s: %w", name, err)
	}
	r.log.Debug("PDF rendered", "template", name, "bytes", len(out), "elapsed_ms", time.Since(start).Milliseconds())
	return out, nil
}

func renderHTML(assets AssetResolver, name string, data any) (string, error) {
	funcs := template.FuncMap{
		"asset": func(uri string) (template.URL, error) {
			s, err := assets.DataURI(uri)
			return template.URL(s), err
		},
		"inc": func(i int) int { return i + 1 },
	}
	tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
