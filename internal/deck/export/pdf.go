package export

import (
	"context"
	"fmt"
	"io"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/TolgaCulfa/sunum2/internal/logger"
)

// PDFRenderer prints export documents through a headless Chromium. A zero
// browser binary path lets the launcher download or discover one.
type PDFRenderer struct {
	browserBin string
}

func NewPDFRenderer(browserBin string) *PDFRenderer {
	return &PDFRenderer{browserBin: browserBin}
}

// Render loads the print HTML into a fresh browser page and prints it to PDF,
// one landscape page per slide. The browser is torn down before returning.
func (r *PDFRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	l := launcher.New().Headless(true).Leakless(false)
	if r.browserBin != "" {
		l = l.Bin(r.browserBin)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			logger.Warn("pdf export: close browser: %v", cerr)
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		logger.Debug("pdf export: wait load: %v", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		Landscape:         true,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	out, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}
	return out, nil
}
