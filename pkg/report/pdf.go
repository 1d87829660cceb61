// Package report renders static snapshots of a comparison view.
package report

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFTimeout bounds a single headless Chrome print
const PDFTimeout = 30 * time.Second

// PDFOptions contains options for PDF generation
type PDFOptions struct {
	Landscape       bool
	PrintBackground bool
	PaperWidth      float64
	PaperHeight     float64
	MarginTop       float64
	MarginBottom    float64
	MarginLeft      float64
	MarginRight     float64
}

// DefaultPDFOptions returns letter sized options
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PrintBackground: true,
		PaperWidth:      8.5,
		PaperHeight:     11.0,
		MarginTop:       0.4,
		MarginBottom:    0.4,
		MarginLeft:      0.4,
		MarginRight:     0.4,
	}
}

// SetPageSize applies a named paper size in inches
func (o *PDFOptions) SetPageSize(name string) error {
	switch strings.ToUpper(name) {
	case "A4":
		o.PaperWidth, o.PaperHeight = 8.27, 11.69
	case "A3":
		o.PaperWidth, o.PaperHeight = 11.69, 16.54
	case "LETTER", "":
		o.PaperWidth, o.PaperHeight = 8.5, 11.0
	case "LEGAL":
		o.PaperWidth, o.PaperHeight = 8.5, 14.0
	default:
		return fmt.Errorf("unsupported page size: %s", name)
	}
	return nil
}

// GeneratePDF prints the HTML report to outputPath
func (g *Generator) GeneratePDF(ctx context.Context, outputPath string, options *PDFOptions) error {
	html, err := g.GenerateHTML()
	if err != nil {
		return fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfData, err := htmlToPDF(ctx, html, options)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, pdfData, 0o600); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// QuickPDF generates a PDF with default options
func (g *Generator) QuickPDF(ctx context.Context, outputPath string) error {
	options := DefaultPDFOptions()
	return g.GeneratePDF(ctx, outputPath, &options)
}

// htmlToPDF loads html into a blank headless tab and prints it
func htmlToPDF(ctx context.Context, html string, options *PDFOptions) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, PDFTimeout)
	defer cancel()

	var pdfData []byte
	if err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithLandscape(options.Landscape).
				WithPrintBackground(options.PrintBackground).
				WithPaperWidth(options.PaperWidth).
				WithPaperHeight(options.PaperHeight).
				WithMarginTop(options.MarginTop).
				WithMarginBottom(options.MarginBottom).
				WithMarginLeft(options.MarginLeft).
				WithMarginRight(options.MarginRight).
				Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfData, nil
}
