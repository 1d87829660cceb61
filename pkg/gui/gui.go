// Package gui provides the fyne desktop window for the memory comparison.
package gui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/mscrnt/gpu_memory_compare/pkg/report"
	"github.com/mscrnt/gpu_memory_compare/pkg/view"
)

// MemoryGUI represents the main GUI application
type MemoryGUI struct {
	app        fyne.App
	window     fyne.Window
	comparison *Comparison
}

// NewMemoryGUI creates the main window around a fresh view
func NewMemoryGUI(app fyne.App) *MemoryGUI {
	gui := &MemoryGUI{
		app:        app,
		window:     app.NewWindow("GPU Memory Comparison"),
		comparison: NewComparison(view.New()),
	}

	gui.setup()
	return gui
}

func (g *MemoryGUI) setup() {
	g.app.Settings().SetTheme(MemoryTheme{})

	g.window.Resize(fyne.NewSize(1280, 900))
	g.window.CenterOnScreen()

	g.createMenu()

	g.window.SetContent(container.NewVScroll(container.NewPadded(g.comparison.Content())))

	g.window.SetCloseIntercept(func() {
		g.comparison.Stop()
		g.window.Close()
	})
}

func (g *MemoryGUI) createMenu() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export Report...", g.exportReport),
		fyne.NewMenuItem("Export PDF...", g.exportPDF),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			g.comparison.Stop()
			g.app.Quit()
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Select All", g.comparison.view.SelectAll),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", g.showAbout),
	)

	g.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// ShowAndRun starts the animation, displays the window and runs the app
func (g *MemoryGUI) ShowAndRun() {
	g.comparison.Start()
	g.window.ShowAndRun()
}

// exportReport writes an HTML snapshot of the current selection
func (g *MemoryGUI) exportReport() {
	html, err := report.NewGenerator(g.comparison.view.State()).GenerateHTML()
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to generate report: %w", err), g.window)
		return
	}

	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if w == nil {
			return
		}
		defer func() { _ = w.Close() }()

		if _, err := w.Write([]byte(html)); err != nil {
			dialog.ShowError(fmt.Errorf("failed to write report: %w", err), g.window)
		}
	}, g.window)
	save.SetFileName("memory-comparison.html")
	save.Show()
}

// exportPDF prints a snapshot of the current selection through headless Chrome
func (g *MemoryGUI) exportPDF() {
	gen := report.NewGenerator(g.comparison.view.State())

	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if w == nil {
			return
		}
		path := w.URI().Path()
		_ = w.Close()

		progress := dialog.NewCustomWithoutButtons("Exporting PDF", widget.NewProgressBarInfinite(), g.window)
		progress.Show()
		go func() {
			err := gen.QuickPDF(context.Background(), path)
			fyne.Do(func() {
				progress.Hide()
				if err != nil {
					dialog.ShowError(fmt.Errorf("failed to export PDF: %w", err), g.window)
				}
			})
		}()
	}, g.window)
	save.SetFileName("memory-comparison.pdf")
	save.Show()
}

func (g *MemoryGUI) showAbout() {
	content := widget.NewLabel("Compares speed, latency and price per GB for\n" +
		"HBM, GDDR and on-chip SRAM.\n\n" +
		"All figures are approximations.")
	dialog.ShowCustom("About GPU Memory Comparison", "Close", content, g.window)
}
