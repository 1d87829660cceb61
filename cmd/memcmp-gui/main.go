package main

import (
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"

	"github.com/mscrnt/gpu_memory_compare/pkg/gui"
)

func main() {
	// Fyne rejects an empty or C locale in minimal environments
	lang := os.Getenv("LANG")
	if lang == "" || lang == "C" {
		_ = os.Setenv("LANG", "en_US.UTF-8")
		_ = os.Setenv("LC_ALL", "en_US.UTF-8")
	}

	myApp := app.NewWithID("com.gpu-memory-compare.desktop")
	myApp.SetIcon(theme.ComputerIcon())

	gui.NewMemoryGUI(myApp).ShowAndRun()
}
