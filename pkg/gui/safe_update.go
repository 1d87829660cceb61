package gui

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/mscrnt/gpu_memory_compare/pkg/view"
)

// mainThreadScheduler runs tick callbacks on the fyne main goroutine so the
// view's listeners can touch widgets directly.
type mainThreadScheduler struct {
	ticker *view.TickerScheduler
}

func newMainThreadScheduler() mainThreadScheduler {
	return mainThreadScheduler{ticker: view.NewTickerScheduler()}
}

// Every implements view.Scheduler
func (s mainThreadScheduler) Every(interval time.Duration, fn func()) view.Task {
	return s.ticker.Every(interval, func() {
		fyne.Do(fn)
	})
}
