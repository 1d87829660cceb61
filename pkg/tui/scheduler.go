package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mscrnt/gpu_memory_compare/pkg/view"
)

// runMsg carries a scheduled callback onto the Bubble Tea event loop
type runMsg struct {
	fn func()
}

// loopScheduler hands tick callbacks to the program's Update goroutine so
// ticks and key presses are handled strictly one after another
type loopScheduler struct {
	fire chan func()
}

func newLoopScheduler() *loopScheduler {
	return &loopScheduler{fire: make(chan func())}
}

// Every implements view.Scheduler
func (s *loopScheduler) Every(interval time.Duration, fn func()) view.Task {
	t := &loopTask{stop: make(chan struct{})}
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				select {
				case s.fire <- fn:
				case <-t.stop:
					return
				}
			}
		}
	}()

	return t
}

// wait blocks until the next callback is due
func (s *loopScheduler) wait() tea.Cmd {
	return func() tea.Msg {
		return runMsg{fn: <-s.fire}
	}
}

type loopTask struct {
	once sync.Once
	stop chan struct{}
}

func (t *loopTask) Cancel() {
	t.once.Do(func() { close(t.stop) })
}
