package view

import (
	"sync"
	"time"
)

// Task is a registered periodic callback
type Task interface {
	// Cancel stops future invocations. It is safe to call more than once.
	Cancel()
}

// Scheduler runs a callback repeatedly at a fixed interval
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// TickerScheduler runs callbacks on a goroutine driven by a time.Ticker
type TickerScheduler struct{}

// NewTickerScheduler creates a scheduler backed by time.Ticker
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

// Every starts a goroutine calling fn once per interval until canceled
func (TickerScheduler) Every(interval time.Duration, fn func()) Task {
	t := &tickerTask{stop: make(chan struct{})}
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				// a cancel racing with the tick wins
				select {
				case <-t.stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	return t
}

type tickerTask struct {
	once sync.Once
	stop chan struct{}
}

func (t *tickerTask) Cancel() {
	t.once.Do(func() { close(t.stop) })
}
