package state

import (
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents further invocations. It does not wait for a callback that
	// is already running.
	Stop()
}

// Scheduler abstracts time so the store's timers can be driven by tests.
type Scheduler interface {
	// AfterFunc calls f once after d.
	AfterFunc(d time.Duration, f func()) Timer
	// Every calls f every d until the returned Timer is stopped.
	Every(d time.Duration, f func()) Timer
}

// RealScheduler runs callbacks on the runtime's timers.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return afterTimer{time.AfterFunc(d, f)}
}

func (RealScheduler) Every(d time.Duration, f func()) Timer {
	t := &tickerTimer{done: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				f()
			}
		}
	}()
	return t
}

type afterTimer struct {
	t *time.Timer
}

func (a afterTimer) Stop() { a.t.Stop() }

type tickerTimer struct {
	once sync.Once
	done chan struct{}
}

func (t *tickerTimer) Stop() {
	t.once.Do(func() { close(t.done) })
}
