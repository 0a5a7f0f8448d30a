package reminder

import (
	"sync"
	"time"

	"github.com/awhatson15/remindme-bot/models"
)

// fakeClock позволяет управлять временем в тестах: таймеры срабатывают
// только при явном вызове Advance.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	mu      sync.Mutex
	fn      func()
	when    time.Time
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// claim помечает таймер сработавшим; false, если он уже сработал
// или был остановлен
func (t *fakeTimer) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.fired = true
	return true
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) models.TimerHandle {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{fn: fn, when: c.now.Add(d)}
	c.timers = append(c.timers, t)
	return t
}

// Advance продвигает время и запускает подошедшие таймеры
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.when.After(c.now) {
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		if t.claim() {
			t.fn()
		}
	}
}

// pending считает взведённые и ещё не сработавшие таймеры
func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		t.mu.Lock()
		if !t.stopped && !t.fired {
			n++
		}
		t.mu.Unlock()
	}
	return n
}
