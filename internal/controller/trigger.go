package controller

import "sync"

// RefreshTrigger decouples the forms that mutate a collection from the
// lists that display it: a mutation fires the trigger, subscribed lists
// re-fetch. Sends never block; a subscriber that lags coalesces signals.
type RefreshTrigger struct {
	mu    sync.Mutex
	count int
	subs  map[chan int]bool
}

func NewRefreshTrigger() *RefreshTrigger {
	return &RefreshTrigger{subs: map[chan int]bool{}}
}

func (t *RefreshTrigger) Fire() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count++
	for ch := range t.subs {
		select {
		case ch <- t.count:
		default:
		}
	}
}

func (t *RefreshTrigger) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

func (t *RefreshTrigger) Subscribe() chan int {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch := make(chan int, 1)
	t.subs[ch] = true
	return ch
}

func (t *RefreshTrigger) Unsubscribe(ch chan int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.subs[ch] {
		delete(t.subs, ch)
		close(ch)
	}
}
