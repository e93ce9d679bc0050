package session

import "sync"

// Feed is a Presenter that keeps the current View and publishes every frame
// to subscribers. It is safe for concurrent use.
type Feed struct {
	mu   sync.Mutex
	view View
	subs map[chan Frame]struct{}
}

// NewFeed creates a feed holding the initial view.
func NewFeed() *Feed {
	return &Feed{
		view: NewView(),
		subs: make(map[chan Frame]struct{}),
	}
}

// Present applies f to the view and delivers it to all subscribers.
func (f *Feed) Present(fr Frame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.view.Apply(fr)
	for ch := range f.subs {
		select {
		case ch <- fr:
		default:
			// Drop if the subscriber is lagging; it can resync from View.
		}
	}
}

// View returns a snapshot of the current view.
func (f *Feed) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

// Subscribe returns the current view and a channel of subsequent frames.
// Both are taken under the same lock so no frame is missed in between.
func (f *Feed) Subscribe() (View, chan Frame) {
	ch := make(chan Frame, 16)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	v := f.view
	f.mu.Unlock()
	return v, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (f *Feed) Unsubscribe(ch chan Frame) {
	f.mu.Lock()
	if _, ok := f.subs[ch]; ok {
		delete(f.subs, ch)
		close(ch)
	}
	f.mu.Unlock()
}
