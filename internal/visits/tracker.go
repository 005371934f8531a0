// Package visits accumulates which pages each visitor has seen. It is
// unrelated to conversation state but shares the same concurrency shape:
// a mutex-guarded key→list map mutated from arbitrary requests.
package visits

import "sync"

// Tracker owns the visitor→pages map behind a mutex.
type Tracker struct {
	mu    sync.Mutex
	pages map[string][]string
}

func NewTracker() *Tracker {
	return &Tracker{pages: make(map[string][]string)}
}

// Init ensures an empty page list exists for key. Used when a new chat
// session is created so the session key doubles as a visitor key.
func (t *Tracker) Init(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.pages[key]; !ok {
		t.pages[key] = []string{}
	}
}

// RecordVisit appends page to the visitor's list, auto-creating the list
// if absent, and returns a copy of the updated full list. Page content is
// not validated and lists are unbounded.
func (t *Tracker) RecordVisit(visitorKey, page string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pages[visitorKey] = append(t.pages[visitorKey], page)
	return copyPages(t.pages[visitorKey])
}

// Pages returns a copy of the visitor's page list; an unknown key yields
// an empty list.
func (t *Tracker) Pages(visitorKey string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyPages(t.pages[visitorKey])
}

func copyPages(pages []string) []string {
	out := make([]string, len(pages))
	copy(out, pages)
	return out
}
