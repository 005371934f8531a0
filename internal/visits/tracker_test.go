package visits

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_RecordVisitAccumulates(t *testing.T) {
	tracker := NewTracker()

	pages := tracker.RecordVisit("visitor-1", "/home")
	assert.Equal(t, []string{"/home"}, pages)

	pages = tracker.RecordVisit("visitor-1", "/about")
	assert.Equal(t, []string{"/home", "/about"}, pages)

	// Duplicates are kept; pages are not validated.
	pages = tracker.RecordVisit("visitor-1", "/home")
	assert.Equal(t, []string{"/home", "/about", "/home"}, pages)
}

func TestTracker_VisitorsAreIndependent(t *testing.T) {
	tracker := NewTracker()

	tracker.RecordVisit("a", "/x")
	tracker.RecordVisit("b", "/y")

	assert.Equal(t, []string{"/x"}, tracker.Pages("a"))
	assert.Equal(t, []string{"/y"}, tracker.Pages("b"))
}

func TestTracker_PagesUnknownVisitor(t *testing.T) {
	tracker := NewTracker()
	assert.Empty(t, tracker.Pages("never-seen"))
}

func TestTracker_ReturnedListIsACopy(t *testing.T) {
	tracker := NewTracker()

	pages := tracker.RecordVisit("v", "/home")
	pages[0] = "/mutated"

	assert.Equal(t, []string{"/home"}, tracker.Pages("v"))
}

func TestTracker_InitIsIdempotent(t *testing.T) {
	tracker := NewTracker()

	tracker.Init("v")
	assert.Empty(t, tracker.Pages("v"))

	tracker.RecordVisit("v", "/home")
	tracker.Init("v")
	assert.Equal(t, []string{"/home"}, tracker.Pages("v"))
}

func TestTracker_ConcurrentVisitsNoLostUpdates(t *testing.T) {
	const goroutines = 50
	tracker := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tracker.RecordVisit("v", fmt.Sprintf("/page-%d", i))
		}(i)
	}
	wg.Wait()

	pages := tracker.Pages("v")
	require.Len(t, pages, goroutines)

	seen := make(map[string]bool, goroutines)
	for _, p := range pages {
		seen[p] = true
	}
	assert.Len(t, seen, goroutines)
}
