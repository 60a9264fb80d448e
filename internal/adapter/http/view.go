package http

import (
	"sync"

	"github.com/pocketwx/pocketwx/internal/domain"
	"github.com/pocketwx/pocketwx/internal/session"
)

// View holds the callback-fed UI state the HTTP surface reads back out:
// the status line and the live suggestion list. Forecast and recents
// state is read from the controller and store directly.
type View struct {
	mu          sync.Mutex
	statusText  string
	statusError bool
	query       string
	suggestions []domain.Location
}

// NewView creates an empty view.
func NewView() *View {
	return &View{suggestions: []domain.Location{}}
}

// Callbacks returns the session callbacks that keep this view current.
// Pass them to both the forecast controller and the search session.
func (v *View) Callbacks() session.Callbacks {
	return session.Callbacks{
		Status: func(text string, isError bool) {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.statusText = text
			v.statusError = isError
		},
		Suggestions: func(query string, results []domain.Location) {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.query = query
			v.suggestions = results
		},
		SuggestionsCleared: func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.query = ""
			v.suggestions = []domain.Location{}
		},
	}
}

// Status returns the current status line.
func (v *View) Status() (text string, isError bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.statusText, v.statusError
}

// Suggestions returns the query that produced the current suggestion
// list, and the list itself.
func (v *View) Suggestions() (query string, results []domain.Location) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query, v.suggestions
}
