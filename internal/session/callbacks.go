// Package session holds the request orchestration: the forecast
// controller that serializes loads through generation tokens, and the
// debounced place search. Both guarantee that only the newest request's
// result ever reaches the callbacks.
package session

import "github.com/pocketwx/pocketwx/internal/domain"

// Callbacks is the outbound surface towards the UI. Every field is
// optional; nil callbacks are skipped. Callbacks may be invoked from
// background goroutines, and they run under the emitting session's
// internal lock, so they must hand work off rather than call back into
// the controller or search session.
type Callbacks struct {
	// Status reports user-facing progress or error text. Empty text
	// clears the status line.
	Status func(text string, isError bool)
	// ForecastUpdated delivers each successfully fetched snapshot.
	ForecastUpdated func(snap *domain.ForecastSnapshot)
	// RecentsUpdated delivers the recents list after each change.
	RecentsUpdated func(recents []domain.Location)
	// Suggestions delivers search results for the query that produced them.
	Suggestions func(query string, results []domain.Location)
	// SuggestionsCleared hides the suggestion list.
	SuggestionsCleared func()
}

func (cb Callbacks) status(text string, isError bool) {
	if cb.Status != nil {
		cb.Status(text, isError)
	}
}

func (cb Callbacks) forecastUpdated(snap *domain.ForecastSnapshot) {
	if cb.ForecastUpdated != nil {
		cb.ForecastUpdated(snap)
	}
}

func (cb Callbacks) recentsUpdated(recents []domain.Location) {
	if cb.RecentsUpdated != nil {
		cb.RecentsUpdated(recents)
	}
}

func (cb Callbacks) suggestions(query string, results []domain.Location) {
	if cb.Suggestions != nil {
		cb.Suggestions(query, results)
	}
}

func (cb Callbacks) suggestionsCleared() {
	if cb.SuggestionsCleared != nil {
		cb.SuggestionsCleared()
	}
}
