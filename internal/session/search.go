package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"

	"github.com/pocketwx/pocketwx/internal/domain"
	"github.com/pocketwx/pocketwx/internal/observability"
)

// MinQueryRunes is the shortest query that triggers a search.
const MinQueryRunes = 2

// PlaceSearcher resolves a free-text query to candidate places.
type PlaceSearcher interface {
	Search(ctx context.Context, query string) ([]domain.Location, error)
}

// SearchSession debounces keystrokes into place searches. Results are
// delivered only when they still match the live input text and no newer
// search has started; anything else is dropped silently. Search errors
// never produce user-facing state, the suggestion list just stays as it
// was.
type SearchSession struct {
	searcher PlaceSearcher
	cb       Callbacks
	clock    clockwork.Clock
	debounce time.Duration
	metrics  *observability.Metrics
	logger   *slog.Logger

	mu         sync.Mutex
	text       string
	timer      clockwork.Timer
	generation uint64
	cancel     context.CancelFunc
}

// NewSearchSession creates a search session with the given debounce
// interval.
func NewSearchSession(searcher PlaceSearcher, cb Callbacks, clock clockwork.Clock, debounce time.Duration, metrics *observability.Metrics, logger *slog.Logger) *SearchSession {
	return &SearchSession{
		searcher: searcher,
		cb:       cb,
		clock:    clock,
		debounce: debounce,
		metrics:  metrics,
		logger:   logger,
	}
}

// QueryChanged records a new input value. A query under MinQueryRunes
// (after trimming) cancels any pending or in-flight search and clears
// the suggestions; otherwise the search fires after the debounce
// interval, measured from the last change.
func (s *SearchSession) QueryChanged(ctx context.Context, text string) {
	s.mu.Lock()
	s.text = text
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < MinQueryRunes {
		s.generation++
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
		s.mu.Unlock()
		s.cb.suggestionsCleared()
		return
	}

	s.timer = s.clock.AfterFunc(s.debounce, func() {
		s.fire(ctx, trimmed)
	})
	s.mu.Unlock()
}

// Reset drops all pending search state, used when a place is chosen.
func (s *SearchSession) Reset() {
	s.mu.Lock()
	s.text = ""
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.cb.suggestionsCleared()
}

// fire starts the search for query, superseding any in-flight one.
func (s *SearchSession) fire(ctx context.Context, query string) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	if s.cancel != nil {
		s.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		results, err := s.searcher.Search(runCtx, query)

		// Staleness check and delivery stay under mu so a newer search
		// cannot interleave between them.
		s.mu.Lock()
		defer s.mu.Unlock()

		if gen != s.generation || strings.TrimSpace(s.text) != query {
			s.metrics.SupersededResults.WithLabelValues("search").Inc()
			return
		}
		if err != nil {
			if !domain.IsCancelled(err) {
				s.metrics.SearchQueries.WithLabelValues("error").Inc()
				s.logger.Warn("place search failed", "query", query, "error", err)
			}
			return
		}

		if results == nil {
			results = []domain.Location{}
		}
		if len(results) == 0 {
			s.metrics.SearchQueries.WithLabelValues("empty").Inc()
		} else {
			s.metrics.SearchQueries.WithLabelValues("success").Inc()
		}
		s.cb.suggestions(query, results)
	}()
}
