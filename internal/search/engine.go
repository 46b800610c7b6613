package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/ytget/yt-music/internal/log"
	"github.com/ytget/yt-music/internal/model"
)

// Default values
const (
	DefaultLimit         = 10
	DefaultSearchTimeout = 60 * time.Second
)

// Engine runs searches against a Provider and owns the session cache of the
// last accepted result set. One engine per session; the cache is replaced
// wholesale by every Search call and only read by GetByIndex.
type Engine struct {
	provider     Provider
	classifier   *Classifier
	defaultLimit int
	timeout      time.Duration
	logger       zerolog.Logger

	mu          sync.RWMutex
	lastResults []model.TrackResult
	generation  uint64
}

// NewEngine creates a new search engine. A nil classifier uses the default keyword sets.
func NewEngine(provider Provider, classifier *Classifier) *Engine {
	if classifier == nil {
		classifier = NewClassifier(DefaultClassifierConfig())
	}
	return &Engine{
		provider:     provider,
		classifier:   classifier,
		defaultLimit: DefaultLimit,
		timeout:      DefaultSearchTimeout,
		logger:       log.WithComponent("search"),
		lastResults:  []model.TrackResult{},
	}
}

// SetTimeout sets the timeout for provider calls. Zero disables it.
func (e *Engine) SetTimeout(timeout time.Duration) {
	e.timeout = timeout
}

// SetDefaultLimit sets the limit used when Search is called with limit <= 0
func (e *Engine) SetDefaultLimit(limit int) {
	if limit < 1 {
		limit = DefaultLimit
	}
	e.defaultLimit = limit
}

// Search normalizes query, asks the provider for up to limit entries and keeps
// those that look like music, in provider order. The accepted list replaces
// the session cache even when empty. On provider failure the cache is left
// empty and the returned error matches ErrSearchFailed.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]model.TrackResult, error) {
	if limit <= 0 {
		limit = e.defaultLimit
	}

	cleaned := Normalize(query)
	if cleaned == "" {
		e.logger.Debug().Str("query", query).Msg("empty query after normalization")
		e.replace(nil)
		return []model.TrackResult{}, nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	started := time.Now()
	entries, err := e.provider.Search(ctx, cleaned, limit)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		e.replace(nil)
		e.logger.Warn().
			Err(err).
			Str("query", cleaned).
			Int("limit", limit).
			Msg("search provider failed")
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	results := e.rank(entries, limit)
	e.replace(results)

	e.logger.Debug().
		Str("query", cleaned).
		Int("limit", limit).
		Int("raw", len(entries)).
		Int("accepted", len(results)).
		Dur("elapsed", time.Since(started)).
		Msg("search completed")

	return cloneResults(results), nil
}

// rank converts raw entries and applies the classifier
func (e *Engine) rank(entries []model.RawEntry, limit int) []model.TrackResult {
	results := make([]model.TrackResult, 0, min(len(entries), limit))
	for _, raw := range entries {
		if len(results) >= limit {
			break
		}
		track := model.NewTrackResult(raw)
		if !e.classifier.IsLikelyMusic(track.Title, track.Channel, track.DurationSeconds) {
			e.logger.Debug().
				Str("id", track.ID).
				Str("title", track.Title).
				Msg("skipping non-music result")
			continue
		}
		results = append(results, track)
	}
	return results
}

// replace swaps the session cache and bumps the generation
func (e *Engine) replace(results []model.TrackResult) {
	if results == nil {
		results = []model.TrackResult{}
	}
	e.mu.Lock()
	e.lastResults = results
	e.generation++
	e.mu.Unlock()
}

// GetByIndex returns the result at index in the current result set
func (e *Engine) GetByIndex(index int) (model.TrackResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.at(index)
}

// Lookup is GetByIndex guarded by the generation the caller saw when it
// obtained the list. An index from a replaced result set is never resolved.
func (e *Engine) Lookup(generation uint64, index int) (model.TrackResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if generation != e.generation {
		return model.TrackResult{}, fmt.Errorf("%w: result set %d was replaced", ErrNotFound, generation)
	}
	return e.at(index)
}

func (e *Engine) at(index int) (model.TrackResult, error) {
	if index < 0 || index >= len(e.lastResults) {
		return model.TrackResult{}, fmt.Errorf("%w: index %d out of range [0,%d)", ErrNotFound, index, len(e.lastResults))
	}
	return e.lastResults[index], nil
}

// Results returns a copy of the current result set
func (e *Engine) Results() []model.TrackResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneResults(e.lastResults)
}

// Generation identifies the current result set; it changes on every Search
func (e *Engine) Generation() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.generation
}

func cloneResults(in []model.TrackResult) []model.TrackResult {
	out := make([]model.TrackResult, len(in))
	copy(out, in)
	return out
}
