package search

import (
	"context"
	"errors"

	"github.com/ytget/yt-music/internal/model"
)

// Error kinds surfaced to callers. Match with errors.Is.
var (
	// ErrSearchFailed means the provider call errored or returned unparseable data
	ErrSearchFailed = errors.New("search failed")

	// ErrNotFound means an index is out of range for the current result set
	ErrNotFound = errors.New("result not found")
)

// Provider is the external search dependency. Given a query and a count it
// returns raw entries in ranking order.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]model.RawEntry, error)
}

// Searcher defines the interface for the search engine.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]model.TrackResult, error)
	GetByIndex(index int) (model.TrackResult, error)
	Lookup(generation uint64, index int) (model.TrackResult, error)
	Results() []model.TrackResult
	Generation() uint64
}
