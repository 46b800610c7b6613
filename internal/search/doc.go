package search

// Package search implements the search-and-rank engine: query normalization,
// the music classification heuristic, and the per-session cache of the last
// accepted result set used for index-based selection.
