package model

import (
	"fmt"
	"strings"
)

// Default values
const (
	DefaultTitle   = "Unknown"
	DefaultChannel = "Unknown"
	UnknownDisplay = "Unknown"
)

// URL templates
const (
	WatchURLTemplate = "https://youtube.com/watch?v=%s"
)

// Time formatting constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// View count thresholds
const (
	ThousandViews = 1_000
	MillionViews  = 1_000_000
)

// RawEntry is a single entry as returned by the search provider. Every field
// is optional; zero values mean the provider omitted it.
type RawEntry struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Uploader   string  `json:"uploader"`
	Channel    string  `json:"channel"`
	Duration   float64 `json:"duration"`
	ViewCount  int64   `json:"view_count"`
	URL        string  `json:"url"`
	WebpageURL string  `json:"webpage_url"`
	Thumbnail  string  `json:"thumbnail"`
}

// TrackResult represents one search hit
type TrackResult struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Channel         string `json:"channel"`
	DurationSeconds int    `json:"duration_seconds"` // 0 if unknown
	ViewCount       int64  `json:"view_count"`       // 0 if unknown
	SourceURL       string `json:"source_url"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
}

// NewTrackResult builds a TrackResult from raw provider data, applying
// defaults for missing fields.
func NewTrackResult(raw RawEntry) TrackResult {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = DefaultTitle
	}

	channel := strings.TrimSpace(raw.Uploader)
	if channel == "" {
		channel = strings.TrimSpace(raw.Channel)
	}
	if channel == "" {
		channel = DefaultChannel
	}

	duration := 0
	if raw.Duration > 0 {
		duration = int(raw.Duration)
	}

	views := raw.ViewCount
	if views < 0 {
		views = 0
	}

	return TrackResult{
		ID:              raw.ID,
		Title:           title,
		Channel:         channel,
		DurationSeconds: duration,
		ViewCount:       views,
		SourceURL:       sourceURL(raw),
		ThumbnailURL:    raw.Thumbnail,
	}
}

// sourceURL prefers a direct URL from the provider and rebuilds the watch
// URL from the id otherwise.
func sourceURL(raw RawEntry) string {
	if raw.URL != "" {
		return raw.URL
	}
	if raw.WebpageURL != "" {
		return raw.WebpageURL
	}
	return fmt.Sprintf(WatchURLTemplate, raw.ID)
}

// DurationDisplay returns H:MM:SS for an hour or more, M:SS below that, or
// "Unknown" when the duration is not known.
func (t TrackResult) DurationDisplay() string {
	return FormatDuration(t.DurationSeconds)
}

// ViewsDisplay returns a compact view count such as "1.2M views".
func (t TrackResult) ViewsDisplay() string {
	return FormatViews(t.ViewCount)
}

// FormatDuration formats seconds the way search results display them
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return UnknownDisplay
	}

	hours := seconds / SecondsPerHour
	minutes := (seconds % SecondsPerHour) / SecondsPerMinute
	secs := seconds % SecondsPerMinute

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatViews formats a view count with K/M suffixes
func FormatViews(count int64) string {
	switch {
	case count <= 0:
		return UnknownDisplay
	case count >= MillionViews:
		return fmt.Sprintf("%.1fM views", float64(count)/MillionViews)
	case count >= ThousandViews:
		return fmt.Sprintf("%.1fK views", float64(count)/ThousandViews)
	default:
		return fmt.Sprintf("%d views", count)
	}
}
