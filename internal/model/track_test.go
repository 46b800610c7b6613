package model

import (
	"strconv"
	"strings"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int
		expected string
	}{
		{"unknown duration", 0, "Unknown"},
		{"negative duration", -5, "Unknown"},
		{"less than one minute", 7, "0:07"},
		{"exactly one minute", 60, "1:00"},
		{"typical track", 213, "3:33"},
		{"just under an hour", 3599, "59:59"},
		{"exactly one hour", 3600, "1:00:00"},
		{"more than one hour", 7325, "2:02:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.expected {
				t.Errorf("FormatDuration(%d) = %q, expected %q", tt.seconds, got, tt.expected)
			}
		})
	}
}

// parseDisplay reads back an H:MM:SS or M:SS string
func parseDisplay(t *testing.T, s string) int {
	t.Helper()
	total := 0
	for _, part := range strings.Split(s, ":") {
		n, err := strconv.Atoi(part)
		if err != nil {
			t.Fatalf("cannot parse %q: %v", s, err)
		}
		total = total*60 + n
	}
	return total
}

func TestFormatDuration_RoundTrip(t *testing.T) {
	for seconds := 1; seconds <= 4*SecondsPerHour; seconds += 7 {
		display := FormatDuration(seconds)
		if got := parseDisplay(t, display); got != seconds {
			t.Fatalf("round trip of %d via %q gave %d", seconds, display, got)
		}
	}
}

func TestFormatViews(t *testing.T) {
	tests := []struct {
		count    int64
		expected string
	}{
		{0, "Unknown"},
		{1, "1 views"},
		{999, "999 views"},
		{1000, "1.0K views"},
		{1500, "1.5K views"},
		{54321, "54.3K views"},
		{1_000_000, "1.0M views"},
		{2_345_678, "2.3M views"},
		{1_234_567_890, "1234.6M views"},
	}

	for _, test := range tests {
		if got := FormatViews(test.count); got != test.expected {
			t.Errorf("FormatViews(%d) = %q, expected %q", test.count, got, test.expected)
		}
	}
}

func TestNewTrackResult_Defaults(t *testing.T) {
	track := NewTrackResult(RawEntry{ID: "abc123"})

	if track.Title != DefaultTitle {
		t.Errorf("expected default title, got %q", track.Title)
	}
	if track.Channel != DefaultChannel {
		t.Errorf("expected default channel, got %q", track.Channel)
	}
	if track.SourceURL != "https://youtube.com/watch?v=abc123" {
		t.Errorf("expected reconstructed URL, got %q", track.SourceURL)
	}
	if track.DurationDisplay() != UnknownDisplay {
		t.Errorf("expected unknown duration, got %q", track.DurationDisplay())
	}
	if track.ViewsDisplay() != UnknownDisplay {
		t.Errorf("expected unknown views, got %q", track.ViewsDisplay())
	}
}

func TestNewTrackResult_Fields(t *testing.T) {
	tests := []struct {
		name            string
		raw             RawEntry
		expectedChannel string
		expectedURL     string
		expectedSeconds int
	}{
		{
			name:            "uploader preferred over channel",
			raw:             RawEntry{ID: "x", Uploader: "Imagine Dragons", Channel: "ImagineDragonsVEVO"},
			expectedChannel: "Imagine Dragons",
			expectedURL:     "https://youtube.com/watch?v=x",
		},
		{
			name:            "channel used when uploader missing",
			raw:             RawEntry{ID: "x", Channel: "ImagineDragonsVEVO"},
			expectedChannel: "ImagineDragonsVEVO",
			expectedURL:     "https://youtube.com/watch?v=x",
		},
		{
			name:            "direct url wins",
			raw:             RawEntry{ID: "x", URL: "https://www.youtube.com/watch?v=x"},
			expectedChannel: DefaultChannel,
			expectedURL:     "https://www.youtube.com/watch?v=x",
		},
		{
			name:            "webpage url used when url missing",
			raw:             RawEntry{ID: "x", WebpageURL: "https://music.youtube.com/watch?v=x"},
			expectedChannel: DefaultChannel,
			expectedURL:     "https://music.youtube.com/watch?v=x",
		},
		{
			name:            "fractional duration truncated",
			raw:             RawEntry{ID: "x", Duration: 204.9},
			expectedChannel: DefaultChannel,
			expectedURL:     "https://youtube.com/watch?v=x",
			expectedSeconds: 204,
		},
		{
			name:            "negative duration clamped",
			raw:             RawEntry{ID: "x", Duration: -3},
			expectedChannel: DefaultChannel,
			expectedURL:     "https://youtube.com/watch?v=x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track := NewTrackResult(tt.raw)
			if track.Channel != tt.expectedChannel {
				t.Errorf("expected channel %q, got %q", tt.expectedChannel, track.Channel)
			}
			if track.SourceURL != tt.expectedURL {
				t.Errorf("expected url %q, got %q", tt.expectedURL, track.SourceURL)
			}
			if track.DurationSeconds != tt.expectedSeconds {
				t.Errorf("expected %d seconds, got %d", tt.expectedSeconds, track.DurationSeconds)
			}
		})
	}
}
