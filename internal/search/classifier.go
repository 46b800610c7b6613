package search

import "strings"

// DefaultMaxDurationMinutes is the length above which content is treated as long-form
const DefaultMaxDurationMinutes = 20

// ClassifierConfig holds the tunable data behind the music heuristic
type ClassifierConfig struct {
	MusicKeywords      []string `yaml:"music_keywords"`
	NonMusicKeywords   []string `yaml:"non_music_keywords"`
	MaxDurationMinutes float64  `yaml:"max_duration_minutes"`
}

// DefaultClassifierConfig returns the built-in keyword sets and threshold.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		MusicKeywords: []string{
			"official", "audio", "lyrics", "music", "song", "album",
			"vevo", "records", "entertainment", "ft.", "feat.",
		},
		NonMusicKeywords: []string{
			"reaction", "review", "tutorial", "10 hours", "1 hour",
			"compilation", "mix tape", "playlist",
		},
		MaxDurationMinutes: DefaultMaxDurationMinutes,
	}
}

// Classifier decides whether a search hit looks like a music track. It is a
// coarse filter for obviously wrong content, permissive by default.
type Classifier struct {
	music       []string
	nonMusic    []string
	maxDuration float64
}

// NewClassifier creates a classifier from cfg. Keywords are matched
// case-insensitively; a non-positive duration threshold falls back to
// DefaultMaxDurationMinutes.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	maxDuration := cfg.MaxDurationMinutes
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDurationMinutes
	}
	return &Classifier{
		music:       lowerAll(cfg.MusicKeywords),
		nonMusic:    lowerAll(cfg.NonMusicKeywords),
		maxDuration: maxDuration,
	}
}

// IsLikelyMusic applies, in order: the long-form duration cut-off, then the
// non-music keyword check, which only rejects when no music keyword matches.
func (c *Classifier) IsLikelyMusic(title, channel string, durationSeconds int) bool {
	if durationSeconds > 0 && float64(durationSeconds)/60 > c.maxDuration {
		return false
	}

	title = strings.ToLower(title)
	channel = strings.ToLower(channel)

	hasMusic := containsAny(title, c.music) || containsAny(channel, c.music)
	hasNonMusic := containsAny(title, c.nonMusic)

	if hasNonMusic && !hasMusic {
		return false
	}
	return true
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
