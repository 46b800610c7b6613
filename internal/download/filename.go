package download

import (
	"strings"
	"unicode"

	"github.com/ytget/yt-music/internal/model"
)

// Filename constraints
const (
	MaxFilenameLength = 200
	UnknownFilename   = "unknown"
	ReservedChars     = `<>:"/\|?*`
	ReplacementChar   = "_"
)

var reservedReplacer = buildReservedReplacer()

func buildReservedReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(ReservedChars)*2)
	for _, r := range ReservedChars {
		pairs = append(pairs, string(r), ReplacementChar)
	}
	return strings.NewReplacer(pairs...)
}

// ResolveFilename returns the base name (without extension) for a track.
// A non-empty explicit name is used verbatim.
func ResolveFilename(track model.TrackResult, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return Sanitize(track.Channel) + " - " + Sanitize(track.Title)
}

// Sanitize makes s safe as a filesystem base name: reserved characters become
// underscores, dots and whitespace are trimmed from both ends, and the result
// is cut to MaxFilenameLength characters.
func Sanitize(s string) string {
	s = reservedReplacer.Replace(s)
	s = strings.TrimFunc(s, isEdgeChar)

	if runes := []rune(s); len(runes) > MaxFilenameLength {
		// the cut may expose a trailing dot or space
		s = strings.TrimRightFunc(string(runes[:MaxFilenameLength]), isEdgeChar)
	}

	if s == "" {
		return UnknownFilename
	}
	return s
}

func isEdgeChar(r rune) bool {
	return r == '.' || unicode.IsSpace(r)
}
