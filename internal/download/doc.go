package download

// Package download implements the download resolution engine built on top of
// an extraction backend (yt-dlp in production). It derives a deterministic
// output filename, runs a single backend attempt per request and locates the
// resulting MP3 on disk, reporting Resolved, Ambiguous or Failed.
