package platform

// Package platform contains OS/platform integration and external tooling glue:
// the yt-dlp search provider and audio backend, artifact lookup on disk, and
// OS open/reveal helpers.
