package model

// Package model defines domain data structures used across the app: search
// hits, raw provider entries, download requests and outcomes, and the
// download state enum. Display strings are derived from source fields on
// demand and never stored next to them.
