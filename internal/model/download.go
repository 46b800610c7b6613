package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ResolveRule names the artifact lookup rule that located a downloaded file
type ResolveRule string

const (
	ResolveRuleNone   ResolveRule = ""
	ResolveRuleExact  ResolveRule = "exact"
	ResolveRulePrefix ResolveRule = "prefix"
)

// DownloadRequest is a single request to fetch a track as audio
type DownloadRequest struct {
	ID       string
	Track    TrackResult
	Filename string // explicit override, empty to derive from track metadata
}

// ExtractionJob describes one request handed to the extraction backend
type ExtractionJob struct {
	SourceURL string
	OutputDir string
	BaseName  string
}

// OutputTemplate returns the output path template with the backend's own
// extension placeholder. Literal percent signs in the name are escaped.
func (j ExtractionJob) OutputTemplate() string {
	return filepath.Join(j.OutputDir, strings.ReplaceAll(j.BaseName, "%", "%%")+".%(ext)s")
}

// DownloadOutcome describes how a download request ended
type DownloadOutcome struct {
	RequestID  string
	State      DownloadState
	Filename   string      // base name without extension
	TargetPath string      // {outputDir}/{filename}.mp3
	Path       string      // resolved absolute path, set only when Resolved
	Rule       ResolveRule // lookup rule that matched
	LastError  string      // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// Transition moves the outcome to next, rejecting illegal transitions
func (o *DownloadOutcome) Transition(next DownloadState) error {
	if !o.State.CanTransitionTo(next) {
		return fmt.Errorf("invalid download state transition: %s -> %s", o.State, next)
	}
	o.State = next
	if next.IsFinished() {
		o.FinishedAt = time.Now()
	}
	return nil
}

// Elapsed returns how long the request took, or zero if it has not finished
func (o *DownloadOutcome) Elapsed() time.Duration {
	if o.FinishedAt.IsZero() || o.StartedAt.IsZero() {
		return 0
	}
	return o.FinishedAt.Sub(o.StartedAt)
}
