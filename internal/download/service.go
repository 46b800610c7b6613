package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-music/internal/log"
	"github.com/ytget/yt-music/internal/model"
	"github.com/ytget/yt-music/internal/platform"
)

// Default values
const (
	DefaultDownloadTimeout = 10 * time.Minute
	RequestIDPrefix        = "dl-"
)

// Service handles download operations for tracks picked from search results
type Service struct {
	backend   Backend
	outputDir string
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewService creates a new download service writing into outputDir. The
// directory is made absolute and created if missing; failure to do so is
// returned to the caller.
func NewService(outputDir string, backend Backend) (*Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("download backend is required")
	}
	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory %q: %w", outputDir, err)
	}
	if err := platform.CreateDirectoryIfNotExists(absDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", absDir, err)
	}
	return &Service{
		backend:   backend,
		outputDir: absDir,
		timeout:   DefaultDownloadTimeout,
		logger:    log.WithComponent("download"),
	}, nil
}

// OutputDir returns the absolute directory downloads are written to
func (s *Service) OutputDir() string {
	return s.outputDir
}

// SetTimeout sets the timeout for a single backend invocation. Zero disables it.
func (s *Service) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// TargetPath returns where the MP3 for filename is expected to land
func (s *Service) TargetPath(filename string) string {
	return filepath.Join(s.outputDir, filename+AudioExtension)
}

// Download fetches track as MP3 using filename as the base name, or a name
// derived from the track when filename is empty. The outcome is returned in
// every terminal state; the error matches ErrDownloadFailed when the backend
// failed and ErrDownloadAmbiguous when it succeeded but no artifact was found.
// There is a single backend attempt per call.
func (s *Service) Download(ctx context.Context, track model.TrackResult, filename string) (*model.DownloadOutcome, error) {
	req := model.DownloadRequest{
		ID:       generateRequestID(),
		Track:    track,
		Filename: filename,
	}

	name := ResolveFilename(req.Track, req.Filename)
	outcome := &model.DownloadOutcome{
		RequestID:  req.ID,
		State:      model.DownloadStateRequested,
		Filename:   name,
		TargetPath: s.TargetPath(name),
		StartedAt:  time.Now(),
	}

	logger := s.logger.With().
		Str("request_id", req.ID).
		Str("track_id", track.ID).
		Str("filename", name).
		Logger()

	if err := ctx.Err(); err != nil {
		return s.fail(outcome, logger, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.transition(outcome, model.DownloadStateBackendInvoked)
	logger.Info().
		Str("title", track.Title).
		Str("channel", track.Channel).
		Str("duration", track.DurationDisplay()).
		Msg("downloading")

	job := model.ExtractionJob{
		SourceURL: track.SourceURL,
		OutputDir: s.outputDir,
		BaseName:  name,
	}
	if err := s.backend.Fetch(ctx, job); err != nil {
		return s.fail(outcome, logger, err)
	}

	return s.resolve(outcome, logger)
}

// resolve locates the artifact after a successful backend run
func (s *Service) resolve(outcome *model.DownloadOutcome, logger zerolog.Logger) (*model.DownloadOutcome, error) {
	path, rule, err := platform.FindArtifact(s.outputDir, outcome.Filename, AudioExtension)
	if err != nil {
		outcome.LastError = err.Error()
		s.transition(outcome, model.DownloadStateAmbiguous)
		logger.Warn().
			Err(err).
			Str("dir", s.outputDir).
			Msg("download completed but file location uncertain")
		if errors.Is(err, platform.ErrArtifactNotFound) {
			return outcome, fmt.Errorf("%w: no %s file matching %q in %s", ErrDownloadAmbiguous, AudioExtension, outcome.Filename, s.outputDir)
		}
		return outcome, fmt.Errorf("%w: %w", ErrDownloadAmbiguous, err)
	}

	outcome.Path = path
	outcome.Rule = rule
	s.transition(outcome, model.DownloadStateResolved)
	logger.Info().
		Str("path", path).
		Str("rule", string(rule)).
		Dur("elapsed", outcome.Elapsed()).
		Msg("download resolved")
	return outcome, nil
}

func (s *Service) fail(outcome *model.DownloadOutcome, logger zerolog.Logger, cause error) (*model.DownloadOutcome, error) {
	outcome.LastError = cause.Error()
	s.transition(outcome, model.DownloadStateFailed)
	logger.Error().Err(cause).Msg("download failed")
	return outcome, fmt.Errorf("%w: %w", ErrDownloadFailed, cause)
}

// transition applies a state change; the service only issues legal ones
func (s *Service) transition(outcome *model.DownloadOutcome, next model.DownloadState) {
	if err := outcome.Transition(next); err != nil {
		s.logger.Error().Err(err).Str("request_id", outcome.RequestID).Msg("unexpected state transition")
	}
}

// generateRequestID generates a unique request ID
func generateRequestID() string {
	return RequestIDPrefix + uuid.NewString()
}
