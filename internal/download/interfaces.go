package download

import (
	"context"
	"errors"

	"github.com/ytget/yt-music/internal/model"
)

// Error kinds surfaced to callers. Match with errors.Is.
var (
	// ErrDownloadFailed means the backend invocation failed
	ErrDownloadFailed = errors.New("download failed")

	// ErrDownloadAmbiguous means the backend reported success but no artifact
	// matching the expected name was found
	ErrDownloadAmbiguous = errors.New("download completed but file location uncertain")
)

// AudioExtension is the container every download is transcoded to
const AudioExtension = ".mp3"

// Backend fetches the best available audio for a job and transcodes it to
// MP3 inside OutputDir.
type Backend interface {
	Fetch(ctx context.Context, job model.ExtractionJob) error
}

// Downloader defines the interface for the download service.
type Downloader interface {
	Download(ctx context.Context, track model.TrackResult, filename string) (*model.DownloadOutcome, error)
	OutputDir() string
}
