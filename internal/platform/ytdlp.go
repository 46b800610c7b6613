package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-music/internal/log"
	"github.com/ytget/yt-music/internal/model"
)

// Executable and option constants
const (
	DefaultYTDLPCommand = "yt-dlp"
	SearchPrefix        = "ytsearch"
	DefaultAudioFormat  = "mp3"
	DefaultAudioQuality = "192K"
	BestAudioFormat     = "bestaudio/best"
	ArgsSeparator       = "--"
)

// YTDLPSearchProvider implements search.Provider on top of yt-dlp's
// ytsearch extractor
type YTDLPSearchProvider struct {
	binary string
	run    ytdlpRunner
	logger zerolog.Logger
}

// NewYTDLPSearchProvider creates a provider that runs the given yt-dlp binary
func NewYTDLPSearchProvider(binary string) *YTDLPSearchProvider {
	if binary == "" {
		binary = DefaultYTDLPCommand
	}
	return &YTDLPSearchProvider{
		binary: binary,
		run:    runYTDLP,
		logger: log.WithComponent("ytdlp"),
	}
}

// Search runs a flat ytsearch and returns the raw entries in ranking order
func (p *YTDLPSearchProvider) Search(ctx context.Context, query string, limit int) ([]model.RawEntry, error) {
	if limit < 1 {
		return nil, fmt.Errorf("invalid search limit: %d", limit)
	}

	target := searchTarget(query, limit)
	p.logger.Debug().Str("target", target).Msg("running search")

	res, err := p.run(ctx, p.command(), ArgsSeparator, target)
	if err != nil {
		return nil, commandError(ctx, p.binary, res, err)
	}
	if res == nil {
		return nil, fmt.Errorf("yt-dlp returned no output")
	}
	return parseSearchOutput([]byte(res.Stdout))
}

func (p *YTDLPSearchProvider) command() *ytdlp.Command {
	return ytdlp.New().
		SetExecutable(p.binary).
		FlatPlaylist().
		DumpSingleJSON().
		Quiet().
		NoWarnings()
}

func searchTarget(query string, limit int) string {
	return fmt.Sprintf("%s%d:%s", SearchPrefix, limit, query)
}

// searchOutput is the subset of the --dump-single-json document we read
type searchOutput struct {
	Entries []*model.RawEntry `json:"entries"`
}

// parseSearchOutput decodes yt-dlp's single JSON document, dropping null entries
func parseSearchOutput(out []byte) ([]model.RawEntry, error) {
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil, fmt.Errorf("yt-dlp returned no output")
	}

	var doc searchOutput
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return nil, fmt.Errorf("yt-dlp search parse error: %w", err)
	}

	entries := make([]model.RawEntry, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		if e == nil {
			continue
		}
		entries = append(entries, *e)
	}
	return entries, nil
}

// YTDLPAudioBackend implements download.Backend with yt-dlp's audio extraction
// postprocessor (which needs ffmpeg on PATH).
type YTDLPAudioBackend struct {
	binary  string
	format  string
	quality string
	run     ytdlpRunner
	logger  zerolog.Logger
}

// NewYTDLPAudioBackend creates a backend transcoding to MP3 at quality (e.g. "192K")
func NewYTDLPAudioBackend(binary, quality string) *YTDLPAudioBackend {
	if binary == "" {
		binary = DefaultYTDLPCommand
	}
	if quality == "" {
		quality = DefaultAudioQuality
	}
	return &YTDLPAudioBackend{
		binary:  binary,
		format:  DefaultAudioFormat,
		quality: quality,
		run:     runYTDLP,
		logger:  log.WithComponent("ytdlp"),
	}
}

// Fetch downloads the best audio for job.SourceURL into job.OutputDir. Single
// item only, no prompts, no progress output.
func (b *YTDLPAudioBackend) Fetch(ctx context.Context, job model.ExtractionJob) error {
	if job.SourceURL == "" {
		return fmt.Errorf("empty source URL")
	}

	b.logger.Debug().
		Str("url", job.SourceURL).
		Str("output", job.OutputTemplate()).
		Msg("running audio extraction")

	res, err := b.run(ctx, b.command(job), ArgsSeparator, job.SourceURL)
	if err != nil {
		return commandError(ctx, b.binary, res, err)
	}
	return nil
}

func (b *YTDLPAudioBackend) command(job model.ExtractionJob) *ytdlp.Command {
	return ytdlp.New().
		SetExecutable(b.binary).
		Format(BestAudioFormat).
		ExtractAudio().
		AudioFormat(b.format).
		AudioQuality(b.quality).
		Output(job.OutputTemplate()).
		NoPlaylist().
		Quiet().
		NoWarnings().
		NoProgress()
}
