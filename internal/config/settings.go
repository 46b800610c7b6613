// Package config loads runtime settings from defaults, an optional YAML file
// and YT_MUSIC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ytget/yt-music/internal/search"
)

// Environment keys
const (
	EnvConfigFile      = "YT_MUSIC_CONFIG"
	EnvOutputDir       = "YT_MUSIC_OUTPUT_DIR"
	EnvSearchLimit     = "YT_MUSIC_LIMIT"
	EnvYTDLPPath       = "YT_MUSIC_YTDLP"
	EnvAudioQuality    = "YT_MUSIC_AUDIO_QUALITY"
	EnvSearchTimeout   = "YT_MUSIC_SEARCH_TIMEOUT"
	EnvDownloadTimeout = "YT_MUSIC_DOWNLOAD_TIMEOUT"
	EnvLogLevel        = "LOG_LEVEL"
)

// Default values
const (
	DefaultOutputDir       = "downloads"
	DefaultSearchLimit     = 10
	DefaultYTDLPPath       = "yt-dlp"
	DefaultAudioQuality    = "192K"
	DefaultSearchTimeout   = 60 * time.Second
	DefaultDownloadTimeout = 10 * time.Minute
	DefaultLogLevel        = "info"
)

// Limits
const (
	MinSearchLimit = 1
	MaxSearchLimit = 50
)

// Settings holds application configuration
type Settings struct {
	OutputDir       string                  `yaml:"output_dir"`
	SearchLimit     int                     `yaml:"search_limit"`
	YTDLPPath       string                  `yaml:"ytdlp_path"`
	AudioQuality    string                  `yaml:"audio_quality"`
	SearchTimeout   time.Duration           `yaml:"search_timeout"`
	DownloadTimeout time.Duration           `yaml:"download_timeout"`
	LogLevel        string                  `yaml:"log_level"`
	Classifier      search.ClassifierConfig `yaml:"classifier"`
}

// Default returns settings with built-in defaults
func Default() *Settings {
	return &Settings{
		OutputDir:       DefaultOutputDir,
		SearchLimit:     DefaultSearchLimit,
		YTDLPPath:       DefaultYTDLPPath,
		AudioQuality:    DefaultAudioQuality,
		SearchTimeout:   DefaultSearchTimeout,
		DownloadTimeout: DefaultDownloadTimeout,
		LogLevel:        DefaultLogLevel,
		Classifier:      search.DefaultClassifierConfig(),
	}
}

// Load builds settings from defaults, then the YAML file at path (falling back
// to $YT_MUSIC_CONFIG when path is empty), then the environment. A missing
// file is not an error.
func Load(path string) (*Settings, error) {
	s := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := s.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := s.mergeEnv(); err != nil {
		return nil, err
	}

	s.normalize()
	return s, nil
}

// mergeFile overlays values present in the YAML file
func (s *Settings) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// mergeEnv overlays values set in the environment
func (s *Settings) mergeEnv() error {
	s.OutputDir = ParseString(EnvOutputDir, s.OutputDir)
	s.YTDLPPath = ParseString(EnvYTDLPPath, s.YTDLPPath)
	s.AudioQuality = ParseString(EnvAudioQuality, s.AudioQuality)
	s.LogLevel = ParseString(EnvLogLevel, s.LogLevel)

	var err error
	if s.SearchLimit, err = ParseInt(EnvSearchLimit, s.SearchLimit); err != nil {
		return err
	}
	if s.SearchTimeout, err = ParseDuration(EnvSearchTimeout, s.SearchTimeout); err != nil {
		return err
	}
	if s.DownloadTimeout, err = ParseDuration(EnvDownloadTimeout, s.DownloadTimeout); err != nil {
		return err
	}
	return nil
}

// normalize fills blanks with defaults and clamps ranges
func (s *Settings) normalize() {
	if strings.TrimSpace(s.OutputDir) == "" {
		s.OutputDir = DefaultOutputDir
	}
	if s.YTDLPPath == "" {
		s.YTDLPPath = DefaultYTDLPPath
	}
	if s.AudioQuality == "" {
		s.AudioQuality = DefaultAudioQuality
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if s.SearchTimeout < 0 {
		s.SearchTimeout = DefaultSearchTimeout
	}
	if s.DownloadTimeout < 0 {
		s.DownloadTimeout = DefaultDownloadTimeout
	}
	s.SetSearchLimit(s.SearchLimit)
}

// SetSearchLimit sets the number of results requested per search
func (s *Settings) SetSearchLimit(limit int) {
	if limit < MinSearchLimit {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	s.SearchLimit = limit
}

// SetOutputDir sets the download directory; blank keeps the current value
func (s *Settings) SetOutputDir(dir string) {
	if strings.TrimSpace(dir) == "" {
		return
	}
	s.OutputDir = dir
}

// ResolveOutputDir returns the output directory as an absolute path, relative
// paths being taken from the working directory.
func (s *Settings) ResolveOutputDir() (string, error) {
	if filepath.IsAbs(s.OutputDir) {
		return filepath.Clean(s.OutputDir), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(wd, s.OutputDir), nil
}
