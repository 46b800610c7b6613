package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/ytget/yt-music/internal/config"
	"github.com/ytget/yt-music/internal/download"
	"github.com/ytget/yt-music/internal/log"
	"github.com/ytget/yt-music/internal/platform"
	"github.com/ytget/yt-music/internal/search"
	"github.com/ytget/yt-music/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppName    = "yt-music"
	AppService = "yt-music"
)

// Exit codes
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type options struct {
	output     string
	limit      int
	configPath string
	pick       int
	filename   string
	debug      bool
	reveal     bool
	version    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	var opts options
	flags := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	flags.StringVarP(&opts.output, "output", "o", "", "Output directory for downloaded songs (default: downloads)")
	flags.IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of search results")
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	flags.IntVar(&opts.pick, "pick", 0, "Download the Nth result without prompting")
	flags.StringVar(&opts.filename, "filename", "", "Save as this name instead of 'Channel - Title' (with --pick)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&opts.reveal, "reveal", false, "Show the saved file in the file manager")
	flags.BoolVar(&opts.version, "version", false, "Print version and exit")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [song name...]\n\nSearch for music and download it as MP3.\n\n", AppName)
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return ExitOK
		}
		return ExitUsage
	}
	if opts.version {
		fmt.Printf("%s v%s\n", AppName, version)
		return ExitOK
	}

	settings, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	applyFlags(settings, flags, opts)

	log.Configure(log.Config{
		Level:   settings.LogLevel,
		Output:  os.Stderr,
		Service: AppService,
		Console: true,
	})
	logger := log.WithComponent("main")
	logger.Debug().Str("version", version).Msg("starting")

	outputDir, err := settings.ResolveOutputDir()
	if err != nil {
		logger.Error().Err(err).Msg("invalid output directory")
		return ExitError
	}

	engine := search.NewEngine(
		platform.NewYTDLPSearchProvider(settings.YTDLPPath),
		search.NewClassifier(settings.Classifier),
	)
	engine.SetTimeout(settings.SearchTimeout)
	engine.SetDefaultLimit(settings.SearchLimit)

	service, err := download.NewService(outputDir, platform.NewYTDLPAudioBackend(settings.YTDLPPath, settings.AudioQuality))
	if err != nil {
		logger.Error().Err(err).Str("dir", outputDir).Msg("cannot prepare output directory")
		return ExitError
	}
	service.SetTimeout(settings.DownloadTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := ui.NewApp(engine, service, ui.NewSurveyPrompter(), color.Output, settings.SearchLimit)
	if opts.reveal {
		app.SetRevealFunc(platform.RevealInFileManager)
	}

	query := strings.Join(flags.Args(), " ")
	if opts.pick > 0 {
		if strings.TrimSpace(query) == "" {
			fmt.Fprintln(os.Stderr, "Error: --pick needs a song name")
			return ExitUsage
		}
		if _, err := app.RunOnce(ctx, query, opts.pick, opts.filename); err != nil {
			if ctx.Err() != nil {
				return ExitOK
			}
			return ExitError
		}
		return ExitOK
	}

	app.Banner()
	if err := app.Run(ctx, query); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "\nFatal error: %v\n", err)
		return ExitError
	}
	return ExitOK
}

// applyFlags lets explicit command-line flags override loaded settings
func applyFlags(settings *config.Settings, flags *pflag.FlagSet, opts options) {
	if flags.Changed("output") {
		settings.SetOutputDir(opts.output)
	}
	if flags.Changed("limit") {
		settings.SetSearchLimit(opts.limit)
	}
	if opts.debug {
		settings.LogLevel = "debug"
	}
}
