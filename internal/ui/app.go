package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/ytget/yt-music/internal/download"
	"github.com/ytget/yt-music/internal/log"
	"github.com/ytget/yt-music/internal/model"
	"github.com/ytget/yt-music/internal/search"
)

// ErrInvalidSelection is returned when a pick does not name a listed result
var ErrInvalidSelection = errors.New("invalid selection")

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	infoColor    = color.New(color.FgCyan)
	okColor      = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// App drives the search, choose and download loop
type App struct {
	searcher   search.Searcher
	downloader download.Downloader
	prompter   Prompter
	out        io.Writer
	limit      int
	reveal     func(path string) error
}

// NewApp creates the interactive application
func NewApp(searcher search.Searcher, downloader download.Downloader, prompter Prompter, out io.Writer, limit int) *App {
	return &App{
		searcher:   searcher,
		downloader: downloader,
		prompter:   prompter,
		out:        out,
		limit:      limit,
	}
}

// SetRevealFunc installs a hook called with the saved file after each
// successful download
func (a *App) SetRevealFunc(reveal func(path string) error) {
	a.reveal = reveal
}

// Banner prints the start-up panel
func (a *App) Banner() {
	headingColor.Fprintln(a.out, "Music Search & Download")
	fmt.Fprintln(a.out, "Search for any song and download as MP3")
	fmt.Fprintf(a.out, "Download folder: %s\n", a.downloader.OutputDir())
}

// Run executes the interactive loop until the user quits. initialQuery, when
// non-empty, is searched once before the first prompt. A Ctrl-C at any
// prompt ends the loop without an error.
func (a *App) Run(ctx context.Context, initialQuery string) error {
	pending := strings.TrimSpace(initialQuery)
	for {
		if err := ctx.Err(); err != nil {
			a.goodbye()
			return nil
		}
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, SeparatorLine)

		query := pending
		pending = ""
		if query == "" {
			answer, err := a.prompter.Input(PromptQuery, "")
			if err != nil {
				return a.promptError(err)
			}
			query = strings.TrimSpace(answer)
		}

		if isQuit(query) {
			a.goodbye()
			return nil
		}
		if query == "" {
			continue
		}

		results, ok := a.search(ctx, query)
		if !ok {
			continue
		}
		generation := a.searcher.Generation()

		a.printOptions(len(results))
		choice, err := a.prompter.Input(PromptChoice, "")
		if err != nil {
			return a.promptError(err)
		}
		choice = strings.ToLower(strings.TrimSpace(choice))

		switch {
		case choice == SearchAgain:
			continue
		case isQuit(choice):
			a.goodbye()
			return nil
		}

		track, err := a.selectTrack(generation, choice)
		if err != nil {
			errorColor.Fprintln(a.out, selectionMessage(err))
			continue
		}

		fmt.Fprintf(a.out, "\n%s %s\n", okColor.Sprint("Selected:"), track.Title)
		fmt.Fprintf(a.out, "%s %s\n", okColor.Sprint("By:"), track.Channel)

		confirmed, err := a.prompter.Confirm(PromptDownload, true)
		if err != nil {
			return a.promptError(err)
		}
		if !confirmed {
			continue
		}
		a.download(ctx, track, "")
	}
}

// RunOnce searches for query and downloads the result at the 1-based pick
// without prompting
func (a *App) RunOnce(ctx context.Context, query string, pick int, filename string) (string, error) {
	results, err := a.searcher.Search(ctx, query, a.limit)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("%w: no results for %q", search.ErrNotFound, query)
	}
	RenderResults(a.out, results)

	track, err := a.searcher.Lookup(a.searcher.Generation(), pick-1)
	if err != nil {
		return "", fmt.Errorf("%w: %d (1-%d)", ErrInvalidSelection, pick, len(results))
	}
	return a.download(ctx, track, filename)
}

func (a *App) search(ctx context.Context, query string) ([]model.TrackResult, bool) {
	infoColor.Fprint(a.out, "\nSearching for: ")
	fmt.Fprintln(a.out, query)

	results, err := a.searcher.Search(ctx, query, a.limit)
	if err != nil {
		logger := log.WithComponent("ui")
		logger.Debug().Err(err).Str("query", query).Msg("search failed")
		errorColor.Fprintf(a.out, "Error: %v\n", err)
		return nil, false
	}
	if len(results) == 0 {
		errorColor.Fprintln(a.out, "No results found. Try a different search term.")
		return nil, false
	}
	RenderResults(a.out, results)
	return results, true
}

func (a *App) download(ctx context.Context, track model.TrackResult, filename string) (string, error) {
	warnColor.Fprintln(a.out, "Downloading and converting to MP3...")

	outcome, err := a.downloader.Download(ctx, track, filename)
	switch {
	case errors.Is(err, download.ErrDownloadAmbiguous):
		warnColor.Fprintf(a.out, "%s %v\n", IconWarning, err)
		if outcome != nil {
			fmt.Fprintf(a.out, "Expected at: %s\n", outcome.TargetPath)
		}
		return "", err
	case err != nil:
		errorColor.Fprintln(a.out, "Download failed. Please try again.")
		errorColor.Fprintf(a.out, "Error: %v\n", err)
		return "", err
	}

	okColor.Fprintf(a.out, "%s Download complete!\n", IconOK)
	infoColor.Fprint(a.out, "File saved to: ")
	fmt.Fprintln(a.out, outcome.Path)

	if a.reveal != nil {
		if rerr := a.reveal(outcome.Path); rerr != nil {
			logger := log.WithComponent("ui")
			logger.Warn().Err(rerr).Str("path", outcome.Path).Msg("could not reveal file")
		}
	}
	return outcome.Path, nil
}

func (a *App) selectTrack(generation uint64, choice string) (model.TrackResult, error) {
	n, err := strconv.Atoi(choice)
	if err != nil {
		return model.TrackResult{}, err
	}
	return a.searcher.Lookup(generation, n-1)
}

func (a *App) printOptions(count int) {
	fmt.Fprintln(a.out)
	headingColor.Fprintln(a.out, "Options:")
	fmt.Fprintf(a.out, "  %s Enter a number (1-%d) to download\n", IconBullet, count)
	fmt.Fprintf(a.out, "  %s Enter '%s' to search again\n", IconBullet, SearchAgain)
	fmt.Fprintf(a.out, "  %s Enter 'q' to quit\n", IconBullet)
}

func (a *App) promptError(err error) error {
	if errors.Is(err, ErrInterrupted) {
		warnColor.Fprintln(a.out, "\nInterrupted by user. Goodbye!")
		return nil
	}
	return err
}

func (a *App) goodbye() {
	warnColor.Fprintln(a.out, "Goodbye!")
}

func selectionMessage(err error) string {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return "Invalid input! Please enter a number."
	}
	return "Invalid selection!"
}

func isQuit(s string) bool {
	return slices.Contains(QuitWords, strings.ToLower(s))
}
