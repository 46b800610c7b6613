package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// MaxStderrLength bounds how much tool stderr is copied into error messages
const MaxStderrLength = 2000

// ytdlpRunner executes a configured yt-dlp command with positional args
type ytdlpRunner func(ctx context.Context, cmd *ytdlp.Command, args ...string) (*ytdlp.Result, error)

// runYTDLP is the production runner
func runYTDLP(ctx context.Context, cmd *ytdlp.Command, args ...string) (*ytdlp.Result, error) {
	return cmd.Run(ctx, args...)
}

// commandError describes a failed run. Cancellation wins over the exit
// status; otherwise the tail of stderr is attached.
func commandError(ctx context.Context, name string, res *ytdlp.Result, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s interrupted: %w", name, ctxErr)
	}
	var msg string
	if res != nil {
		msg = strings.TrimSpace(res.Stderr)
	}
	if len(msg) > MaxStderrLength {
		msg = msg[len(msg)-MaxStderrLength:]
	}
	if msg == "" || strings.Contains(err.Error(), msg) {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return fmt.Errorf("%s failed: %w | %s", name, err, msg)
}
