package ui

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/ytget/yt-music/internal/model"
)

// RenderResults writes the numbered results table to w
func RenderResults(w io.Writer, results []model.TrackResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(ResultColumns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetRowLine(false)
	table.SetCaption(true, TableCaption)

	for i, r := range results {
		table.Append([]string{
			strconv.Itoa(i + 1),
			truncate(r.Title, MaxTitleWidth),
			truncate(r.Channel, MaxChannelWidth),
			r.DurationDisplay(),
			r.ViewsDisplay(),
		})
	}
	table.Render()
}

// truncate cuts s to max characters and appends a suffix when it was longer
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + TruncationSuffix
}
