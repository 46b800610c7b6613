package ui

// Icons (symbols)
const (
	IconOK      = "✓"
	IconWarning = "!"
	IconBullet  = "•"
)

// Table layout
const (
	TableCaption     = "Search Results"
	MaxTitleWidth    = 50
	MaxChannelWidth  = 30
	TruncationSuffix = "..."
)

// Table columns
var (
	ResultColumns = []string{"#", "Title", "Artist/Channel", "Duration", "Views"}
)

// Prompt texts
const (
	PromptQuery    = "Enter song name (or 'quit' to exit)"
	PromptChoice   = "Your choice"
	PromptDownload = "Download this song?"
)

// Choice keywords
var (
	QuitWords   = []string{"quit", "exit", "q"}
	SearchAgain = "s"
)

// Text fragments
const (
	SeparatorLine = "============================================================"
)
