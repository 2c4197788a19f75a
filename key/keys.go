// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Feed source - these keys select the syndication feed and the time window of entries to consider.
const (
	FeedURL     = "feed.url"
	FeedWindow  = "feed.window"
	FeedSince   = "feed.since"
	FeedTimeout = "feed.timeout"
)

// Trello board - these keys identify the target board and the API credentials.
const (
	TrelloBoard = "trello.board"
	TrelloKey   = "trello.key"
	TrelloToken = "trello.token"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored   = "cli.colored"
	IconsVariant = "icons.variant"
)
