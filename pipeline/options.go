// Package pipeline runs the feed reader, the merger and the board publisher in order.
package pipeline

import (
	"io"
	"time"
)

type Options struct {
	// Source is the feed URL or path.
	Source string
	// Cutoff excludes entries published before it.
	Cutoff time.Time
	// ShowFilter keeps only shows fuzzily matching one of the patterns. Empty keeps everything.
	ShowFilter []string
	// Out receives the preview. Defaults to os.Stdout.
	Out io.Writer
	// JSON renders the preview as a JSON document instead of a table.
	JSON bool
	// Width truncates the preview table to this many columns when positive.
	Width int
}
