package pipeline

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/reflow/truncate"
	"github.com/vonZeppelin/tvshowl/board"
	"github.com/vonZeppelin/tvshowl/episode"
	"github.com/vonZeppelin/tvshowl/util"
)

// fixedWidth approximates the borders and the columns other than the card name.
const fixedWidth = 24

func writeTable(w io.Writer, episodes []episode.Episode, options *Options) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Card", "Links"})

	for i, e := range episodes {
		tw.AppendRow(table.Row{i + 1, fit(board.CardName(e), options.Width), len(e.Links)})
	}

	tw.AppendFooter(table.Row{"", util.Quantify(len(episodes), "episode", "episodes"), ""})
	tw.Render()

	_, err := fmt.Fprintf(w, "since %s\n", options.Cutoff.Local().Format("2006-01-02 15:04"))
	return err
}

func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(max(width-fixedWidth, 8)), "…")
}
