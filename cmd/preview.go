package cmd

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vonZeppelin/tvshowl/config"
	"github.com/vonZeppelin/tvshowl/feed"
	"github.com/vonZeppelin/tvshowl/network"
	"github.com/vonZeppelin/tvshowl/pipeline"
	"golang.org/x/term"
)

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().BoolP("json", "j", false, "Print the episodes as JSON")
	previewCmd.Flags().StringSliceP("show", "s", []string{}, "Only include shows fuzzily matching this name, may be repeated")

	previewCmd.AddCommand(previewSchemaCmd)
}

// previewCmd lists the cards a run would consider without touching the board.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "List the episodes a run would publish, without touching the board",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.Load()
		handleErr(err)
		handleErr(settings.Validate(false))

		options := &pipeline.Options{
			Source:     settings.FeedURL,
			Cutoff:     settings.Cutoff(time.Now()),
			ShowFilter: lo.Must(cmd.Flags().GetStringSlice("show")),
			Out:        os.Stdout,
			JSON:       lo.Must(cmd.Flags().GetBool("json")),
			Width:      terminalWidth(),
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		reader := feed.NewReader(network.New(settings.FeedTimeout))
		handleErr(pipeline.Preview(ctx, reader, options))
	},
}

// previewSchemaCmd prints the JSON Schema of the preview output.
var previewSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the JSON preview output",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(json.NewEncoder(os.Stdout).Encode(pipeline.Schema()))
	},
}

// terminalWidth is the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}

	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
