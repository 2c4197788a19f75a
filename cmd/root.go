// Package cmd implements the command-line interface for tvshowl.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gofrs/flock"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vonZeppelin/tvshowl/board"
	"github.com/vonZeppelin/tvshowl/config"
	"github.com/vonZeppelin/tvshowl/constant"
	"github.com/vonZeppelin/tvshowl/feed"
	"github.com/vonZeppelin/tvshowl/icon"
	"github.com/vonZeppelin/tvshowl/key"
	"github.com/vonZeppelin/tvshowl/log"
	"github.com/vonZeppelin/tvshowl/network"
	"github.com/vonZeppelin/tvshowl/pipeline"
	"github.com/vonZeppelin/tvshowl/style"
	"github.com/vonZeppelin/tvshowl/util"
	"github.com/vonZeppelin/tvshowl/where"
)

// errLocked is returned when another run holds the lock file.
var errLocked = errors.New("another run is in progress")

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (emoji, nerd, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("feed", "f", "", "Feed URL or local path")
	lo.Must0(viper.BindPFlag(key.FeedURL, rootCmd.PersistentFlags().Lookup("feed")))

	rootCmd.PersistentFlags().String("since", "", "Only consider entries published at or after this time (RFC 3339 or YYYY-MM-DD)")
	lo.Must0(viper.BindPFlag(key.FeedSince, rootCmd.PersistentFlags().Lookup("since")))

	rootCmd.PersistentFlags().StringP("window", "w", "", "Only consider entries published within this duration, e.g. 24h")
	lo.Must0(viper.BindPFlag(key.FeedWindow, rootCmd.PersistentFlags().Lookup("window")))

	rootCmd.Flags().StringP("board", "b", "", "Trello board ID")
	lo.Must0(viper.BindPFlag(key.TrelloBoard, rootCmd.Flags().Lookup("board")))

	rootCmd.Flags().String("key", "", "Trello API key")
	lo.Must0(viper.BindPFlag(key.TrelloKey, rootCmd.Flags().Lookup("key")))

	rootCmd.Flags().String("token", "", "Trello API token")
	lo.Must0(viper.BindPFlag(key.TrelloToken, rootCmd.Flags().Lookup("token")))
}

// rootCmd fetches the feed and publishes new episodes to the board.
var rootCmd = &cobra.Command{
	Use:   constant.Tvshowl,
	Short: "Publish newly released TV episodes from a feed as Trello cards",
	Long: style.New().Bold(true).Foreground(style.Cyan).Render(constant.Tvshowl) + "\n" +
		style.New().Italic(true).Foreground(style.HiRed).Render("    - Publish newly released TV episodes from a feed as Trello cards"),
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		settings, err := config.Load()
		handleErr(err)
		handleErr(settings.Validate(true))

		unlock, err := acquireLock()
		handleErr(err)
		defer unlock()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		handleErr(publish(ctx, settings))
	},
}

func publish(ctx context.Context, settings *config.Settings) error {
	options := &pipeline.Options{
		Source: settings.FeedURL,
		Cutoff: settings.Cutoff(time.Now()),
	}

	erase := func() {}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		erase = util.PrintErasable(os.Stdout, fmt.Sprintf("%s Fetching %s...", icon.Get(icon.Progress), settings.FeedURL))
	}

	b, err := board.Open(ctx, settings)
	if err != nil {
		erase()
		return err
	}

	publisher := board.NewPublisher(b)
	publisher.OnCreate = func(name string) {
		erase()
		erase = func() {}
		fmt.Printf("%s %s\n", icon.Get(icon.Card), name)
	}

	reader := feed.NewReader(network.New(settings.FeedTimeout))
	report, err := pipeline.Run(ctx, reader, publisher, options)
	erase()
	if err != nil {
		return err
	}

	printSummary(os.Stdout, report)
	return nil
}

func printSummary(w io.Writer, report *board.Report) {
	_, _ = fmt.Fprintf(
		w,
		"%s %s created on %s\n",
		style.Fg(style.Green)(icon.Get(icon.Success)),
		util.Quantify(len(report.Created), "card", "cards"),
		style.Fg(style.Purple)(report.List.Name),
	)

	if len(report.Skipped) > 0 {
		_, _ = fmt.Fprintf(
			w,
			"%s %s already on the board\n",
			style.Faint(icon.Get(icon.Skip)),
			util.Quantify(len(report.Skipped), "episode", "episodes"),
		)
	}
}

// acquireLock takes the run lock without waiting and returns its release function.
func acquireLock() (func(), error) {
	lock := flock.New(where.Lock())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", lock.Path(), err)
	}
	if !locked {
		return nil, errLocked
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			log.Warnf("release lock: %v", err)
		}
	}, nil
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
