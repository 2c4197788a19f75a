package pipeline

import (
	"context"
	"iter"
	"os"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/vonZeppelin/tvshowl/board"
	"github.com/vonZeppelin/tvshowl/episode"
	"github.com/vonZeppelin/tvshowl/log"
)

// Fetcher yields the episodes of a feed published since a cutoff.
type Fetcher interface {
	Fetch(ctx context.Context, source string, cutoff time.Time) (iter.Seq[episode.Episode], error)
}

// Publisher turns merged episodes into board cards.
type Publisher interface {
	Publish(episodes []episode.Episode) (*board.Report, error)
}

// Collect fetches the feed, applies the show filter and merges the episodes.
func Collect(ctx context.Context, fetcher Fetcher, options *Options) ([]episode.Episode, error) {
	seq, err := fetcher.Fetch(ctx, options.Source, options.Cutoff)
	if err != nil {
		return nil, err
	}

	merged := episode.Merge(filterShows(seq, options.ShowFilter))

	log.WithFields(logrus.Fields{
		"episodes": len(merged),
		"filter":   options.ShowFilter,
	}).Info("episodes collected")

	return merged, nil
}

// Run collects the episodes and publishes them.
func Run(ctx context.Context, fetcher Fetcher, publisher Publisher, options *Options) (*board.Report, error) {
	episodes, err := Collect(ctx, fetcher, options)
	if err != nil {
		return nil, err
	}

	return publisher.Publish(episodes)
}

// Preview collects the episodes and writes them to options.Out without touching the board.
func Preview(ctx context.Context, fetcher Fetcher, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	episodes, err := Collect(ctx, fetcher, options)
	if err != nil {
		return err
	}

	if options.JSON {
		return writeJSON(options.Out, episodes, options)
	}

	return writeTable(options.Out, episodes, options)
}

func filterShows(seq iter.Seq[episode.Episode], patterns []string) iter.Seq[episode.Episode] {
	if len(patterns) == 0 {
		return seq
	}

	return func(yield func(episode.Episode) bool) {
		for e := range seq {
			matches := lo.ContainsBy(patterns, func(p string) bool {
				return fuzzy.MatchFold(p, e.Show)
			})
			if !matches {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
