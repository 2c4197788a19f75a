// Package feed reads a syndication feed of released episodes and parses its entries into episodes.
package feed

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"
	"github.com/vonZeppelin/tvshowl/episode"
	"github.com/vonZeppelin/tvshowl/filesystem"
	"github.com/vonZeppelin/tvshowl/log"
	"github.com/vonZeppelin/tvshowl/util"
)

// Reader fetches a feed and yields the episodes published since a cutoff.
type Reader struct {
	client *http.Client
}

// NewReader returns a Reader fetching remote feeds with client.
func NewReader(client *http.Client) *Reader {
	return &Reader{client: client}
}

// Fetch loads the feed at source, an http(s) URL, a file:// URL or a local path,
// and returns the entries published at or after cutoff as episodes.
//
// Loading and parsing happen before Fetch returns, so every failure surfaces here.
// The sequence itself only filters and parses entries and is meant to be consumed once.
func (r *Reader) Fetch(ctx context.Context, source string, cutoff time.Time) (iter.Seq[episode.Episode], error) {
	parsed, err := r.load(ctx, source, cutoff)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"source":  source,
		"cutoff":  cutoff.Format(time.RFC3339),
		"entries": len(parsed.Items),
	}).Info("feed fetched")

	return Entries(parsed.Items, cutoff), nil
}

func (r *Reader) load(ctx context.Context, source string, cutoff time.Time) (*gofeed.Feed, error) {
	u, err := url.Parse(source)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return r.loadHTTP(ctx, source, cutoff)
		case "file":
			return loadFile(u.Path)
		}
	}
	return loadFile(source)
}

func (r *Reader) loadHTTP(ctx context.Context, source string, cutoff time.Time) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	req.Header.Set("If-Modified-Since", cutoff.UTC().Format(http.TimeFormat))

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode == http.StatusNotModified {
		log.Infof("feed %s not modified since %s", source, cutoff.Format(time.RFC3339))
		return &gofeed.Feed{}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{URL: source, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return parse(resp.Body)
}

func loadFile(path string) (*gofeed.Feed, error) {
	f, err := filesystem.API().Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer util.Ignore(f.Close)

	return parse(f)
}

func parse(r io.Reader) (*gofeed.Feed, error) {
	parsed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return parsed, nil
}

// Entries yields one episode per item published at or after cutoff, in feed order.
func Entries(items []*gofeed.Item, cutoff time.Time) iter.Seq[episode.Episode] {
	return func(yield func(episode.Episode) bool) {
		for _, item := range items {
			title := strings.TrimSpace(item.Title)

			published := publishedAt(item)
			if published == nil {
				log.WithFields(logrus.Fields{"title": title}).Warn("entry without publication date skipped")
				continue
			}
			if published.Before(cutoff) {
				continue
			}

			e := ParseTitle(title, linkOf(item))
			if !e.Parsed() {
				log.Debugf("title %q does not look like an episode, kept verbatim", title)
			}

			if !yield(e) {
				return
			}
		}
	}
}

func publishedAt(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return item.UpdatedParsed
}

// linkOf prefers the item link and falls back to the first enclosure.
func linkOf(item *gofeed.Item) string {
	if link := strings.TrimSpace(item.Link); link != "" {
		return link
	}
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}
