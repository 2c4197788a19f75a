package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/vonZeppelin/tvshowl/auth"
	"github.com/vonZeppelin/tvshowl/key"
	"github.com/vonZeppelin/tvshowl/log"
)

// Settings is the configuration of a single run, resolved once at start-up
// and passed to the feed reader and the board publisher by parameter.
type Settings struct {
	FeedURL     string
	Window      time.Duration
	Since       mo.Option[time.Time]
	FeedTimeout time.Duration

	Board string
	Key   string
	Token string
}

// MissingError lists the required configuration keys that have no value.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	envs := lo.Map(e.Keys, func(k string, _ int) string {
		f := Default[k]
		return fmt.Sprintf("%s (--%s, %s)", k, flagName(k), f.Env())
	})
	return "missing required configuration: " + strings.Join(envs, ", ")
}

func flagName(k string) string {
	switch k {
	case key.FeedURL:
		return "feed"
	case key.TrelloBoard:
		return "board"
	case key.TrelloKey:
		return "key"
	case key.TrelloToken:
		return "token"
	default:
		return k
	}
}

// sinceLayouts are accepted for feed.since, most specific first.
var sinceLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// Load resolves Settings from viper. Empty Trello credentials are looked up in the system keyring.
func Load() (*Settings, error) {
	s := &Settings{
		FeedURL: strings.TrimSpace(viper.GetString(key.FeedURL)),
		Board:   strings.TrimSpace(viper.GetString(key.TrelloBoard)),
		Key:     strings.TrimSpace(viper.GetString(key.TrelloKey)),
		Token:   strings.TrimSpace(viper.GetString(key.TrelloToken)),
		Since:   mo.None[time.Time](),
	}

	var err error
	if s.Window, err = parseDuration(key.FeedWindow); err != nil {
		return nil, err
	}
	if s.FeedTimeout, err = parseDuration(key.FeedTimeout); err != nil {
		return nil, err
	}

	if raw := strings.TrimSpace(viper.GetString(key.FeedSince)); raw != "" {
		since, err := ParseSince(raw)
		if err != nil {
			return nil, err
		}
		s.Since = mo.Some(since)
	}

	if s.Key == "" || s.Token == "" {
		creds, err := auth.Load()
		switch {
		case err == nil:
			s.Key = lo.Ternary(s.Key == "", creds.Key, s.Key)
			s.Token = lo.Ternary(s.Token == "", creds.Token, s.Token)
		case errors.Is(err, auth.ErrNotFound):
		default:
			log.Warnf("keyring lookup failed: %v", err)
		}
	}

	return s, nil
}

func parseDuration(k string) (time.Duration, error) {
	raw := viper.GetString(k)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", k, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", k, raw)
	}
	return d, nil
}

// ParseSince parses an explicit cutoff. Date-only values are midnight local time.
func ParseSince(raw string) (time.Time, error) {
	for _, layout := range sinceLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid %s %q: expected RFC 3339 or YYYY-MM-DD", key.FeedSince, raw)
}

// Cutoff is the earliest publication time of entries to consider.
func (s *Settings) Cutoff(now time.Time) time.Time {
	return s.Since.OrElse(now.Add(-s.Window))
}

// Validate reports every missing required value at once.
// The board and credentials are only required when the run publishes.
func (s *Settings) Validate(publishing bool) error {
	var missing []string
	if s.FeedURL == "" {
		missing = append(missing, key.FeedURL)
	}
	if publishing {
		if s.Board == "" {
			missing = append(missing, key.TrelloBoard)
		}
		if s.Key == "" {
			missing = append(missing, key.TrelloKey)
		}
		if s.Token == "" {
			missing = append(missing, key.TrelloToken)
		}
	}

	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}
	return nil
}
