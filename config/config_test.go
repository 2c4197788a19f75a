package config

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vonZeppelin/tvshowl/auth"
	"github.com/vonZeppelin/tvshowl/filesystem"
	"github.com/vonZeppelin/tvshowl/key"
	"github.com/zalando/go-keyring"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name, field := range Default {
				So(viper.Get(name), ShouldEqual, field.Value)
			}
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("feed.url"), ShouldEqual, "feed_url")
		})

		Convey("Fields expose prefixed env names", func() {
			f := Default[key.TrelloBoard]
			So(f.Env(), ShouldEqual, "TVSHOWL_TRELLO_BOARD")
			So(f.LegacyEnv, ShouldEqual, "TRELLO_BOARD")
		})

		Convey("Legacy environment variables are honoured", func() {
			t.Setenv("FEED_URL", "https://showrss.info/user/1.rss")
			So(Setup(), ShouldBeNil)
			So(viper.GetString(key.FeedURL), ShouldEqual, "https://showrss.info/user/1.rss")
		})

		Convey("Prefixed environment variables win over legacy ones", func() {
			t.Setenv("TRELLO_BOARD", "legacy")
			t.Setenv("TVSHOWL_TRELLO_BOARD", "prefixed")
			So(Setup(), ShouldBeNil)
			So(viper.GetString(key.TrelloBoard), ShouldEqual, "prefixed")
		})

		Convey("Secrets are masked", func() {
			viper.Set(key.TrelloToken, "s3cr3t")
			f := Default[key.TrelloToken]
			So(f.Current(), ShouldEqual, "********")
			So(f.Pretty(), ShouldNotContainSubstring, "s3cr3t")
		})

		Reset(viper.Reset)
	})
}

func TestLoad(t *testing.T) {
	Convey("Given configured values", t, func() {
		keyring.MockInit()
		So(Setup(), ShouldBeNil)
		viper.Set(key.FeedURL, " https://example.com/feed.rss ")
		viper.Set(key.TrelloBoard, "board")
		viper.Set(key.TrelloKey, "key")
		viper.Set(key.TrelloToken, "token")

		Convey("Load trims and copies them", func() {
			s, err := Load()
			So(err, ShouldBeNil)
			So(s.FeedURL, ShouldEqual, "https://example.com/feed.rss")
			So(s.Window, ShouldEqual, 24*time.Hour)
			So(s.FeedTimeout, ShouldEqual, time.Minute)
			So(s.Since.IsPresent(), ShouldBeFalse)
			So(s.Validate(true), ShouldBeNil)
		})

		Convey("The cutoff defaults to one day ago", func() {
			s, err := Load()
			So(err, ShouldBeNil)
			now := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
			So(s.Cutoff(now).Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})

		Convey("An explicit since overrides the window", func() {
			viper.Set(key.FeedSince, "2024-02-01T08:00:00Z")
			s, err := Load()
			So(err, ShouldBeNil)
			So(s.Cutoff(time.Now()).Equal(time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})

		Convey("A malformed since is a configuration error", func() {
			viper.Set(key.FeedSince, "yesterday")
			_, err := Load()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, key.FeedSince)
		})

		Convey("A malformed window is a configuration error", func() {
			viper.Set(key.FeedWindow, "a day")
			_, err := Load()
			So(err, ShouldNotBeNil)
		})

		Convey("Missing credentials come from the keyring", func() {
			viper.Set(key.TrelloKey, "")
			viper.Set(key.TrelloToken, "")
			So(auth.Save(auth.Credentials{Key: "kr-key", Token: "kr-token"}), ShouldBeNil)

			s, err := Load()
			So(err, ShouldBeNil)
			So(s.Key, ShouldEqual, "kr-key")
			So(s.Token, ShouldEqual, "kr-token")
		})

		Reset(viper.Reset)
	})

	Convey("Given nothing is configured", t, func() {
		keyring.MockInit()
		So(Setup(), ShouldBeNil)

		s, err := Load()
		So(err, ShouldBeNil)

		Convey("Validation lists every missing key", func() {
			err := s.Validate(true)
			So(err, ShouldHaveSameTypeAs, &MissingError{})
			So(err.(*MissingError).Keys, ShouldResemble, []string{key.FeedURL, key.TrelloBoard, key.TrelloKey, key.TrelloToken})
			So(err.Error(), ShouldContainSubstring, "TRELLO_BOARD")
		})

		Convey("Previewing only needs the feed", func() {
			err := s.Validate(false)
			So(err.(*MissingError).Keys, ShouldResemble, []string{key.FeedURL})
		})

		Reset(viper.Reset)
	})
}

func TestParseSince(t *testing.T) {
	Convey("ParseSince", t, func() {
		d, err := ParseSince("2024-05-06")
		So(err, ShouldBeNil)
		So(d.Equal(time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local)), ShouldBeTrue)

		_, err = ParseSince("06/05/2024")
		So(err, ShouldNotBeNil)
	})
}
