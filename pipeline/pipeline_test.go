package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vonZeppelin/tvshowl/board"
	"github.com/vonZeppelin/tvshowl/episode"
	"github.com/vonZeppelin/tvshowl/feed"
)

var cutoff = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type staticFetcher struct {
	episodes []episode.Episode
	err      error
}

func (s staticFetcher) Fetch(context.Context, string, time.Time) (iter.Seq[episode.Episode], error) {
	return slices.Values(s.episodes), s.err
}

type memoryBoard struct {
	cards []board.Card
}

func (m *memoryBoard) OpenLists() ([]board.List, error) {
	return []board.List{{ID: "inbox", Name: "Inbox"}}, nil
}

func (m *memoryBoard) OpenCardNames() ([]string, error) {
	return lo.Map(m.cards, func(c board.Card, _ int) string { return c.Name }), nil
}

func (m *memoryBoard) AddCard(_ string, card board.Card) error {
	m.cards = append(m.cards, card)
	return nil
}

func feedServer() *httptest.Server {
	body := lo.Must(os.ReadFile("../feed/testdata/showrss.xml"))
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
}

func TestRun(t *testing.T) {
	Convey("Given a feed and an empty board", t, func() {
		srv := feedServer()
		defer srv.Close()

		reader := feed.NewReader(srv.Client())
		b := &memoryBoard{}
		options := &Options{Source: srv.URL, Cutoff: cutoff}

		report, err := Run(context.Background(), reader, board.NewPublisher(b), options)

		Convey("Releases of one episode become a single card", func() {
			So(err, ShouldBeNil)
			So(b.cards[0], ShouldResemble, board.Card{
				Name:        "Foo Bar – 1x02 – Pilot",
				Description: "[Link 1](magnet:?xt=urn:btih:L1), [Link 2](magnet:?xt=urn:btih:L2)",
			})
		})

		Convey("An unparsed title is published verbatim", func() {
			So(b.cards[1], ShouldResemble, board.Card{
				Name:        "RandomShowTitleWithoutPattern",
				Description: "[Link 1](magnet:?xt=urn:btih:L3)",
			})
		})

		Convey("Every fresh entry is reported as created", func() {
			So(report.Created, ShouldResemble, []string{
				"Foo Bar – 1x02 – Pilot",
				"RandomShowTitleWithoutPattern",
				"Enclosed – 2x01 – Only Enclosure",
			})
		})

		Convey("A second run adds nothing", func() {
			again, err := Run(context.Background(), reader, board.NewPublisher(b), options)
			So(err, ShouldBeNil)
			So(again.Created, ShouldBeEmpty)
			So(again.Skipped, ShouldHaveLength, 3)
			So(b.cards, ShouldHaveLength, 3)
		})
	})

	Convey("Given a feed that cannot be fetched", t, func() {
		fetchErr := errors.New("connection refused")
		b := &memoryBoard{}

		_, err := Run(context.Background(), staticFetcher{err: fetchErr}, board.NewPublisher(b), &Options{})

		Convey("The board is left alone", func() {
			So(err, ShouldEqual, fetchErr)
			So(b.cards, ShouldBeEmpty)
		})
	})
}

func TestCollect(t *testing.T) {
	episodes := []episode.Episode{
		{Show: "Foo Bar", Code: "1x02", Title: "Pilot", Links: []string{"L1"}},
		{Show: "Severance", Code: "2x01", Title: "Hello", Links: []string{"S1"}},
		{Show: "Foo Bar", Code: "1x02", Title: "Pilot", Links: []string{"L2"}},
	}
	fetcher := staticFetcher{episodes: episodes}

	Convey("Without a show filter everything is merged", t, func() {
		got, err := Collect(context.Background(), fetcher, &Options{})
		So(err, ShouldBeNil)
		So(got, ShouldHaveLength, 2)
		So(got[0].Links, ShouldResemble, []string{"L1", "L2"})
	})

	Convey("A show filter matches fuzzily and ignores case", t, func() {
		got, err := Collect(context.Background(), fetcher, &Options{ShowFilter: []string{"sevrnc"}})
		So(err, ShouldBeNil)
		So(got, ShouldResemble, []episode.Episode{episodes[1]})
	})

	Convey("Any of several filters may match", t, func() {
		got, err := Collect(context.Background(), fetcher, &Options{ShowFilter: []string{"foo", "SEVERANCE"}})
		So(err, ShouldBeNil)
		So(got, ShouldHaveLength, 2)
	})

	Convey("A filter matching nothing yields no episodes", t, func() {
		got, err := Collect(context.Background(), fetcher, &Options{ShowFilter: []string{"xyz"}})
		So(err, ShouldBeNil)
		So(got, ShouldBeEmpty)
	})
}

func TestPreview(t *testing.T) {
	fetcher := staticFetcher{episodes: []episode.Episode{
		{Show: "Foo Bar", Code: "1x02", Title: "Pilot", Links: []string{"L1", "L2"}},
		{Show: "RandomShowTitleWithoutPattern", Links: []string{"L3"}},
	}}

	Convey("Given a JSON preview", t, func() {
		var buf bytes.Buffer
		err := Preview(context.Background(), fetcher, &Options{Out: &buf, JSON: true, Cutoff: cutoff})
		So(err, ShouldBeNil)

		var output Output
		So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)

		Convey("It carries the cutoff and the merged episodes", func() {
			So(output.Since.Equal(cutoff), ShouldBeTrue)
			So(output.Episodes, ShouldResemble, fetcher.episodes)
		})
	})

	Convey("Given a JSON preview of an empty feed", t, func() {
		var buf bytes.Buffer
		err := Preview(context.Background(), staticFetcher{}, &Options{Out: &buf, JSON: true})
		So(err, ShouldBeNil)

		Convey("Episodes is an empty array, not null", func() {
			So(buf.String(), ShouldContainSubstring, `"episodes": []`)
		})
	})

	Convey("Given a table preview", t, func() {
		var buf bytes.Buffer
		err := Preview(context.Background(), fetcher, &Options{Out: &buf, Cutoff: cutoff})
		So(err, ShouldBeNil)

		Convey("It lists card names", func() {
			So(buf.String(), ShouldContainSubstring, "Foo Bar – 1x02 – Pilot")
			So(buf.String(), ShouldContainSubstring, "RandomShowTitleWithoutPattern")
			So(buf.String(), ShouldContainSubstring, "since ")
		})
	})

	Convey("Given a narrow table preview", t, func() {
		var buf bytes.Buffer
		err := Preview(context.Background(), fetcher, &Options{Out: &buf, Cutoff: cutoff, Width: 40})
		So(err, ShouldBeNil)

		Convey("Long card names are truncated", func() {
			So(buf.String(), ShouldNotContainSubstring, "RandomShowTitleWithoutPattern")
			So(buf.String(), ShouldContainSubstring, "…")
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("The preview schema describes the output document", t, func() {
		raw, err := json.Marshal(Schema())
		So(err, ShouldBeNil)
		So(string(raw), ShouldContainSubstring, "episodes")
		So(string(raw), ShouldContainSubstring, "since")
	})
}
