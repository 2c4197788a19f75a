package board

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vonZeppelin/tvshowl/episode"
)

type placed struct {
	ListID string
	Card   Card
}

// fakeBoard keeps cards in memory and fails AddCard from the failAt-th call on.
type fakeBoard struct {
	lists   []List
	names   []string
	added   []placed
	listErr error
	failAt  int
}

func (f *fakeBoard) OpenLists() ([]List, error) {
	return f.lists, f.listErr
}

func (f *fakeBoard) OpenCardNames() ([]string, error) {
	return append([]string(nil), f.names...), nil
}

func (f *fakeBoard) AddCard(listID string, card Card) error {
	if f.failAt > 0 && len(f.added)+1 >= f.failAt {
		return errors.New("rate limited")
	}
	f.added = append(f.added, placed{ListID: listID, Card: card})
	f.names = append(f.names, card.Name)
	return nil
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{lists: []List{{ID: "todo", Name: "To watch"}, {ID: "done", Name: "Watched"}}}
}

func TestCardName(t *testing.T) {
	Convey("Given a parsed episode", t, func() {
		e := episode.Episode{Show: "Foo Bar", Code: "1x02", Title: "Pilot"}

		Convey("The name joins show, code and title with en dashes", func() {
			So(CardName(e), ShouldEqual, "Foo Bar – 1x02 – Pilot")
		})
	})

	Convey("Given an unparsed episode", t, func() {
		e := episode.Episode{Show: "RandomShowTitleWithoutPattern"}

		Convey("The name is the raw title", func() {
			So(CardName(e), ShouldEqual, "RandomShowTitleWithoutPattern")
		})
	})
}

func TestCardDescription(t *testing.T) {
	Convey("Links are numbered from one in order", t, func() {
		e := episode.Episode{Links: []string{"L1", "L2"}}
		So(CardDescription(e), ShouldEqual, "[Link 1](L1), [Link 2](L2)")
	})

	Convey("A single link has no separator", t, func() {
		So(CardDescription(episode.Episode{Links: []string{"L3"}}), ShouldEqual, "[Link 1](L3)")
	})

	Convey("No links render an empty description", t, func() {
		So(CardDescription(episode.Episode{}), ShouldBeEmpty)
	})
}

func TestPublish(t *testing.T) {
	episodes := []episode.Episode{
		{Show: "Foo Bar", Code: "1x02", Title: "Pilot", Links: []string{"L1", "L2"}},
		{Show: "RandomShowTitleWithoutPattern", Links: []string{"L3"}},
	}

	Convey("Given an empty board", t, func() {
		b := newFakeBoard()
		p := NewPublisher(b)

		report, err := p.Publish(episodes)

		Convey("Every episode gets a card on the first open list", func() {
			So(err, ShouldBeNil)
			So(report.List.ID, ShouldEqual, "todo")
			So(b.added, ShouldResemble, []placed{
				{ListID: "todo", Card: Card{Name: "Foo Bar – 1x02 – Pilot", Description: "[Link 1](L1), [Link 2](L2)"}},
				{ListID: "todo", Card: Card{Name: "RandomShowTitleWithoutPattern", Description: "[Link 1](L3)"}},
			})
			So(report.Created, ShouldResemble, []string{"Foo Bar – 1x02 – Pilot", "RandomShowTitleWithoutPattern"})
			So(report.Skipped, ShouldBeEmpty)
		})

		Convey("Publishing again creates nothing", func() {
			again, err := p.Publish(episodes)
			So(err, ShouldBeNil)
			So(again.Created, ShouldBeEmpty)
			So(again.Skipped, ShouldHaveLength, 2)
			So(b.added, ShouldHaveLength, 2)
		})
	})

	Convey("Given a board that already has one of the cards", t, func() {
		b := newFakeBoard()
		b.names = []string{"RandomShowTitleWithoutPattern"}

		report, err := NewPublisher(b).Publish(episodes)

		Convey("Only the missing card is created", func() {
			So(err, ShouldBeNil)
			So(report.Created, ShouldResemble, []string{"Foo Bar – 1x02 – Pilot"})
			So(report.Skipped, ShouldResemble, []string{"RandomShowTitleWithoutPattern"})
		})
	})

	Convey("Given two episodes rendering the same name", t, func() {
		b := newFakeBoard()
		twins := []episode.Episode{
			{Show: "AB", Code: "1", Title: "T", Links: []string{"x"}},
			{Show: "AB", Code: "1", Title: "T", Links: []string{"y"}},
		}

		report, err := NewPublisher(b).Publish(twins)

		Convey("The name is published once", func() {
			So(err, ShouldBeNil)
			So(b.added, ShouldHaveLength, 1)
			So(report.Skipped, ShouldResemble, []string{"AB – 1 – T"})
		})
	})

	Convey("Given a board without open lists", t, func() {
		b := &fakeBoard{}

		_, err := NewPublisher(b).Publish(episodes)

		Convey("Publishing fails", func() {
			So(err, ShouldEqual, ErrNoOpenList)
			So(b.added, ShouldBeEmpty)
		})
	})

	Convey("Given a board whose lists cannot be read", t, func() {
		b := newFakeBoard()
		b.listErr = errors.New("unauthorized")

		_, err := NewPublisher(b).Publish(episodes)

		Convey("The error is returned", func() {
			So(err, ShouldEqual, b.listErr)
		})
	})

	Convey("Given a board failing on the second card", t, func() {
		b := newFakeBoard()
		b.failAt = 2
		var created []string
		p := NewPublisher(b)
		p.OnCreate = func(name string) { created = append(created, name) }

		report, err := p.Publish(episodes)

		Convey("Publishing stops and keeps the first card", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, `"RandomShowTitleWithoutPattern"`)
			So(err.Error(), ShouldContainSubstring, "rate limited")
			So(b.added, ShouldHaveLength, 1)
			So(report.Created, ShouldResemble, []string{"Foo Bar – 1x02 – Pilot"})
			So(created, ShouldResemble, report.Created)
		})
	})
}
