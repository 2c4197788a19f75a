// Package board publishes episodes as cards on a Trello board.
package board

import (
	"context"
	"fmt"

	"github.com/adlio/trello"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/vonZeppelin/tvshowl/config"
	"github.com/vonZeppelin/tvshowl/log"
	"github.com/vonZeppelin/tvshowl/network"
)

// List is an open list of a board.
type List struct {
	ID   string
	Name string
}

// Card is a card to be created on a list.
type Card struct {
	Name        string
	Description string
}

// Board is the part of a task board the publisher needs.
type Board interface {
	// OpenLists returns the open lists in board order.
	OpenLists() ([]List, error)
	// OpenCardNames returns the names of all open cards on the board.
	OpenCardNames() ([]string, error)
	// AddCard appends a card to the bottom of the list.
	AddCard(listID string, card Card) error
}

var openOnly = trello.Arguments{"filter": "open"}

type trelloBoard struct {
	client *trello.Client
	board  *trello.Board
}

// baseURL is the Trello REST endpoint.
var baseURL = trello.DefaultBaseURL

// Open authenticates against Trello and resolves the configured board.
// Every later board request is bound to ctx.
func Open(ctx context.Context, settings *config.Settings) (Board, error) {
	client := trello.NewClient(settings.Key, settings.Token).WithContext(ctx)
	client.Client = network.Client
	client.BaseURL = baseURL

	b, err := client.GetBoard(settings.Board, trello.Defaults())
	if err != nil {
		return nil, fmt.Errorf("open board %s: %w", settings.Board, err)
	}

	log.WithFields(logrus.Fields{"board": b.ID, "name": b.Name}).Info("board opened")
	return &trelloBoard{client: client, board: b}, nil
}

func (t *trelloBoard) OpenLists() ([]List, error) {
	lists, err := t.board.GetLists(openOnly)
	if err != nil {
		return nil, fmt.Errorf("get lists: %w", err)
	}

	open := lo.Reject(lists, func(l *trello.List, _ int) bool { return l.Closed })
	return lo.Map(open, func(l *trello.List, _ int) List {
		return List{ID: l.ID, Name: l.Name}
	}), nil
}

func (t *trelloBoard) OpenCardNames() ([]string, error) {
	cards, err := t.board.GetCards(openOnly)
	if err != nil {
		return nil, fmt.Errorf("get cards: %w", err)
	}

	return lo.FilterMap(cards, func(c *trello.Card, _ int) (string, bool) {
		return c.Name, !c.Closed
	}), nil
}

func (t *trelloBoard) AddCard(listID string, card Card) error {
	return t.client.CreateCard(&trello.Card{
		Name:   card.Name,
		Desc:   card.Description,
		IDList: listID,
	}, trello.Arguments{"pos": "bottom"})
}
