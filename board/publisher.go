package board

import (
	"errors"
	"fmt"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/sirupsen/logrus"
	"github.com/vonZeppelin/tvshowl/episode"
	"github.com/vonZeppelin/tvshowl/log"
)

// ErrNoOpenList is returned when the board has no open list to add cards to.
var ErrNoOpenList = errors.New("board has no open list")

// nearDuplicateDistance is the edit distance at which an existing card is
// reported as a possible duplicate of a new one.
const nearDuplicateDistance = 2

// Report lists the card names created and skipped by one Publish call.
type Report struct {
	List    List
	Created []string
	Skipped []string
}

// Publisher adds one card per episode to the first open list of a board.
type Publisher struct {
	board Board

	// OnCreate, when set, is called after every created card.
	OnCreate func(name string)
}

// NewPublisher returns a Publisher adding cards to b.
func NewPublisher(b Board) *Publisher {
	return &Publisher{board: b}
}

// Publish creates a card for every episode whose name is not already on the board.
//
// The first board error aborts publishing; cards created before it stay on the board.
// The returned report is valid up to the failure.
func (p *Publisher) Publish(episodes []episode.Episode) (*Report, error) {
	lists, err := p.board.OpenLists()
	if err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return nil, ErrNoOpenList
	}

	report := &Report{List: lists[0]}

	names, err := p.board.OpenCardNames()
	if err != nil {
		return report, err
	}

	existing := make(map[string]struct{}, len(names))
	for _, name := range names {
		existing[name] = struct{}{}
	}

	for _, e := range episodes {
		name := CardName(e)
		if _, ok := existing[name]; ok {
			log.Debugf("card %q already on board", name)
			report.Skipped = append(report.Skipped, name)
			continue
		}

		warnNearDuplicates(name, names)

		card := Card{Name: name, Description: CardDescription(e)}
		if err := p.board.AddCard(report.List.ID, card); err != nil {
			return report, fmt.Errorf("create card %q: %w", name, err)
		}

		log.WithFields(logrus.Fields{
			"card":  name,
			"list":  report.List.Name,
			"links": len(e.Links),
		}).Info("card created")

		existing[name] = struct{}{}
		names = append(names, name)
		report.Created = append(report.Created, name)

		if p.OnCreate != nil {
			p.OnCreate(name)
		}
	}

	return report, nil
}

func warnNearDuplicates(name string, names []string) {
	for _, other := range names {
		if d := levenshtein.Distance(name, other); d <= nearDuplicateDistance {
			log.WithFields(logrus.Fields{
				"card":     name,
				"similar":  other,
				"distance": d,
			}).Warn("card name close to an existing card")
		}
	}
}
