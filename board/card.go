package board

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/vonZeppelin/tvshowl/episode"
)

const nameSeparator = " – "

// CardName renders "Show – Code – Title", or just the show for unparsed entries.
func CardName(e episode.Episode) string {
	if e.Title == "" {
		return e.Show
	}
	return strings.Join([]string{e.Show, e.Code, e.Title}, nameSeparator)
}

// CardDescription renders the links as numbered markdown links.
func CardDescription(e episode.Episode) string {
	links := lo.Map(e.Links, func(link string, i int) string {
		return fmt.Sprintf("[Link %d](%s)", i+1, link)
	})
	return strings.Join(links, ", ")
}
