package feed

import (
	"regexp"

	"github.com/vonZeppelin/tvshowl/episode"
	"github.com/vonZeppelin/tvshowl/util"
)

// titlePattern splits "Show Name 1x02 Episode Title 720p ..." into its parts.
// The code is loosely "season<sep>episode"; a trailing 3-4 digit quality tag and whatever follows it is dropped.
// Separators and digits include their Unicode forms, e.g. no-break spaces.
var titlePattern = regexp.MustCompile(
	`^(?P<show>.+)[\s\p{Z}](?P<code>\p{Nd}{1,3}.\p{Nd}{1,3})[\s\p{Z}](?P<title>.+?)([\s\p{Z}]\p{Nd}{3,4}.*)?$`,
)

// ParseTitle builds an Episode from a feed entry title and link.
// Titles not following the pattern are kept whole in Show, with empty Code and Title.
func ParseTitle(title, link string) episode.Episode {
	groups := util.ReGroups(titlePattern, title)
	if len(groups) == 0 {
		return episode.Episode{Show: title, Links: []string{link}}
	}

	return episode.Episode{
		Show:  groups["show"],
		Code:  groups["code"],
		Title: groups["title"],
		Links: []string{link},
	}
}
