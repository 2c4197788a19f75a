// Package episode defines the Episode record and merges feed entries that describe the same episode.
package episode

// Episode is one released episode as announced by the feed.
//
// Title and Code are empty when the feed title could not be parsed; Show then carries the raw title.
type Episode struct {
	Show  string   `json:"show"`
	Title string   `json:"title"`
	Code  string   `json:"code"`
	Links []string `json:"links"`
}

// Key identifies the episode for merging: Show and Code concatenated.
//
// The plain concatenation can collide ("AB"+"1" and "A"+"B1"), and unparsed
// entries sharing a raw title share a key. Both are kept as-is.
func (e Episode) Key() string {
	return e.Show + e.Code
}

// Parsed reports whether the structured fields were recovered from the feed title.
func (e Episode) Parsed() bool {
	return e.Code != ""
}

func (e Episode) String() string {
	if e.Title == "" {
		return e.Show
	}
	return e.Show + " " + e.Code + " " + e.Title
}
