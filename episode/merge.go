package episode

import (
	"iter"
	"slices"
)

// Merge folds episodes sharing a Key into one, in order of first appearance.
//
// The first episode of a group keeps its Show, Title and Code; links of later
// episodes are appended in order. Input link slices are never modified.
func Merge(episodes iter.Seq[Episode]) []Episode {
	var (
		merged []Episode
		index  = make(map[string]int)
	)

	for e := range episodes {
		if i, ok := index[e.Key()]; ok {
			merged[i].Links = append(merged[i].Links, e.Links...)
			continue
		}

		index[e.Key()] = len(merged)
		e.Links = slices.Clone(e.Links)
		merged = append(merged, e)
	}

	return merged
}
