package cleaner

import (
	"sort"

	"github.com/ghostcomment/ghostcomment/internal/types"
)

// GroupByFile partitions comments by file path, each group sorted by
// descending line number. The removal in this package drops lines by index
// set in one pass and does not depend on the order, but the descending sort
// is a documented contract: a removal strategy that splices lines one at a
// time must go bottom-up to keep earlier indices valid.
func GroupByFile(comments []types.GhostComment) map[string][]types.GhostComment {
	groups := make(map[string][]types.GhostComment)
	for _, gc := range comments {
		groups[gc.FilePath] = append(groups[gc.FilePath], gc)
	}
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool { return g[i].LineNumber > g[j].LineNumber })
	}
	return groups
}
