// Package partition splits a page range into evenly sized consecutive groups.
package partition

// Partition distributes pages 1..totalPages over groupCount groups.
//
// The first totalPages%groupCount groups get one extra page, so sizes never
// differ by more than one and larger groups come first. Groups that would be
// empty (groupCount > totalPages) are dropped.
func Partition(totalPages, groupCount int) [][]int {
	if totalPages <= 0 || groupCount <= 0 {
		return nil
	}

	base := totalPages / groupCount
	extra := totalPages % groupCount

	groups := make([][]int, 0, min(groupCount, totalPages))
	page := 1
	for i := 0; i < groupCount; i++ {
		size := base
		if i < extra {
			size++
		}
		if size == 0 {
			continue
		}
		group := make([]int, size)
		for j := range group {
			group[j] = page
			page++
		}
		groups = append(groups, group)
	}
	return groups
}

// Summary describes a partition without materialising it.
type Summary struct {
	Groups        int // effective number of output images
	PagesPerGroup int // approximate pages per image, rounded up
}

// Summarize returns the effective group count and the rounded-up pages per
// image, as shown before a run.
func Summarize(totalPages, groupCount int) Summary {
	if totalPages <= 0 || groupCount <= 0 {
		return Summary{}
	}
	groups := min(groupCount, totalPages)
	return Summary{
		Groups:        groups,
		PagesPerGroup: (totalPages + groups - 1) / groups,
	}
}
