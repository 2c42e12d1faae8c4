package allocator

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// RankCandidates orders candidates for equalization: ascending total duty count, then
// ascending count of the duty being filled, with remaining ties broken by a random
// permutation drawn from rng. The permutation is applied first and the sort is stable,
// so a fixed seed always yields the same order.
//
// The input slice is reordered in place and returned.
func RankCandidates(candidates []*StaffState, duty model.DutyType, rng *rand.Rand) []*StaffState {
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	slices.SortStableFunc(candidates, func(a, b *StaffState) int {
		if c := cmp.Compare(a.DutyCount, b.DutyCount); c != 0 {
			return c
		}
		return cmp.Compare(a.DutyTypeCounts[duty], b.DutyTypeCounts[duty])
	})

	return candidates
}
