package aggregate

import (
	"sort"

	"github.com/scrapworks/reclaimer/internal/domain"
)

// partitionSources assigns each scored source to the Salvage or Recycle bucket.
// Zero-sided sources are forced into the scoreable bucket; otherwise recycling
// must beat salvaging by RecyclingThreshold to justify the trip back to base.
// Each bucket is sorted descending by its relevant score, stable on ties.
func partitionSources(sources []domain.SalvagingSource) (salvage, recycle []domain.SalvagingSource) {
	salvage = make([]domain.SalvagingSource, 0, len(sources))
	recycle = make([]domain.SalvagingSource, 0, len(sources))

	for _, src := range sources {
		switch {
		case src.SalvageScore == 0 && src.RecycleScore == 0:
			continue
		case src.SalvageScore == 0:
			recycle = append(recycle, src)
		case src.RecycleScore == 0:
			salvage = append(salvage, src)
		default:
			recyclingAdvantage := src.RecycleScore / src.SalvageScore
			if recyclingAdvantage > RecyclingThreshold {
				recycle = append(recycle, src)
			} else {
				salvage = append(salvage, src)
			}
		}
	}

	sort.SliceStable(salvage, func(i, j int) bool {
		return salvage[i].SalvageScore > salvage[j].SalvageScore
	})
	sort.SliceStable(recycle, func(i, j int) bool {
		return recycle[i].RecycleScore > recycle[j].RecycleScore
	})

	return salvage, recycle
}
