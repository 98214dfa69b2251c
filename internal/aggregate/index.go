package aggregate

import (
	"github.com/scrapworks/reclaimer/internal/domain"
)

// buildIndices builds the bidirectional material<->source lookup maps used for
// interactive cross-highlighting. Sources are visited salvage list first, then
// recycle list, so salvage sources appear earlier for shared materials.
// materialOrder fixes map iteration so output order is deterministic.
func buildIndices(salvage, recycle []domain.SalvagingSource, materialOrder []string) (materialToSources, sourceToMaterials map[string][]string) {
	materialToSources = make(map[string][]string)
	sourceToMaterials = make(map[string][]string)
	seenPair := make(map[string]map[string]struct{})

	index := func(src domain.SalvagingSource) {
		sourceID := src.Item.ID
		var materials []string
		for _, materialID := range materialOrder {
			_, inSalvage := src.SalvageYields[materialID]
			_, inRecycle := src.RecycleYields[materialID]
			if !inSalvage && !inRecycle {
				continue
			}
			materials = append(materials, materialID)

			if seenPair[materialID] == nil {
				seenPair[materialID] = make(map[string]struct{})
			}
			if _, ok := seenPair[materialID][sourceID]; !ok {
				seenPair[materialID][sourceID] = struct{}{}
				materialToSources[materialID] = append(materialToSources[materialID], sourceID)
			}
		}
		if _, ok := sourceToMaterials[sourceID]; !ok {
			sourceToMaterials[sourceID] = materials
		}
	}

	for _, src := range salvage {
		index(src)
	}
	for _, src := range recycle {
		index(src)
	}

	return materialToSources, sourceToMaterials
}
