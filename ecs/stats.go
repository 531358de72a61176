package ecs

import (
	"slices"
	"strings"
)

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype in StorageStats.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// String names the archetype by its component types, e.g. "gallery.Sprite+gallery.Transform".
func (a ArchetypeStats) String() string {
	return strings.Join(a.ComponentTypes, "+")
}

// CollectStats walks the storage and summarises it. Archetypes are sorted by
// entity count, largest first.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount: len(s.archetypes),
		SingletonCount: len(s.singletons),
	}

	for _, archetype := range s.archetypes {
		names := make([]string, len(archetype.types))
		for i, t := range archetype.types {
			names[i] = t.String()
		}
		count := archetype.Len()
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    count,
		})
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	slices.Sort(stats.SingletonTypes)

	slices.SortFunc(stats.ArchetypeBreakdown, func(a, b ArchetypeStats) int {
		if a.EntityCount != b.EntityCount {
			return b.EntityCount - a.EntityCount
		}
		return strings.Compare(a.String(), b.String())
	})

	return stats
}
