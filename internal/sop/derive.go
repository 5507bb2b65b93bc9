package sop

import (
	"strings"

	"visionboard/internal/vision"
)

// DeriveManifestationPath expands a result into the fixed 4-week action plan.
// Each week resolves two (module, sub-system) slots against the result's SOP
// mapping; a missing entry substitutes the slot's default literal, so the
// output invariants hold for any input: exactly 4 entries, exactly 2 non-empty
// actions each.
func DeriveManifestationPath(result vision.Result) []vision.ManifestationPathEntry {
	path := make([]vision.ManifestationPathEntry, 0, len(weekThemes))
	for i, theme := range weekThemes {
		actions := make([]string, 0, len(theme.slots))
		for _, slot := range theme.slots {
			actions = append(actions, resolveSlot(result.SopMapping, slot))
		}
		path = append(path, vision.ManifestationPathEntry{
			Week:    i + 1,
			Focus:   theme.focus,
			Actions: actions,
		})
	}
	return path
}

func resolveSlot(mapping []vision.SopMappingEntry, slot weekSlot) string {
	for _, entry := range mapping {
		if entry.Module != slot.module || entry.SubSystem != slot.subSystem {
			continue
		}
		for _, action := range entry.Actions {
			if trimmed := strings.TrimSpace(action); trimmed != "" {
				return trimmed
			}
		}
	}
	return slot.defaultAct
}

// GroupByModule buckets SOP mapping entries by module for dashboard display,
// preserving each entry's original order within its bucket.
func GroupByModule(mapping []vision.SopMappingEntry) map[vision.Module][]vision.SopMappingEntry {
	groups := make(map[vision.Module][]vision.SopMappingEntry, len(mapping))
	for _, entry := range mapping {
		groups[entry.Module] = append(groups[entry.Module], entry)
	}
	return groups
}
