package models

// Built-in vocabularies. Each list can be extended by the user through
// AppSettings; the engines treat every tag as an opaque string.

func DefaultBuiltinHeadacheTypes() []string {
	return []string{
		"Migraine",
		"Tension",
		"Cluster",
		"Sinus",
		"Cervicogenic",
	}
}

func DefaultBuiltinSymptoms() []string {
	return []string{
		"Nausea",
		"Vomiting",
		"Light sensitivity",
		"Sound sensitivity",
		"Smell sensitivity",
		"Neck pain",
		"Dizziness",
		"Fatigue",
	}
}

func DefaultBuiltinAuras() []string {
	return []string{
		"Visual",
		"Sensory",
		"Speech",
		"Motor",
	}
}

func DefaultBuiltinMedicationTypes() []string {
	return []string{
		"Painkiller",
		"Triptan",
		"Prophylactic",
		"Antiemetic",
	}
}

// MergeVocabulary appends user-defined entries to the built-in list, skipping
// duplicates while keeping built-in order first.
func MergeVocabulary(builtin []string, custom []string) []string {
	seen := make(map[string]struct{}, len(builtin)+len(custom))
	merged := make([]string, 0, len(builtin)+len(custom))
	for _, entry := range builtin {
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		merged = append(merged, entry)
	}
	for _, entry := range custom {
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		merged = append(merged, entry)
	}
	return merged
}
