package sop

import "visionboard/internal/vision"

const (
	colorWeight   = 0.2
	emotionWeight = 0.3
	valueWeight   = 0.3

	relationThreshold = 0.5
)

// DetectRelations recomputes the related-record list for every record in the
// collection. Two records relate when their similarity score reaches the
// threshold: each shared palette color contributes 0.2, each shared emotional
// core entry 0.3, each shared lifestyle value 0.3. Comparisons are exact and
// case-sensitive. The pass is O(n^2) over the collection and intended for the
// tens of records a single user accumulates.
func DetectRelations(records []*vision.Record) {
	for _, record := range records {
		record.Related = nil
	}
	for _, a := range records {
		for _, b := range records {
			if a == b || a.ID == b.ID {
				continue
			}
			if Similarity(a, b) >= relationThreshold {
				a.Related = append(a.Related, b.ID)
			}
		}
	}
}

// Similarity scores how strongly two records overlap in palette, emotional
// core, and lifestyle values.
func Similarity(a, b *vision.Record) float64 {
	score := 0.0
	score += colorWeight * overlap(a.Result.VisualDNA.ColorPalette, b.Result.VisualDNA.ColorPalette)
	score += emotionWeight * overlap(a.Result.VisualDNA.EmotionalCore, b.Result.VisualDNA.EmotionalCore)
	score += valueWeight * overlap(a.Result.Lifestyle.Values, b.Result.Lifestyle.Values)
	return score
}

func overlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(b))
	for _, value := range b {
		set[value] = struct{}{}
	}
	shared := 0
	seen := make(map[string]struct{}, len(a))
	for _, value := range a {
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		if _, ok := set[value]; ok {
			shared++
		}
	}
	return float64(shared)
}
