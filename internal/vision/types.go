package vision

import (
	"fmt"
	"strings"
	"time"
)

// Module names one of the four SOP stages an action is classified into.
type Module string

const (
	ModuleWritePlan Module = "WRITE_PLAN"
	ModulePlan      Module = "PLAN"
	ModuleDo        Module = "DO"
	ModuleCheck     Module = "CHECK"
)

// Modules lists the canonical stages in pipeline order.
func Modules() []Module {
	return []Module{ModuleWritePlan, ModulePlan, ModuleDo, ModuleCheck}
}

// Valid reports whether the module is one of the canonical stages.
func (m Module) Valid() bool {
	switch m {
	case ModuleWritePlan, ModulePlan, ModuleDo, ModuleCheck:
		return true
	}
	return false
}

// VisualDNA captures the aesthetic reading of a mood-board image.
type VisualDNA struct {
	ColorPalette   []string `json:"colorPalette"`
	Materials      []string `json:"materials"`
	Lighting       string   `json:"lighting"`
	SpatialFeeling string   `json:"spatialFeeling"`
	EmotionalCore  []string `json:"emotionalCore"`
	Archetype      string   `json:"archetype"`
}

// LifestyleInference captures the pace, values, and rituals inferred from the image.
type LifestyleInference struct {
	Pace         string   `json:"pace"`
	Values       []string `json:"values"`
	DailyRituals []string `json:"dailyRituals"`
}

// SensoryTriggers captures the non-visual atmosphere the image suggests.
type SensoryTriggers struct {
	Smell string `json:"smell"`
	Sound string `json:"sound"`
	Touch string `json:"touch"`
}

// SopMappingEntry assigns inferred actions to a (module, sub-system) bucket.
type SopMappingEntry struct {
	Module    Module   `json:"module"`
	SubSystem string   `json:"subSystem"`
	VisualCue string   `json:"visualCue"`
	Actions   []string `json:"actions"`
}

// Result is the canonical structured payload produced by a vision model (or a
// fallback substitution). The JSON field names are a fixed wire contract shared
// with the instruction template; both provider adapters normalize into this
// single shape.
type Result struct {
	VisualDNA  VisualDNA          `json:"visualDNA"`
	Lifestyle  LifestyleInference `json:"lifestyle"`
	Sensory    SensoryTriggers    `json:"sensory"`
	SopMapping []SopMappingEntry  `json:"sopMapping"`
}

// Validate reports whether the result carries the minimum usable content.
// Missing modules or sub-systems are tolerated downstream, so validation stays
// intentionally shallow.
func (r Result) Validate() error {
	if strings.TrimSpace(r.VisualDNA.Archetype) == "" {
		return fmt.Errorf("vision result: archetype required")
	}
	for i, entry := range r.SopMapping {
		if strings.TrimSpace(entry.SubSystem) == "" {
			return fmt.Errorf("vision result: sop mapping %d: sub-system required", i)
		}
	}
	return nil
}

// ManifestationPathEntry is one week of the derived 4-week action plan.
type ManifestationPathEntry struct {
	Week    int      `json:"week"`
	Focus   string   `json:"focus"`
	Actions []string `json:"actions"`
}

// Record is the aggregate produced once per processed image. It is immutable
// after creation except for the related-record list, which is recomputed
// whenever the stored collection changes.
type Record struct {
	ID         string                   `json:"id"`
	ImagePath  string                   `json:"imagePath"`
	UploadedAt int64                    `json:"uploadedAt"`
	Result     Result                   `json:"result"`
	Path       []ManifestationPathEntry `json:"path"`
	Related    []string                 `json:"related"`
}

// NewRecordID composes a record identifier from an upload timestamp and the
// image's index within its batch. Uniqueness is probabilistic, matching the
// lifetime of a single user session rather than a global registry.
func NewRecordID(at time.Time, batchIndex int) string {
	return fmt.Sprintf("%d-%d", at.UnixMilli(), batchIndex)
}

// Archetype returns the inferred archetype label.
func (r *Record) Archetype() string {
	return r.Result.VisualDNA.Archetype
}
