package sop

import "visionboard/internal/vision"

// Sub-system names form a fixed taxonomy. The instruction template asks the
// model to classify actions into these buckets; aggregation tolerates anything
// else but the lookups below only ever target canonical names.
const (
	SubVisionJournal   = "Vision Journal"
	SubBrainDump       = "Brain Dump"
	SubWeeklyPlan      = "Weekly Plan"
	SubProjectPipeline = "Project Pipeline"
	SubHealth          = "Health"
	SubEnvironment     = "Environment"
	SubRelationships   = "Relationships"
	SubCareer          = "Career"
	SubFinance         = "Finance"
	SubGrowth          = "Growth"
	SubWeeklyReview    = "Weekly Review"
	SubHabitTracker    = "Habit Tracker"
)

// SubSystems returns the canonical sub-system names for a module.
func SubSystems(module vision.Module) []string {
	switch module {
	case vision.ModuleWritePlan:
		return []string{SubVisionJournal, SubBrainDump}
	case vision.ModulePlan:
		return []string{SubWeeklyPlan, SubProjectPipeline}
	case vision.ModuleDo:
		return []string{SubHealth, SubEnvironment, SubRelationships, SubCareer, SubFinance, SubGrowth}
	case vision.ModuleCheck:
		return []string{SubWeeklyReview, SubHabitTracker}
	}
	return nil
}

// weekSlot resolves to the first action of the first SopMapping entry matching
// (module, subSystem), or to the default literal when the lookup misses.
type weekSlot struct {
	module     vision.Module
	subSystem  string
	defaultAct string
}

type weekTheme struct {
	focus string
	slots [2]weekSlot
}

// The week-to-category mapping is a static table, not inferred from content.
var weekThemes = [4]weekTheme{
	{
		focus: "Foundation",
		slots: [2]weekSlot{
			{vision.ModuleWritePlan, SubVisionJournal, "Write one page about the life this board points to"},
			{vision.ModuleDo, SubEnvironment, "Clear one surface in your home and keep it clear"},
		},
	},
	{
		focus: "Rhythm",
		slots: [2]weekSlot{
			{vision.ModuleDo, SubHealth, "Anchor one daily ritual at the same hour each day"},
			{vision.ModulePlan, SubWeeklyPlan, "Block two hours this week for your most-wanted project"},
		},
	},
	{
		focus: "Connection",
		slots: [2]weekSlot{
			{vision.ModuleDo, SubRelationships, "Share a meal with someone who matches this mood"},
			{vision.ModuleDo, SubGrowth, "Spend 30 minutes learning something the board suggests"},
		},
	},
	{
		focus: "Integration",
		slots: [2]weekSlot{
			{vision.ModuleCheck, SubWeeklyReview, "Review which actions felt true and which felt forced"},
			{vision.ModuleCheck, SubHabitTracker, "Mark the rituals you kept and pick one to continue"},
		},
	},
}
