package analysis

import (
	"visionboard/internal/sop"
	"visionboard/internal/vision"
)

// DemoArchetype is the archetype label of the canonical demo result.
const DemoArchetype = "The Sunlit Architect"

// demoResult is returned verbatim for images named demo.* so product
// demonstrations never depend on a live provider.
var demoResult = vision.Result{
	VisualDNA: vision.VisualDNA{
		ColorPalette:   []string{"#F4E8D8", "#D9A87E", "#6B8E7F", "#2F4538"},
		Materials:      []string{"white oak", "linen", "terracotta"},
		Lighting:       "full morning sun through tall windows",
		SpatialFeeling: "open plan, plants at every sightline",
		EmotionalCore:  []string{"clarity", "optimism", "groundedness"},
		Archetype:      DemoArchetype,
	},
	Lifestyle: vision.LifestyleInference{
		Pace:         "steady",
		Values:       []string{"craft", "light", "growth"},
		DailyRituals: []string{"sunrise coffee on the balcony", "sketching before email"},
	},
	Sensory: vision.SensoryTriggers{
		Smell: "fresh cedar shavings",
		Sound: "quiet instrumental playlists",
		Touch: "warm sanded wood",
	},
	SopMapping: []vision.SopMappingEntry{
		{
			Module:    vision.ModuleWritePlan,
			SubSystem: sop.SubVisionJournal,
			VisualCue: "a drafting table facing the window",
			Actions:   []string{"Sketch the room you want to wake up in", "Write the headline of your ideal Tuesday"},
		},
		{
			Module:    vision.ModulePlan,
			SubSystem: sop.SubWeeklyPlan,
			VisualCue: "orderly open shelving",
			Actions:   []string{"Plan the week around one building project", "Reserve daylight hours for deep work"},
		},
		{
			Module:    vision.ModuleDo,
			SubSystem: sop.SubEnvironment,
			VisualCue: "plants and clear surfaces",
			Actions:   []string{"Repot one plant and clear one shelf", "Move your desk toward the window"},
		},
		{
			Module:    vision.ModuleDo,
			SubSystem: sop.SubHealth,
			VisualCue: "morning light across the floor",
			Actions:   []string{"Walk outside within an hour of waking", "Eat lunch away from the screen"},
		},
		{
			Module:    vision.ModuleCheck,
			SubSystem: sop.SubWeeklyReview,
			VisualCue: "a wall calendar with penciled notes",
			Actions:   []string{"Review the week each Sunday in sunlight", "Photograph your space weekly and compare"},
		},
	},
}

// fallbackLibrary holds the pre-authored safe results substituted when no
// provider can serve an image. Selection cycles by batch index, not content,
// so a multi-image batch degrades into varied rather than identical boards.
// Every entry satisfies the same invariants as a live result.
var fallbackLibrary = []vision.Result{
	{
		VisualDNA: vision.VisualDNA{
			ColorPalette:   []string{"#EDE6DB", "#B9A689", "#708C69"},
			Materials:      []string{"raw linen", "unglazed ceramic"},
			Lighting:       "diffuse overcast daylight",
			SpatialFeeling: "small rooms, deliberate objects",
			EmotionalCore:  []string{"calm", "intention"},
			Archetype:      "The Quiet Curator",
		},
		Lifestyle: vision.LifestyleInference{
			Pace:         "slow",
			Values:       []string{"simplicity", "presence"},
			DailyRituals: []string{"hand-ground coffee", "an evening page of notes"},
		},
		Sensory: vision.SensoryTriggers{
			Smell: "black tea and paper",
			Sound: "a quiet room with a clock",
			Touch: "smooth worn ceramic",
		},
		SopMapping: []vision.SopMappingEntry{
			{
				Module:    vision.ModuleWritePlan,
				SubSystem: sop.SubVisionJournal,
				VisualCue: "negative space in the composition",
				Actions:   []string{"List ten things you could live without", "Describe your ideal empty shelf"},
			},
			{
				Module:    vision.ModulePlan,
				SubSystem: sop.SubWeeklyPlan,
				VisualCue: "a single object per surface",
				Actions:   []string{"Choose one priority per day this week", "Cancel one standing commitment"},
			},
			{
				Module:    vision.ModuleDo,
				SubSystem: sop.SubEnvironment,
				VisualCue: "bare walls and soft light",
				Actions:   []string{"Remove five objects from your main room", "Keep one surface permanently clear"},
			},
			{
				Module:    vision.ModuleCheck,
				SubSystem: sop.SubHabitTracker,
				VisualCue: "the repetition of simple forms",
				Actions:   []string{"Track one habit only this month", "Note what you removed and missed"},
			},
		},
	},
	{
		VisualDNA: vision.VisualDNA{
			ColorPalette:   []string{"#1D3557", "#E63946", "#F1FAEE"},
			Materials:      []string{"steel", "glass", "dark denim"},
			Lighting:       "high-contrast evening light",
			SpatialFeeling: "vertical, urban, in motion",
			EmotionalCore:  []string{"drive", "focus"},
			Archetype:      "The Momentum Seeker",
		},
		Lifestyle: vision.LifestyleInference{
			Pace:         "fast",
			Values:       []string{"ambition", "mastery"},
			DailyRituals: []string{"early gym sessions", "a nightly shutdown checklist"},
		},
		Sensory: vision.SensoryTriggers{
			Smell: "espresso",
			Sound: "city traffic at dusk",
			Touch: "cold metal railing",
		},
		SopMapping: []vision.SopMappingEntry{
			{
				Module:    vision.ModuleWritePlan,
				SubSystem: sop.SubBrainDump,
				VisualCue: "dense skyline grid",
				Actions:   []string{"Empty your head onto one page each morning", "Name the single project that matters most"},
			},
			{
				Module:    vision.ModulePlan,
				SubSystem: sop.SubProjectPipeline,
				VisualCue: "construction cranes on the horizon",
				Actions:   []string{"Break your main goal into two-week slices", "Schedule the hardest task first"},
			},
			{
				Module:    vision.ModuleDo,
				SubSystem: sop.SubHealth,
				VisualCue: "runners along the waterfront",
				Actions:   []string{"Train before the city wakes", "Walk every call under thirty minutes"},
			},
			{
				Module:    vision.ModuleDo,
				SubSystem: sop.SubCareer,
				VisualCue: "lit office windows",
				Actions:   []string{"Ship one visible thing this week", "Ask one person above you for feedback"},
			},
			{
				Module:    vision.ModuleCheck,
				SubSystem: sop.SubWeeklyReview,
				VisualCue: "the skyline seen from above",
				Actions:   []string{"Measure the week in shipped work, not hours", "Cut whatever produced nothing twice"},
			},
		},
	},
	{
		VisualDNA: vision.VisualDNA{
			ColorPalette:   []string{"#7A9E7E", "#C9D8B6", "#8B5E3C"},
			Materials:      []string{"wool", "rough-sawn pine", "river stone"},
			Lighting:       "golden hour through trees",
			SpatialFeeling: "open land, long horizons",
			EmotionalCore:  []string{"warmth", "belonging"},
			Archetype:      "The Gathering Host",
		},
		Lifestyle: vision.LifestyleInference{
			Pace:         "steady",
			Values:       []string{"community", "nourishment"},
			DailyRituals: []string{"cooking for others", "a walk after dinner"},
		},
		Sensory: vision.SensoryTriggers{
			Smell: "bread and woodsmoke",
			Sound: "overlapping conversation",
			Touch: "heavy wool blanket",
		},
		SopMapping: []vision.SopMappingEntry{
			{
				Module:    vision.ModuleWritePlan,
				SubSystem: sop.SubVisionJournal,
				VisualCue: "a long table set for many",
				Actions:   []string{"Write the guest list of your ideal dinner", "Describe the meal you want to master"},
			},
			{
				Module:    vision.ModulePlan,
				SubSystem: sop.SubWeeklyPlan,
				VisualCue: "seasonal produce baskets",
				Actions:   []string{"Plan one shared meal this week", "Block an evening with no screens"},
			},
			{
				Module:    vision.ModuleDo,
				SubSystem: sop.SubRelationships,
				VisualCue: "chairs pulled close together",
				Actions:   []string{"Invite someone you have not seen this month", "Cook double and give half away"},
			},
			{
				Module:    vision.ModuleDo,
				SubSystem: sop.SubFinance,
				VisualCue: "preserved goods on open shelves",
				Actions:   []string{"Put a number on hosting monthly", "Move one recurring cost toward shared meals"},
			},
			{
				Module:    vision.ModuleCheck,
				SubSystem: sop.SubWeeklyReview,
				VisualCue: "a full table at dusk",
				Actions:   []string{"Count the meals shared, not the tasks done", "Ask one guest what to do differently"},
			},
		},
	},
}

// FallbackResult returns the library entry for an image's batch index. The
// cycle is deterministic so a rerun of the same batch degrades identically.
func FallbackResult(index int) vision.Result {
	if index < 0 {
		index = -index
	}
	return fallbackLibrary[index%len(fallbackLibrary)]
}

// DemoResult returns the canonical demo result.
func DemoResult() vision.Result {
	return demoResult
}
