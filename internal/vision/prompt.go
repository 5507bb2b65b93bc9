package vision

// SystemPrompt primes the model for strict JSON output.
const SystemPrompt = `You are a vision-board analyst. You infer a structured life archetype from mood-board images and respond ONLY with JSON.`

// InstructionPrompt is the fixed template both providers send alongside the
// encoded image. The field names are a wire contract; ParseResult depends on
// them verbatim. Keep updates centralized here so it is easy to tweak without
// hunting through call sites.
const InstructionPrompt = `Study this mood-board image and infer the life its owner is reaching toward.

Respond ONLY with a JSON object of this exact shape:

{
  "visualDNA": {
    "colorPalette": ["#RRGGBB", ...],
    "materials": ["linen", ...],
    "lighting": "one-line description",
    "spatialFeeling": "one-line description",
    "emotionalCore": ["calm", ...],
    "archetype": "a single descriptive persona label"
  },
  "lifestyle": {
    "pace": "slow | steady | fast",
    "values": ["craft", ...],
    "dailyRituals": ["morning tea", ...]
  },
  "sensory": {
    "smell": "...",
    "sound": "...",
    "touch": "..."
  },
  "sopMapping": [
    {
      "module": "WRITE_PLAN | PLAN | DO | CHECK",
      "subSystem": "one of: Vision Journal, Brain Dump, Weekly Plan, Project Pipeline, Health, Environment, Relationships, Career, Finance, Growth, Weekly Review, Habit Tracker",
      "visualCue": "the visual evidence in the image",
      "actions": ["imperative action", "imperative action"]
    }
  ]
}

Rules:

- Cover all four modules in sopMapping, with concrete imperative actions.
- Ground every visualCue in something actually visible in the image.
- Colors are hex values. Keep lists short (2-5 entries).
- Do not add commentary before or after the JSON.`
