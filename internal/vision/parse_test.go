package vision

import (
	"errors"
	"testing"
)

const sampleResultJSON = `{
  "visualDNA": {
    "colorPalette": ["#F5E6D3", "#8B7355"],
    "materials": ["linen", "oak"],
    "lighting": "soft morning light",
    "spatialFeeling": "open and grounded",
    "emotionalCore": ["calm", "warmth"],
    "archetype": "The Quiet Builder"
  },
  "lifestyle": {
    "pace": "slow",
    "values": ["craft", "presence"],
    "dailyRituals": ["morning tea", "evening walk"]
  },
  "sensory": {
    "smell": "cedar",
    "sound": "rain on glass",
    "touch": "warm ceramic"
  },
  "sopMapping": [
    {
      "module": "DO",
      "subSystem": "Health",
      "visualCue": "open window with plants",
      "actions": ["Take a 20 minute morning walk", "Prepare one slow meal"]
    }
  ]
}`

func TestParseResultFencedBlock(t *testing.T) {
	text := "Here is my analysis of your board:\n\n```json\n" + sampleResultJSON + "\n```\n\nLet me know if you want detail."
	result, err := ParseResult(text)
	if err != nil {
		t.Fatalf("ParseResult returned error: %v", err)
	}
	if result.VisualDNA.Archetype != "The Quiet Builder" {
		t.Fatalf("unexpected archetype %q", result.VisualDNA.Archetype)
	}
	if len(result.SopMapping) != 1 || result.SopMapping[0].Module != ModuleDo {
		t.Fatalf("unexpected sop mapping %+v", result.SopMapping)
	}
}

func TestParseResultBracedSubstring(t *testing.T) {
	text := "Sure! The structured reading follows.\n" + sampleResultJSON + "\nHope that helps."
	result, err := ParseResult(text)
	if err != nil {
		t.Fatalf("ParseResult returned error: %v", err)
	}
	if result.Lifestyle.Pace != "slow" {
		t.Fatalf("unexpected pace %q", result.Lifestyle.Pace)
	}
}

func TestParseResultBareObject(t *testing.T) {
	result, err := ParseResult(sampleResultJSON)
	if err != nil {
		t.Fatalf("ParseResult returned error: %v", err)
	}
	if len(result.VisualDNA.ColorPalette) != 2 {
		t.Fatalf("unexpected palette %v", result.VisualDNA.ColorPalette)
	}
}

func TestParseResultGarbage(t *testing.T) {
	for _, text := range []string{
		"",
		"the model refused to answer",
		"```json\nnot json at all\n```",
		`{"visualDNA": {"archetype": ""}}`,
	} {
		if _, err := ParseResult(text); !errors.Is(err, ErrResponseParse) {
			t.Fatalf("expected ErrResponseParse for %q, got %v", text, err)
		}
	}
}

func TestParseResultFencedBlockWinsOverProseBraces(t *testing.T) {
	text := "Notes {unstructured} first.\n```json\n" + sampleResultJSON + "\n```"
	result, err := ParseResult(text)
	if err != nil {
		t.Fatalf("ParseResult returned error: %v", err)
	}
	if result.Sensory.Smell != "cedar" {
		t.Fatalf("unexpected smell %q", result.Sensory.Smell)
	}
}

func TestModuleValid(t *testing.T) {
	for _, module := range Modules() {
		if !module.Valid() {
			t.Fatalf("expected %s to be valid", module)
		}
	}
	if Module("SOMEDAY").Valid() {
		t.Fatal("expected unknown module to be invalid")
	}
}
