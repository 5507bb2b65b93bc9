package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"visionboard/internal/sop"
	"visionboard/internal/store"
	"visionboard/internal/vision"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one vision record in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				record, err := st.GetByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if record == nil {
					return fmt.Errorf("vision %q not found", args[0])
				}
				completions, err := st.Completions(cmd.Context(), record.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderRecord(record, completions, colorize) {
					fmt.Fprintln(out, line)
				}
				return nil
			})
		},
	}
}

func renderRecord(record *vision.Record, completions []store.Completion, colorize bool) []string {
	checked := make(map[[2]int]bool, len(completions))
	for _, c := range completions {
		checked[[2]int{c.WeekIndex, c.ActionIndex}] = c.Done
	}

	dna := record.Result.VisualDNA
	lines := renderSectionHeader(vision.BoardTitle(record.ImagePath), colorize)
	lines = append(lines,
		renderField("ID", record.ID),
		renderField("Uploaded", time.UnixMilli(record.UploadedAt).Format(time.RFC1123)),
		renderField("Archetype", dna.Archetype),
		"",
	)

	lines = append(lines, renderSectionHeader("Visual DNA", colorize)...)
	lines = append(lines,
		renderField("Palette", strings.Join(dna.ColorPalette, " ")),
		renderField("Materials", strings.Join(dna.Materials, ", ")),
		renderField("Lighting", dna.Lighting),
		renderField("Spatial feeling", dna.SpatialFeeling),
		renderField("Emotional core", strings.Join(dna.EmotionalCore, ", ")),
		"",
	)

	lifestyle := record.Result.Lifestyle
	lines = append(lines, renderSectionHeader("Lifestyle", colorize)...)
	lines = append(lines,
		renderField("Pace", lifestyle.Pace),
		renderField("Values", strings.Join(lifestyle.Values, ", ")),
		renderField("Daily rituals", strings.Join(lifestyle.DailyRituals, "; ")),
		"",
	)

	sensory := record.Result.Sensory
	lines = append(lines, renderSectionHeader("Sensory", colorize)...)
	lines = append(lines,
		renderField("Smell", sensory.Smell),
		renderField("Sound", sensory.Sound),
		renderField("Touch", sensory.Touch),
		"",
	)

	lines = append(lines, renderSectionHeader("System Mapping", colorize)...)
	grouped := sop.GroupByModule(record.Result.SopMapping)
	for _, module := range vision.Modules() {
		entries := grouped[module]
		if len(entries) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s", module))
		for _, entry := range entries {
			lines = append(lines, fmt.Sprintf("    %s (%s)", entry.SubSystem, entry.VisualCue))
			for _, action := range entry.Actions {
				lines = append(lines, "      - "+action)
			}
		}
	}
	lines = append(lines, "")

	lines = append(lines, renderSectionHeader("Manifestation Path", colorize)...)
	for weekIndex, entry := range record.Path {
		lines = append(lines, fmt.Sprintf("  Week %d: %s", entry.Week, entry.Focus))
		for actionIndex, action := range entry.Actions {
			lines = append(lines, "  "+renderCheckbox(checked[[2]int{weekIndex, actionIndex}], action, colorize))
		}
	}

	if len(record.Related) > 0 {
		lines = append(lines, "")
		lines = append(lines, renderField("Related", strings.Join(record.Related, ", ")))
	}
	return lines
}
