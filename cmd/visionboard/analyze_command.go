package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"visionboard/internal/store"
	"visionboard/internal/vision"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <image>...",
		Short: "Analyze board images and store the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := ctx.newAnalyzer()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return ctx.withStore(func(st *store.Store) error {
				records, batchErr := analyzer.AnalyzeBatch(cmd.Context(), args, func(done, total int) {
					fmt.Fprintf(out, "Analyzed %d/%d\n", done, total)
				})

				var saveErrs []error
				for _, record := range records {
					if err := st.Save(cmd.Context(), record); err != nil {
						saveErrs = append(saveErrs, fmt.Errorf("save %s: %w", record.ID, err))
					}
				}

				if len(records) > 0 {
					fmt.Fprintln(out, renderAnalyzeSummary(records))
				}
				return errors.Join(batchErr, errors.Join(saveErrs...))
			})
		},
	}
	return cmd
}

func renderAnalyzeSummary(records []*vision.Record) string {
	summary := newBoardTable(
		textColumn("ID"),
		textColumn("Board"),
		textColumn("Archetype"),
		textColumn("Emotional Core"),
		numericColumn("Related"),
	)
	for _, record := range records {
		summary.addRow(
			record.ID,
			vision.BoardTitle(record.ImagePath),
			record.Archetype(),
			strings.Join(record.Result.VisualDNA.EmotionalCore, ", "),
			fmt.Sprintf("%d", len(record.Related)),
		)
	}
	return summary.render()
}
