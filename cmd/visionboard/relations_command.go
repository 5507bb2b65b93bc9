package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"visionboard/internal/sop"
	"visionboard/internal/store"
	"visionboard/internal/vision"
)

func newRelationsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "relations <id>",
		Short: "Show records related to one vision",
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

				out := cmd.OutOrStdout()
				if len(record.Related) == 0 {
					fmt.Fprintln(out, "No related records.")
					return nil
				}

				relatedTable := newBoardTable(
					textColumn("ID"),
					textColumn("Board"),
					textColumn("Archetype"),
					numericColumn("Score"),
				)
				for _, relatedID := range record.Related {
					related, err := st.GetByID(cmd.Context(), relatedID)
					if err != nil {
						return err
					}
					if related == nil {
						continue
					}
					relatedTable.addRow(
						related.ID,
						vision.BoardTitle(related.ImagePath),
						related.Archetype(),
						fmt.Sprintf("%.1f", sop.Similarity(record, related)),
					)
				}
				fmt.Fprintln(out, relatedTable.render())
				return nil
			})
		},
	}
}
