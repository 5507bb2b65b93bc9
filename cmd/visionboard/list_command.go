package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"visionboard/internal/store"
	"visionboard/internal/vision"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored vision records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				records, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "No vision records yet. Run `visionboard analyze <image>` to add one.")
					return nil
				}

				listing := newBoardTable(
					textColumn("ID"),
					textColumn("Board"),
					textColumn("Archetype"),
					textColumn("Uploaded"),
					numericColumn("Related"),
					numericColumn("Progress"),
				)
				for _, record := range records {
					done, total, err := st.Progress(cmd.Context(), record.ID)
					if err != nil {
						return err
					}
					uploaded := time.UnixMilli(record.UploadedAt).Format("2006-01-02 15:04")
					listing.addRow(
						record.ID,
						vision.BoardTitle(record.ImagePath),
						record.Archetype(),
						uploaded,
						fmt.Sprintf("%d", len(record.Related)),
						fmt.Sprintf("%d/%d", done, total),
					)
				}
				fmt.Fprintln(out, listing.render())

				stats, err := st.CollectionStats(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d records, %d with relations, %d/%d actions done\n",
					stats.Visions, stats.Related, stats.ActionsDone, stats.ActionsTracked)
				return nil
			})
		},
	}
}
