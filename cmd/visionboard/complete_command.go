package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"visionboard/internal/store"
)

func newCompleteCommand(ctx *commandContext) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "complete <id> <week> <action>",
		Short: "Mark a manifestation-path action done",
		Long: "Mark one action of a record's 4-week path as done. Week and action\n" +
			"are 1-based as shown by `visionboard show`.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid week %q", args[1])
			}
			action, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid action %q", args[2])
			}

			return ctx.withStore(func(st *store.Store) error {
				if err := st.SetCompletion(cmd.Context(), args[0], week-1, action-1, !undo); err != nil {
					return err
				}
				done, total, err := st.Progress(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				verb := "Completed"
				if undo {
					verb = "Reopened"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s week %d action %d (%d/%d done)\n", verb, week, action, done, total)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the action as not done")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a vision record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return ctx.withStore(func(st *store.Store) error {
				if clearAll {
					removed, err := st.Clear(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Removed %d records\n", removed)
					return nil
				}
				if len(args) == 0 {
					return fmt.Errorf("record id required (or use --all)")
				}
				removed, err := st.Remove(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("vision %q not found", args[0])
				}
				fmt.Fprintf(out, "Removed %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clearAll, "all", false, "Remove every record")
	return cmd
}
