package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"visionboard/internal/export/notion"
	"visionboard/internal/store"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var testOnly bool

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a vision record to the configured note service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.HasExportToken() {
				return fmt.Errorf("no export token configured; set [export] token in the config file")
			}
			service := notion.NewService(cfg)
			out := cmd.OutOrStdout()

			if testOnly {
				if err := service.TestConnection(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, "Export connection OK")
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("record id required")
			}
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
				url, err := service.ExportRecord(cmd.Context(), record, completions)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported %s\n", record.ID)
				if url != "" {
					fmt.Fprintln(out, url)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&testOnly, "test", false, "Only verify the export connection")
	return cmd
}
