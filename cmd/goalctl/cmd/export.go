package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/templui/goalflow/internal/week"
)

func ExportCmd(env *Env) *cobra.Command {
	var (
		weekKey string
		archive bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print a week as JSON, or archive it to object storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := env.Connect(ctx)
			if err != nil {
				return err
			}

			if archive {
				url, err := c.ArchiveWeek(ctx, weekKey)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), url)
				return nil
			}

			export, err := c.ExportWeek(ctx, weekKey)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(export)
		},
	}

	cmd.Flags().StringVarP(&weekKey, "week", "w", week.Current(), "Week key, e.g. 2025-W35")
	cmd.Flags().BoolVar(&archive, "archive", false, "Upload to object storage and print a download URL")
	return cmd
}
