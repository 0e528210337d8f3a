package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/templui/goalflow/internal/week"
)

func WeekCmd() *cobra.Command {
	var shift int

	cmd := &cobra.Command{
		Use:   "week [key]",
		Short: "Print a week key and its dates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := week.Current()
			if len(args) == 1 {
				key = args[0]
			}

			key, err := week.Shift(key, shift)
			if err != nil {
				return err
			}
			start, err := week.Start(key)
			if err != nil {
				return err
			}
			end := start.AddDate(0, 0, 6)

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s to %s\n", key, start.Format("Mon Jan 2"), end.Format("Mon Jan 2 2006"))
			return nil
		},
	}

	cmd.Flags().IntVarP(&shift, "shift", "s", 0, "Weeks to move forward (negative for back)")
	return cmd
}
