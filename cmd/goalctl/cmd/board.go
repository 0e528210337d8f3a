package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/templui/goalflow/internal/kanban"
	"github.com/templui/goalflow/internal/model"
	"github.com/templui/goalflow/internal/week"
)

func BoardCmd(env *Env) *cobra.Command {
	var weekKey string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show a week's goals by column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := week.Parse(weekKey); err != nil {
				return err
			}

			c, err := env.Connect(cmd.Context())
			if err != nil {
				return err
			}
			goals, err := c.Goals(cmd.Context(), weekKey)
			if err != nil {
				return err
			}

			printBoard(cmd.OutOrStdout(), kanban.New(weekKey, goals), time.Now())
			return nil
		},
	}

	cmd.Flags().StringVarP(&weekKey, "week", "w", week.Current(), "Week key, e.g. 2025-W35")
	return cmd
}

func printBoard(w io.Writer, board *kanban.Board, now time.Time) {
	fmt.Fprintf(w, "Week %s\n", board.WeekKey())

	for _, status := range model.GoalStatuses {
		column := board.Column(status)
		fmt.Fprintf(w, "\n%s (%d)\n", status.Label(), len(column))

		for _, g := range column {
			line := fmt.Sprintf("  %s  %s", shortID(g.ID), g.Title)
			if g.DueDate != nil {
				line += "  due " + g.DueDate.Format(time.DateOnly)
			}
			if g.IsOverdue(now) {
				line += "  (overdue)"
			}
			fmt.Fprintln(w, line)
		}
	}
}
