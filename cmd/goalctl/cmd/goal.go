package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/templui/goalflow/internal/kanban"
	"github.com/templui/goalflow/internal/model"
	"github.com/templui/goalflow/internal/week"
)

func AddCmd(env *Env) *cobra.Command {
	var (
		weekKey     string
		description string
		due         string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal to the todo column",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := model.GoalDraft{
				Title:       strings.Join(args, " "),
				Description: description,
				WeekKey:     weekKey,
			}
			if due != "" {
				t, err := week.ParseDate(due)
				if err != nil {
					return err
				}
				draft.DueDate = &t
			}

			c, err := env.Connect(cmd.Context())
			if err != nil {
				return err
			}
			goal, err := c.CreateGoal(cmd.Context(), draft)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s (%s)\n", shortID(goal.ID), goal.WeekKey, goal.Status.Label())
			return nil
		},
	}

	cmd.Flags().StringVarP(&weekKey, "week", "w", week.Current(), "Week key, e.g. 2025-W35")
	cmd.Flags().StringVarP(&description, "desc", "d", "", "Markdown description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	return cmd
}

func MoveCmd(env *Env) *cobra.Command {
	var (
		weekKey string
		over    string
		to      string
		server  bool
	)

	cmd := &cobra.Command{
		Use:   "move <goal> (--over <goal> | --to <status>)",
		Short: "Drag a goal before another goal or to the end of a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (over == "") == (to == "") {
				return errors.New("exactly one of --over or --to is required")
			}

			ctx := cmd.Context()
			c, err := env.Connect(ctx)
			if err != nil {
				return err
			}
			goals, err := c.Goals(ctx, weekKey)
			if err != nil {
				return err
			}

			dragged, err := resolveGoal(goals, args[0])
			if err != nil {
				return err
			}

			var target kanban.Target
			if over != "" {
				overGoal, err := resolveGoal(goals, over)
				if err != nil {
					return err
				}
				target = kanban.OverGoal(overGoal.ID)
			} else {
				status := model.GoalStatus(to)
				if !status.Valid() {
					return fmt.Errorf("unknown status %q (todo, in-progress, done)", to)
				}
				target = kanban.OverColumn(status)
			}

			if server {
				goals, err = c.MoveGoal(ctx, dragged.ID, target)
				if err != nil {
					return err
				}
				printBoard(cmd.OutOrStdout(), kanban.New(weekKey, goals), time.Now())
				return nil
			}

			board := kanban.New(weekKey, goals)
			if err := board.Start(dragged.ID, kanban.SizeHint{}); err != nil {
				return err
			}
			if err := board.Hover(target); err != nil {
				return err
			}

			err = kanban.NewSyncer(c).Commit(ctx, board, target)
			var commitErr *kanban.CommitError
			if errors.As(err, &commitErr) {
				return fmt.Errorf("move rolled back, %d of %d updates failed: %w", len(commitErr.Failed), commitErr.Total, commitErr.Err)
			}
			if err != nil {
				return err
			}

			printBoard(cmd.OutOrStdout(), board, time.Now())
			return nil
		},
	}

	cmd.Flags().StringVarP(&weekKey, "week", "w", week.Current(), "Week key, e.g. 2025-W35")
	cmd.Flags().StringVar(&over, "over", "", "Drop before this goal")
	cmd.Flags().StringVar(&to, "to", "", "Drop at the end of this column")
	cmd.Flags().BoolVar(&server, "server", false, "Let the server apply the move in one transaction")
	return cmd
}

func EditCmd(env *Env) *cobra.Command {
	var (
		title       string
		description string
		status      string
		due         string
	)

	cmd := &cobra.Command{
		Use:   "edit <goal>",
		Short: "Change a goal's title, description, status or due date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			var patch model.GoalPatch
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("desc") {
				patch.Description = &description
			}
			moveTo := model.GoalStatus(status)
			if flags.Changed("status") && !moveTo.Valid() {
				return fmt.Errorf("unknown status %q", status)
			}
			if flags.Changed("due") {
				if due == "" || due == "none" {
					patch.ClearDueDate = true
				} else {
					t, err := week.ParseDate(due)
					if err != nil {
						return err
					}
					patch.DueDate = &t
				}
			}
			if patch.IsEmpty() && !flags.Changed("status") {
				return errors.New("nothing to update")
			}

			ctx := cmd.Context()
			c, err := env.Connect(ctx)
			if err != nil {
				return err
			}
			goals, err := c.Goals(ctx, "")
			if err != nil {
				return err
			}
			goal, err := resolveGoal(goals, args[0])
			if err != nil {
				return err
			}

			if !patch.IsEmpty() {
				if err := c.UpdateGoal(ctx, goal.ID, patch); err != nil {
					return err
				}
			}
			// Status changes append to the target column so its orders stay unique.
			if flags.Changed("status") && goal.Status != moveTo {
				if _, err := c.MoveGoal(ctx, goal.ID, kanban.OverColumn(moveTo)); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", shortID(goal.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "desc", "d", "", "New markdown description")
	cmd.Flags().StringVar(&status, "status", "", "New status (todo, in-progress, done)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD), or none to clear")
	return cmd
}

func RmCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <goal>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := env.Connect(ctx)
			if err != nil {
				return err
			}
			goals, err := c.Goals(ctx, "")
			if err != nil {
				return err
			}
			goal, err := resolveGoal(goals, args[0])
			if err != nil {
				return err
			}

			if err := c.DeleteGoal(ctx, goal.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%s)\n", shortID(goal.ID), goal.Title)
			return nil
		},
	}
}
