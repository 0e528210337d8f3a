package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/templui/goalflow/internal/model"
)

func ReportCmd(env *Env) *cobra.Command {
	var (
		from  string
		to    string
		email bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize created and completed goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := env.Connect(ctx)
			if err != nil {
				return err
			}

			if email {
				if err := c.EmailSummary(ctx, from, to); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Summary sent to %s\n", env.Email)
				return nil
			}

			summary, err := c.Summary(ctx, from, to)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start of range, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End of range, exclusive (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&email, "email", false, "Email the summary instead of printing it")
	return cmd
}

func printSummary(w io.Writer, summary *model.Summary) {
	p := message.NewPrinter(language.English)
	t := summary.Totals

	p.Fprintf(w, "Created      %d\n", t.Created)
	p.Fprintf(w, "Completed    %d\n", t.Completed)
	p.Fprintf(w, "Overdue      %d\n", t.Overdue)
	p.Fprintf(w, "Completion   %d%%\n", t.CompletionRate)
	if t.AvgCycleDays != nil {
		p.Fprintf(w, "Avg cycle    %.1f days\n", *t.AvgCycleDays)
	} else {
		p.Fprintf(w, "Avg cycle    n/a\n")
	}

	if len(summary.ByStatus) > 0 {
		p.Fprintf(w, "\nBy status\n")
		for _, sc := range summary.ByStatus {
			p.Fprintf(w, "  %-12s %d\n", sc.Status.Label(), sc.Count)
		}
	}

	if len(summary.Trend) > 0 {
		p.Fprintf(w, "\nWeek         created  completed\n")
		for _, wt := range summary.Trend {
			p.Fprintf(w, "  %-10s %7d  %9d\n", wt.WeekKey, wt.Created, wt.Completed)
		}
	}
}
