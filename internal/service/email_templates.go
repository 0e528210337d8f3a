package service

import (
	"fmt"
	"strings"

	"github.com/templui/goalflow/internal/model"
)

func welcomeEmailTemplate(name, boardURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Plan this week's goals here:
%s

Best,
The %s Team`, name, boardURL, appName)

	return subject, body
}

func summaryEmailTemplate(name, period, reportsURL, appName string, summary *model.Summary) (string, string) {
	subject := fmt.Sprintf("Your %s summary for %s", appName, period)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nHere is how %s went.\n\n", name, period)
	fmt.Fprintf(&b, "Created:    %d\n", summary.Totals.Created)
	fmt.Fprintf(&b, "Completed:  %d (%d%%)\n", summary.Totals.Completed, summary.Totals.CompletionRate)
	fmt.Fprintf(&b, "Overdue:    %d\n", summary.Totals.Overdue)
	if summary.Totals.AvgCycleDays != nil {
		fmt.Fprintf(&b, "Avg. cycle: %.1f days\n", *summary.Totals.AvgCycleDays)
	}

	if len(summary.Trend) > 0 {
		b.WriteString("\nBy week:\n")
		for _, wk := range summary.Trend {
			fmt.Fprintf(&b, "  %-9s %3d created, %3d completed\n", wk.WeekKey, wk.Created, wk.Completed)
		}
	}

	fmt.Fprintf(&b, "\nFull report: %s\n\nBest,\nThe %s Team", reportsURL, appName)
	return subject, b.String()
}
