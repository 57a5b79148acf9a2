package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"tutorcenter/internal/app"
	"tutorcenter/internal/cli/ui"
	"tutorcenter/internal/domain/alerts"
)

func newAlertsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "List enrollments that are about to run out of sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
				items, err := c.Alerts.NearComplete(ctx)
				if err != nil {
					return err
				}
				printAlerts(cmd.OutOrStdout(), c.Alerts.Rule().String(), items)
				return nil
			})
		},
	}
}

func printAlerts(w io.Writer, rule string, items []alerts.Alert) {
	ui.Section(w, "Near complete: "+rule, len(items))
	if len(items) == 0 {
		return
	}

	tbl := ui.NewTable(w, "CODE", "NAME", "CLASS", "LEFT", "CONTACT", "NOTIFIED")
	for _, a := range items {
		notified := "-"
		if a.Notified {
			notified = string(a.NotifiedMethod)
		}
		tbl.AddRow(a.StudentCode, displayName(a.FullName, a.Nickname), a.ClassName,
			a.RemainingSessions, a.ContactChannel+" "+a.ParentPhone, notified)
	}
	tbl.Print()
}

func displayName(fullName, nickname string) string {
	if nickname == "" {
		return fullName
	}
	return fullName + " (" + nickname + ")"
}
