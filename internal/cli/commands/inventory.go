package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"tutorcenter/internal/app"
	"tutorcenter/internal/cli/ui"
	"tutorcenter/internal/domain/registers/sheetstock"
)

func newInventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Sheet stock maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ensure",
		Short: "Create stock rows for active sheets that have none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
				n, err := c.Stock.EnsureAll(ctx)
				if err != nil {
					return err
				}
				ui.Success(cmd.OutOrStdout(), "created %d stock rows", n)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print active and finished stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
				lists, err := c.Stock.List(ctx)
				if err != nil {
					return err
				}
				printStock(cmd.OutOrStdout(), lists)
				return nil
			})
		},
	})

	return cmd
}

func printStock(w io.Writer, lists *sheetstock.Lists) {
	ui.Section(w, "Active", len(lists.Active))
	if len(lists.Active) > 0 {
		tbl := ui.NewTable(w, "SHEET", "TITLE", "SUBJECT", "QTY")
		for _, v := range lists.Active {
			qty := any(v.Quantity)
			if v.Quantity == 0 {
				qty = ui.WarningStyle.Render("0")
			}
			tbl.AddRow(v.SheetCode, v.SheetTitle, v.SubjectName, qty)
		}
		tbl.Print()
	}

	ui.Section(w, "Finished", len(lists.Finished))
	if len(lists.Finished) > 0 {
		tbl := ui.NewTable(w, "SHEET", "TITLE", "SUBJECT", "FINISHED")
		for _, v := range lists.Finished {
			finished := "-"
			if v.FinishedAt != nil {
				finished = v.FinishedAt.Format("2006-01-02")
			}
			tbl.AddRow(v.SheetCode, v.SheetTitle, v.SubjectName, finished)
		}
		tbl.Print()
	}
}
