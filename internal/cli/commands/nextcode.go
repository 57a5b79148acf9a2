package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tutorcenter/internal/app"
	"tutorcenter/internal/core/apperror"
	"tutorcenter/internal/core/codealloc"
)

// errPreview rolls back the allocation transaction.
var errPreview = errors.New("preview only")

func newNextCodeCommand() *cobra.Command {
	var year string

	cmd := &cobra.Command{
		Use:   "next-code <student|sale-run> [student code]",
		Short: "Show the code the next insert would receive without reserving it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, partition, err := previewTarget(args, year)
			if err != nil {
				return err
			}
			return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
				if partition == "" {
					partition = codealloc.YearPartition(c.Clock.Local())
				}

				var code string
				err := c.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
					var err error
					code, err = c.Codes.Allocate(ctx, seq, partition)
					if err != nil {
						return err
					}
					return errPreview
				})
				if err != nil && !errors.Is(err, errPreview) {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), code)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "two-digit year partition for student codes (default: current year)")
	return cmd
}

// previewTarget resolves the sequence and partition from arguments. An empty
// partition means the current year.
func previewTarget(args []string, year string) (codealloc.Sequence, string, error) {
	switch args[0] {
	case "student":
		if len(args) > 1 {
			return codealloc.Sequence{}, "", apperror.NewValidation("student takes no positional argument, use --year")
		}
		if year != "" && len(year) != 2 {
			return codealloc.Sequence{}, "", apperror.NewValidation("year must have two digits").WithDetail("year", year)
		}
		return codealloc.StudentCode, year, nil
	case "sale-run":
		if len(args) < 2 {
			return codealloc.Sequence{}, "", apperror.NewValidation("sale-run needs a student code")
		}
		return codealloc.SaleRun, codealloc.SaleRunPartition(args[1]), nil
	default:
		return codealloc.Sequence{}, "", apperror.NewValidation("unknown sequence").WithDetail("sequence", args[0])
	}
}
