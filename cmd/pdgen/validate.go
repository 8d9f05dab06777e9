package main

import (
	"fmt"

	"github.com/gsdenys/pdgen/internal/cli"
	"github.com/gsdenys/pdgen/internal/ops"
	"github.com/spf13/cobra"
)

var connectionValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the connection store for integrity issues",
	Long: `Check a hand-edited connection store for problems.

Checks for:
- Names that differ only by case
- Names that are not uppercase
- Missing or unparseable URLs
- More than one selected connection
- Unknown file format version

The store is never modified; pdgen reads such files by keeping the first
entry for each name and the first selected connection.`,
	Args: cobra.NoArgs,
	RunE: runConnectionValidate,
}

func init() {
	connectionCmd.AddCommand(connectionValidateCmd)
}

func runConnectionValidate(cmd *cobra.Command, args []string) error {
	s, err := openStorage()
	if err != nil {
		return err
	}

	reg, err := s.ReadRaw()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	issues := ops.Validate(reg)
	if len(issues) == 0 {
		fmt.Fprintln(out, cli.Green("No issues found."))
		return nil
	}

	fmt.Fprintf(out, "Found %d issue(s) in %s:\n\n", len(issues), s.ConfigFile())
	for _, i := range issues {
		fmt.Fprintf(out, "%s %s: %s\n", i.Name, formatIssueType(i.Type), i.Message)
	}

	return fmt.Errorf("%d issue(s) found", len(issues))
}

func formatIssueType(t ops.IssueType) string {
	switch t {
	case ops.IssueDuplicateName:
		return cli.Red("[duplicate]")
	case ops.IssueMissingURL:
		return cli.Red("[missing-url]")
	case ops.IssueInvalidURL:
		return cli.Red("[invalid-url]")
	case ops.IssueMultipleSelected:
		return cli.Yellow("[selection]")
	case ops.IssueUnnormalizedName:
		return cli.Yellow("[case]")
	default:
		return fmt.Sprintf("[%s]", t)
	}
}
