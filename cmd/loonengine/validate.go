package main

import (
	"fmt"

	"github.com/loonengine/payroll-engine/internal/identifier"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <kind> <value>",
		Short: "Check a BSN, RSIN, loonheffingennummer or KvK number",
		Long:  fmt.Sprintf("Check a Dutch identifier. Kinds: %v. Exits non-zero when the value is invalid.", identifier.Kinds()),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := identifier.Validate(identifier.Kind(args[0]), args[1])
			if err != nil {
				return err
			}
			if err := res.Err(); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "invalid %s: %s\n", res.Kind, res.Reason)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid %s: %s\n", res.Kind, res.Formatted)
			return nil
		},
	}
}
