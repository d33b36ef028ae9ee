package main

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/loonengine/payroll-engine/internal/config"
	"github.com/spf13/cobra"
)

func newRateTableCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ratetable",
		Aliases: []string{"rates"},
		Short:   "Inspect and check rate tables",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the loaded tax years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.settings()
			if err != nil {
				return err
			}
			rates, err := loadRates(cfg)
			if err != nil {
				return err
			}
			for _, y := range rates.Years() {
				rt, err := rates.Lookup(y)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", rt.Year, rt.Source)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <year>",
		Short: "Print the rate table of a tax year as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			cfg, err := root.settings()
			if err != nil {
				return err
			}
			rates, err := loadRates(cfg)
			if err != nil {
				return err
			}
			rt, err := rates.Lookup(year)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(rt, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check <file>",
		Short: "Parse and validate a rate table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := config.NewInputParser().LoadRateTable(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: tax year %d (%s)\n", rt.Year, rt.Source)
			return nil
		},
	})

	return cmd
}
