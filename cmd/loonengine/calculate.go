package main

import (
	"fmt"
	"io"

	"github.com/loonengine/payroll-engine/internal/calculation"
	"github.com/loonengine/payroll-engine/internal/config"
	"github.com/loonengine/payroll-engine/internal/domain"
	"github.com/loonengine/payroll-engine/internal/output"
	"github.com/spf13/cobra"
)

type calculateOptions struct {
	input        string
	taxProration string
	outputDir    string
}

func (c *calculateOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.input, "input", "i", "", "calculation input YAML (see 'loonengine example')")
	cmd.Flags().StringVar(&c.taxProration, "tax-proration", "", "tax proration for partial months: nominal or effective")
	cmd.Flags().StringVar(&c.outputDir, "output-dir", "", "write the statement to a file in this directory instead of stdout")
	_ = cmd.MarkFlagRequired("input")
}

func newCalculateCmd(root *rootOptions) *cobra.Command {
	opts := &calculateOptions{}
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the payroll of every period in an input file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatement(cmd, root, opts, false)
		},
	}
	opts.bind(cmd)
	return cmd
}

func newYTDCmd(root *rootOptions) *cobra.Command {
	opts := &calculateOptions{}
	cmd := &cobra.Command{
		Use:   "ytd",
		Short: "Calculate consecutive periods and print year-to-date totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatement(cmd, root, opts, true)
		},
	}
	opts.bind(cmd)
	return cmd
}

func runStatement(cmd *cobra.Command, root *rootOptions, opts *calculateOptions, withTotals bool) error {
	cfg, err := root.settings()
	if err != nil {
		return err
	}
	f, err := formatter(root.format)
	if err != nil {
		return err
	}
	rates, err := loadRates(cfg)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	in, err := config.NewInputParser().LoadCalculation(opts.input)
	if err != nil {
		return err
	}
	mode := in.TaxProration
	if opts.taxProration != "" {
		mode = domain.TaxProrationMode(opts.taxProration)
		if !mode.Valid() {
			return fmt.Errorf("--tax-proration must be 'nominal' or 'effective', got %q", opts.taxProration)
		}
	}
	engine := newEngine(cfg, rates, log).WithTaxProration(mode)

	st, err := buildStatement(engine, in, withTotals)
	if err != nil {
		return err
	}
	return emit(cmd.OutOrStdout(), f, st, opts.outputDir)
}

func buildStatement(engine *calculation.Engine, in *config.CalculationInput, withTotals bool) (*output.Statement, error) {
	if withTotals {
		results, totals, err := engine.CalculateSeries(in.Employee, in.Company, in.Periods)
		if err != nil {
			return nil, err
		}
		return &output.Statement{Results: results, Totals: &totals}, nil
	}

	st := &output.Statement{}
	for _, p := range in.Periods {
		r, err := engine.Calculate(in.Employee, in.Company, p)
		if err != nil {
			return nil, fmt.Errorf("period %04d-%02d: %w", p.Year, p.Month, err)
		}
		st.Results = append(st.Results, r)
	}
	return st, nil
}

func emit(w io.Writer, f output.Formatter, st *output.Statement, dir string) error {
	if dir != "" {
		path, err := output.WriteFormatted(f, st, dir, output.Extension(f))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "statement written to %s\n", path)
		return nil
	}
	data, err := f.Format(st)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
