package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bft-labs/envtap/pkg/steplog"
)

func newInspectCmd(c *cli) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "inspect <sink.csv>",
		Short: "Summarize an episode log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := steplog.ReadFile(args[0])
			if err != nil {
				return err
			}
			if strict {
				if err := steplog.CheckContiguous(rows); err != nil {
					return err
				}
			}
			s := steplog.Summarize(rows)
			fmt.Fprintf(c.out, "rows      %d\n", s.Rows)
			fmt.Fprintf(c.out, "last step %d\n", s.LastStep)
			fmt.Fprintf(c.out, "episodes  %d\n", s.Episodes)
			fmt.Fprintf(c.out, "reward    %g\n", s.TotalReward)
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail unless steps run 1, 2, 3, ... without gaps")
	return cmd
}

func newTailCmd(c *cli) *cobra.Command {
	var follow bool
	var n int
	cmd := &cobra.Command{
		Use:   "tail <sink.csv>",
		Short: "Print the last rows of an episode log, optionally following new rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emit := func(r steplog.Row) error {
				_, err := fmt.Fprintf(c.out, "%d\t%g\t%t\t%s\n", r.Steps, r.Reward, r.Done, r.Info)
				return err
			}
			if follow {
				return steplog.Follow(cmd.Context(), args[0], emit)
			}

			rows, err := steplog.ReadFile(args[0])
			if err != nil {
				return err
			}
			if n > 0 && len(rows) > n {
				rows = rows[len(rows)-n:]
			}
			for _, r := range rows {
				if err := emit(r); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep printing rows as they are appended")
	cmd.Flags().IntVarP(&n, "lines", "n", 10, "number of rows to print (0 for all)")
	return cmd
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
