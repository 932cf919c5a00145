package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bft-labs/envtap/internal/cliconfig"
	"github.com/bft-labs/envtap/pkg/envtap"
)

func newRunsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List runs recorded in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.NoRegistry {
				return errors.New("registry is disabled")
			}
			if !cliconfig.FileExists(c.cfg.RegistryPath) {
				fmt.Fprintln(c.out, "no runs recorded")
				return nil
			}
			reg, err := c.openRegistry(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			runs, err := reg.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TOKEN\tGAME\tCREATED\tDISCOUNT\tTRAIN\tEVAL")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%s\t%s\n",
					r.Identity.Token,
					r.Identity.Game,
					r.Identity.CreatedAt.Format(time.RFC3339),
					r.Discount,
					sinkOrDash(r, envtap.ModeTrain),
					sinkOrDash(r, envtap.ModeEval),
				)
			}
			return tw.Flush()
		},
	}
}

func sinkOrDash(r envtap.Run, mode envtap.Mode) string {
	if loc, ok := r.Sinks[mode]; ok {
		return loc
	}
	return "-"
}
