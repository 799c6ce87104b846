package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/polydec"
)

func newInspectCmd(a *app) *cobra.Command {
	var merge bool
	cmd := &cobra.Command{
		Use:   "inspect [input]",
		Short: "Describe a polyline mesh",
		Long: `Inspect reads a mesh and prints its size, precision, bounds and how its
lines group into chains, without changing anything.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			m, err := readMesh(cmd, path)
			if err != nil {
				return err
			}
			merging := a.cfg.Merge
			if cmd.Flags().Changed("merge") {
				merging = merge
			}
			// A zero-target pass only partitions and validates.
			res, err := polydec.New(
				polydec.WithTargetReduction(0),
				polydec.WithLineMerging(merging),
			).Decimate(m)
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}

			w := cmd.OutOrStdout()
			b := m.Points.Bounds()
			printer.Fprintf(w, "points:     %d (%s)\n", m.NumPoints(), m.Points.Precision())
			printer.Fprintf(w, "lines:      %d\n", m.NumLines())
			printer.Fprintf(w, "chains:     %d (%d open, %d closed)\n",
				res.Stats.Chains, res.Stats.OpenChains, res.Stats.ClosedChains)
			printer.Fprintf(w, "degenerate: %d\n", res.Stats.DegenerateLines)
			if !b.Empty() {
				printer.Fprintf(w, "bounds:     [%g %g %g] - [%g %g %g]\n",
					b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
			}
			for _, arr := range m.PointData {
				printer.Fprintf(w, "point data: %s (%d components)\n", arr.Name, arr.Components)
			}
			for _, arr := range m.CellData {
				printer.Fprintf(w, "cell data:  %s (%d components)\n", arr.Name, arr.Components)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&merge, "merge", true, "join lines meeting end to end, as decimate does")
	return cmd
}
