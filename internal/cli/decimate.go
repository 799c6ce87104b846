package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/polydec"
	"github.com/gogpu/polydec/internal/meshio"
	"github.com/gogpu/polydec/internal/preview"
)

type decimateFlags struct {
	input     string
	output    string
	format    string
	preview   string
	target    float64
	precision string
	strategy  string
	workers   int
	scheduler string
	noMerge   bool
	maxPoints int
	quiet     bool
}

func newDecimateCmd(a *app) *cobra.Command {
	f := &decimateFlags{}

	cmd := &cobra.Command{
		Use:   "decimate [input]",
		Short: "Reduce the points of a polyline mesh",
		Long: `Decimate reads a YAML or JSON mesh, removes the requested fraction of its
points and writes the result. Without --output the mesh is written to stdout.

Examples:
  polydec decimate roads.yaml -o roads.min.yaml --target 0.8
  polydec decimate -i coast.json --strategy prorata --workers 0 --preview coast.png
  cat mesh.yaml | polydec decimate --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if f.input != "" {
					return fmt.Errorf("input given both as argument and --input")
				}
				f.input = args[0]
			}
			return runDecimate(cmd, a, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "", "input mesh, stdin when empty")
	flags.StringVarP(&f.output, "output", "o", "", "output mesh, stdout when empty")
	flags.StringVar(&f.format, "format", "", "stdout format: yaml or json")
	flags.StringVar(&f.preview, "preview", "", "write a before/after PNG to this path")
	flags.Float64VarP(&f.target, "target", "t", polydec.DefaultTargetReduction, "fraction of points to remove, in [0, 1]")
	flags.StringVar(&f.precision, "precision", "", "output precision: default, single or double")
	flags.StringVar(&f.strategy, "strategy", "", "sequential or prorata")
	flags.IntVarP(&f.workers, "workers", "w", 1, "goroutines for chain work, 0 for all CPUs")
	flags.StringVar(&f.scheduler, "scheduler", "", "candidate queue: heap or tree")
	flags.BoolVar(&f.noMerge, "no-merge", false, "decimate every input line on its own")
	flags.IntVar(&f.maxPoints, "max-points", 0, "fail when the output exceeds this many points")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "do not print the summary")
	return cmd
}

// apply copies explicitly set flags over the loaded settings.
func (f *decimateFlags) apply(cmd *cobra.Command, a *app) {
	flags := cmd.Flags()
	if flags.Changed("target") {
		a.cfg.TargetReduction = f.target
	}
	if flags.Changed("precision") {
		a.cfg.Precision = f.precision
	}
	if flags.Changed("strategy") {
		a.cfg.Strategy = f.strategy
	}
	if flags.Changed("workers") {
		a.cfg.Workers = f.workers
	}
	if flags.Changed("scheduler") {
		a.cfg.Scheduler = f.scheduler
	}
	if flags.Changed("no-merge") {
		a.cfg.Merge = !f.noMerge
	}
	if flags.Changed("max-points") {
		a.cfg.MaxOutputPoints = f.maxPoints
	}
}

func runDecimate(cmd *cobra.Command, a *app, f *decimateFlags) error {
	f.apply(cmd, a)
	opts, err := a.cfg.Options()
	if err != nil {
		return err
	}

	in, err := readMesh(cmd, f.input)
	if err != nil {
		return err
	}
	res, err := polydec.New(opts...).Decimate(in)
	if err != nil {
		return fmt.Errorf("decimate: %w", err)
	}

	if f.output != "" {
		if err := meshio.WriteFile(f.output, res.Mesh); err != nil {
			return err
		}
	} else {
		format := meshio.FormatYAML
		switch f.format {
		case "", "yaml", "yml":
		case "json":
			format = meshio.FormatJSON
		default:
			return fmt.Errorf("unknown format %q", f.format)
		}
		if err := meshio.Write(cmd.OutOrStdout(), res.Mesh, format); err != nil {
			return err
		}
	}

	if f.preview != "" {
		o := preview.DefaultOptions()
		o.Caption = printer.Sprintf("%d -> %d points", res.Stats.InputPoints, res.Stats.InputPoints-res.Stats.RemovedPoints)
		img, err := preview.Render(in, res.Mesh, o)
		if err != nil {
			return err
		}
		if err := preview.SavePNG(f.preview, img); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
	}

	if !f.quiet {
		report(cmd.ErrOrStderr(), res)
	}
	return nil
}

func readMesh(cmd *cobra.Command, path string) (*polydec.Mesh, error) {
	if path == "" {
		return meshio.Read(cmd.InOrStdin())
	}
	return meshio.ReadFile(path)
}

// report prints a human summary of one pass.
func report(w io.Writer, res *polydec.Result) {
	s := res.Stats
	printer.Fprintf(w, "points:     %d -> %d (removed %d, %.1f%% of %.1f%% requested)\n",
		s.InputPoints, s.InputPoints-s.RemovedPoints, s.RemovedPoints,
		100*s.AchievedReduction, 100*s.TargetReduction)
	printer.Fprintf(w, "chains:     %d (%d open, %d closed)\n", s.Chains, s.OpenChains, s.ClosedChains)
	if s.DegenerateLines > 0 {
		printer.Fprintf(w, "degenerate: %d line(s) passed through\n", s.DegenerateLines)
	}
	printer.Fprintf(w, "max error:  %.6g\n", s.MaxError)
}
