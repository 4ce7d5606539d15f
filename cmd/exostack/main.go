package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/exostack/internal/body"
	"github.com/san-kum/exostack/internal/config"
	"github.com/san-kum/exostack/internal/stack"
	"github.com/san-kum/exostack/internal/storage"
	"github.com/san-kum/exostack/internal/tensor"
	"github.com/san-kum/exostack/internal/tree"
	"github.com/san-kum/exostack/internal/viz"
	"github.com/san-kum/exostack/internal/vmap"
)

var (
	dataDir    string
	configFile string
	preset     string
	quantity   string
	samples    int
	start      float64
	stop       float64
	forceLoop  bool
	saveRun    bool
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "exostack",
		Short: "exoplanet system evaluation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".exostack", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "system config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset system")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default system config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "show the configured system",
		RunE:  showBodies,
	}

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate a quantity across all bodies over the sweep",
		RunE:  runEval,
	}
	evalCmd.Flags().StringVar(&quantity, "quantity", "x", "position component to evaluate (x, y, z)")
	evalCmd.Flags().IntVar(&samples, "samples", 0, "override sweep samples")
	evalCmd.Flags().Float64Var(&start, "start", 0, "override sweep start")
	evalCmd.Flags().Float64Var(&stop, "stop", 0, "override sweep stop")
	evalCmd.Flags().BoolVar(&forceLoop, "loop", false, "force the per-body loop instead of the batched path")
	evalCmd.Flags().BoolVar(&saveRun, "save", false, "store results under the data directory")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored evaluation runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available system presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "animate a sweep in the terminal",
		RunE:  runWatch,
	}
	watchCmd.Flags().StringVar(&quantity, "quantity", "x", "position component to evaluate (x, y, z)")
	watchCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	rootCmd.AddCommand(initCmd, bodiesCmd, evalCmd, runsCmd, presetsCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.ErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
		return cfg, nil
	}
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.DefaultConfig(), nil
}

func applySweepOverrides(cfg *config.Config) {
	if samples > 0 {
		cfg.Sweep.Samples = samples
	}
	if stop > start && stop != 0 {
		cfg.Sweep.Start = start
		cfg.Sweep.Stop = stop
	}
}

// sweepSeries evaluates one position component for every body across
// the time grid, returning one row per body.
func sweepSeries(sys body.System, times *tensor.Array, component string, opts ...stack.Option) ([][]float64, error) {
	switch component {
	case "x", "y", "z":
	default:
		return nil, fmt.Errorf("unknown quantity %q (want x, y, or z)", component)
	}

	f := sys.BodyVmap(func(b body.Body, args ...*tree.Node) (*tree.Node, error) {
		pos, err := b.Position(sys.Central(), args[0].Array())
		if err != nil {
			return nil, err
		}
		leaf, _ := pos.Get(component)
		return leaf, nil
	}, vmap.Broadcast, vmap.Leading, opts...)

	out, err := f(tree.Leaf(times))
	if err != nil {
		return nil, err
	}

	grid := out.Array()
	series := make([][]float64, grid.Dim(0))
	for i := range series {
		row, err := grid.Index(0, i)
		if err != nil {
			return nil, err
		}
		series[i] = row.Values()
	}
	return series, nil
}

func showBodies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sys, err := cfg.System()
	if err != nil {
		return err
	}

	depths, err := sys.TransitDepths()
	if err != nil {
		return err
	}
	dvs := depths.Values()

	fmt.Println(viz.HeaderStyle.Render("system"))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "body\tperiod [yr]\tradius [Rsun]\ta [AU]\tdepth")
	for i, b := range sys.Bodies() {
		a, err := b.SemimajorAxis(sys.Central())
		if err != nil {
			return err
		}
		av, _ := a.Float()
		pv, _ := b.Period.Float()
		rv, _ := b.Radius.Float()
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.6f\n", i, pv, rv, av, dvs[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	mode := "batched (uniform parameter layout)"
	if !sys.Uniform() {
		mode = "per-body loop"
	}
	fmt.Println(viz.Row("dispatch", mode))
	return nil
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applySweepOverrides(cfg)

	sys, err := cfg.System()
	if err != nil {
		return err
	}

	var opts []stack.Option
	if forceLoop {
		opts = append(opts, stack.ForceLoop())
	}

	times := cfg.Times()
	series, err := sweepSeries(sys, times, quantity, opts...)
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render(quantity + " over sweep"))
	fmt.Println(viz.Sweep(series, fmt.Sprintf("%s(t), t in [%.3f, %.3f]", quantity, cfg.Sweep.Start, cfg.Sweep.Stop)))
	fmt.Println(viz.Legend(len(series)))

	if saveRun {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		id, err := store.Save(storage.RunMetadata{
			Quantity: quantity,
			Uniform:  !forceLoop,
			Start:    cfg.Sweep.Start,
			Stop:     cfg.Sweep.Stop,
		}, times.Values(), series)
		if err != nil {
			return err
		}
		fmt.Println(viz.Row("saved", id))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tquantity\tbodies\tsamples\twhen")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Quantity, r.Bodies, r.Samples, r.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sys, err := cfg.System()
	if err != nil {
		return err
	}

	times := cfg.Times()
	series, err := sweepSeries(sys, times, quantity)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s sweep · %d bodies", quantity, sys.Len())
	return viz.RunLive(title, times.Values(), series, frameRate)
}
