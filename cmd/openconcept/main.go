package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/DriesVerstraete/openconcept/internal/components"
	"github.com/DriesVerstraete/openconcept/internal/config"
	"github.com/DriesVerstraete/openconcept/internal/export"
	"github.com/DriesVerstraete/openconcept/internal/graph"
	"github.com/DriesVerstraete/openconcept/internal/metrics"
	"github.com/DriesVerstraete/openconcept/internal/sweep"
)

var (
	configFile string
	preset     string

	rule       string
	efficiency float64
	nodes      int
	weightInc  float64
	weightBase float64
	costInc    float64
	costBase   float64

	powerIn     float64
	powerRating float64
	fraction    float64
	amount      float64

	fdStep     float64
	showDense  bool
	sweepInput string
	sweepLo    float64
	sweepHi    float64
	sweepSteps int
	plotOutput string
	csvPath    string
	jsonPath   string
)

var logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
	Level:      slog.LevelInfo,
	TimeFormat: time.Kitchen,
}))

func main() {
	rootCmd := &cobra.Command{
		Use:   "openconcept",
		Short: "differentiable power-system components",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate the splitter at one operating point",
		RunE:  runEval,
	}
	addSplitterFlags(evalCmd)

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "verify analytic partials against finite differences",
		RunE:  runCheck,
	}
	addSplitterFlags(checkCmd)
	checkCmd.Flags().Float64Var(&fdStep, "step", 1e-4, "finite difference step")
	checkCmd.Flags().BoolVar(&showDense, "dense", false, "print the assembled dense Jacobian")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one input and plot an output",
		RunE:  runSweep,
	}
	addSplitterFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepInput, "input", "", "input to sweep")
	sweepCmd.Flags().Float64Var(&sweepLo, "lo", 0, "sweep lower bound")
	sweepCmd.Flags().Float64Var(&sweepHi, "hi", 0, "sweep upper bound")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 0, "sweep point count")
	sweepCmd.Flags().StringVar(&plotOutput, "output", "power_out_A", "output to plot")
	sweepCmd.Flags().StringVar(&csvPath, "csv", "", "export sweep to CSV")
	sweepCmd.Flags().StringVar(&jsonPath, "json", "", "export sweep to JSON")

	presetsCmd := &cobra.Command{
		Use:   "presets [rule]",
		Short: "list available presets for a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for rule: %s\n", args[0])
				return nil
			}
			sort.Strings(names)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	componentsCmd := &cobra.Command{
		Use:   "components",
		Short: "list registered components",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range components.NewRegistry().List() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(evalCmd, checkCmd, sweepCmd, presetsCmd, componentsCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addSplitterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&rule, "rule", "proportional", "control rule (proportional or fixed_amount)")
	cmd.Flags().Float64Var(&efficiency, "efficiency", 1.0, "conversion efficiency")
	cmd.Flags().IntVar(&nodes, "nodes", 1, "number of operating points")
	cmd.Flags().Float64Var(&weightInc, "weight-per-watt", 0, "kg per rated watt")
	cmd.Flags().Float64Var(&weightBase, "weight-base", 0, "kg base weight")
	cmd.Flags().Float64Var(&costInc, "cost-per-watt", 0, "USD per rated watt")
	cmd.Flags().Float64Var(&costBase, "cost-base", 0, "USD base cost")
	cmd.Flags().Float64Var(&powerIn, "power-in", 100e3, "input power (W)")
	cmd.Flags().Float64Var(&powerRating, "rating", 0, "power rating (W), 0 for unbounded")
	cmd.Flags().Float64Var(&fraction, "fraction", 0.5, "split fraction to output A")
	cmd.Flags().Float64Var(&amount, "amount", 0, "split amount to output A (W)")
}

// buildConfig resolves preset, config file and flags, in that order of
// increasing precedence; a flag only overrides when explicitly set.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(rule, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(rule))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("rule") || cfg.Rule == "" {
		cfg.Rule = rule
	}
	if cmd.Flags().Changed("efficiency") {
		cfg.Efficiency = efficiency
	}
	if cmd.Flags().Changed("nodes") {
		cfg.Nodes = nodes
	}
	if cmd.Flags().Changed("weight-per-watt") {
		cfg.WeightPerWatt = weightInc
	}
	if cmd.Flags().Changed("weight-base") {
		cfg.WeightBase = weightBase
	}
	if cmd.Flags().Changed("cost-per-watt") {
		cfg.CostPerWatt = costInc
	}
	if cmd.Flags().Changed("cost-base") {
		cfg.CostBase = costBase
	}
	if cmd.Flags().Changed("power-in") {
		cfg.Inputs.PowerIn = powerIn
	}
	if cmd.Flags().Changed("rating") {
		cfg.Inputs.PowerRating = powerRating
	}
	if cmd.Flags().Changed("fraction") {
		cfg.Inputs.SplitFraction = fraction
	}
	if cmd.Flags().Changed("amount") {
		cfg.Inputs.SplitAmount = amount
	}
	return cfg, nil
}

func buildSplitter(cfg *config.Config) (*components.PowerSplit, graph.Inputs, error) {
	scfg, err := cfg.SplitterConfig()
	if err != nil {
		return nil, nil, err
	}
	split, err := components.NewPowerSplit(scfg)
	if err != nil {
		return nil, nil, err
	}
	return split, cfg.BuildInputs(scfg.Rule), nil
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	split, in, err := buildSplitter(cfg)
	if err != nil {
		return err
	}

	out, err := split.Evaluate(in)
	if err != nil {
		return err
	}

	balance := metrics.NewBalance()
	balance.Observe(in, out)

	fmt.Println(titleStyle.Render("power split: " + split.Rule().String()))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	spec := split.Spec()
	for _, vs := range spec.Outputs {
		v := out[vs.Name]
		label := vs.Name
		if vs.Units != "" {
			label += " [" + vs.Units + "]"
		}
		fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render(label), valueStyle.Render(formatVector(v)))
	}
	w.Flush()

	if !out["component_sizing_margin"].IsValid() {
		logger.Warn("sizing margin is not finite; check power_rating", "rating", cfg.Inputs.PowerRating)
	}
	fmt.Printf("%s %s\n", labelStyle.Render("balance residual"), valueStyle.Render(fmt.Sprintf("%.3g", balance.Value())))
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Inputs.PowerRating == 0 {
		// the finite-difference check needs every input bound
		cfg.Inputs.PowerRating = components.DefaultPowerRating
	}
	split, in, err := buildSplitter(cfg)
	if err != nil {
		return err
	}

	result, err := graph.CheckPartials(split, in, fdStep)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("partial derivative check"))
	keys := make([]graph.PartialKey, 0, len(result.MaxAbsError))
	for k := range result.MaxAbsError {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Of != keys[j].Of {
			return keys[i].Of < keys[j].Of
		}
		return keys[i].WRT < keys[j].WRT
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render(k.String()), valueStyle.Render(fmt.Sprintf("%.3e", result.MaxAbsError[k])))
	}
	w.Flush()

	if result.WorstError > 1e-4 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("worst pair %s: %.3e", result.WorstPair, result.WorstError)))
	}

	if showDense {
		jac, err := split.Linearize(in)
		if err != nil {
			return err
		}
		dense, _, err := graph.Assemble(split.Spec(), jac)
		if err != nil {
			return err
		}
		fmt.Printf("%v\n", mat.Formatted(dense, mat.Prefix(""), mat.Squeeze()))
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	split, in, err := buildSplitter(cfg)
	if err != nil {
		return err
	}

	sw := sweep.New(cfg.Sweep.Input, cfg.Sweep.Lo, cfg.Sweep.Hi, cfg.Sweep.Steps)
	if cmd.Flags().Changed("input") {
		sw.Input = sweepInput
	}
	if cmd.Flags().Changed("lo") {
		sw.Lo = sweepLo
	}
	if cmd.Flags().Changed("hi") {
		sw.Hi = sweepHi
	}
	if cmd.Flags().Changed("steps") {
		sw.Steps = sweepSteps
	}

	ms := []metrics.Metric{metrics.NewBalance(), metrics.NewSaturation()}
	result, err := sw.Run(context.Background(), split, in, ms)
	if err != nil {
		return err
	}

	series, ok := result.Series[plotOutput]
	if !ok {
		return fmt.Errorf("%w: %q", graph.ErrUnknownVariable, plotOutput)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s vs %s", plotOutput, sw.Input)))
	graphStr := asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s over %s in [%g, %g]", plotOutput, sw.Input, sw.Lo, sw.Hi)),
	)
	fmt.Println(graphStr)

	for name, v := range result.Metrics {
		fmt.Printf("%s %s\n", labelStyle.Render(name), valueStyle.Render(fmt.Sprintf("%.3g", v)))
	}

	if csvPath != "" {
		if err := export.ExportCSV(csvPath, result); err != nil {
			return err
		}
		logger.Info("wrote sweep CSV", "path", csvPath)
	}
	if jsonPath != "" {
		if err := export.ExportJSON(jsonPath, result); err != nil {
			return err
		}
		logger.Info("wrote sweep JSON", "path", jsonPath)
	}
	return nil
}

func formatVector(v graph.Vector) string {
	if len(v) == 1 {
		return fmt.Sprintf("%.6g", v[0])
	}
	s := "["
	for i, x := range v {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%.6g", x)
	}
	return s + "]"
}
