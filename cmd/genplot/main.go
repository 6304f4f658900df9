package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/san-kum/genplot/internal/chart"
	"github.com/san-kum/genplot/internal/config"
	"github.com/san-kum/genplot/internal/plots"
	"github.com/san-kum/genplot/internal/storage"
	"github.com/san-kum/genplot/internal/table"
	"github.com/san-kum/genplot/internal/viz"
)

var (
	configFile string
	outDir     string
	format     string
	viewMode   string
	preset     string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the chart command and its helper subcommands.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "genplot [flags] <csv> <method> [args...]",
		Short: "quick statistical charts from a CSV file",
		Long: "genplot loads a CSV file and draws one chart from it.\n" +
			"Method arguments are positional or given as --name=value; run\n" +
			"'genplot methods' for the list.",
		Example: "  genplot data.csv print_headers\n" +
			"  genplot data.csv plot time speed\n" +
			"  genplot data.csv plot-same-canvas time speed --y accel\n" +
			"  genplot --view print data.csv hist speed 20",
		Args: cobra.MinimumNArgs(2),
		RunE: runPlot,
	}
	// Everything after the CSV path belongs to the method.
	rootCmd.Flags().SetInterspersed(false)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&outDir, "out", config.DefaultOutputDir, "directory figures are written to")
	pf.StringVar(&format, "format", config.DefaultFormat, "figure format (png, svg)")
	pf.StringVar(&viewMode, "view", config.DefaultViewMode, "display mode (tui, command, print, none)")
	pf.StringVar(&preset, "preset", "", "figure size preset")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list chart methods and their arguments",
		Args:  cobra.NoArgs,
		RunE:  listMethods,
	}

	figuresCmd := &cobra.Command{
		Use:   "figures",
		Short: "list rendered figures",
		Args:  cobra.NoArgs,
		RunE:  listFigures,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list figure size presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tWIDTH\tHEIGHT\tGRID")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				cols := config.DefaultGridColumns
				if p.GridColumns > 0 {
					cols = p.GridColumns
				}
				fmt.Fprintf(w, "%s\t%.0fin\t%.0fin\t%d\n", name, p.Width, p.Height, cols)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(methodsCmd, figuresCmd, presetsCmd, configCmd)
	return rootCmd
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)
	viz.SetTheme(cfg.View.Theme)

	policy, err := table.ParsePolicy(cfg.Normalise.Policy)
	if err != nil {
		return err
	}

	store := storage.New(cfg.Output.Dir)
	renderer := chart.NewRenderer(store, cfg.Output.Format, cfg.Output.Width, cfg.Output.Height)
	display, err := viz.NewDisplay(cfg.View.Mode, cfg.View.Command, os.Stdout, cfg.View.Width, cfg.View.Height)
	if err != nil {
		return err
	}

	path, method := args[0], args[1]
	logger.Debug("loading table", "path", path)
	p, err := plots.New(path,
		plots.WithRenderer(renderer),
		plots.WithDisplay(display),
		plots.WithOutput(os.Stdout),
		plots.WithLogger(logger),
		plots.WithPolicy(policy),
		plots.WithGridColumns(cfg.Layout.GridColumns),
		plots.WithPairBins(cfg.Layout.PairBins),
	)
	if err != nil {
		return err
	}
	logger.Debug("table loaded", "rows", p.Table().Len(), "columns", p.Table().Width())

	return plots.NewRegistry().Call(p, method, args[2:])
}

// loadConfig layers the config file, the preset and then any flags the
// user set over the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output.Dir = outDir
	}
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("view") {
		cfg.View.Mode = viewMode
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func listMethods(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tUSAGE\tDESCRIPTION")
	for _, m := range plots.NewRegistry().List() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, m.Usage(), m.Help)
	}
	return w.Flush()
}

func listFigures(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	figs, err := storage.New(cfg.Output.Dir).List()
	if err != nil {
		return err
	}

	if len(figs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no figures in %s\n", cfg.Output.Dir)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tMODIFIED\tPATH")
	for _, f := range figs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			f.Name,
			humanize.IBytes(uint64(f.Size)),
			f.Modified.Format("2006-01-02 15:04:05"),
			f.Path,
		)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := "genplot.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", path)
	return nil
}
