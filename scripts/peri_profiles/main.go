/*peri_profiles measures the number density profiles of subhaloes that have
passed through pericentre inside their hosts and stacks them across every
sufficiently populated host in a simulation box.*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/peri-profiles/config"
	"github.com/phil-mansfield/peri-profiles/cosmo"
	pio "github.com/phil-mansfield/peri-profiles/io"
	"github.com/phil-mansfield/peri-profiles/logging"
	"github.com/phil-mansfield/peri-profiles/profile"
	"github.com/phil-mansfield/peri-profiles/render"
)

type options struct {
	config    string
	box       float64
	dir       string
	out       string
	plotIndiv bool
	workers   int
	logLevel  string
	scales    map[string]string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "peri_profiles",
		Short: "Stack the profiles of subhaloes that have passed pericentre",
		Long: `peri_profiles follows every subhalo of every host in a simulation box
back through its merger tree, finds its closest approach to its host, and
stacks the present-day radial number density of the subhaloes with a
distinct interior pericentre across hosts.

Tables and figures are written to the output directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd, cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.config, "config", "c", "", "YAML configuration file")
	flags.Float64Var(&opts.box, "box", 0, "box width in Mpc/h (62.5, 125, 250 or 500)")
	flags.StringVar(&opts.dir, "dir", "", "directory containing the halo tables")
	flags.StringVarP(&opts.out, "out", "o", "", "output directory")
	flags.BoolVar(&opts.plotIndiv, "plot-indiv", false, "plot every host individually")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "hosts analysed in parallel")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	flags.StringToStringVar(&opts.scales, "scale", nil,
		"radius multipliers, e.g. r_sp=1.1,r200m=0.9")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Default().Write(cmd.OutOrStdout())
		},
	}
	rootCmd.AddCommand(configCmd)

	return rootCmd
}

// loadConfig reads the config file, if any, and applies the flags that were
// set explicitly on top of it.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.config != "" {
		var err error
		if cfg, err = config.Load(opts.config); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("box") {
		cfg.Box = opts.box
	}
	if flags.Changed("dir") {
		cfg.Dir = opts.dir
	}
	if flags.Changed("out") {
		cfg.Output = opts.out
	}
	if flags.Changed("plot-indiv") {
		cfg.PlotIndiv = opts.plotIndiv
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("log-level") {
		level, err := logging.ParseLevel(opts.logLevel)
		if err != nil {
			return nil, err
		}
		cfg.Log.Level = level
	}
	for key, val := range opts.scales {
		s, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("--scale %s: %w", key, err)
		}
		if err := cfg.Scales.Set(key, s); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	log := logging.New(cfg.Log, cmd.ErrOrStderr())

	c, err := cosmo.Lookup(cfg.Cosmology)
	if err != nil {
		return err
	}

	files := cfg.Tables()
	log.Debug("reading tables", "subs", files.Subs, "tree", files.Tree,
		"rad", files.Rad)
	cat, err := pio.Load(ctx, files, c, log)
	if err != nil {
		return err
	}

	pcfg := cfg.Profile()
	pcfg.Logger = log
	res, err := profile.Aggregate(ctx, cat.Hosts, pcfg)
	if err != nil {
		return err
	}

	tables, err := render.Tables(res, pcfg.Scales, cfg.Output)
	if err != nil {
		return fmt.Errorf("writing tables: %w", err)
	}
	figures, err := render.Profiles(res, pcfg.Scales, cfg.Output)
	if err != nil {
		return fmt.Errorf("writing figures: %w", err)
	}
	if cfg.PlotIndiv {
		hosts, err := render.HostScatters(res.Hosts,
			filepath.Join(cfg.Output, "hosts"))
		if err != nil {
			return fmt.Errorf("writing host figures: %w", err)
		}
		figures = append(figures, hosts...)
	}

	log.Info("done", "output", cfg.Output, "tables", len(tables),
		"figures", len(figures))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "peri_profiles: %s\n", err)
		stop()
		os.Exit(1)
	}
}
