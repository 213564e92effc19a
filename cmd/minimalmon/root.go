package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"minimalmon/internal/conf"
	"minimalmon/internal/display"
	"minimalmon/internal/netx"
	"minimalmon/internal/refresh"
	"minimalmon/internal/system"
	"minimalmon/internal/web"
)

// newHost returns the OS source the sampler reads from
var newHost = func(window time.Duration) system.Host {
	return system.NewLocalHost(window)
}

type rootOptions struct {
	cfgFile    string
	interval   int
	web        bool
	noTerminal bool
	debug      bool
}

// newRootCmd represents the base command when called without any subcommands
func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minimalmon",
		Short: "Periodic host metrics display",
		Long: `minimalmon samples CPU, memory, disk, process, service and scheduler
status on a fixed interval and renders it as text in the terminal and,
optionally, on a browser dashboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m, err := opts.buildMonitor(cmd)
			if err != nil {
				return err
			}
			return m.run(ctx)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "config.toml", "config file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.Flags().IntVarP(&opts.interval, "interval", "i", -1, "initial interval index (0=1s, 1=5s, 2=10s, 3=30s)")
	cmd.Flags().BoolVar(&opts.web, "web", false, "serve the browser dashboard")
	cmd.Flags().BoolVar(&opts.noTerminal, "no-terminal", false, "do not render to the terminal")

	cmd.AddCommand(newOnceCmd())
	return cmd
}

// Execute runs the root command
func Execute() {
	if err := newRootCmd(&rootOptions{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// load reads the config file and installs the logger
func (o *rootOptions) load() error {
	if err := conf.LoadConfig(o.cfgFile); err != nil {
		return err
	}
	slog.SetDefault(newLogger(conf.GetLog(), o.debug))
	return nil
}

// newSampler builds the sampler from the loaded config
func newSampler(logger *slog.Logger) (*system.Sampler, error) {
	window, err := conf.GetCPUWindow()
	if err != nil {
		return nil, err
	}

	status := system.NewCommandStatus()
	if sched := conf.GetScheduler(); sched.Command != "" {
		status.Command = sched.Command
		status.Args = sched.Args
		status.Skip = sched.Skip
		status.Take = sched.Take
	}
	if err := status.Validate(); err != nil {
		return nil, fmt.Errorf("invalid [Scheduler] config: %w", err)
	}

	return system.NewSampler(newHost(window), system.DetectServiceLister(), status, logger), nil
}

// monitor is the wired refresh driver with its display surfaces
type monitor struct {
	driver *refresh.Driver
	dash   *web.Dashboard
	web    conf.Web
	logger *slog.Logger
}

func (o *rootOptions) buildMonitor(cmd *cobra.Command) (*monitor, error) {
	logger := slog.Default()

	sampler, err := newSampler(logger)
	if err != nil {
		return nil, err
	}

	index := conf.GetIntervalIndex()
	if cmd.Flags().Changed("interval") {
		index = o.interval
	}
	if _, err := refresh.IntervalAt(index); err != nil {
		return nil, err
	}

	displayCfg := conf.GetDisplay()
	webCfg := conf.GetWeb()
	if cmd.Flags().Changed("web") {
		webCfg.Enabled = o.web
	}

	var surfaces display.Multi
	if displayCfg.Terminal && !o.noTerminal {
		surfaces = append(surfaces, display.NewTerminal(cmd.OutOrStdout(), displayCfg.ClearScreen))
	}

	var dash *web.Dashboard
	if webCfg.Enabled {
		ns := netx.SetupGlobalServer().GetNamespace(netx.DashboardNamespace)
		dash = web.NewDashboard(ns, logger)
		web.SetupDashboardService(ns, dash)
		surfaces = append(surfaces, dash)
	}

	if len(surfaces) == 0 {
		return nil, fmt.Errorf("no display surface enabled")
	}

	driver := refresh.NewDriver(sampler, surfaces, logger, refresh.WithIndex(index))
	if dash != nil {
		dash.SetSelector(driver)
	}

	return &monitor{driver: driver, dash: dash, web: webCfg, logger: logger}, nil
}

// run drives the refresh loop and, when enabled, the dashboard server
func (m *monitor) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.driver.Run(ctx)
	})
	if m.dash != nil {
		g.Go(func() error {
			mux := web.NewMux(m.web.RootPath, netx.GetHandler())
			return web.Serve(ctx, m.web.Addr, mux, m.logger)
		})
	}
	return g.Wait()
}
