package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/grip/scene"
	"github.com/oomph-ac/grip/settings"
	"github.com/oomph-ac/grip/sim"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// simulateOptions holds the flags of the simulate command.
type simulateOptions struct {
	configPath string
	maxFrames  uint64
	realtime   bool
	json       bool
	verbose    bool
	statsAddr  string
	sentryDSN  string
}

// SimulateCmd returns the simulate command, which runs the demo scenario and prints its events.
func SimulateCmd() *cobra.Command {
	var opts simulateOptions

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the scripted grab, socket and stab scenario",
		Long: `Runs a scripted scenario: a hand force pulls a pistol, a magazine is pulled into a
belt pouch, a knife stabs a dummy and is destroyed, and the pistol is holstered and drawn again.
Every event is printed as it happens.

By default the scenario is stepped as fast as possible with a fixed frame time, which makes the
output reproducible. --realtime runs it on the wall clock instead.

Examples:
  grip simulate
  grip simulate --config grip.toml --json
  grip simulate --realtime --stats localhost:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "settings file (.toml, .yaml or .yml)")
	cmd.Flags().Uint64Var(&opts.maxFrames, "frames", 1200, "maximum amount of frames to simulate")
	cmd.Flags().BoolVar(&opts.realtime, "realtime", false, "run on the wall clock instead of stepping frames")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print events as JSON lines")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().StringVar(&opts.statsAddr, "stats", "", "serve runtime charts on this address")
	cmd.Flags().StringVar(&opts.sentryDSN, "sentry-dsn", os.Getenv("SENTRY_DSN"), "report crashes to sentry")
	return cmd
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     !color.NoColor,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func loadSettings(path string) (settings.Settings, error) {
	if path == "" {
		return settings.DefaultSettings(), nil
	}
	return settings.Load(path)
}

func runSimulate(ctx context.Context, out, errOut io.Writer, opts simulateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := newLogger(errOut, opts.verbose)

	if opts.sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: opts.sentryDSN}); err != nil {
			return fmt.Errorf("failed initialising sentry: %w", err)
		}
		defer sentry.Flush(time.Second * 2)
	}
	if opts.statsAddr != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(opts.statsAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Infof("serving runtime stats on http://%s/debug/statsview", opts.statsAddr)
	}

	conf, err := loadSettings(opts.configPath)
	if err != nil {
		return err
	}

	s, err := scene.New(scene.Options{Settings: conf, Log: log})
	if err != nil {
		return err
	}
	sc, err := newScenario(s)
	if err != nil {
		return err
	}
	sc.onStep = func(name string, err error) {
		if err != nil {
			log.WithField("step", name).Warnf("scenario step failed: %v", err)
			return
		}
		log.WithField("step", name).Debug("scenario step ran")
	}

	p := printer{w: out, world: s.World(), json: opts.json}
	var printErr error
	loop := s.Loop()
	loop.AddFrame(sc)
	loop.AddFrame(sim.TickerFunc(func(float32) {
		for _, ev := range s.Events() {
			if err := p.print(loop.Frames()+1, ev); err != nil && printErr == nil {
				printErr = err
			}
		}
	}))

	if opts.realtime {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		loop.AddFrame(sim.TickerFunc(func(float32) {
			if sc.Done() || loop.Frames()+1 >= opts.maxFrames {
				cancel()
			}
		}))
		if err := loop.Run(ctx); err != nil {
			return err
		}
	} else {
		frame := 1 / conf.Sim.FrameRate
		for !sc.Done() && loop.Frames() < opts.maxFrames {
			loop.Advance(frame)
		}
	}
	if printErr != nil {
		return printErr
	}
	if !sc.Done() {
		log.Warnf("scenario did not finish within %d frames", opts.maxFrames)
	}
	log.Infof("simulated %d frames, %d physics steps", loop.Frames(), loop.Steps())
	return nil
}
