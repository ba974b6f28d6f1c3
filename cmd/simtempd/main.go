// Command simtempd is the CLI host for the simulated temperature sensor
// engine: it owns the engine's lifecycle and exposes a small demo
// consumer loop and a stats dump, in the way a character-device host
// would, without being one.
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

	"github.com/neox5/simtemp/engine"
	"github.com/neox5/simtemp/internal/host/chardev"
	"github.com/neox5/simtemp/internal/host/kvconfig"
)

type rootOpts struct {
	periodMS    int
	thresholdMC int
	mode        string
	seed        int64
	seedFile    string
	snapshotOut string
	samples     int
}

func main() {
	var o rootOpts

	root := &cobra.Command{
		Use:   "simtempd",
		Short: "Simulated temperature sensor sampling engine",
		Long: `simtempd runs the temperature sampling engine standalone: a periodic
generator of milli-degree readings with threshold-crossing alerts,
reachable through an in-process consumer session the way a character
device would expose it.`,
	}

	root.PersistentFlags().IntVar(&o.periodMS, "period", 100, "sampling period in milliseconds [1,10000]")
	root.PersistentFlags().IntVar(&o.thresholdMC, "threshold", 45000, "alert threshold in milli-degrees Celsius [-20000,60000]")
	root.PersistentFlags().StringVar(&o.mode, "mode", "normal", "operating mode: normal, noisy, ramp")
	root.PersistentFlags().Int64Var(&o.seed, "seed", 0, "master RNG seed for the noisy mode")
	root.PersistentFlags().StringVar(&o.seedFile, "seed-file", "", "YAML seed file overriding period/threshold/mode")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the engine and print samples until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), o)
		},
	}
	runCmd.Flags().IntVar(&o.samples, "samples", 0, "number of samples to print before exiting (0 = run until interrupted)")
	runCmd.Flags().StringVar(&o.snapshotOut, "snapshot-out", "", "write a YAML config/counter snapshot here on exit")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Start the engine briefly and print its stats block",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), o)
		},
	}

	root.AddCommand(runCmd, statsCmd)

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func buildEngine(o rootOpts) (*engine.Engine, error) {
	opts := []engine.Option{
		engine.WithPeriodMS(o.periodMS),
		engine.WithThresholdMC(o.thresholdMC),
		engine.WithSeed(uint64(o.seed)),
	}
	if mode, ok := parseModeFlag(o.mode); ok {
		opts = append(opts, engine.WithMode(mode))
	}

	if o.seedFile != "" {
		seed, err := kvconfig.LoadSeed(o.seedFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, seed.Options()...)
	}

	return engine.New(opts...)
}

func parseModeFlag(s string) (engine.Mode, bool) {
	switch s {
	case "normal":
		return engine.ModeNormal, true
	case "noisy":
		return engine.ModeNoisy, true
	case "ramp":
		return engine.ModeRamp, true
	default:
		return engine.ModeInvalid, false
	}
}

func runDemo(ctx context.Context, o rootOpts) error {
	eng, err := buildEngine(o)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	eng.Start()
	defer eng.Stop()

	log := slog.Default()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dev := chardev.Open(log, eng, "simtemp0")
	defer dev.Close()

	count := 0
	for o.samples == 0 || count < o.samples {
		rec, err := dev.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("interrupted")
				break
			}
			return fmt.Errorf("read: %w", err)
		}
		fmt.Printf("t=%d temp_mC=%d flags=0x%x\n", rec.TimestampNS, rec.TempMC, rec.Flags)
		count++
	}

	if o.snapshotOut != "" {
		if err := kvconfig.DumpSnapshot(o.snapshotOut, eng); err != nil {
			log.Warn("snapshot write failed", "err", err)
		}
	}
	return nil
}

func runStats(ctx context.Context, o rootOpts) error {
	eng, err := buildEngine(o)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	eng.Start()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(o.periodMS)*time.Millisecond*5)
	defer cancel()
	<-ctx.Done()
	eng.Stop()

	fmt.Print(eng.Stats().String())
	return nil
}
