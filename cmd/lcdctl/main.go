// Command lcdctl drives an lcd1602 display through its character device.
//
// Usage:
//
//	lcdctl [--config lcdctl.yaml] [--device /dev/lcd1602_0] [--sequence demo.lcd] [--simulate]
//
// Without --sequence (or sequence.file) the built-in demo sequence runs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/moffa90/go-lcd1602/device"
	"github.com/moffa90/go-lcd1602/internal/config"
	"github.com/moffa90/go-lcd1602/internal/logging"
	"github.com/moffa90/go-lcd1602/sequence"
	"github.com/moffa90/go-lcd1602/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lcdctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath  = flag.StringP("config", "c", "", "configuration file (YAML)")
		devPath  = flag.StringP("device", "d", "", "device node, overrides device.path")
		seqPath  = flag.StringP("sequence", "s", "", "sequence file, overrides sequence.file")
		simulate = flag.Bool("simulate", false, "run against an in-memory display instead of the device")
	)
	flag.Parse()

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *devPath != "" {
		cfg.Device.Path = *devPath
	}
	if *seqPath != "" {
		cfg.Sequence.File = *seqPath
	}

	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// --------------------
	// Steps
	// --------------------

	steps := sequence.Canonical()
	if cfg.Sequence.File != "" {
		steps, err = sequence.Parse(cfg.Sequence.File)
		if err != nil {
			return err
		}
	}

	opts := []session.Option{
		session.WithLogger(logging.NewSessionLogger(logger)),
		session.WithSettleDelay(cfg.Device.SettleDelay),
		session.WithDecodeMode(cfg.DecodeMode()),
	}

	var sim *device.Simulator
	if *simulate {
		sim = device.NewSimulator()
		opts = append(opts, session.WithOpener(func(string) (session.Device, error) {
			return sim, nil
		}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("running sequence",
		zap.String("device", cfg.Device.Path),
		zap.Int("steps", len(steps)),
		zap.Bool("simulate", *simulate),
	)

	report, err := session.Run(ctx, cfg.Device.Path, steps, opts...)
	if err != nil {
		return err
	}

	for _, text := range report.Reads {
		fmt.Println(text)
	}
	if sim != nil {
		fmt.Printf("display: %q (backlight=%t)\n", sim.Text(), sim.Backlight())
	}

	logger.Info("done",
		zap.String("session_id", report.SessionID.String()),
		zap.Int("executed", report.Executed),
		zap.Duration("elapsed", report.Elapsed),
	)
	return nil
}
