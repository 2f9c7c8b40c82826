// Package main implements an emulator for the Aspen 32-register machine.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/aspenemu/internal/cli"
	"github.com/retroenv/aspenemu/internal/device"
	"github.com/retroenv/aspenemu/internal/isa"
	"github.com/retroenv/aspenemu/internal/machine"
	"github.com/retroenv/aspenemu/internal/register"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	logger := createLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	printBanner(logger, opts)

	code, err := run(ctx, logger, opts)
	if err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Execution failed", log.Err(err))
		os.Exit(1)
	}
	os.Exit(code)
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func printBanner(logger *log.Logger, opts cli.Options) {
	if opts.Quiet {
		return
	}
	fmt.Println("[ aspenemu - Aspen machine emulator ]")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	if opts.Input != "" {
		logger.Info("Running program",
			log.String("file", opts.Input),
			log.String("revision", opts.Revision))
	}
}

// run loads the program and storage images and executes the machine until
// it halts. The exit code is the low byte of a0, following the calling
// convention for return value 0.
func run(ctx context.Context, logger *log.Logger, opts cli.Options) (int, error) {
	program, err := os.ReadFile(opts.Input)
	if err != nil {
		return 0, fmt.Errorf("reading program file: %w", err)
	}

	var storage []byte
	if opts.Storage != "" {
		storage, err = os.ReadFile(opts.Storage)
		if err != nil {
			return 0, fmt.Errorf("reading storage image: %w", err)
		}
	}

	m, err := machine.New(machine.Config{
		Revision: isa.Revision(opts.Revision),
		Devices:  device.NewHost(os.Stdout, os.Stderr, logger),
		Logger:   logger,
		Memory:   program,
		Storage:  storage,
	})
	if err != nil {
		return 0, fmt.Errorf("initializing machine: %w", err)
	}

	if err := m.Run(ctx); err != nil {
		return 0, err
	}

	logger.Debug("program halted",
		log.Hex("pc", m.PC()),
		log.Hex("cycles", m.Cycles()))
	return int(uint8(m.Register(register.A0))), nil
}
