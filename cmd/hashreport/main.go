package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"github.com/weberc2/hashreport/pkg/hashreport"
	"github.com/weberc2/hashreport/pkg/log"
	"github.com/weberc2/hashreport/pkg/types"
	"go.uber.org/zap"
)

const (
	exitCodeOK    = 0
	exitCodeError = 1
	exitCodeUsage = 255
)

const (
	flagOutputDir    = "output-dir"
	flagLogDir       = "log-dir"
	flagConsoleLevel = "console-level"
	flagFileLevel    = "file-level"
	flagSorted       = "sorted"
	flagLabel        = "label"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := newApp(stdout, stderr, time.Now).RunContext(ctx, args)
	if err == nil {
		return exitCodeOK
	}

	var usageErr *types.UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(stderr, usageErr.Message)
		fmt.Fprintf(
			stderr,
			"USAGE: %s <csv file> [<csv file>] [...]\n",
			filepath.Base(args[0]),
		)
		return exitCodeUsage
	}

	fmt.Fprintf(stderr, "%s: %v\n", appName, err)
	return exitCodeError
}

func newApp(stdout, stderr io.Writer, now func() time.Time) *cli.App {
	return &cli.App{
		Name:      appName,
		Usage:     "split hash reports into orphaned and duplicated files",
		ArgsUsage: "<csv file> [<csv file>] [...]",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagOutputDir,
				Usage: "directory to write the reports into",
			},
			&cli.StringFlag{
				Name:  flagLogDir,
				Usage: "directory to write the log file into",
			},
			&cli.StringFlag{
				Name:  flagConsoleLevel,
				Usage: "minimum level of console log entries",
			},
			&cli.StringFlag{
				Name:  flagFileLevel,
				Usage: "minimum level of log file entries",
			},
			&cli.BoolFlag{
				Name:  flagSorted,
				Usage: "emit hashes in lexicographic order",
			},
			&cli.StringFlag{
				Name:  flagLabel,
				Usage: "label appended to the report file names",
			},
		},
		// every argument is an input report, even one named `help`
		HideHelpCommand: true,
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() < 1 {
				return &types.UsageError{
					Message: "incorrect number of arguments",
				}
			}

			config, err := LoadConfig()
			if err != nil {
				return err
			}
			config.ApplyFlags(ctx)
			if err := config.Validate(); err != nil {
				return err
			}

			return execute(
				ctx.Context,
				config,
				ctx.Args().Slice(),
				stdout,
				stderr,
				now(),
			)
		},
	}
}

func execute(
	ctx context.Context,
	config *Config,
	inputs []string,
	stdout io.Writer,
	stderr io.Writer,
	now time.Time,
) (err error) {
	// one timestamp names the log file and both reports
	timestamp := hashreport.Timestamp(now)

	// levels were checked by `Validate`
	consoleLevel, _ := log.ParseLevel(config.ConsoleLevel)
	fileLevel, _ := log.ParseLevel(config.FileLevel)

	logger, err := log.New(log.Config{
		Console:      stderr,
		ConsoleLevel: consoleLevel,
		Directory:    config.LogDir,
		FileName:     hashreport.LogFileName(timestamp),
		FileLevel:    fileLevel,
		Fields:       []zap.Field{zap.String("run", uuid.NewString())},
	})
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, logger.Close()) }()

	notifier := hashreport.NewNotifier(stdout)
	notifier.LoggingTo(logger.Path)

	if _, err = hashreport.Run(
		log.Context(ctx, logger.Logger),
		&hashreport.Options{
			Inputs:          inputs,
			OutputDirectory: config.OutputDir,
			Timestamp:       timestamp,
			Label:           config.Label,
			Sorted:          config.Sorted,
			Notifier:        notifier,
		},
	); err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}

	logger.Info("program has completed")
	return nil
}
