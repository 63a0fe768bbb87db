package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"

	"attr-mapper/internal/extract"
	"attr-mapper/internal/pipeline"
	"attr-mapper/internal/quarantine"
	"attr-mapper/internal/record"
)

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:   "extract",
		Usage:  "Extract attributes from JSON lines records",
		Action: extractAction,
		Flags: []cli.Flag{
			mappingFlag(),
			mappingInlineFlag(),
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Input file of JSON lines records, - for stdin",
				Value:   "-",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file for extracted events, - for stdout",
				Value:   "-",
			},
			&cli.StringFlag{
				Name:    "topic",
				Usage:   "Topic name stamped on input records",
				Value:   "stdin",
				EnvVars: []string{envPrefix + "TOPIC"},
			},
			&cli.IntFlag{
				Name:    "workers",
				Usage:   "Number of concurrent extraction workers",
				Value:   runtime.NumCPU(),
				EnvVars: []string{envPrefix + "WORKERS"},
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "Number of records extracted per batch",
				Value: 256,
			},
			&cli.StringFlag{
				Name:    "on-error",
				Usage:   "What to do with records that cannot be extracted (skip, quarantine, fail)",
				Value:   pipeline.PolicySkip.String(),
				EnvVars: []string{envPrefix + "ON_ERROR"},
			},
			&cli.StringFlag{
				Name:    "quarantine-dir",
				Usage:   "BadgerDB directory for quarantined records (required with --on-error quarantine)",
				EnvVars: []string{envPrefix + "QUARANTINE_DIR"},
			},
		},
	}
}

func extractAction(c *cli.Context) error {
	ctx := c.Context

	def, err := loadDefinition(c)
	if err != nil {
		return err
	}

	policy, err := pipeline.ParsePolicy(c.String("on-error"))
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(c.String("input"), c.App.Reader)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(c.String("output"), c.App.Writer)
	if err != nil {
		return err
	}
	defer closeOut()

	buffered := bufio.NewWriter(out)

	opts := []pipeline.Option{
		pipeline.WithPoolSize(c.Int("workers")),
		pipeline.WithBatchSize(c.Int("batch-size")),
		pipeline.WithPolicy(policy),
		pipeline.WithLogger(slog.Default()),
	}

	if policy == pipeline.PolicyQuarantine {
		dir := c.String("quarantine-dir")
		if dir == "" {
			return fmt.Errorf("--quarantine-dir is required with --on-error %s", policy)
		}

		store, err := quarantine.Open(dir, false, quarantine.WithLogger(slog.Default()))
		if err != nil {
			return err
		}
		defer store.Close()

		opts = append(opts, pipeline.WithQuarantine(store))
	}

	p, err := pipeline.New(extract.NewFromDefinition(def), pipeline.NewJSONLinesSink(buffered), opts...)
	if err != nil {
		return err
	}
	defer p.Release()

	stats, runErr := p.Run(ctx, record.NewReader(in, c.String("topic")))

	if err := buffered.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to flush output: %w", err)
	}

	slog.Info("extraction complete",
		"attributes", def.Len(),
		"read", stats.Read,
		"emitted", stats.Emitted,
		"skipped", stats.Skipped,
		"quarantined", stats.Quarantined,
		"decode_errors", stats.DecodeErrors)

	return runErr
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" || path == "" {
		return stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}

	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "-" || path == "" {
		return stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output %s: %w", path, err)
	}

	return f, func() { _ = f.Close() }, nil
}
