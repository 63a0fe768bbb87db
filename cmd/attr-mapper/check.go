package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"attr-mapper/internal/coverage"
	"attr-mapper/internal/mapping"
	"attr-mapper/internal/record"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "Validate a mapping definition and print its attributes",
		Action: checkAction,
		Flags: []cli.Flag{
			mappingFlag(),
			mappingInlineFlag(),
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format (text, json, yaml)",
				Value: "text",
			},
			&cli.StringFlag{
				Name:  "sample",
				Usage: "JSON lines file of sample records to check attribute coverage against",
			},
			&cli.IntFlag{
				Name:  "sample-limit",
				Usage: "Maximum number of sample records to read",
				Value: 1000,
			},
		},
	}
}

func checkAction(c *cli.Context) error {
	def, err := loadDefinition(c)
	if err != nil {
		return err
	}

	w := c.App.Writer

	if sample := c.String("sample"); sample != "" {
		return checkCoverage(c, def, sample)
	}

	switch c.String("format") {
	case "text":
		for name, path := range def.All() {
			fmt.Fprintf(w, "%s\t%s\n", name, path)
		}

		fmt.Fprintf(w, "%d attribute(s)\n", def.Len())

		return nil

	case "json":
		data, err := json.Marshal(def)
		if err != nil {
			return err
		}

		fmt.Fprintln(w, string(data))

		return nil

	case "yaml":
		data, err := mapping.Marshal(def)
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err

	default:
		return fmt.Errorf("unknown format %q: must be one of text, json, yaml", c.String("format"))
	}
}

func mappingFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "mapping",
		Aliases: []string{"m"},
		Usage:   "Path to the JSON or YAML mapping definition",
		EnvVars: []string{envPrefix + "MAPPING"},
	}
}

func mappingInlineFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "mapping-json",
		Usage:   "Inline mapping definition, used when --mapping is not set",
		EnvVars: []string{envPrefix + "MAPPING_JSON"},
	}
}

// loadDefinition reads the definition from --mapping or --mapping-json.
func loadDefinition(c *cli.Context) (mapping.Definition, error) {
	if path := c.String("mapping"); path != "" {
		return mapping.LoadFile(path)
	}

	if inline := c.String("mapping-json"); inline != "" {
		return mapping.ParseString(inline)
	}

	return mapping.Definition{}, errors.New("one of --mapping or --mapping-json is required")
}

// checkCoverage prints how often each attribute resolves in the sample file.
func checkCoverage(c *cli.Context, def mapping.Definition, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open sample %s: %w", path, err)
	}
	defer f.Close()

	reader := record.NewReader(f, path)
	limit := c.Int("sample-limit")

	var samples []any

	for limit <= 0 || len(samples) < limit {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		var decErr *record.DecodeError
		if errors.As(err, &decErr) {
			slog.Warn("skipping undecodable sample", "line", decErr.Line, "error", decErr.Err)
			continue
		}

		if err != nil {
			return err
		}

		samples = append(samples, rec.Value)
	}

	report := coverage.Analyze(def, samples)
	w := c.App.Writer

	for _, attr := range report.Attributes {
		fmt.Fprintf(w, "%s\t%s\t%d/%d\n", attr.Name, attr.Path, attr.Present, attr.Present+attr.Absent)
	}

	for _, warn := range report.Diagnostics.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}

	fmt.Fprintf(w, "%d sample(s), %d rejected\n", report.Records, report.Rejected)

	return nil
}
