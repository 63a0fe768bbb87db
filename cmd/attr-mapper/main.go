// Package main provides the CLI entrypoint for attr-mapper.
//
// attr-mapper projects nested JSON records onto flat event attributes using a
// declarative mapping definition:
//   - check validates a mapping definition and prints its attributes
//   - extract runs the mapping over JSON lines and writes one event per record
//   - quarantine inspects or clears records rejected during extraction
package main

import (
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

const envPrefix = "ATTR_MAPPER_"

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "attr-mapper",
		Usage:     "Extract flat event attributes from nested records",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{envPrefix + "LOG_LEVEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			checkCommand(),
			extractCommand(),
			quarantineCommand(),
		},
	}
}
