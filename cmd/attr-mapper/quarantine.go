package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"attr-mapper/internal/quarantine"
)

func quarantineCommand() *cli.Command {
	return &cli.Command{
		Name:  "quarantine",
		Usage: "Inspect records rejected during extraction",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Print quarantined records as JSON lines",
				Action: quarantineListAction,
				Flags: []cli.Flag{
					quarantineDirFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to print, 0 for all",
						Value: 0,
					},
				},
			},
			{
				Name:   "purge",
				Usage:  "Remove every quarantined record",
				Action: quarantinePurgeAction,
				Flags:  []cli.Flag{quarantineDirFlag()},
			},
		},
	}
}

func quarantineDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "dir",
		Aliases:  []string{"d"},
		Usage:    "Path to the quarantine BadgerDB directory",
		Required: true,
		EnvVars:  []string{envPrefix + "QUARANTINE_DIR"},
	}
}

// entryView is the printed form of a quarantine entry.
type entryView struct {
	ID            uint64          `json:"id"`
	Topic         string          `json:"topic"`
	Partition     int32           `json:"partition"`
	Offset        int64           `json:"offset"`
	Key           string          `json:"key,omitempty"`
	Reason        string          `json:"reason"`
	Value         json.RawMessage `json:"value"`
	QuarantinedAt time.Time       `json:"quarantined_at"`
}

func quarantineListAction(c *cli.Context) error {
	store, err := quarantine.Open(c.String("dir"), false, quarantine.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetEscapeHTML(false)

	for _, e := range entries {
		view := entryView{
			ID:            e.ID,
			Topic:         e.Topic,
			Partition:     e.Partition,
			Offset:        e.Offset,
			Key:           e.Key,
			Reason:        e.Reason,
			Value:         json.RawMessage(e.Payload),
			QuarantinedAt: e.QuarantinedAt,
		}

		if err := enc.Encode(view); err != nil {
			return err
		}
	}

	return nil
}

func quarantinePurgeAction(c *cli.Context) error {
	store, err := quarantine.Open(c.String("dir"), false, quarantine.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Purge(c.Context)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "purged %d record(s)\n", removed)

	return nil
}
