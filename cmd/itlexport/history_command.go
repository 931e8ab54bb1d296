package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"itlexport/internal/history"
)

type historyRow struct {
	RunID        string    `json:"run_id"`
	StartedAt    time.Time `json:"started_at"`
	Seconds      float64   `json:"duration_seconds"`
	Status       string    `json:"status"`
	Tracks       int       `json:"tracks"`
	M3UWritten   int       `json:"m3u_written"`
	HTMLWritten  int       `json:"html_written"`
	Entries      int       `json:"entries"`
	Skipped      int       `json:"skipped"`
	Orphaned     int       `json:"orphaned"`
	ErrorMessage string    `json:"error,omitempty"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent conversion runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("run history is disabled (history.enabled = false)")
			}

			store, err := history.Open(cmd.Context(), cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			rows := make([]historyRow, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, newHistoryRow(run))
			}

			if jsonOut {
				return printJSON(cmd, map[string]any{"runs": rows})
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistory(rows, time.Now()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output runs as JSON")
	return cmd
}

func newHistoryRow(run history.Run) historyRow {
	return historyRow{
		RunID:        run.RunID,
		StartedAt:    run.StartedAt,
		Seconds:      run.Duration().Seconds(),
		Status:       run.Status,
		Tracks:       run.Tracks,
		M3UWritten:   run.M3UWritten,
		HTMLWritten:  run.HTMLWritten,
		Entries:      run.EntriesWritten,
		Skipped:      run.ItemsSkipped,
		Orphaned:     run.Orphaned,
		ErrorMessage: run.ErrorMessage,
	}
}

func renderHistory(rows []historyRow, now time.Time) string {
	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		status := r.Status
		if r.ErrorMessage != "" {
			status = fmt.Sprintf("%s: %s", r.Status, truncate(r.ErrorMessage, 40))
		}
		body = append(body, []string{
			shortID(r.RunID),
			humanize.RelTime(r.StartedAt, now, "ago", "from now"),
			time.Duration(r.Seconds * float64(time.Second)).Round(time.Millisecond).String(),
			status,
			humanize.Comma(int64(r.Tracks)),
			fmt.Sprintf("%d", r.M3UWritten),
			fmt.Sprintf("%d", r.HTMLWritten),
			humanize.Comma(int64(r.Entries)),
			humanize.Comma(int64(r.Skipped)),
		})
	}
	return renderTable(
		[]string{"Run", "Started", "Duration", "Status", "Tracks", "M3U", "HTML", "Entries", "Skipped"},
		body,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
