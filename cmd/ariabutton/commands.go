package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/ariabutton/internal/config"
	"github.com/dshills/ariabutton/internal/history"
	"github.com/dshills/ariabutton/internal/input/key"
	"github.com/dshills/ariabutton/internal/input/trigger"
)

func newConfigCmd(path *string) *cobra.Command {
	var (
		query string
		noEnv bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration as YAML",
		Long: `Print the configuration after includes and ARIABUTTON_* environment
variables are merged. The configuration is validated first.

With --query, print the result of a JMESPath expression instead:
  ariabutton config -q 'button[].id'
  ariabutton config -q "button[?tabindex > ` + "`0`" + `].id | [0]"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.LoadOption
			if noEnv {
				opts = append(opts, config.WithoutEnv())
			}
			raw, err := config.Raw(*path, opts...)
			if err != nil {
				return err
			}
			if _, err := config.Decode(raw); err != nil {
				return err
			}

			if query == "" {
				return config.Dump(cmd.OutOrStdout(), raw)
			}
			v, err := config.Query(raw, query)
			if err != nil {
				return err
			}
			return config.Dump(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "JMESPath expression to evaluate")
	cmd.Flags().BoolVar(&noEnv, "no-env", false, "Ignore ARIABUTTON_* environment variables")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var (
		path   string
		recent int
		since  time.Duration
		wipe   bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show recorded presses",
		Long: `Show press counts per button from a history database written with
--history. --recent lists the newest presses instead; --since limits that
list to a time window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(path)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			if wipe {
				if err := store.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
				return nil
			}

			report := history.NewReport(cmd.OutOrStdout())
			if recent == 0 && since == 0 {
				counts, err := store.Counts(ctx)
				if err != nil {
					return err
				}
				return report.Counts(counts)
			}

			entries, err := store.Recent(ctx, recent)
			if err != nil {
				return err
			}
			if since > 0 {
				entries = history.Since(entries, time.Now().Add(-since))
			}
			return report.Entries(entries)
		},
	}
	cmd.Flags().StringVar(&path, "history", "presses.db", "History database")
	cmd.Flags().IntVarP(&recent, "recent", "n", 0, "List the newest n presses")
	cmd.Flags().DurationVar(&since, "since", 0, "List presses newer than this, e.g. 10m")
	cmd.Flags().BoolVar(&wipe, "clear", false, "Delete every recorded press")
	return cmd
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List key names accepted by the keys option",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := key.Named()
			rows := make([][2]string, len(codes))
			for i, c := range codes {
				rows[i] = [2]string{c.String(), strconv.Itoa(int(c))}
			}
			return listing(cmd.OutOrStdout(), "NAME", "CODE", rows)
		},
	}
}

func newTriggersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "triggers",
		Short: "List trigger names accepted by the triggers option",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := trigger.Names()
			rows := make([][2]string, 0, len(names))
			for _, n := range names {
				m, _ := trigger.Lookup(n)
				rows = append(rows, [2]string{n, fmt.Sprintf("%#x", uint32(m))})
			}
			return listing(cmd.OutOrStdout(), "NAME", "BIT", rows)
		},
	}
}

// listing writes a two-column table.
func listing(w io.Writer, left, right string, rows [][2]string) error {
	r := lipgloss.NewRenderer(w)
	width := lipgloss.Width(left)
	for _, row := range rows {
		width = max(width, lipgloss.Width(row[0]))
	}
	name := r.NewStyle().Width(width + 2)
	header := name.Bold(true)

	if _, err := fmt.Fprintln(w, header.Render(left)+r.NewStyle().Bold(true).Render(right)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, name.Render(row[0])+row[1]); err != nil {
			return err
		}
	}
	return nil
}
