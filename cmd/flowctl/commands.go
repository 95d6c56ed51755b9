package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"flowstate/internal/core/bootstrap"
	"flowstate/internal/loader"
	"flowstate/internal/repository/sqlite"
	"flowstate/internal/store"
	"flowstate/internal/ui"
)

// errDangling is returned by check when references do not resolve
var errDangling = errors.New("dangling references found")

func showCmd(opts *rootOptions) *cobra.Command {
	var format, seed string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the initial editor state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.newStore(seed)
			if err != nil {
				return err
			}
			return renderState(cmd.OutOrStdout(), format, st.Version(), st.Snapshot())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format (table, json, yaml)")
	cmd.Flags().StringVar(&seed, "seed", "", "Seed graph file (overrides config)")
	return cmd
}

func replayCmd(opts *rootOptions) *cobra.Command {
	var format, seed string

	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Apply an action script and print the resulting state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			progress := io.Discard
			if format == formatTable {
				progress = out
			}

			st, err := opts.replay(progress, args[0], seed)
			if err != nil {
				return err
			}
			if format == formatTable {
				fmt.Fprintln(out)
			}
			return renderState(out, format, st.Version(), st.Snapshot())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format (table, json, yaml)")
	cmd.Flags().StringVar(&seed, "seed", "", "Seed graph file (overrides config)")
	return cmd
}

func checkCmd(opts *rootOptions) *cobra.Command {
	var seed string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <script>",
		Short: "Replay a script and report references that no longer resolve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			progress := out
			if quiet {
				progress = io.Discard
			}

			st, err := opts.replay(progress, args[0], seed)
			if err != nil {
				return err
			}

			refs := st.Snapshot().DanglingReferences()
			if !quiet {
				fmt.Fprintln(out)
			}
			renderDangling(out, refs)
			if len(refs) > 0 {
				return fmt.Errorf("%w: %d", errDangling, len(refs))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "Seed graph file (overrides config)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the diagnostics")
	return cmd
}

func journalCmd(opts *rootOptions) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List recently dispatched actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.cfg.Journal.Path
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("no journal at %s: %w", path, err)
			}

			journal, err := sqlite.New(path)
			if err != nil {
				return err
			}
			defer journal.Close()

			entries, err := journal.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "  No actions recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(e.ID, 10),
					e.RecordedAt.Local().Format(time.DateTime),
					e.Action,
					strconv.FormatUint(e.Version, 10),
					ui.StatusIcon(!e.Failed()),
					e.Error,
				})
			}
			ui.Banner(out, "action journal")
			ui.Table(out, []string{"ID", "Time", "Action", "Version", "OK", "Error"}, rows)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}

func configCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), opts.cfg.Summary())
		},
	}
}

// newStore builds a store from config, optionally overriding the seed file
func (o *rootOptions) newStore(seed string) (*store.Store, error) {
	cfg := *o.cfg
	if seed != "" {
		cfg.Editor.SeedFile = seed
	}
	st, _, err := bootstrap.NewStore(&cfg, o.logger)
	return st, err
}

// replay dispatches the actions in script, printing one line per action
// to progress. It stops at the first rejected action.
func (o *rootOptions) replay(progress io.Writer, script, seed string) (*store.Store, error) {
	actions, err := loader.LoadScript(script)
	if err != nil {
		return nil, err
	}

	st, err := o.newStore(seed)
	if err != nil {
		return nil, err
	}

	for i, a := range actions {
		if err := st.Dispatch(a); err != nil {
			fmt.Fprintf(progress, "  %s %3d %s\n", ui.StatusIcon(false), i+1, a.Type)
			return nil, fmt.Errorf("action %d (%s): %w", i+1, a.Type, err)
		}
		fmt.Fprintf(progress, "  %s %3d %s\n", ui.StatusIcon(true), i+1, a.Type)
	}
	return st, nil
}
