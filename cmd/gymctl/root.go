package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/gymtracker/internal/gymstats/autosave"
	"github.com/2beens/gymtracker/internal/gymstats/progression"
	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

type autosaveReader interface {
	Get(ctx context.Context, workoutID string) (*workout.Snapshot, error)
	List(ctx context.Context) ([]autosave.Entry, error)
}

type autosaveDiscarder interface {
	DiscardAutosave(ctx context.Context, workoutID string) error
}

type suggester interface {
	SuggestFor(ctx context.Context, exerciseID string) (progression.Suggestion, error)
}

type app struct {
	autosaves autosaveReader
	discarder autosaveDiscarder
	suggester suggester
	migrate   func() error
	close     func() error
}

func (a *app) Close() {
	if a.close == nil {
		return
	}
	if err := a.close(); err != nil {
		log.Errorf("close: %s", err)
	}
}

type appOpener func(ctx context.Context, env, configPath string, withDB bool) (*app, error)

type rootFlags struct {
	env        string
	configPath string
	timeout    time.Duration
	verbose    bool
}

func newRootCmd(open appOpener) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:          "gymctl",
		Short:        "Gymtracker admin tool",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&flags.env, "env", "development", "environment [prod | production | dev | development]")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "./config.toml", "path for the TOML config file")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", 30*time.Second, "timeout for a single command")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	// withApp opens the backends, runs fn and releases them again
	withApp := func(withDB bool, fn func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			a, err := open(ctx, flags.env, flags.configPath, withDB)
			if err != nil {
				return err
			}
			defer a.Close()

			return fn(ctx, a, cmd, args)
		}
	}

	root.AddCommand(
		newAutosaveCmd(withApp),
		newSuggestCmd(withApp),
		newMigrateCmd(withApp),
	)

	return root
}

type appRunner func(withDB bool, fn func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error

func newAutosaveCmd(withApp appRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autosave",
		Short: "Inspect and discard stored session snapshots",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, most recent first",
		Args:  cobra.NoArgs,
		RunE: withApp(true, func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			entries, err := a.autosaves.List(ctx)
			if err != nil {
				return fmt.Errorf("list autosaves: %w", err)
			}
			return writeEntries(cmd.OutOrStdout(), entries)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <workoutId>",
		Short: "Print a stored snapshot as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(true, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			snapshot, err := a.autosaves.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get autosave: %w", err)
			}
			if snapshot == nil {
				return fmt.Errorf("no autosave for workout [%s]", args[0])
			}
			return writeJSON(cmd.OutOrStdout(), snapshot)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "discard <workoutId>",
		Short: "Delete the stored snapshot of a workout",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(true, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			if err := a.discarder.DiscardAutosave(ctx, args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "discarded autosave for workout %s\n", args[0])
			return err
		}),
	})

	return cmd
}

func newSuggestCmd(withApp appRunner) *cobra.Command {
	var reasoning bool
	cmd := &cobra.Command{
		Use:   "suggest <exerciseId>",
		Short: "Print the progression suggestion for an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(true, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			suggestion, err := a.suggester.SuggestFor(ctx, args[0])
			if err != nil {
				return err
			}
			if !reasoning {
				suggestion.Reasoning = ""
			}
			return writeJSON(cmd.OutOrStdout(), suggestion)
		}),
	}
	cmd.Flags().BoolVar(&reasoning, "reasoning", false, "include the reasoning behind the suggestion")
	return cmd
}

func newMigrateCmd(withApp appRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: withApp(false, func(_ context.Context, a *app, cmd *cobra.Command, _ []string) error {
			if a.migrate == nil {
				return errors.New("migrations not configured")
			}
			if err := a.migrate(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return err
		}),
	})
	return cmd
}

func writeEntries(w io.Writer, entries []autosave.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no autosaves")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WORKOUT\tTEMPLATE\tSETS\tELAPSED\tSAVED AT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			e.WorkoutID,
			e.TemplateName,
			e.SetsRecorded,
			time.Duration(e.ElapsedSeconds)*time.Second,
			e.SavedAt.Format(time.RFC3339),
		)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
