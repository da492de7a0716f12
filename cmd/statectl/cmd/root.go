//go:build !js && !wasm

// Package cmd implements the statectl commands.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vcrobe/nojs-html/config"
	"github.com/vcrobe/nojs-html/console"
	"github.com/vcrobe/nojs-html/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"
	DB      string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the statectl root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "statectl",
		Short: "Inspect and edit persisted nojs state",
		Long: `statectl reads and writes the state snapshot a nojs store persists.

Every change goes through the store, so paths use the same syntax as
Store.Set: city.street[0].color, users["first.last"].`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "state database (default $NOJS_STATE_DB or nojs-state.db)")

	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))

	return cmd
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openStore opens the snapshot database and a store backed by it. The
// returned func closes the database.
func openStore(opts *RootOptions, cmd *cobra.Command) (*store.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load config", err)
	}
	path := opts.DB
	if path == "" {
		path = cfg.StateDB
	}

	level := console.LevelWarn
	if opts.Verbose {
		level = console.LevelDebug
	}
	log := console.NewWithHandler(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: console.LevelTrace}), level)

	db, err := store.OpenSQLite(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open "+path, err)
	}
	st := store.New(nil, append(cfg.StoreOptions(log), store.WithStorage(db), store.WithContext(cmd.Context()))...)
	return st, func() { db.Close() }, nil
}

// pathError maps store path errors to exit errors.
func pathError(path string, err error) error {
	if errors.Is(err, store.ErrInvalidPath) || errors.Is(err, store.ErrPathShape) {
		return WrapExitError(ExitCommandError, "path "+path, err)
	}
	return WrapExitError(ExitFailure, "path "+path, err)
}
