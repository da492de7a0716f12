//go:build !js && !wasm

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vcrobe/nojs-html/store"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Print the value at a state path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], cmd)
		},
	}
}

func runGet(opts *RootOptions, path string, cmd *cobra.Command) error {
	if _, err := store.ParsePath(path); err != nil {
		return pathError(path, err)
	}
	st, closeDB, err := openStore(opts, cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	v, ok := st.Get(path)
	if !ok {
		return NewExitError(ExitFailure, "path "+path+" not found")
	}
	return newFormatter(opts, cmd).Print(v)
}
