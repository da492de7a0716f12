//go:build !js && !wasm

package cmd

import "github.com/spf13/cobra"

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the whole persisted state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeDB, err := openStore(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer closeDB()
			return newFormatter(rootOpts, cmd).Print(st.State())
		},
	}
}
