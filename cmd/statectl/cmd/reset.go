//go:build !js && !wasm

package cmd

import "github.com/spf13/cobra"

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the persisted snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeDB, err := openStore(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer closeDB()

			st.ResetState("")
			newFormatter(rootOpts, cmd).VerboseLog("state reset")
			return nil
		},
	}
}
