//go:build !js && !wasm

package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Write a value at a state path",
		Long: `Write a value at a state path and persist the snapshot.

The value is parsed as YAML, so 3 is a number, true is a boolean,
"[a, b]" is a list and '{name: ada}' is an object. Quote a value to
keep it a string.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runSet(opts *RootOptions, path, raw string, cmd *cobra.Command) error {
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return WrapExitError(ExitCommandError, "parse value", err)
	}

	st, closeDB, err := openStore(opts, cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	f := newFormatter(opts, cmd)
	if err := st.Set(path, value); err != nil {
		return pathError(path, err)
	}
	f.VerboseLog("set %s", path)

	if opts.Format == "text" {
		return nil
	}
	return f.Print(map[string]any{"path": path, "value": value})
}
