//go:build !js && !wasm

// Command statectl inspects and edits a persisted nojs store snapshot.
package main

import (
	"fmt"
	"os"

	"github.com/vcrobe/nojs-html/cmd/statectl/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "statectl:", err)
		os.Exit(cmd.GetExitCode(err))
	}
}
