package main

import (
	"fmt"
	"os"

	"github.com/MrViincciLeRoy/stunning-waffle/cmd/exopipe/commands"
	"github.com/MrViincciLeRoy/stunning-waffle/cmd/exopipe/internal/clierr"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(clierr.ExitCodeOf(err))
	}
}
