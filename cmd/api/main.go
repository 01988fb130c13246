// @title Kennel Records API
// @version 1.0
// @description Registro de cría: perros, celos, camadas y calendario de eventos.
// @BasePath /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "api",
		Short:         "Kennel Records: registro de cría",
		SilenceUsage:  true,
		SilenceErrors: true,
		// sin subcomando = serve
		RunE: runServe,
	}
	root.AddCommand(newServeCmd(), newScheduleCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
