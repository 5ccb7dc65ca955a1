// petcheck es el CLI del assessment: deriva planes de nutrición localmente y
// recorre el wizard de salud contra la API.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "petcheck",
		Short:        "Pet health assessment and nutrition planning",
		SilenceUsage: true,
	}
	root.AddCommand(newPlanCmd(), newAssessCmd())
	return root
}
