package main

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/gnxref/internal/ioingest"
	"github.com/gnames/gnxref/internal/iostore"
	"github.com/gnames/gnxref/pkg/config"
	"github.com/gnames/gnxref/pkg/graph"
	"github.com/spf13/cobra"
)

// getLoadCmd returns the load command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getLoadCmd() *cobra.Command {
	var jobsNumber int

	loadCmd := &cobra.Command{
		Use:   "load [taxonomy-id ...]",
		Short: "Load taxonomy checklists into the cross-reference graph",
		Long: `Load taxonomy checklists into the cross-reference graph.

This command:
  1. Reads taxonomies.yaml to discover configured checklists
  2. Reads the taxon-record JSON file of each requested checklist
  3. Validates each checklist into an immutable tree
  4. Matches its taxa against every taxonomy already in the graph
  5. Publishes tree and links atomically, then persists the graph

Without arguments every configured taxonomy is loaded. Taxonomies
that fail to validate are skipped; the command fails only when
nothing could be loaded.

Examples:
  # Load all configured taxonomies
  gnxref load

  # Load selected taxonomies
  gnxref load IOC HM`,
		Aliases: []string{"add"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("jobs") {
				cfg.Update([]config.Option{
					config.OptJobsNumber(jobsNumber),
				})
			}
			err := runLoad(cmd.Context(), args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	loadCmd.Flags().IntVarP(
		&jobsNumber, "jobs", "j", 0,
		"number of concurrent matching workers",
	)

	return loadCmd
}

func runLoad(ctx context.Context, ids []string) error {
	st, err := iostore.New(cfg.StorePath())
	if err != nil {
		return err
	}
	defer st.Close()

	// Start from the persisted graph so new checklists are matched
	// against previously loaded ones.
	g := graph.New()
	if err = st.Restore(ctx, g); err != nil {
		return err
	}

	ing := ioingest.New(cfg, g, st)
	if err = ing.Load(ctx, ids); err != nil {
		return err
	}

	gn.Info(`Next steps:
  - Run '<em>gnxref info</em>' to inspect the loaded taxonomies
  - Run '<em>gnxref search</em>' to look up taxa by name
`)
	return nil
}
