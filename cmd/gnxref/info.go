package main

import (
	"github.com/gnames/gn"
	"github.com/gnames/gnxref/pkg/query"
	"github.com/spf13/cobra"
)

// getInfoCmd returns the info command.
func getInfoCmd() *cobra.Command {
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show statistics of the loaded taxonomies",
		Long: `Show every loaded taxonomy with its version, root taxon and
per-rank taxon counts.`,
		Aliases: []string{"stats"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runInfo(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return infoCmd
}

func runInfo(cmd *cobra.Command) error {
	g, st, err := restoredGraph(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	res, err := query.New(g, cfg.Graph.SearchLimit).Do(
		&query.Request{Op: query.OpStats},
	)
	if err != nil {
		return err
	}
	return printJSON(res)
}
