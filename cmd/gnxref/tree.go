package main

import (
	"github.com/gnames/gn"
	"github.com/gnames/gnxref/pkg/query"
	"github.com/spf13/cobra"
)

// getTreeCmd returns the tree command.
func getTreeCmd() *cobra.Command {
	var down bool

	treeCmd := &cobra.Command{
		Use:   "tree <taxon-id>",
		Short: "Show ancestors or descendants of a taxon",
		Long: `Show the lineage of a taxon inside its own taxonomy.

By default the ancestors are listed from the immediate parent up to
the root. With --down the taxon's whole subtree is listed in tree
order instead.

Taxon IDs come from the output of 'gnxref search'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTree(cmd, args[0], down)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	treeCmd.Flags().BoolVarP(
		&down, "down", "d", false,
		"list descendants instead of ancestors",
	)

	return treeCmd
}

func runTree(cmd *cobra.Command, taxonID string, down bool) error {
	g, st, err := restoredGraph(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	req := &query.Request{Op: query.OpAncestors, TaxonID: taxonID}
	if down {
		req.Op = query.OpDescendants
	}

	res, err := query.New(g, cfg.Graph.SearchLimit).Do(req)
	if err != nil {
		return err
	}
	return printJSON(res)
}
