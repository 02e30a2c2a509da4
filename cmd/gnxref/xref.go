package main

import (
	"github.com/gnames/gn"
	"github.com/gnames/gnxref/pkg/query"
	"github.com/spf13/cobra"
)

// getXrefCmd returns the xref command.
func getXrefCmd() *cobra.Command {
	var edgeType string

	xrefCmd := &cobra.Command{
		Use:   "xref <taxon-id>",
		Short: "Show cross-reference links of a taxon",
		Long: `Show the synonym and homonym links of a taxon to taxa of other
loaded taxonomies.

A synonym link means the two taxa share a taxonomic concept; a
homonym link means they share a canonical name without evidence of
the same concept.

Examples:
  # All links of a taxon
  gnxref xref 2a569a30-...

  # Only synonyms
  gnxref xref -t synonym 2a569a30-...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runXref(cmd, args[0], edgeType)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	xrefCmd.Flags().StringVarP(
		&edgeType, "type", "t", "",
		"filter by link type: synonym or homonym",
	)

	return xrefCmd
}

func runXref(cmd *cobra.Command, taxonID, edgeType string) error {
	g, st, err := restoredGraph(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	req := &query.Request{
		Op:       query.OpRelationships,
		TaxonID:  taxonID,
		EdgeType: edgeType,
	}

	res, err := query.New(g, cfg.Graph.SearchLimit).Do(req)
	if err != nil {
		return err
	}
	return printJSON(res)
}
