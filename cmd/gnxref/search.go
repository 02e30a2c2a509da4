package main

import (
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnxref/pkg/query"
	"github.com/spf13/cobra"
)

// getSearchCmd returns the search command.
func getSearchCmd() *cobra.Command {
	var (
		language string
		prefix   bool
		limit    int
	)

	searchCmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Find taxa by scientific or vernacular name",
		Long: `Find taxa by scientific or vernacular name across all loaded
taxonomies. Matching is exact by default; --prefix switches to prefix
matching. Results are ordered by taxonomy, then by tree position.

Examples:
  # Exact scientific name
  gnxref search "Sylvia cantillans"

  # All species of a genus by prefix
  gnxref search -p Sylvia

  # English vernacular names
  gnxref search -l en "Subalpine Warbler"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSearch(cmd, strings.Join(args, " "),
				language, prefix, limit)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	searchCmd.Flags().StringVarP(
		&language, "lang", "l", "",
		"search vernacular names in the given language",
	)
	searchCmd.Flags().BoolVarP(
		&prefix, "prefix", "p", false,
		"match by name prefix instead of the whole name",
	)
	searchCmd.Flags().IntVarP(
		&limit, "limit", "n", 0,
		"maximum number of results (default from config)",
	)

	return searchCmd
}

func runSearch(
	cmd *cobra.Command,
	name, language string,
	prefix bool,
	limit int,
) error {
	g, st, err := restoredGraph(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	req := &query.Request{
		Op:    query.OpSearchScientific,
		Name:  name,
		Limit: limit,
	}
	if language != "" {
		req.Op = query.OpSearchVernacular
		req.Language = language
	}
	if prefix {
		req.Match = "prefix"
	}

	res, err := query.New(g, cfg.Graph.SearchLimit).Do(req)
	if err != nil {
		return err
	}
	return printJSON(res)
}
