package main

import (
	"context"
	"fmt"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnxref/internal/iostore"
	"github.com/gnames/gnxref/pkg/gnxref"
	"github.com/gnames/gnxref/pkg/graph"
)

// restoredGraph opens the persisted store and replays it into a fresh
// graph. The caller is responsible for closing the returned store.
func restoredGraph(
	ctx context.Context,
) (*graph.Graph, gnxref.Store, error) {
	st, err := iostore.New(cfg.StorePath())
	if err != nil {
		return nil, nil, err
	}

	g := graph.New()
	if err = st.Restore(ctx, g); err != nil {
		st.Close()
		return nil, nil, err
	}
	return g, st, nil
}

func printJSON(v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(v)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
