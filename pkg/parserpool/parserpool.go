// Package parserpool provides a pool of gnparser instances for
// concurrent scientific-name parsing. This is a pure package - parsing
// is computation, not I/O.
package parserpool

import (
	"fmt"
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool hands out gnparser instances for concurrent parsing. It keeps
// one sub-pool per supported nomenclatural code, since gnparser
// instances are configured per code and are not safe for concurrent
// use.
type Pool interface {
	// Parse parses a scientific name using the given nomenclatural
	// code. Safe for concurrent use; blocks while all parsers for that
	// code are busy.
	Parse(name string, code nomcode.Code) (parsed.Parsed, error)

	// Close releases the parsers. The pool must not be used after
	// Close.
	Close()
}

type pool struct {
	chans map[nomcode.Code]chan gnparser.GNparser
}

// New creates a parser pool with jobsNum parsers per nomenclatural
// code. If jobsNum is 0 it defaults to runtime.NumCPU(). Zoological
// and botanical codes are supported.
func New(jobsNum int) Pool {
	size := jobsNum
	if size == 0 {
		size = runtime.NumCPU()
	}

	chans := make(map[nomcode.Code]chan gnparser.GNparser)
	for _, code := range []nomcode.Code{nomcode.Zoological, nomcode.Botanical} {
		cfg := gnparser.NewConfig(gnparser.OptCode(code))
		chans[code] = gnparser.NewPool(cfg, size)
	}

	return &pool{chans: chans}
}

func (p *pool) Parse(
	name string,
	code nomcode.Code,
) (parsed.Parsed, error) {
	ch, ok := p.chans[code]
	if !ok {
		return parsed.Parsed{},
			fmt.Errorf("unsupported nomenclatural code: %v", code)
	}

	parser := <-ch
	res := parser.ParseName(name)
	ch <- parser

	return res, nil
}

func (p *pool) Close() {
	for _, ch := range p.chans {
		close(ch)
		for range ch {
		}
	}
	p.chans = nil
}
