package iotaxonomy

import (
	"sync"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
)

// Canonicalizer turns organism labels into canonical scientific names
// with gnparser. Fungi follow the botanical code.
type Canonicalizer struct {
	mu  sync.Mutex
	gnp gnparser.GNparser
}

// NewCanonicalizer creates a Canonicalizer.
func NewCanonicalizer() *Canonicalizer {
	cfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	return &Canonicalizer{gnp: gnparser.New(cfg)}
}

// Canonical returns the simple canonical form of a name. It returns
// false for strings that gnparser cannot parse.
func (c *Canonicalizer) Canonical(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.gnp.ParseName(name)
	if !p.Parsed || p.Canonical == nil {
		return "", false
	}
	return p.Canonical.Simple, true
}
