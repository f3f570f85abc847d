// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package envparse indexes the process environment for case-sensitive
// and case-insensitive key lookup.
package envparse

import (
	"hash/fnv"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Result is the outcome of a single key lookup.
type Result struct {
	// Value is the raw string value. Only meaningful when Found is true.
	Value string

	// Found reports whether exactly one environment entry matched.
	Found bool

	// Matches holds the distinct environment keys that matched a
	// case-insensitive lookup. More than one entry means the lookup
	// was ambiguous and Found is false.
	Matches []string
}

// Parser provides lookup access over a snapshot of the process
// environment. The snapshot invalidates itself: any mutation of the
// underlying environment is observed on the next lookup, without an
// explicit reload call. Safe for concurrent use.
type Parser struct {
	environ func() []string

	mu          sync.RWMutex
	fingerprint uint64
	exact       map[string]string
	folded      map[string]map[string]string

	group    singleflight.Group
	rebuilds atomic.Uint64
}

// New returns a Parser over the current process environment.
func New() *Parser {
	return NewWith(os.Environ)
}

// NewWith returns a Parser over an arbitrary environ source. The
// source must return entries in the "KEY=value" form of os.Environ.
func NewWith(environ func() []string) *Parser {
	return &Parser{environ: environ}
}

// Lookup finds the value for key. When caseSensitive is false the key
// is matched against a case-folded index and a lookup matching more
// than one distinct environment key reports every candidate instead of
// choosing one.
func (p *Parser) Lookup(key string, caseSensitive bool) Result {
	exact, folded := p.index()
	if caseSensitive {
		v, ok := exact[key]
		return Result{Value: v, Found: ok}
	}

	candidates := folded[strings.ToLower(key)]
	if len(candidates) == 1 {
		for k, v := range candidates {
			return Result{Value: v, Found: true, Matches: []string{k}}
		}
	}

	matches := make([]string, 0, len(candidates))
	for k := range candidates {
		matches = append(matches, k)
	}
	sort.Strings(matches)
	return Result{Matches: matches}
}

// index returns the current exact and case-folded views, rebuilding
// them first if the environment changed since they were built. The
// rebuild is guarded twice: concurrent triggers for the same
// fingerprint collapse into one flight, and the flight itself
// re-checks the fingerprint under the write lock so a rebuild happens
// at most once per actual change.
func (p *Parser) index() (map[string]string, map[string]map[string]string) {
	env := p.environ()
	fp := fingerprint(env)

	p.mu.RLock()
	if p.exact != nil && p.fingerprint == fp {
		exact, folded := p.exact, p.folded
		p.mu.RUnlock()
		return exact, folded
	}
	p.mu.RUnlock()

	p.group.Do(strconv.FormatUint(fp, 16), func() (any, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.exact != nil && p.fingerprint == fp {
			return nil, nil
		}

		exact := make(map[string]string, len(env))
		folded := make(map[string]map[string]string, len(env))
		for _, pair := range env {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				continue
			}
			exact[k] = v

			lower := strings.ToLower(k)
			m := folded[lower]
			if m == nil {
				m = make(map[string]string, 1)
				folded[lower] = m
			}
			m[k] = v
		}

		p.exact = exact
		p.folded = folded
		p.fingerprint = fp
		p.rebuilds.Add(1)
		return nil, nil
	})

	p.mu.RLock()
	exact, folded := p.exact, p.folded
	p.mu.RUnlock()
	return exact, folded
}

// fingerprint hashes the raw environ into a cheap change token.
func fingerprint(env []string) uint64 {
	h := fnv.New64a()
	for _, pair := range env {
		io.WriteString(h, pair)
		h.Write([]byte{0})
	}
	return h.Sum64()
}
