// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

import (
	"sync"
	"weak"
)

// registry tracks every top-level declared variable through weak
// pointers so that variables declared in a transient scope fall out of
// the description once nothing else references them. Dead entries are
// pruned on access.
var registry = &varRegistry{
	topLevel: map[weak.Pointer[varCore]]struct{}{},
	excluded: map[weak.Pointer[varCore]]struct{}{},
}

type varRegistry struct {
	mu       sync.Mutex
	topLevel map[weak.Pointer[varCore]]struct{}
	excluded map[weak.Pointer[varCore]]struct{}
}

// register records n as a top-level variable and demotes any of its
// descendants that were previously registered as top-level themselves.
func register(n node) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.prune()
	registry.topLevel[weak.Make(n.core())] = struct{}{}
	for _, d := range descendants(n) {
		delete(registry.topLevel, weak.Make(d.core()))
	}
}

// exclude removes n and all of its current descendants from future
// descriptions. Children attached afterward are unaffected.
func exclude(n node) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.prune()
	registry.excluded[weak.Make(n.core())] = struct{}{}
	for _, d := range descendants(n) {
		registry.excluded[weak.Make(d.core())] = struct{}{}
	}
}

func (r *varRegistry) prune() {
	for wp := range r.topLevel {
		if wp.Value() == nil {
			delete(r.topLevel, wp)
		}
	}
	for wp := range r.excluded {
		if wp.Value() == nil {
			delete(r.excluded, wp)
		}
	}
}

// liveTopLevel returns every registered, still reachable, non-excluded
// top-level node.
func liveTopLevel() []node {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.prune()
	out := make([]node, 0, len(registry.topLevel))
	for wp := range registry.topLevel {
		c := wp.Value()
		if c == nil {
			continue
		}
		if _, ok := registry.excluded[wp]; ok {
			continue
		}
		out = append(out, c.self)
	}
	return out
}

// isExcluded reports whether n was excluded from descriptions.
func isExcluded(n node) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	_, ok := registry.excluded[weak.Make(n.core())]
	return ok
}

// ExcludeFromDescription removes the given variables, and all of their
// current descendants, from the output of the description engine.
// Placeholders are silently skipped: they carry no description of
// their own.
func ExcludeFromDescription(vars ...AnyVar) {
	for _, v := range vars {
		n := v.anyNode()
		if n == nil {
			continue
		}
		exclude(n)
	}
}
