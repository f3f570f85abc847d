// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

import (
	"errors"

	"github.com/z5labs/envtree/internal/envparse"
)

// environment is the process-wide snapshot accessor shared by every
// declared variable, mirroring how the variables themselves resolve
// against one process environment.
var environment = envparse.New()

// node is the untyped view of a declared variable. The typed handles
// EnvVar and SchemaVar wrap a node, and the resolution, prefixing and
// description machinery operates on nodes directly.
type node interface {
	core() *varCore
	fullKey() string
	resolveRaw(overrides map[string]any) (any, error)
	children() []node
	clone(prefix string) node
}

// varCore carries the state every variable has regardless of kind:
// default, description, validators and the monkeypatch slot.
type varCore struct {
	// self points back at the node owning this core, so the weak
	// registry can hand out nodes while only referencing cores.
	self node

	def        slot
	desc       []string
	validators []func(any) (any, error)
	patch      slot
}

func newCore(def slot, desc []string) *varCore {
	return &varCore{
		def:   def,
		desc:  desc,
		patch: sentinelSlot(noPatch),
	}
}

// cloneCore copies a core for a structurally independent node. The
// validator list is copied so later edits to either variable never
// leak into the other, and the patch slot starts out inactive.
func (c *varCore) cloneCore() *varCore {
	clone := newCore(c.def, c.desc)
	clone.validators = append([]func(any) (any, error)(nil), c.validators...)
	return clone
}

// result is a resolved value plus whether it came from the live
// environment. Presence is tracked independently of the value: a
// present-but-zero value is not "missing".
type result struct {
	val    any
	exists bool
}

// resolve runs the full resolution pipeline for one node: monkeypatch
// slot, raw resolution, default policy, then validators.
func resolve(n node, overrides map[string]any) (result, error) {
	c := n.core()

	if !c.patch.isSentinel(noPatch) {
		switch {
		case c.patch.isSentinel(absent):
			return result{}, MissingVariableError{Key: n.fullKey()}
		case c.patch.isSentinel(discarded):
			return result{val: discardMarker{}}, nil
		default:
			return result{val: c.patch.val, exists: true}, nil
		}
	}

	val, err := n.resolveRaw(overrides)
	if err != nil {
		var partial PartialCompositeError
		if errors.As(err, &partial) {
			// The partial-presence policy forbids a default.
			return result{}, err
		}

		var miss MissingVariableError
		if !errors.As(err, &miss) {
			return result{}, err
		}

		switch {
		case c.def.kind == slotValue:
			return result{val: c.def.val}, nil
		case c.def.kind == slotFactory:
			return result{val: c.def.fn()}, nil
		case c.def.isSentinel(discarded):
			return result{val: discardMarker{}}, nil
		}
		return result{}, err
	}

	for _, v := range c.validators {
		val, err = v(val)
		if err != nil {
			return result{}, err
		}
	}
	return result{val: val, exists: true}, nil
}

// asMissing normalizes the errors a child can fail with into the plain
// missing-variable form its parent classifies on.
func asMissing(err error) (MissingVariableError, bool) {
	var partial PartialCompositeError
	if errors.As(err, &partial) {
		return partial.Cause, true
	}
	var miss MissingVariableError
	if errors.As(err, &miss) {
		return miss, true
	}
	return MissingVariableError{}, false
}

// AnyVar is implemented by every declared variable handle, regardless
// of its value type.
type AnyVar interface {
	anyNode() node
}

// descendants walks the subtree rooted at n, excluding n itself.
// Aliased children are visited once.
func descendants(n node) []node {
	var out []node
	seen := map[node]struct{}{}

	var walk func(node)
	walk = func(cur node) {
		for _, child := range cur.children() {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			out = append(out, child)
			walk(child)
		}
	}
	walk(n)
	return out
}
