// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

import (
	"fmt"
	"reflect"
	"strings"
)

// scalarNode binds one environment key to a parsing function.
type scalarNode struct {
	c *varCore

	key           envKey
	parse         func(string) (any, error)
	caseSensitive bool
	stripSpace    bool
}

func (n *scalarNode) core() *varCore { return n.c }

func (n *scalarNode) fullKey() string { return n.key.String() }

func (n *scalarNode) children() []node { return nil }

func (n *scalarNode) resolveRaw(map[string]any) (any, error) {
	res := environment.Lookup(n.key.String(), n.caseSensitive)
	if len(res.Matches) > 1 {
		return nil, AmbiguousKeyError{Key: n.fullKey(), Matches: res.Matches}
	}
	if !res.Found {
		return nil, MissingVariableError{Key: n.fullKey()}
	}

	raw := res.Value
	if n.stripSpace {
		raw = strings.TrimSpace(raw)
	}
	return n.parse(raw)
}

func (n *scalarNode) clone(prefix string) node {
	clone := &scalarNode{
		key:           n.key.withPrefix(prefix),
		parse:         n.parse,
		caseSensitive: n.caseSensitive,
		stripSpace:    n.stripSpace,
	}
	clone.c = n.c.cloneCore()
	clone.c.self = clone
	return clone
}

// describedKey is the key as shown by the description engine:
// case-insensitive keys are conventionally upper-cased.
func (n *scalarNode) describedKey() string {
	if n.caseSensitive {
		return n.key.String()
	}
	return strings.ToUpper(n.key.String())
}

// EnvVar is a declared scalar environment variable resolving to a
// value of type T.
type EnvVar[T any] struct {
	n *scalarNode
}

// Var declares a scalar environment variable. The parser is selected
// canonically from T unless ParseWith overrides it; Var panics when no
// parser can be selected, or when a Default value is not a T, since
// variables are normally declared at package initialization.
func Var[T any](key string, opts ...VarOption) *EnvVar[T] {
	vo := varOptions{def: sentinelSlot(absent)}
	for _, opt := range opts {
		opt.applyVar(&vo)
	}

	t := reflect.TypeFor[T]()
	parse := vo.parse
	if parse == nil {
		p, err := parserFor(t)
		if err != nil {
			panic(InferenceError{Param: key, Factory: t.String(), Reason: err.Error()})
		}
		parse = p
	}
	if vo.def.kind == slotValue {
		if _, ok := vo.def.val.(T); !ok {
			panic(fmt.Errorf("envtree: default for %s is %T, not %s", key, vo.def.val, t))
		}
	}

	n := &scalarNode{
		key:           newEnvKey(key, vo.absolute),
		parse:         parse,
		caseSensitive: vo.caseSensitive,
		stripSpace:    !vo.keepSpace,
	}
	n.c = newCore(vo.def, vo.desc)
	n.c.self = n
	register(n)
	return &EnvVar[T]{n: n}
}

// Get resolves the variable against the current environment. A
// variable patched with PatchDiscard resolves to the zero value.
func (v *EnvVar[T]) Get() (T, error) {
	return getTyped[T](v.n, nil)
}

// Key returns the variable's full environment key.
func (v *EnvVar[T]) Key() string {
	return v.n.fullKey()
}

// Validator appends a transform applied, in declaration order, to
// every value parsed from the environment. Defaults are not validated.
func (v *EnvVar[T]) Validator(fn func(T) (T, error)) *EnvVar[T] {
	v.n.c.validators = append(v.n.c.validators, wrapValidator(fn))
	return v
}

// WithPrefix returns a structurally independent copy of the variable
// with prefix prepended to its key. The copy shares no mutable state
// with the original.
func (v *EnvVar[T]) WithPrefix(prefix string) *EnvVar[T] {
	n := v.n.clone(prefix).(*scalarNode)
	register(n)
	return &EnvVar[T]{n: n}
}

// Patch overrides resolution to return val, bypassing the environment,
// the parser and all validators. Intended for tests; the returned
// func restores the previous patch state.
func (v *EnvVar[T]) Patch(val T) (restore func()) {
	return patch(v.n, valueSlot(val))
}

// PatchMissing overrides resolution to fail as if the key were absent
// and no default declared.
func (v *EnvVar[T]) PatchMissing() (restore func()) {
	return patch(v.n, sentinelSlot(absent))
}

// PatchDiscard overrides resolution to produce the discard marker,
// omitting the variable from any enclosing schema's factory call.
func (v *EnvVar[T]) PatchDiscard() (restore func()) {
	return patch(v.n, sentinelSlot(discarded))
}

func (v *EnvVar[T]) anyNode() node { return v.n }

func (v *EnvVar[T]) bindable() {}

func getTyped[T any](n node, overrides map[string]any) (T, error) {
	var zero T
	r, err := resolve(n, overrides)
	if err != nil {
		return zero, err
	}
	if isDiscard(r.val) {
		return zero, nil
	}
	val, ok := r.val.(T)
	if !ok {
		return zero, fmt.Errorf("envtree: value for %s is %T, not %T", n.fullKey(), r.val, zero)
	}
	return val, nil
}

func wrapValidator[T any](fn func(T) (T, error)) func(any) (any, error) {
	return func(v any) (any, error) {
		t, ok := v.(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("envtree: validator expects %T, got %T", zero, v)
		}
		return fn(t)
	}
}

func patch(n node, s slot) (restore func()) {
	c := n.core()
	prev := c.patch
	c.patch = s
	return func() {
		c.patch = prev
	}
}
