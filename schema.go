// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// Bindable is anything that can be attached to a schema as a member: a
// declared variable, another schema, or an inference placeholder.
type Bindable interface {
	bindable()
}

// Member is one schema member, either named after a factory parameter
// or positional.
type Member struct {
	name string
	v    Bindable
}

// Args is the ordered member list of a schema. Order matters for
// positional members and is preserved in descriptions.
type Args []Member

// Arg attaches v to the factory parameter called name.
func Arg(name string, v Bindable) Member {
	return Member{name: name, v: v}
}

// Pos attaches v to the factory's next positional parameter.
func Pos(v Bindable) Member {
	return Member{v: v}
}

type namedChild struct {
	name string
	n    node
}

// schemaNode composes child variables under a shared key prefix and
// assembles their values through a factory.
type schemaNode struct {
	c *varCore

	key       envKey
	spec      factorySpec
	named     []namedChild
	pos       []node
	onPartial slot
}

func (n *schemaNode) core() *varCore { return n.c }

func (n *schemaNode) fullKey() string { return n.key.String() }

func (n *schemaNode) children() []node {
	out := make([]node, 0, len(n.named)+len(n.pos))
	for _, m := range n.named {
		out = append(out, m.n)
	}
	return append(out, n.pos...)
}

// resolveRaw resolves every member, classifies the schema as absent,
// partial or present, and invokes the factory. Presence is decided by
// whether any member saw its own key in the environment, so a schema
// whose members all fell back to defaults is still absent as a whole.
func (n *schemaNode) resolveRaw(overrides map[string]any) (any, error) {
	named := make(map[string]any, len(n.named))
	var pos []any
	var missing []MissingVariableError
	anyExists := false

	for _, m := range n.named {
		r, err := resolve(m.n, nil)
		if err != nil {
			miss, ok := asMissing(err)
			if !ok {
				return nil, err
			}
			missing = append(missing, miss)
			continue
		}
		if r.exists {
			anyExists = true
		}
		if isDiscard(r.val) {
			continue
		}
		named[m.name] = r.val
	}

	for _, child := range n.pos {
		r, err := resolve(child, nil)
		if err != nil {
			miss, ok := asMissing(err)
			if !ok {
				return nil, err
			}
			missing = append(missing, miss)
			continue
		}
		if r.exists {
			anyExists = true
		}
		if isDiscard(r.val) {
			// A discarded positional member truncates the argument
			// list; later positions cannot be filled past a hole.
			break
		}
		pos = append(pos, r.val)
	}

	if !anyExists && len(n.named)+len(n.pos) > 0 {
		if len(missing) > 0 {
			return nil, missing[0]
		}
		return nil, MissingVariableError{Key: n.fullKey()}
	}

	if len(missing) > 0 {
		switch {
		case n.onPartial.isSentinel(useDefault):
			return nil, missing[0]
		case n.onPartial.kind == slotValue:
			return n.onPartial.val, nil
		case n.onPartial.kind == slotFactory:
			return n.onPartial.fn(), nil
		}
		return nil, PartialCompositeError{Key: n.fullKey(), Cause: missing[0]}
	}

	for k, v := range overrides {
		named[k] = v
	}
	return n.spec.invoke(pos, named)
}

func (n *schemaNode) clone(prefix string) node {
	clone := &schemaNode{
		key:       n.key.withPrefix(prefix),
		spec:      n.spec,
		onPartial: n.onPartial,
		named:     make([]namedChild, len(n.named)),
		pos:       make([]node, len(n.pos)),
	}
	for i, m := range n.named {
		clone.named[i] = namedChild{name: m.name, n: m.n.clone(prefix)}
	}
	for i, m := range n.pos {
		clone.pos[i] = m.clone(prefix)
	}
	clone.c = n.c.cloneCore()
	clone.c.self = clone
	return clone
}

// SchemaVar is a declared composite environment variable resolving to
// a value of type T assembled from child variables.
type SchemaVar[T any] struct {
	n *schemaNode
}

// Schema declares a composite variable. Each member's key is prefixed
// with prefix; placeholder members are inferred from the factory
// parameter they are attached to. The factory may be a func returning
// (T) or (T, error), or nil when T itself is a struct, pointer to
// struct, or string-keyed map to assemble directly.
//
// Schema panics on declaration mistakes: an unknown parameter name, a
// member the factory shape cannot accept, a failed inference, a
// mistyped Default, or OnPartialUseDefault without a Default. Schemas
// are normally declared at package initialization, where a panic is an
// immediate build-time signal.
func Schema[T any](prefix string, factory any, args Args, opts ...SchemaOption) *SchemaVar[T] {
	so := schemaOptions{def: sentinelSlot(absent), onPartial: sentinelSlot(absent)}
	for _, opt := range opts {
		opt.applySchema(&so)
	}

	if so.onPartial.isSentinel(useDefault) && so.def.isSentinel(absent) {
		panic(errors.New("envtree: OnPartialUseDefault requires the schema to declare a default"))
	}
	if so.def.kind == slotValue {
		if _, ok := so.def.val.(T); !ok {
			panic(fmt.Errorf("envtree: default for %s is %T, not %s", prefix, so.def.val, reflect.TypeFor[T]()))
		}
	}

	spec, err := newFactorySpec[T](factory)
	if err != nil {
		fname := reflect.TypeFor[T]().String()
		if factory != nil {
			fname = fmt.Sprintf("%T", factory)
		}
		panic(InferenceError{Param: prefix, Factory: fname, Reason: err.Error()})
	}

	n := &schemaNode{
		key:       newEnvKey(prefix, so.absolute),
		spec:      spec,
		onPartial: so.onPartial,
	}

	posIndex := 0
	for _, m := range args {
		if m.name == "" && !spec.acceptsPositional() {
			panic(InferenceError{
				Param:   "#" + strconv.Itoa(posIndex),
				Factory: spec.name(),
				Reason:  "factory does not take positional members",
			})
		}
		if m.name != "" && !spec.acceptsNamed() {
			panic(InferenceError{
				Param:   m.name,
				Factory: spec.name(),
				Reason:  "factory does not take named members",
			})
		}

		var child node
		switch b := m.v.(type) {
		case *Placeholder:
			bound, err := b.bind(spec, memberID{name: m.name, index: posIndex}, prefix)
			if err != nil {
				panic(err)
			}
			child = bound
		case AnyVar:
			child = b.anyNode().clone(prefix)
		default:
			panic(fmt.Errorf("envtree: unsupported schema member type %T", m.v))
		}

		if m.name == "" {
			n.pos = append(n.pos, child)
			posIndex++
		} else {
			n.named = append(n.named, namedChild{name: m.name, n: child})
		}
	}

	n.c = newCore(so.def, so.desc)
	n.c.self = n
	register(n)
	return &SchemaVar[T]{n: n}
}

// Get resolves the schema against the current environment.
func (v *SchemaVar[T]) Get() (T, error) {
	return getTyped[T](v.n, nil)
}

// GetWith resolves the schema with extra named factory arguments
// supplementing, or overriding, the schema's own members. Extra
// arguments do not count toward the schema's presence in the
// environment.
func (v *SchemaVar[T]) GetWith(extra map[string]any) (T, error) {
	return getTyped[T](v.n, extra)
}

// Key returns the schema's key prefix.
func (v *SchemaVar[T]) Key() string {
	return v.n.fullKey()
}

// Validator appends a transform applied, in declaration order, to
// every value the factory assembles. Defaults are not validated.
func (v *SchemaVar[T]) Validator(fn func(T) (T, error)) *SchemaVar[T] {
	v.n.c.validators = append(v.n.c.validators, wrapValidator(fn))
	return v
}

// WithPrefix returns a structurally independent copy of the schema,
// and of its entire subtree, with prefix prepended to every non
// absolute key. The copy shares no mutable state with the original.
func (v *SchemaVar[T]) WithPrefix(prefix string) *SchemaVar[T] {
	n := v.n.clone(prefix).(*schemaNode)
	register(n)
	return &SchemaVar[T]{n: n}
}

// Patch overrides resolution to return val, bypassing the members,
// the factory and all validators. Intended for tests; the returned
// func restores the previous patch state.
func (v *SchemaVar[T]) Patch(val T) (restore func()) {
	return patch(v.n, valueSlot(val))
}

// PatchMissing overrides resolution to fail as if the whole schema
// were absent and no default declared.
func (v *SchemaVar[T]) PatchMissing() (restore func()) {
	return patch(v.n, sentinelSlot(absent))
}

// PatchDiscard overrides resolution to produce the discard marker,
// omitting the schema from any enclosing schema's factory call.
func (v *SchemaVar[T]) PatchDiscard() (restore func()) {
	return patch(v.n, sentinelSlot(discarded))
}

func (v *SchemaVar[T]) anyNode() node { return v.n }

func (v *SchemaVar[T]) bindable() {}
