// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

// sentinel is the closed set of non-value markers used by the default,
// monkeypatch and partial-presence slots of a variable. Sentinels live
// outside the user value domain so that "no value" is never conflated
// with a real value that happens to be zero.
type sentinel uint8

const (
	// noPatch marks a monkeypatch slot as inactive.
	noPatch sentinel = iota

	// absent marks a slot that holds no value at all. A variable whose
	// default slot is absent treats a missing environment key as an error.
	absent

	// discarded marks a value that should be omitted from a schema
	// factory call entirely.
	discarded

	// useDefault defers to the variable's own default slot. It is only
	// meaningful for the partial-presence policy of a schema.
	useDefault
)

func (s sentinel) String() string {
	switch s {
	case noPatch:
		return "NoPatch"
	case absent:
		return "Missing"
	case discarded:
		return "Discard"
	case useDefault:
		return "AsDefault"
	}
	return "Unknown"
}

type slotKind uint8

const (
	slotSentinel slotKind = iota
	slotValue
	slotFactory
)

// slot holds either a concrete value, a zero-argument factory for one,
// or a sentinel. Defaults, monkeypatch overrides and partial-presence
// policies are all slots.
type slot struct {
	kind slotKind
	sen  sentinel
	val  any
	fn   func() any
}

func sentinelSlot(s sentinel) slot {
	return slot{kind: slotSentinel, sen: s}
}

func valueSlot(v any) slot {
	return slot{kind: slotValue, val: v}
}

func factorySlot(fn func() any) slot {
	return slot{kind: slotFactory, fn: fn}
}

func (s slot) isSentinel(sen sentinel) bool {
	return s.kind == slotSentinel && s.sen == sen
}

// discardMarker is the resolved-value form of the discard sentinel. A
// child that resolves to it is omitted from its parent's factory call.
type discardMarker struct{}

func isDiscard(v any) bool {
	_, ok := v.(discardMarker)
	return ok
}
