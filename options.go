// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

import "reflect"

// scalarSettings are the knobs shared by scalar variables and
// placeholders that resolve into scalar variables.
type scalarSettings struct {
	caseSensitive bool
	keepSpace     bool
	parse         func(string) (any, error)
}

type varOptions struct {
	scalarSettings

	def      slot
	desc     []string
	absolute bool
}

type schemaOptions struct {
	def       slot
	desc      []string
	onPartial slot
	absolute  bool
}

type autoOptions struct {
	scalarSettings

	key        string
	hasKey     bool
	typ        reflect.Type
	def        slot
	defSet     bool
	required   bool
	desc       []string
	validators []func(any) (any, error)
	absolute   bool
}

// VarOption configures a scalar variable declaration.
type VarOption interface {
	applyVar(*varOptions)
}

// SchemaOption configures a schema variable declaration.
type SchemaOption interface {
	applySchema(*schemaOptions)
}

// AutoOption configures an inference placeholder.
type AutoOption interface {
	applyAuto(*autoOptions)
}

// Option is accepted by scalar, schema and placeholder declarations alike.
type Option interface {
	VarOption
	SchemaOption
	AutoOption
}

// ScalarOption is accepted by scalar and placeholder declarations.
type ScalarOption interface {
	VarOption
	AutoOption
}

type defaultOption struct {
	s slot
}

func (o defaultOption) applyVar(vo *varOptions)       { vo.def = o.s }
func (o defaultOption) applySchema(so *schemaOptions) { so.def = o.s }
func (o defaultOption) applyAuto(ao *autoOptions)     { ao.def, ao.defSet = o.s, true }

// Default sets the value returned when the variable is absent from
// the environment. The default is returned as-is: it is neither parsed
// nor validated.
func Default[T any](v T) Option {
	return defaultOption{s: valueSlot(v)}
}

// DefaultFunc sets a factory invoked to produce the value when the
// variable is absent from the environment.
func DefaultFunc[T any](fn func() T) Option {
	return defaultOption{s: factorySlot(func() any { return fn() })}
}

// DiscardIfAbsent makes an absent variable resolve to the discard
// marker instead of failing. Inside a schema this omits the
// corresponding factory argument entirely; a top-level Get returns the
// zero value.
func DiscardIfAbsent() Option {
	return defaultOption{s: sentinelSlot(discarded)}
}

type descriptionOption []string

func (o descriptionOption) applyVar(vo *varOptions)       { vo.desc = o }
func (o descriptionOption) applySchema(so *schemaOptions) { so.desc = o }
func (o descriptionOption) applyAuto(ao *autoOptions)     { ao.desc = o }

// Description attaches human readable text to the variable for the
// description engine. Each argument is one paragraph.
func Description(paragraphs ...string) Option {
	return descriptionOption(paragraphs)
}

type absoluteOption struct{}

func (absoluteOption) applyVar(vo *varOptions)       { vo.absolute = true }
func (absoluteOption) applySchema(so *schemaOptions) { so.absolute = true }
func (absoluteOption) applyAuto(ao *autoOptions)     { ao.absolute = true }

// Absolute exempts the variable's key from prefix concatenation, both
// when nested inside a schema and when copied with WithPrefix.
func Absolute() Option {
	return absoluteOption{}
}

type scalarOptionFunc func(*scalarSettings)

func (f scalarOptionFunc) applyVar(vo *varOptions)   { f(&vo.scalarSettings) }
func (f scalarOptionFunc) applyAuto(ao *autoOptions) { f(&ao.scalarSettings) }

// CaseSensitive requires the environment key to match exactly.
// Variables match case-insensitively by default.
func CaseSensitive() ScalarOption {
	return scalarOptionFunc(func(s *scalarSettings) {
		s.caseSensitive = true
	})
}

// KeepWhitespace hands the raw value to the parser without stripping
// surrounding whitespace first.
func KeepWhitespace() ScalarOption {
	return scalarOptionFunc(func(s *scalarSettings) {
		s.keepSpace = true
	})
}

// ParseWith overrides the canonical parser selection for the
// variable's type with an explicit parsing function.
func ParseWith[T any](parse func(string) (T, error)) ScalarOption {
	return scalarOptionFunc(func(s *scalarSettings) {
		s.parse = func(raw string) (any, error) {
			return parse(raw)
		}
	})
}

type schemaOptionFunc func(*schemaOptions)

func (f schemaOptionFunc) applySchema(so *schemaOptions) { f(so) }

// OnPartialUseDefault makes a partially set schema fall back to its
// own default instead of failing. Declaring it on a schema without a
// default panics.
func OnPartialUseDefault() SchemaOption {
	return schemaOptionFunc(func(so *schemaOptions) {
		so.onPartial = sentinelSlot(useDefault)
	})
}

// OnPartialValue makes a partially set schema resolve to v directly,
// bypassing the factory call.
func OnPartialValue[T any](v T) SchemaOption {
	return schemaOptionFunc(func(so *schemaOptions) {
		so.onPartial = valueSlot(v)
	})
}

// OnPartialFunc makes a partially set schema resolve to the result of
// fn, bypassing the factory call.
func OnPartialFunc[T any](fn func() T) SchemaOption {
	return schemaOptionFunc(func(so *schemaOptions) {
		so.onPartial = factorySlot(func() any { return fn() })
	})
}

type autoOptionFunc func(*autoOptions)

func (f autoOptionFunc) applyAuto(ao *autoOptions) { f(ao) }

// Key overrides the environment key fragment a placeholder would
// otherwise inherit from its factory parameter name.
func Key(key string) AutoOption {
	return autoOptionFunc(func(ao *autoOptions) {
		ao.key, ao.hasKey = key, true
	})
}

// OfType overrides the type a placeholder would otherwise infer from
// its factory parameter, and with it the canonical parser selection.
func OfType[T any]() AutoOption {
	return autoOptionFunc(func(ao *autoOptions) {
		ao.typ = reflect.TypeFor[T]()
	})
}

// Required forces a placeholder to treat an absent environment key as
// an error even when the factory parameter declares its own default.
func Required() AutoOption {
	return autoOptionFunc(func(ao *autoOptions) {
		ao.required = true
	})
}
