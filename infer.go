// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Placeholder is a provisional schema member awaiting inference. Its
// key, type and default are filled in from the enclosing schema's
// factory parameter of the same name at the moment it is attached.
type Placeholder struct {
	o autoOptions
}

// Auto declares an inference placeholder.
func Auto(opts ...AutoOption) *Placeholder {
	p := &Placeholder{}
	for _, opt := range opts {
		opt.applyAuto(&p.o)
	}
	return p
}

// Validator appends a transform applied to every value the inferred
// variable parses from the environment.
func (p *Placeholder) Validator(fn func(any) (any, error)) *Placeholder {
	p.o.validators = append(p.o.validators, fn)
	return p
}

func (p *Placeholder) anyNode() node { return nil }

func (p *Placeholder) bindable() {}

// memberID identifies a schema member for inference and error
// reporting: a parameter name, or an index for positional members.
type memberID struct {
	name  string
	index int
}

func (id memberID) named() bool { return id.name != "" }

func (id memberID) String() string {
	if id.named() {
		return id.name
	}
	return "#" + strconv.Itoa(id.index)
}

// bind resolves the placeholder against the factory parameter it was
// attached to, producing a concrete scalar node. Explicit placeholder
// arguments win, then overrides carried by the parameter's own
// declaration, then what the factory's shape implies.
func (p *Placeholder) bind(spec factorySpec, id memberID, prefix string) (*scalarNode, error) {
	var as argSpec
	var ok bool
	if id.named() {
		as, ok = spec.named(id.name)
	} else {
		as, ok = spec.positional(id.index)
	}
	if !ok {
		return nil, InferenceError{Param: id.String(), Factory: spec.name(), Reason: "factory has no such parameter"}
	}

	var key string
	switch {
	case p.o.hasKey:
		key = p.o.key
	case as.key != "":
		key = as.key
	case id.named():
		key = id.name
	default:
		return nil, InferenceError{
			Param:   id.String(),
			Factory: spec.name(),
			Reason:  "cannot infer a key for a positional parameter, specify one with Key",
		}
	}

	parse := p.o.parse
	if parse == nil {
		t := p.o.typ
		if t == nil {
			t = as.typ
		}
		if t == nil {
			return nil, InferenceError{Param: id.String(), Factory: spec.name(), Reason: "parameter type is unknown"}
		}
		pp, err := parserFor(t)
		if err != nil {
			return nil, InferenceError{Param: id.String(), Factory: spec.name(), Reason: err.Error()}
		}
		parse = pp
	}

	def := sentinelSlot(absent)
	switch {
	case p.o.required:
		if p.o.defSet {
			return nil, InferenceError{Param: id.String(), Factory: spec.name(), Reason: "Required conflicts with an explicit default"}
		}
	case p.o.defSet:
		def = p.o.def
	case as.hasDef:
		parsed, err := parse(as.defRaw)
		if err != nil {
			return nil, InferenceError{
				Param:   id.String(),
				Factory: spec.name(),
				Reason:  fmt.Sprintf("declared default %q does not parse: %s", as.defRaw, err),
			}
		}
		def = valueSlot(parsed)
	default:
		// Deliberately strict: if the parameter later gained a factory
		// default, a silently optional variable would mask the change.
		return nil, InferenceError{
			Param:   id.String(),
			Factory: spec.name(),
			Reason:  "no default declared, mark the member Required or give it a Default",
		}
	}

	n := &scalarNode{
		key:           newEnvKey(key, p.o.absolute).withPrefix(prefix),
		parse:         parse,
		caseSensitive: p.o.caseSensitive,
		stripSpace:    !p.o.keepSpace,
	}
	n.c = newCore(def, p.o.desc)
	n.c.validators = append([]func(any) (any, error)(nil), p.o.validators...)
	n.c.self = n
	return n, nil
}

// argSpec is what a factory shape declares about one of its parameters.
type argSpec struct {
	typ    reflect.Type
	key    string // key override embedded in the parameter declaration
	defRaw string // unparsed declared default
	hasDef bool
}

// factorySpec is the parameter introspector for one factory shape.
// There is one implementation per supported shape; the engine never
// branches on concrete factory types anywhere else.
type factorySpec interface {
	name() string
	named(name string) (argSpec, bool)
	positional(i int) (argSpec, bool)
	acceptsNamed() bool
	acceptsPositional() bool
	invoke(pos []any, named map[string]any) (any, error)
}

// newFactorySpec selects the introspector for factory. A nil factory
// means values of T are assembled directly, which requires T to be a
// struct, pointer to struct, or string-keyed map.
func newFactorySpec[T any](factory any) (factorySpec, error) {
	if factory == nil {
		t := reflect.TypeFor[T]()
		base := t
		ptr := false
		if base.Kind() == reflect.Pointer {
			base = base.Elem()
			ptr = true
		}
		switch {
		case base.Kind() == reflect.Struct:
			return structSpec{t: base, ptr: ptr}, nil
		case !ptr && base.Kind() == reflect.Map && base.Key().Kind() == reflect.String:
			return mapSpec{t: base}, nil
		}
		return nil, fmt.Errorf("cannot assemble values of type %s without a factory", t)
	}

	fv := reflect.ValueOf(factory)
	if fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("factory must be a func, struct type parameter or map type parameter, got %T", factory)
	}
	ft := fv.Type()
	if ft.NumOut() == 0 || ft.NumOut() > 2 {
		return nil, fmt.Errorf("factory %s must return (T) or (T, error)", ft)
	}
	if !ft.Out(0).AssignableTo(reflect.TypeFor[T]()) {
		return nil, fmt.Errorf("factory %s does not produce %s", ft, reflect.TypeFor[T]())
	}
	if ft.NumOut() == 2 && ft.Out(1) != reflect.TypeFor[error]() {
		return nil, fmt.Errorf("factory %s second return value must be error", ft)
	}
	return funcSpec{fn: fv}, nil
}

// structSpec introspects record-like factories: the fields of a struct
// type. An `env` tag overrides the inferred key fragment and a
// `default` tag declares the parameter default in its string form.
type structSpec struct {
	t   reflect.Type
	ptr bool
}

func (s structSpec) name() string { return s.t.String() }

func (s structSpec) acceptsNamed() bool { return true }

func (s structSpec) acceptsPositional() bool { return false }

func (s structSpec) named(name string) (argSpec, bool) {
	f, ok := s.field(name)
	if !ok {
		return argSpec{}, false
	}

	as := argSpec{typ: f.Type}
	if tag, ok := f.Tag.Lookup("env"); ok && tag != "" {
		as.key = tag
	}
	if tag, ok := f.Tag.Lookup("default"); ok {
		as.defRaw = tag
		as.hasDef = true
	}
	return as, true
}

func (s structSpec) field(name string) (reflect.StructField, bool) {
	for _, f := range reflect.VisibleFields(s.t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

func (s structSpec) positional(int) (argSpec, bool) { return argSpec{}, false }

func (s structSpec) invoke(pos []any, named map[string]any) (any, error) {
	if len(pos) > 0 {
		return nil, fmt.Errorf("struct factory %s accepts no positional arguments", s.name())
	}

	out := reflect.New(s.t)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out.Interface(),
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(named); err != nil {
		return nil, err
	}

	if s.ptr {
		return out.Interface(), nil
	}
	return out.Elem().Interface(), nil
}

// funcSpec introspects plain callables. Go functions do not expose
// parameter names, so func factories take positional members only; the
// variadic tail, if any, types every trailing member.
type funcSpec struct {
	fn reflect.Value
}

func (s funcSpec) name() string { return s.fn.Type().String() }

func (s funcSpec) acceptsNamed() bool { return false }

func (s funcSpec) acceptsPositional() bool { return true }

func (s funcSpec) named(string) (argSpec, bool) { return argSpec{}, false }

func (s funcSpec) positional(i int) (argSpec, bool) {
	ft := s.fn.Type()
	n := ft.NumIn()
	if ft.IsVariadic() {
		if i >= n-1 {
			return argSpec{typ: ft.In(n - 1).Elem()}, true
		}
		return argSpec{typ: ft.In(i)}, true
	}
	if i >= n {
		return argSpec{}, false
	}
	return argSpec{typ: ft.In(i)}, true
}

func (s funcSpec) invoke(pos []any, named map[string]any) (any, error) {
	if len(named) > 0 {
		return nil, fmt.Errorf("func factory %s accepts no named arguments", s.name())
	}

	ft := s.fn.Type()
	required := ft.NumIn()
	if ft.IsVariadic() {
		required--
	}
	if len(pos) < required {
		return nil, fmt.Errorf("factory %s requires %d arguments, got %d", s.name(), required, len(pos))
	}
	if !ft.IsVariadic() && len(pos) > ft.NumIn() {
		return nil, fmt.Errorf("factory %s takes %d arguments, got %d", s.name(), ft.NumIn(), len(pos))
	}

	args := make([]reflect.Value, len(pos))
	for i, p := range pos {
		spec, _ := s.positional(i)
		if p == nil {
			args[i] = reflect.Zero(spec.typ)
			continue
		}
		v := reflect.ValueOf(p)
		if !v.Type().AssignableTo(spec.typ) {
			return nil, fmt.Errorf("factory %s argument %d is %s, not %s", s.name(), i, v.Type(), spec.typ)
		}
		args[i] = v
	}

	outs := s.fn.Call(args)
	if len(outs) == 2 && !outs[1].IsNil() {
		return nil, outs[1].Interface().(error)
	}
	return outs[0].Interface(), nil
}

// mapSpec introspects dict-shaped targets: every member shares the
// map's value type.
type mapSpec struct {
	t reflect.Type
}

func (s mapSpec) name() string { return s.t.String() }

func (s mapSpec) acceptsNamed() bool { return true }

func (s mapSpec) acceptsPositional() bool { return false }

func (s mapSpec) named(string) (argSpec, bool) {
	elem := s.t.Elem()
	if elem.Kind() == reflect.Interface && elem.NumMethod() == 0 {
		// The value type constrains nothing; the member must declare
		// its own type or parser.
		return argSpec{}, true
	}
	return argSpec{typ: elem}, true
}

func (s mapSpec) positional(int) (argSpec, bool) { return argSpec{}, false }

func (s mapSpec) invoke(pos []any, named map[string]any) (any, error) {
	if len(pos) > 0 {
		return nil, fmt.Errorf("map factory %s accepts no positional arguments", s.name())
	}

	out := reflect.MakeMapWithSize(s.t, len(named))
	elem := s.t.Elem()
	for k, v := range named {
		rv := reflect.ValueOf(v)
		if v == nil {
			rv = reflect.Zero(elem)
		} else if !rv.Type().AssignableTo(elem) {
			return nil, fmt.Errorf("map factory %s value for %q is %s, not %s", s.name(), k, rv.Type(), elem)
		}
		out.SetMapIndex(reflect.ValueOf(k).Convert(s.t.Key()), rv)
	}
	return out.Interface(), nil
}
