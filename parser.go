// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/z5labs/envtree/parsers"
)

var (
	durationType        = reflect.TypeFor[time.Duration]()
	bytesType           = reflect.TypeFor[[]byte]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

	parseBool = parsers.Bool([]string{"true"}, []string{"false"})
)

// parserFor selects the canonical parser for a type. Marker types with
// well-known string forms (booleans, byte strings, complex numbers,
// durations, text unmarshalers, JSON-shaped models) are recognized by
// shape; a pointer wrapper is stripped transparently and the parsed
// value re-wrapped. Declaring the variable with ParseWith suppresses
// this selection entirely.
func parserFor(t reflect.Type) (func(string) (any, error), error) {
	switch t {
	case durationType:
		return func(raw string) (any, error) {
			return time.ParseDuration(raw)
		}, nil
	case bytesType:
		return func(raw string) (any, error) {
			return []byte(raw), nil
		}, nil
	}

	// Self-parsing types, e.g. enumerations with an UnmarshalText.
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return func(raw string) (any, error) {
			v := reflect.New(t)
			err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))
			if err != nil {
				return nil, err
			}
			return v.Elem().Interface(), nil
		}, nil
	}

	if t.Kind() == reflect.Pointer {
		inner, err := parserFor(t.Elem())
		if err != nil {
			return nil, err
		}
		return func(raw string) (any, error) {
			v, err := inner(raw)
			if err != nil {
				return nil, err
			}
			p := reflect.New(t.Elem())
			p.Elem().Set(reflect.ValueOf(v))
			return p.Interface(), nil
		}, nil
	}

	switch t.Kind() {
	case reflect.String:
		return convert(t, func(raw string) (string, error) {
			return raw, nil
		}), nil
	case reflect.Bool:
		return convert(t, parseBool), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return convert(t, func(raw string) (int64, error) {
			return strconv.ParseInt(raw, 0, t.Bits())
		}), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return convert(t, func(raw string) (uint64, error) {
			return strconv.ParseUint(raw, 0, t.Bits())
		}), nil
	case reflect.Float32, reflect.Float64:
		return convert(t, func(raw string) (float64, error) {
			return strconv.ParseFloat(raw, t.Bits())
		}), nil
	case reflect.Complex64, reflect.Complex128:
		return convert(t, func(raw string) (complex128, error) {
			return strconv.ParseComplex(raw, t.Bits())
		}), nil
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return func(raw string) (any, error) {
			v := reflect.New(t)
			err := json.Unmarshal([]byte(raw), v.Interface())
			if err != nil {
				return nil, err
			}
			return v.Elem().Interface(), nil
		}, nil
	}
	return nil, fmt.Errorf("no canonical parser for type %s", t)
}

// convert adapts a parser of a builtin kind to a possibly named type
// of that kind.
func convert[E any](t reflect.Type, parse func(string) (E, error)) func(string) (any, error) {
	return func(raw string) (any, error) {
		e, err := parse(raw)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(e).Convert(t).Interface(), nil
	}
}
