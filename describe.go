// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

import (
	"sort"
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

type describeOptions struct {
	width      int
	indent     string
	uniqueKeys bool
}

// DescribeOption configures the description engine.
type DescribeOption func(*describeOptions)

// Width sets the advisory line width for wrapped description text.
// The default is 80 columns.
func Width(columns int) DescribeOption {
	return func(o *describeOptions) {
		o.width = columns
	}
}

// IndentIncrement sets the string prepended per nesting level in the
// nested layout. The default is two spaces.
func IndentIncrement(indent string) DescribeOption {
	return func(o *describeOptions) {
		o.indent = indent
	}
}

// UniqueKeys makes the flat layout render at most one entry per key.
// By default every distinct declaration of a key is rendered, grouped
// together.
func UniqueKeys() DescribeOption {
	return func(o *describeOptions) {
		o.uniqueKeys = true
	}
}

func newDescribeOptions(opts []DescribeOption) describeOptions {
	o := describeOptions{width: 80, indent: "  "}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Describe renders every live, non-excluded top-level variable as a
// nested tree: schemas become indented sections titled with their own
// description, scalars become "KEY: text" entries. Siblings are sorted
// by key.
func Describe(opts ...DescribeOption) []string {
	return describeNested(liveTopLevel(), newDescribeOptions(opts))
}

// DescribeFlat renders the scalar leaves of every live, non-excluded
// top-level variable as a single sorted list, one wrapped entry per
// distinct key. When the same key is declared more than once, a
// described declaration wins over an undescribed one.
func DescribeFlat(opts ...DescribeOption) []string {
	var out []string
	for _, group := range DescribeFlatGrouped(opts...) {
		out = append(out, group...)
	}
	return out
}

// DescribeFlatGrouped is DescribeFlat with the lines grouped per key,
// for callers that lay out the entries themselves.
func DescribeFlatGrouped(opts ...DescribeOption) [][]string {
	return describeFlatGrouped(liveTopLevel(), newDescribeOptions(opts))
}

func describeNested(roots []node, o describeOptions) []string {
	sorted := append([]node(nil), roots...)
	sort.Slice(sorted, func(i, j int) bool {
		return describeSortKey(sorted[i]) < describeSortKey(sorted[j])
	})

	var out []string
	for _, n := range sorted {
		out = append(out, nestedLines(n, "", o)...)
	}
	return out
}

func nestedLines(n node, indent string, o describeOptions) []string {
	if isExcluded(n) {
		return nil
	}

	s, ok := n.(*scalarNode)
	if ok {
		return scalarEntry(s.describedKey(), s.c.desc, indent, o.width)
	}

	children := append([]node(nil), n.children()...)
	sort.Slice(children, func(i, j int) bool {
		return describeSortKey(children[i]) < describeSortKey(children[j])
	})

	var out []string
	childIndent := indent
	if len(n.core().desc) > 0 {
		title := strings.Join(n.core().desc, " ") + ":"
		out = append(out, wrapText(title, o.width, indent, indent)...)
		childIndent = indent + o.indent
	}
	for _, child := range children {
		out = append(out, nestedLines(child, childIndent, o)...)
	}
	return out
}

// flatEntry is one scalar leaf as the flat layout sees it.
type flatEntry struct {
	key  string
	desc []string
}

func describeFlatGrouped(roots []node, o describeOptions) [][]string {
	byKey := map[string][]flatEntry{}
	var keys []string

	var collect func(n node)
	collect = func(n node) {
		if isExcluded(n) {
			return
		}
		if s, ok := n.(*scalarNode); ok {
			key := s.describedKey()
			if _, seen := byKey[key]; !seen {
				keys = append(keys, key)
			}
			byKey[key] = appendEntry(byKey[key], flatEntry{key: key, desc: s.c.desc})
			return
		}
		for _, child := range n.children() {
			collect(child)
		}
	}
	for _, n := range roots {
		collect(n)
	}
	sort.Strings(keys)

	out := make([][]string, 0, len(keys))
	for _, key := range keys {
		entries := byKey[key]
		if o.uniqueKeys {
			entries = entries[:1]
		}

		var group []string
		for _, e := range entries {
			group = append(group, scalarEntry(e.key, e.desc, "", o.width)...)
		}
		out = append(out, group)
	}
	return out
}

// appendEntry collates duplicate declarations of one key: identical
// entries collapse, and an undescribed entry is dominated by any
// described one.
func appendEntry(entries []flatEntry, e flatEntry) []flatEntry {
	if len(e.desc) == 0 {
		if len(entries) > 0 {
			return entries
		}
		return []flatEntry{e}
	}
	for _, prev := range entries {
		if strings.Join(prev.desc, "\x00") == strings.Join(e.desc, "\x00") {
			return entries
		}
	}
	if len(entries) == 1 && len(entries[0].desc) == 0 {
		entries = entries[:0]
	}
	return append(entries, e)
}

// describeSortKey orders siblings: a scalar sorts by its own key, a
// schema by the smallest key among its leaves so a section sits where
// its first entry would.
func describeSortKey(n node) string {
	if s, ok := n.(*scalarNode); ok {
		return strings.ToUpper(s.describedKey())
	}

	min := ""
	for _, child := range n.children() {
		k := describeSortKey(child)
		if min == "" || k < min {
			min = k
		}
	}
	if min == "" {
		return strings.ToUpper(n.fullKey())
	}
	return min
}

func scalarEntry(key string, desc []string, indent string, width int) []string {
	if len(desc) == 0 {
		return []string{indent + key}
	}

	prefix := indent + key + ": "
	cont := indent + strings.Repeat(" ", len(key)+2)
	out := wrapText(desc[0], width, prefix, cont)
	for _, paragraph := range desc[1:] {
		out = append(out, wrapText(paragraph, width, cont, cont)...)
	}
	return out
}

// wrapText wraps text to the advisory width, prefixing the first line
// with initial and every further line with subsequent. Width is
// advisory: a first-line prefix longer than subsequent, or a single
// unbreakable word, may overflow it.
func wrapText(text string, width int, initial, subsequent string) []string {
	avail := width - len(subsequent)
	if avail < 1 {
		avail = 1
	}

	lines := strings.Split(wordwrap.WrapString(text, uint(avail)), "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			out = append(out, initial+line)
			continue
		}
		out = append(out, subsequent+line)
	}
	return out
}
