// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

// envKey is a key fragment that may be marked absolute, in which case
// prefix concatenation leaves it untouched.
type envKey struct {
	s        string
	absolute bool
}

func newEnvKey(s string, absolute bool) envKey {
	return envKey{s: s, absolute: absolute}
}

func (k envKey) withPrefix(prefix string) envKey {
	if k.absolute {
		return k
	}
	return envKey{s: prefix + k.s}
}

func (k envKey) String() string {
	return k.s
}
