/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package value

import (
	"strconv"
	"strings"
)

// Step is one component of a Path: either a field name (string) or an array index (int).
type Step = interface{}

// Path is a sequence of field-name/array-index steps locating a position inside a container's
// value, or inside a node's logical address space for an outbound/inbound edge. Paths are compared
// by content (see Equal), never by slice identity.
type Path []Step

// Append returns a new Path with step appended, leaving the receiver untouched.
func (path Path) Append(step Step) Path {
	next := make(Path, len(path)+1)
	copy(next, path)
	next[len(path)] = step
	return next
}

// Equal reports whether two paths name the same sequence of steps.
func (path Path) Equal(other Path) bool {
	if len(path) != len(other) {
		return false
	}
	for i, step := range path {
		if step != other[i] {
			return false
		}
	}
	return true
}

// String renders a Path in a debug-friendly form, e.g. `foo[0].bar`.
func (path Path) String() string {
	var b strings.Builder
	for _, step := range path {
		switch step := step.(type) {
		case string:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(step)
		case int:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(step))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// Get resolves path inside v, returning Undefined if any step along the way does not exist.
func Get(v Value, path Path) Value {
	for _, step := range path {
		switch step := step.(type) {
		case string:
			obj, ok := AsObject(v)
			if !ok {
				return Undefined
			}
			child, ok := obj[step]
			if !ok {
				return Undefined
			}
			v = child
		case int:
			arr, ok := AsArray(v)
			if !ok || step < 0 || step >= len(arr) {
				return Undefined
			}
			v = arr[step]
		default:
			return Undefined
		}
	}
	return v
}
