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

// WithoutField returns a copy of v with key removed, if v is an Object. It is used when a field
// that previously held an inline value is discovered to be a reference this write: the container's
// value must no longer expose that key directly (invariant: a parameterized or direct-reference
// field's container does not expose the field in its own value).
func WithoutField(v Value, key string) Value {
	obj, ok := AsObject(v)
	if !ok || obj == nil {
		return v
	}
	if _, present := obj[key]; !present {
		return v
	}
	next := make(Object, len(obj)-1)
	for k, fv := range obj {
		if k != key {
			next[k] = fv
		}
	}
	return next
}

// WithIndex returns a copy of v (an Array, growing it with Undefined holes if needed) with index
// set to elem. Used to write array elements (including reference holes) without disturbing
// sibling elements or the array's length.
func WithIndex(v Value, index int, elem Value) Value {
	arr, _ := AsArray(v)
	if index >= len(arr) {
		grown := make(Array, index+1)
		copy(grown, arr)
		for i := len(arr); i < index; i++ {
			grown[i] = Undefined
		}
		arr = grown
	} else {
		grown := make(Array, len(arr))
		copy(grown, arr)
		arr = grown
	}
	arr[index] = elem
	return arr
}

// WithField returns a copy of v (an Object, creating one if v isn't) with key set to val.
func WithField(v Value, key string, val Value) Value {
	obj, ok := AsObject(v)
	next := make(Object, len(obj)+1)
	if ok {
		for k, fv := range obj {
			next[k] = fv
		}
	}
	next[key] = val
	return next
}

// SetAtPath returns a copy of v with val written at path, creating intermediate Objects/Arrays as
// needed. Used both by the editor (writing a leaf or a reference hole into a node's value) and by
// Snapshot projection (substituting a resolved reference back into its holder's value).
func SetAtPath(v Value, path Path, val Value) Value {
	if len(path) == 0 {
		return val
	}
	switch step := path[0].(type) {
	case string:
		child := Get(v, Path{step})
		return WithField(v, step, SetAtPath(child, path[1:], val))
	case int:
		child := Get(v, Path{step})
		return WithIndex(v, step, SetAtPath(child, path[1:], val))
	default:
		return v
	}
}

// RemoveAtPath returns a copy of v with the position named by path cleared: the final object key
// deleted, or the final array index set back to Undefined (never shrinking the array - an index is
// a hole, not a removed element). A missing intermediate is a no-op: there is nothing to clear.
func RemoveAtPath(v Value, path Path) Value {
	if len(path) == 0 {
		return Undefined
	}
	if len(path) == 1 {
		switch step := path[0].(type) {
		case string:
			return WithoutField(v, step)
		case int:
			arr, ok := AsArray(v)
			if !ok || step < 0 || step >= len(arr) {
				return v
			}
			return WithIndex(arr, step, Undefined)
		}
		return v
	}
	switch step := path[0].(type) {
	case string:
		obj, ok := AsObject(v)
		if !ok {
			return v
		}
		child, present := obj[step]
		if !present {
			return v
		}
		return WithField(v, step, RemoveAtPath(child, path[1:]))
	case int:
		arr, ok := AsArray(v)
		if !ok || step < 0 || step >= len(arr) {
			return v
		}
		return WithIndex(arr, step, RemoveAtPath(arr[step], path[1:]))
	default:
		return v
	}
}

// EnsureArrayLength returns v (read at the top level, expected to be an Array or absent) resized to
// exactly n elements: truncated if longer, grown with Undefined holes if shorter. Used after the
// editor finishes walking an incoming array to fix the container's array shape even when every
// element's content lived entirely behind outbound edges (no inline value ever written).
func EnsureArrayLength(v Value, n int) Value {
	arr, _ := AsArray(v)
	if len(arr) == n {
		return arr
	}
	resized := make(Array, n)
	copy(resized, arr)
	for i := len(arr); i < n; i++ {
		resized[i] = Undefined
	}
	return resized
}
