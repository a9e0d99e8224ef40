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

// Package value implements the JSON value model shared by the query and editor packages: a
// payload or a stored node's value is always one of object, array, scalar, null or undefined (a
// hole where a reference placeholder lives). It also implements the path-based value edits the
// editor uses and the parameterized-id canonicalization described by the cache's node-id contract;
// argument resolution lives in the query package.
package value

import "reflect"

// Value is a JSON-shaped value: nil (explicit JSON null), bool, float64, string, Object, Array, or
// Undefined. There is no dedicated Go type for it; every function in this package that receives or
// returns "a value" documents which of these shapes it expects or produces.
type Value = interface{}

// Object is a JSON object value. Field order is not significant; two Objects with the same entries
// in different map iteration order are the same value.
type Object map[string]Value

// Array is a JSON array value.
type Array []Value

// undefinedType is the type of Undefined. It is unexported so that Undefined is the only value of
// this type, making it safe to compare with ==.
type undefinedType struct{}

// Undefined marks a position whose payload value was missing (as opposed to explicitly null). Per
// the write path's contract, a missing value at a selected position is a no-op: the prior value (if
// any) is left in place. Undefined also appears inside committed NodeSnapshot values: it is the
// value of a node that holds nothing inline (such as a parameterized node that is purely a
// reference to an entity), and it fills array positions whose content lives behind an outbound
// edge.
var Undefined Value = undefinedType{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v Value) bool {
	_, ok := v.(undefinedType)
	return ok
}

// IsNull reports whether v is an explicit JSON null (a Go nil, but not Undefined).
func IsNull(v Value) bool {
	return v == nil
}

// Equal reports whether two values are structurally identical. Object key order and Array identity
// are irrelevant; only content matters. Used by the editor's reconciliation pass (spec's
// "Reference-no-op detection") to decide whether a copy-on-write clone actually changed.
func Equal(a, b Value) bool {
	if IsUndefined(a) || IsUndefined(b) {
		return IsUndefined(a) && IsUndefined(b)
	}
	return reflect.DeepEqual(a, b)
}

// AsObject returns v as an Object and true if v is one. A nil Object (but not a nil Value) is still
// reported as an Object so that "no fields yet" and "not an object" stay distinguishable.
func AsObject(v Value) (Object, bool) {
	obj, ok := v.(Object)
	return obj, ok
}

// AsArray returns v as an Array and true if v is one.
func AsArray(v Value) (Array, bool) {
	arr, ok := v.(Array)
	return arr, ok
}

// Clone makes a shallow-per-level deep copy of v: nested Objects and Arrays are copied, scalars are
// returned as-is. Used whenever the editor needs to write into a value without mutating a value
// still referenced by base.
func Clone(v Value) Value {
	switch v := v.(type) {
	case Object:
		if v == nil {
			return Object(nil)
		}
		cloned := make(Object, len(v))
		for k, child := range v {
			cloned[k] = Clone(child)
		}
		return cloned
	case Array:
		if v == nil {
			return Array(nil)
		}
		cloned := make(Array, len(v))
		for i, child := range v {
			cloned[i] = Clone(child)
		}
		return cloned
	default:
		return v
	}
}
