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
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// NodeId is an opaque stable identifier for a node in the cache. It has three construction rules
// (static, entity, parameterized) that are distinguished only by how the id string was built, not
// by any tag carried in the string itself.
type NodeId string

// StaticNodeId builds the id of a well-known root node, such as the query root.
func StaticNodeId(name string) NodeId {
	return NodeId(name)
}

// EntityNodeId builds the id of an entity node from its stable identity field, already stringified
// by the caller. typeName disambiguates entities of different types that happen to share an id
// value; pass "" if the cache is untyped.
func EntityNodeId(typeName string, id string) NodeId {
	if typeName == "" {
		return NodeId(id)
	}
	return NodeId(typeName + ":" + id)
}

// parameterizedIdPrefix marks ids produced by ParameterizedId, keeping them visually distinct from
// entity ids (which are caller-controlled strings and could otherwise collide in form).
const parameterizedIdPrefix = " param:"

// ParameterizedId computes the deterministic id of the value node materialized for a field that
// carries arguments. It is a pure function of (container, path, args): two calls with equivalent
// inputs, including equal argument values, always produce the same id (spec contract in §4.1/§6 of
// the write-path specification).
//
// path is the field path inside container's logical address space, array-index-qualified when the
// field sits inside a walked array element (e.g. ["two", 0, "four"]) so that each array element
// gets its own parameterized node. args is the field's fully resolved argument map: variables
// substituted, declared defaults filled in, declared-but-omitted optional arguments present as
// explicit nil.
func ParameterizedId(container NodeId, path Path, args Object) NodeId {
	canonical := CanonicalizeArgs(string(container), path, args)
	digest := xxhash.Sum64String(canonical)
	return NodeId(parameterizedIdPrefix + strconv.FormatUint(digest, 16))
}

// CanonicalizeArgs serializes (container, path, args) into a delimited byte string with
// unambiguous boundaries between components: object keys are sorted lexicographically before
// serialization, and scalar kinds are tagged so that e.g. the int 1 and the string "1" never
// canonicalize to the same bytes. Exported so that callers needing a stable cache key for
// something other than a NodeId (e.g. request coalescing) can reuse the exact same canonicalization
// ParameterizedId uses.
func CanonicalizeArgs(container string, path Path, args Object) string {
	var b strings.Builder
	b.WriteString(container)
	b.WriteByte('|')
	for _, step := range path {
		switch step := step.(type) {
		case string:
			b.WriteByte('f')
			writeLenPrefixed(&b, step)
		case int:
			b.WriteByte('i')
			b.WriteString(strconv.Itoa(step))
			b.WriteByte(';')
		}
	}
	b.WriteByte('|')
	writeCanonicalArgs(&b, args)
	return b.String()
}

func writeCanonicalArgs(b *strings.Builder, args Object) {
	if len(args) == 0 {
		b.WriteString("{}")
		return
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteByte('{')
	for _, k := range keys {
		writeLenPrefixed(b, k)
		b.WriteByte(':')
		writeCanonicalValue(b, args[k])
		b.WriteByte(',')
	}
	b.WriteByte('}')
}

func writeCanonicalValue(b *strings.Builder, v Value) {
	switch v := v.(type) {
	case nil:
		b.WriteString("n")
	case bool:
		if v {
			b.WriteString("bt")
		} else {
			b.WriteString("bf")
		}
	case string:
		b.WriteByte('s')
		writeLenPrefixed(b, v)
	case float64:
		// Normalize so that an argument declared as a float canonicalizes the same whether it
		// arrived as "1" or "1.0"; the 'g' format with shortest round-trip precision collapses
		// both to "1". Integer-valued float64s and actual integers still canonicalize
		// differently (tagged 'd' vs 'x') since they're distinct declared argument types.
		b.WriteByte('d')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case int:
		b.WriteByte('x')
		b.WriteString(strconv.Itoa(v))
	case int64:
		b.WriteByte('x')
		b.WriteString(strconv.FormatInt(v, 10))
	case Array:
		b.WriteByte('[')
		for _, elem := range v {
			writeCanonicalValue(b, elem)
			b.WriteByte(',')
		}
		b.WriteByte(']')
	case Object:
		writeCanonicalArgs(b, v)
	case undefinedType:
		b.WriteString("u")
	default:
		b.WriteByte('?')
		b.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

func writeLenPrefixed(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}
