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

// Package query describes the resolved selection tree the editor walks. Unlike a GraphQL document,
// a query.Document has already been parsed and validated by an external layer: field shapes are
// known, fragments are flattened, and arguments carry either a literal value or a deferred
// VariableRef for the editor's own variable-resolution step (see ResolveArguments).
package query

import "github.com/relaygql/normalcache/cache/value"

// Document is a resolved operation: a root selection set and the declared shape of its root (an
// entity-rooted nested write, or a true query root).
type Document struct {
	// RootSelection is the top-level selection set, one Field per requested root field.
	RootSelection *SelectionSet

	// RootId is the node id the root selection writes into. For root queries this is the cache's
	// static query-root id; for a nested write rooted at a known entity, it is that entity's id.
	RootId value.NodeId
}

// SelectionSet is an ordered list of fields requested at some position in the tree.
type SelectionSet struct {
	Fields []*Field

	// IdentityField is the name of the field within Fields (if any) that carries an object landing
	// in this selection's stable identity, e.g. "id". Declared per selection since different
	// selections may key identity off different field names, or off none at all (a plain nested
	// object has no IdentityField). A payload object is an entity only while it actually supplies
	// this field; see the editor's identity-continuity rule for the case where a later write through
	// the same position omits it.
	IdentityField string
}

// Field is one requested field: a name, optional arguments, and (for object-shaped fields) a
// nested selection. A Field with a nil Selection is a scalar leaf.
type Field struct {
	// Name is the field's name as it appears in the container's value (the response key).
	Name string

	// Arguments are the field's declared arguments, in declaration order. Empty for fields without
	// arguments; a field with an empty-but-non-nil Arguments is still treated as "has arguments" for
	// the purpose of deciding whether it gets a parameterized node (see HasArguments).
	Arguments []*ArgumentDef

	// Selection is the nested selection set for object- or array-of-object-shaped fields. nil for
	// scalar leaves.
	Selection *SelectionSet
}

// HasArguments reports whether the field should be materialized as a parameterized value node.
// Per the node-id contract, a field "carries arguments" if its selection declares any - even zero
// supplied values still produce a node, since declared-but-omitted optional arguments are
// materialized as explicit null entries in the canonical argument map.
func (f *Field) HasArguments() bool {
	return f.Arguments != nil
}

// ArgumentDef declares one of a field's arguments: its name, whether a value was supplied in this
// particular request (Value / IsVariable), whether it's required, and its default if any.
type ArgumentDef struct {
	Name string

	// Value is the argument's literal value as supplied in the request, or the zero Value if
	// IsVariable is true or no value was supplied at all (see Supplied).
	Value value.Value

	// IsVariable reports whether the supplied value is a variable reference rather than a literal;
	// VariableName names it.
	IsVariable   bool
	VariableName string

	// Supplied reports whether the request supplied any value (literal or variable) for this
	// argument at all, as opposed to omitting it entirely.
	Supplied bool

	// Required reports whether the argument's declared type forbids an absent or null value.
	Required bool

	// HasDefault and Default describe the argument's declared default value, used when Supplied is
	// false.
	HasDefault bool
	Default    value.Value
}
