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

// Package editor implements the Snapshot Editor: the copy-on-write merge core that turns a base
// graph.Snapshot plus a resolved query.Document and JSON payload into a new graph.Snapshot and the
// set of node ids it touched. It is a leaf package with respect to the root cache package (cache
// delegates to editor, so editor must not import cache back) but depends on cache/graph,
// cache/query, cache/value and cache/errs.
package editor

import (
	"github.com/relaygql/normalcache/cache/graph"
	"github.com/relaygql/normalcache/cache/query"
	"github.com/relaygql/normalcache/cache/value"
)

// NodeId is re-exported from cache/graph so callers implementing Context don't need a separate
// import for it.
type NodeId = graph.NodeId

// Context supplies the caller-specific policy the editor cannot derive from the payload alone:
// how to compute an entity's stable id, and how to resolve a query variable to its runtime value.
type Context interface {
	// ResolveEntityId inspects a payload object arriving at a position governed by selection and
	// returns the NodeId it should be stored under, plus whether selection/obj actually describe an
	// entity at all (false lets the editor fall back to treating the object as a plain nested value
	// or continuing an existing reference, per its identity-continuity rule).
	ResolveEntityId(selection *query.SelectionSet, obj value.Object) (id NodeId, ok bool)

	// ResolveVariable looks up a query variable's runtime value by name. It returns false if the
	// variable was not supplied, letting ResolveArguments fall back to a declared default or report
	// UnresolvedVariable.
	ResolveVariable(name string) (value.Value, bool)
}
