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

// Package graph holds the node/snapshot data model shared by the root cache package (which
// re-exports it as the public API) and the editor package (which builds new snapshots from it).
// Splitting it out of the cache package avoids a cache <-> editor import cycle: cache.Write
// delegates to editor.New, so editor cannot itself depend on cache.
package graph

import (
	"sync"

	"github.com/relaygql/normalcache/cache/value"
)

// NodeId is re-exported from the value package, which owns the id construction rules.
type NodeId = value.NodeId

// StaticNodeId and EntityNodeId construct the non-parameterized flavors of NodeId.
var (
	StaticNodeId = value.StaticNodeId
	EntityNodeId = value.EntityNodeId
)

// NodeType distinguishes the two NodeSnapshot flavors the write path produces. Observable (tests
// assert on it) but does not affect merge semantics.
type NodeType uint8

// Enumeration of NodeType.
const (
	EntityNodeSnapshot NodeType = iota
	ParameterizedValueSnapshot
)

// Edge is one inbound or outbound reference between nodes: the id at the other end, and the path
// (inside the edge-holding node's logical address space) the reference occupies.
type Edge struct {
	Id   NodeId
	Path value.Path
}

// EdgeSetEqual reports whether two edge slices contain the same (id, path) pairs, ignoring order
// (inbound/outbound arrays are semantically unordered multisets per the write path's ordering
// rule).
func EdgeSetEqual(a, b []Edge) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ea := range a {
		found := false
		for j, eb := range b {
			if !used[j] && ea.Id == eb.Id && ea.Path.Equal(eb.Path) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// NodeSnapshot is one node's immutable record: its value plus the inbound/outbound edges that
// connect it to the rest of the graph. A NodeSnapshot is never mutated after it is published into
// a Snapshot; the editor builds new NodeSnapshot values in its own working set and only publishes
// them at Commit.
type NodeSnapshot struct {
	Value    value.Value
	Inbound  []Edge
	Outbound []Edge
	Type     NodeType
}

// Clone makes a shallow copy of the snapshot suitable as the starting point for a copy-on-write
// mutation: Value is deep-cloned (since the editor writes into nested positions), Inbound/Outbound
// are copied slices (since the editor appends/removes edges).
func (n *NodeSnapshot) Clone() *NodeSnapshot {
	if n == nil {
		return &NodeSnapshot{}
	}
	return &NodeSnapshot{
		Value:    value.Clone(n.Value),
		Inbound:  append([]Edge(nil), n.Inbound...),
		Outbound: append([]Edge(nil), n.Outbound...),
		Type:     n.Type,
	}
}

// Equal reports whether two NodeSnapshots are structurally identical (used by the editor's
// reconciliation pass to detect a no-op edit).
func (n *NodeSnapshot) Equal(other *NodeSnapshot) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Type != other.Type || !value.Equal(n.Value, other.Value) {
		return false
	}
	return EdgeSetEqual(n.Inbound, other.Inbound) && EdgeSetEqual(n.Outbound, other.Outbound)
}

// Snapshot is an immutable mapping from NodeId to NodeSnapshot. It is freely shareable across
// threads once published by Commit; a Snapshot is never mutated in place.
//
// Represented as a flat copy-on-write map (one of the two representations the write path's design
// notes sanction) rather than a trie: Commit copies base's map and overlays the surviving working
// entries, but every NodeSnapshot pointer for a node that didn't change is the very pointer base
// held, preserving object identity (invariant: unchanged nodes share identity with base).
type Snapshot struct {
	nodes map[NodeId]*NodeSnapshot

	// projected memoizes Get's reconstructed values by id, so that two positions referencing the
	// same node project to the identical Value instance (invariant: S.Get(P) and S.Get(E) return the
	// same object when P is purely a reference to E). A *sync.Map rather than a plain map so Snapshot
	// stays safe to read concurrently after Commit publishes it, matching the "freely shareable
	// across threads" guarantee; Snapshot is copied by value but projected's pointer is shared, so
	// the cache lives for exactly as long as the Snapshot value that created it.
	projected *sync.Map
}

// Empty returns a Snapshot with no nodes, suitable as the base of a first write.
func Empty() Snapshot {
	return New(map[NodeId]*NodeSnapshot{})
}

// New wraps an already-built node map as a Snapshot. Used by the commit finalizer once it has
// merged its surviving working entries over the base map.
func New(nodes map[NodeId]*NodeSnapshot) Snapshot {
	return Snapshot{nodes: nodes, projected: &sync.Map{}}
}

// Fork returns a shallow copy of s's node map: a new map with the same *NodeSnapshot pointers.
// Overlaying entries onto the fork and wrapping it with New gives a new Snapshot that shares
// identity with s for every id the overlay didn't touch (invariant 3 of the write path's data
// model).
func (s Snapshot) Fork() map[NodeId]*NodeSnapshot {
	forked := make(map[NodeId]*NodeSnapshot, len(s.nodes))
	for id, n := range s.nodes {
		forked[id] = n
	}
	return forked
}

// Len returns the number of nodes in the snapshot.
func (s Snapshot) Len() int {
	return len(s.nodes)
}

// GetNodeSnapshot returns the raw record for id, or (nil, false) if id is not present.
func (s Snapshot) GetNodeSnapshot(id NodeId) (*NodeSnapshot, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Get projects id's reconstructed JSON value: every outbound reference hole in the node's stored
// value is replaced in-place with the referenced node's own projected value, recursively. The graph
// may contain cycles (an entity referencing itself transitively), so projection tracks the set of
// ids on the current path and substitutes Undefined rather than recursing forever if one is
// revisited; a value built while a cycle was in play is not memoized, since it depended on that
// particular call's visiting set rather than purely on id.
func (s Snapshot) Get(id NodeId) (value.Value, bool) {
	if _, ok := s.nodes[id]; !ok {
		return value.Undefined, false
	}
	v, _ := s.project(id, map[NodeId]bool{})
	return v, true
}

// project reconstructs id's value and reports whether that value is safe to memoize. The second
// return is false whenever this call, or any descendant it depended on, was truncated to Undefined
// by the visiting guard; such a value depended on the particular call's visiting set rather than
// purely on id, so it must not be stored in s.projected or a later unrelated Get of the truncated
// descendant would see the cycle-truncated projection instead of its real one.
func (s Snapshot) project(id NodeId, visiting map[NodeId]bool) (value.Value, bool) {
	if cached, ok := s.projected.Load(id); ok {
		return cached, true
	}
	node, ok := s.nodes[id]
	if !ok {
		return value.Undefined, true
	}
	if visiting[id] {
		return value.Undefined, false
	}
	visiting[id] = true

	v := node.Value
	cacheable := true
	for _, edge := range node.Outbound {
		projected, ok := s.project(edge.Id, visiting)
		if !ok {
			cacheable = false
		}
		if len(edge.Path) == 0 {
			// A parameterized value node whose entire value *is* the referenced entity.
			v = projected
			continue
		}
		v = value.SetAtPath(v, edge.Path, projected)
	}

	delete(visiting, id)
	if cacheable {
		s.projected.Store(id, v)
	}
	return v, cacheable
}
