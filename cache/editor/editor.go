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

package editor

import (
	"fmt"

	"github.com/relaygql/normalcache/cache/errs"
	"github.com/relaygql/normalcache/cache/graph"
	"github.com/relaygql/normalcache/cache/query"
	"github.com/relaygql/normalcache/cache/value"
)

// Editor builds one new graph.Snapshot from a base snapshot by merging one or more payloads into
// it. It is single-use: call MergePayload any number of times, then Commit exactly once. An Editor
// is not safe for concurrent use; callers needing concurrent writes serialize them, each against
// the Snapshot the previous write committed.
type Editor struct {
	ctx  Context
	base graph.Snapshot

	// working holds copy-on-write clones of every node the merge touched, keyed by id. A node
	// present here shadows base for all reads and is what Commit publishes.
	working map[graph.NodeId]*graph.NodeSnapshot

	// touched records every id the merge wrote to, in the order first touched, before the
	// reconciliation pass removes the ones that ended up unchanged. Commit reports the surviving
	// subset as its edited-id set.
	touched []graph.NodeId

	committed bool
	err       error
}

// New builds an Editor over base. ctx supplies entity-id and variable resolution for every
// MergePayload call made against it.
func New(ctx Context, base graph.Snapshot) *Editor {
	return &Editor{
		ctx:     ctx,
		base:    base,
		working: map[graph.NodeId]*graph.NodeSnapshot{},
	}
}

// MergePayload walks doc's selection against payload, merging it into the node named doc.RootId.
// It may be called more than once against the same Editor (each call's writes compose with prior
// calls', as if the payloads had been merged into one object first) as long as Commit has not yet
// been called. The first error aborts the merge; the Editor is left unusable and every subsequent
// call, including Commit, returns the same error.
func (e *Editor) MergePayload(doc *query.Document, payload value.Value) error {
	if e.committed {
		return errs.New("editor already committed", errs.Op("editor.MergePayload"), errs.Internal)
	}
	if e.err != nil {
		return e.err
	}

	obj, ok := value.AsObject(payload)
	if !ok {
		e.err = errs.New("root payload must be an object",
			errs.Op("editor.MergePayload"), errs.MalformedPayload, value.Path{})
		return e.err
	}

	if err := e.mergeFieldsInto(doc.RootId, value.Path{}, doc.RootSelection, obj); err != nil {
		e.err = err
		return err
	}
	return nil
}

// Commit finalizes the merge: it runs the reconciliation pass (reverting any copy-on-write clone
// that ended up structurally equal to what base already held), publishes the surviving clones into
// a new graph.Snapshot that shares NodeSnapshot pointers with base for everything it didn't change,
// and returns that snapshot plus the set of node ids it actually edited. Calling Commit after a
// MergePayload call returned an error returns that original error; calling it a second time after
// a successful Commit returns an Internal "editor already committed" error.
func (e *Editor) Commit() (graph.Snapshot, map[graph.NodeId]struct{}, error) {
	if e.err != nil {
		return graph.Snapshot{}, nil, e.err
	}
	if e.committed {
		return graph.Snapshot{}, nil, errs.New("editor already committed",
			errs.Op("editor.Commit"), errs.Internal)
	}
	e.committed = true

	edited := map[graph.NodeId]struct{}{}
	forked := e.base.Fork()
	for _, id := range e.touched {
		clone := e.working[id]
		if base, ok := e.base.GetNodeSnapshot(id); ok && clone.Equal(base) {
			// Reference-no-op: this clone's final content is identical to what base already held
			// (e.g. re-asserting the same edge, or writing back the same scalar). Keep base's
			// pointer so identity-preservation holds for every reader that compares by pointer.
			forked[id] = base
			continue
		}
		forked[id] = clone
		edited[id] = struct{}{}
	}

	return graph.New(forked), edited, nil
}

// ensure returns the working (copy-on-write) NodeSnapshot for id, cloning it from base (or starting
// a fresh zero-value NodeSnapshot if base has none) the first time id is touched in this merge.
func (e *Editor) ensure(id graph.NodeId) *graph.NodeSnapshot {
	if n, ok := e.working[id]; ok {
		return n
	}
	var clone *graph.NodeSnapshot
	if base, ok := e.base.GetNodeSnapshot(id); ok {
		clone = base.Clone()
	} else {
		clone = &graph.NodeSnapshot{Value: value.Undefined}
	}
	e.working[id] = clone
	e.touched = append(e.touched, id)
	return clone
}

// view returns the current (possibly still base) NodeSnapshot for id without cloning it, or nil if
// id does not exist yet in either working or base.
func (e *Editor) view(id graph.NodeId) *graph.NodeSnapshot {
	if n, ok := e.working[id]; ok {
		return n
	}
	if n, ok := e.base.GetNodeSnapshot(id); ok {
		return n
	}
	return nil
}

// markEntity records that id's node represents an entity (as opposed to a parameterized value
// node), for callers that care about graph.NodeSnapshot.Type.
func (e *Editor) markEntity(id graph.NodeId) {
	e.ensure(id).Type = graph.EntityNodeSnapshot
}

// markParameterized records that id's node represents a parameterized value node.
func (e *Editor) markParameterized(id graph.NodeId) {
	e.ensure(id).Type = graph.ParameterizedValueSnapshot
}

// existingOutboundEdgeTarget returns the id an existing outbound edge at path on holderId points
// to, if any.
func (e *Editor) existingOutboundEdgeTarget(holderId graph.NodeId, path value.Path) (graph.NodeId, bool) {
	node := e.view(holderId)
	if node == nil {
		return "", false
	}
	for _, edge := range node.Outbound {
		if edge.Path.Equal(path) {
			return edge.Id, true
		}
	}
	return "", false
}

// addOutboundEdge records that holderId references toId at path, maintaining toId's inbound index
// symmetrically. If an outbound edge already sits at path pointing elsewhere, it is replaced (its
// old target's matching inbound edge is removed first); if it already points to toId, this is a
// no-op.
func (e *Editor) addOutboundEdge(holderId, toId graph.NodeId, path value.Path) {
	existing := e.view(holderId)
	if existing != nil {
		for i, edge := range existing.Outbound {
			if !edge.Path.Equal(path) {
				continue
			}
			if edge.Id == toId {
				return
			}
			e.removeInboundEdge(edge.Id, holderId, path)
			node := e.ensure(holderId)
			node.Outbound[i] = graph.Edge{Id: toId, Path: path}
			e.addInboundEdge(toId, holderId, path)
			return
		}
	}
	node := e.ensure(holderId)
	node.Outbound = append(node.Outbound, graph.Edge{Id: toId, Path: path})
	e.addInboundEdge(toId, holderId, path)
}

// removeOutboundEdgeAt removes holderId's outbound edge at path, if any, maintaining the target's
// inbound index symmetrically.
func (e *Editor) removeOutboundEdgeAt(holderId graph.NodeId, path value.Path) {
	existing := e.view(holderId)
	if existing == nil {
		return
	}
	for i, edge := range existing.Outbound {
		if !edge.Path.Equal(path) {
			continue
		}
		node := e.ensure(holderId)
		node.Outbound = append(append([]graph.Edge(nil), node.Outbound[:i]...), node.Outbound[i+1:]...)
		e.removeInboundEdge(edge.Id, holderId, path)
		return
	}
}

func (e *Editor) addInboundEdge(toId, fromId graph.NodeId, path value.Path) {
	node := e.ensure(toId)
	for _, edge := range node.Inbound {
		if edge.Id == fromId && edge.Path.Equal(path) {
			return
		}
	}
	node.Inbound = append(node.Inbound, graph.Edge{Id: fromId, Path: path})
}

func (e *Editor) removeInboundEdge(toId, fromId graph.NodeId, path value.Path) {
	node := e.view(toId)
	if node == nil {
		return
	}
	for i, edge := range node.Inbound {
		if edge.Id != fromId || !edge.Path.Equal(path) {
			continue
		}
		working := e.ensure(toId)
		working.Inbound = append(append([]graph.Edge(nil), working.Inbound[:i]...), working.Inbound[i+1:]...)
		return
	}
}

// getValueAtPath reads holderId's current (working-or-base) value at path, or Undefined if holderId
// or path does not resolve.
func (e *Editor) getValueAtPath(holderId graph.NodeId, path value.Path) value.Value {
	node := e.view(holderId)
	if node == nil {
		return value.Undefined
	}
	return value.Get(node.Value, path)
}

// setValueAtPath writes val at path inside holderId's value.
func (e *Editor) setValueAtPath(holderId graph.NodeId, path value.Path, val value.Value) {
	node := e.ensure(holderId)
	node.Value = value.SetAtPath(node.Value, path, value.Clone(val))
}

// clearValueAtPath removes whatever holderId's value holds at path, without creating anything: used
// when a field turns out to be a reference (parameterized node or entity) so the holder's own value
// no longer exposes it inline.
func (e *Editor) clearValueAtPath(holderId graph.NodeId, path value.Path) {
	node := e.ensure(holderId)
	node.Value = value.RemoveAtPath(node.Value, path)
}

// ensureArrayLength fixes holderId's value at path to be an Array of exactly n elements, padding
// with Undefined holes. Called after an incoming array has been walked, since an array whose every
// element lived entirely behind outbound edges would otherwise never get its shape recorded.
func (e *Editor) ensureArrayLength(holderId graph.NodeId, path value.Path, n int) {
	current := e.getValueAtPath(holderId, path)
	resized := value.EnsureArrayLength(current, n)
	node := e.ensure(holderId)
	node.Value = value.SetAtPath(node.Value, path, resized)
}

func (e *Editor) malformedPayload(path value.Path, message string) error {
	return errs.New(message, errs.Op("editor.MergePayload"), errs.MalformedPayload, path)
}

func (e *Editor) variableError(fieldPath value.Path, err error) error {
	return errs.New(fmt.Sprintf("failed to resolve field arguments: %s", err.Error()),
		errs.Op("editor.MergePayload"), errs.UnresolvedVariable, fieldPath, err)
}
