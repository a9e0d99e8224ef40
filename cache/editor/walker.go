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

	"github.com/relaygql/normalcache/cache/graph"
	"github.com/relaygql/normalcache/cache/query"
	"github.com/relaygql/normalcache/cache/value"
)

// This file walks a selection against a payload, driven entirely by the selection tree rather than
// by the payload's own shape (a payload field absent from the selection is simply never visited).
// Each of mergeFieldsInto/mergeField/mergeArray/mergeArrayElement corresponds to one Enter/Leave
// pair over a position in the tree - entering a field or an array index, merging whatever the
// payload supplies there, then leaving - mirroring the teacher's collectFields and
// buildChildExecutionNodesForSelectionSet, which walk a selection set the same way to build
// execution nodes instead of merged values.

// mergeFieldsInto merges obj's fields into containerId's logical address space at basePath,
// visiting every field of selection (not every key of obj - a key selection didn't ask for is
// simply ignored, and a field selection asked for but obj omits is Undefined, a no-op).
func (e *Editor) mergeFieldsInto(containerId graph.NodeId, basePath value.Path, selection *query.SelectionSet, obj value.Object) error {
	for _, field := range selection.Fields {
		payload, present := obj[field.Name]
		if !present {
			payload = value.Undefined
		}
		if err := e.mergeField(containerId, basePath, field, payload); err != nil {
			return err
		}
	}
	return nil
}

// mergeField is the Enter/Leave pair for one field. containerId/basePath describe the position
// field.Name sits at before arguments are considered; if field carries arguments, a parameterized
// value node is resolved (creating the outbound edge on containerId) and the field's own payload is
// merged into that node's address space instead, with the path reset to the empty path.
func (e *Editor) mergeField(containerId graph.NodeId, basePath value.Path, field *query.Field, payload value.Value) error {
	if value.IsUndefined(payload) {
		return nil
	}

	fieldPath := basePath.Append(field.Name)

	if field.HasArguments() {
		args, err := query.ResolveArguments(field, e.ctx.ResolveVariable)
		if err != nil {
			return e.variableError(fieldPath, err)
		}
		paramId := value.ParameterizedId(containerId, fieldPath, args)
		e.addOutboundEdge(containerId, paramId, fieldPath)
		e.clearValueAtPath(containerId, fieldPath)
		e.markParameterized(paramId)
		return e.mergeFieldValue(paramId, value.Path{}, field, payload)
	}

	return e.mergeFieldValue(containerId, fieldPath, field, payload)
}

// mergeFieldValue merges payload for field at (holderId, path): holderId's address space, path the
// position within it. This is where the scalar/null/object/array shape decision happens.
func (e *Editor) mergeFieldValue(holderId graph.NodeId, path value.Path, field *query.Field, payload value.Value) error {
	if payload == nil {
		// Explicit null: per the walker's null rule, emit a write-null and do not descend, even if
		// field has a selection. Any reference previously held at this position is cleared.
		e.removeOutboundEdgeAt(holderId, path)
		e.setValueAtPath(holderId, path, nil)
		return nil
	}

	if field.Selection == nil {
		// A leaf field: whatever shape the payload has (scalar, array of scalars, or an opaque
		// object blob) is copied through as-is. A leaf carries no reference semantics, so any
		// reference previously recorded at this position (from an earlier, differently-shaped write)
		// is cleared.
		e.removeOutboundEdgeAt(holderId, path)
		e.setValueAtPath(holderId, path, payload)
		return nil
	}

	if arr, ok := value.AsArray(payload); ok {
		return e.mergeArray(holderId, path, field.Selection, arr)
	}

	obj, ok := value.AsObject(payload)
	if !ok {
		return e.malformedPayload(path,
			fmt.Sprintf("field %q expects an object or an array of objects, got a scalar payload", field.Name))
	}
	return e.mergeObjectAt(holderId, path, field.Selection, obj)
}

// mergeArray walks an incoming array field element by element. The incoming array replaces the
// container's previous inline array wholesale, and every outbound edge at or below an index beyond
// the incoming array's length is removed (the referenced node itself is left in place; nothing is
// evicted). After every element is merged, the container's array shape is fixed at exactly
// len(arr), even if every element's content lived entirely behind outbound edges.
func (e *Editor) mergeArray(holderId graph.NodeId, path value.Path, selection *query.SelectionSet, arr value.Array) error {
	if node := e.view(holderId); node != nil {
		for _, edge := range node.Outbound {
			if len(edge.Path) > len(path) && edge.Path[:len(path)].Equal(path) {
				if i, ok := edge.Path[len(path)].(int); ok && i >= len(arr) {
					e.removeOutboundEdgeAt(holderId, edge.Path)
				}
			}
		}
	}
	e.setValueAtPath(holderId, path, value.EnsureArrayLength(nil, len(arr)))

	for i, elem := range arr {
		if err := e.mergeArrayElement(holderId, path.Append(i), selection, elem); err != nil {
			return err
		}
	}

	e.ensureArrayLength(holderId, path, len(arr))
	return nil
}

// mergeArrayElement is the Enter/Leave pair for one array index. Unlike a field, an index carries
// no arguments of its own - only the nested selection, shared by every element.
func (e *Editor) mergeArrayElement(holderId graph.NodeId, elemPath value.Path, selection *query.SelectionSet, elem value.Value) error {
	if elem == nil {
		e.removeOutboundEdgeAt(holderId, elemPath)
		e.setValueAtPath(holderId, elemPath, nil)
		return nil
	}

	obj, ok := value.AsObject(elem)
	if !ok {
		return e.malformedPayload(elemPath, "array element expected an object payload")
	}
	return e.mergeObjectAt(holderId, elemPath, selection, obj)
}

// mergeObjectAt decides whether obj, arriving at (holderId, path), is an entity - in which case
// holderId gets an outbound edge to the entity and the entity's own fields are merged into its own
// address space - or a plain nested object, merged directly into holderId's value at path.
//
// An object counts as an entity if either (a) selection declares an identity field and obj
// supplies it, or (b) holderId already holds an outbound edge at exactly this path from an earlier
// write. (b) is the identity-continuity rule: a later payload that re-writes the same position
// without repeating the identity field (a partial response, say) still targets the entity already
// living there rather than reverting to an inline nested value.
func (e *Editor) mergeObjectAt(holderId graph.NodeId, path value.Path, selection *query.SelectionSet, obj value.Object) error {
	targetId, haveTarget := e.resolveEntityTarget(selection, obj)
	if !haveTarget {
		targetId, haveTarget = e.existingOutboundEdgeTarget(holderId, path)
	}

	if !haveTarget {
		return e.mergeFieldsInto(holderId, path, selection, obj)
	}

	e.addOutboundEdge(holderId, targetId, path)
	e.clearValueAtPath(holderId, path)
	e.markEntity(targetId)
	return e.mergeFieldsInto(targetId, value.Path{}, selection, obj)
}

func (e *Editor) resolveEntityTarget(selection *query.SelectionSet, obj value.Object) (graph.NodeId, bool) {
	if selection.IdentityField == "" {
		return "", false
	}
	idVal, present := obj[selection.IdentityField]
	if !present || value.IsUndefined(idVal) || idVal == nil {
		return "", false
	}
	return e.ctx.ResolveEntityId(selection, obj)
}
