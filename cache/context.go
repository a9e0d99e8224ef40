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

package cache

import (
	"github.com/relaygql/normalcache/cache/query"
	"github.com/relaygql/normalcache/cache/value"
)

// Context is the opaque carrier Write threads through a merge: an entity-id resolver, a variable
// resolver, and a writable diagnostic slot. Its resolver methods satisfy editor.Context directly,
// so Write passes a Context straight through to editor.New without adapting it.
type Context interface {
	// ResolveEntityId inspects a payload object landing at a position selection describes and
	// returns the NodeId it should be stored under, plus whether selection/obj describe an entity at
	// all.
	ResolveEntityId(selection *query.SelectionSet, obj value.Object) (NodeId, bool)

	// ResolveVariable looks up a query variable's runtime value by name.
	ResolveVariable(name string) (value.Value, bool)

	// SetPreviousWrite installs this write's diagnostic record. Write calls it exactly once, after a
	// successful merge, for bookkeeping by external layers (e.g. an observer or optimistic-update
	// rollback mechanism); Write never reads it back.
	SetPreviousWrite(PreviousWrite)
}

// PreviousWrite is the diagnostic record Write leaves behind on success: the query and payload that
// produced it, plus the old and new projected values of every edited node, keyed by NodeId.
type PreviousWrite struct {
	Query     *query.Document
	Payload   value.Value
	OldValues map[NodeId]value.Value
	NewValues map[NodeId]value.Value
}
