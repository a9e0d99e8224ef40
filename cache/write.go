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
	"context"

	"github.com/relaygql/normalcache/cache/editor"
	"github.com/relaygql/normalcache/cache/query"
	"github.com/relaygql/normalcache/cache/value"
)

// WriteResult is the outcome of a successful Write: the new immutable Snapshot, and the set of node
// ids whose NodeSnapshot identity changed.
type WriteResult struct {
	Snapshot      Snapshot
	EditedNodeIds map[NodeId]struct{}
}

// Write merges payload, described by doc's resolved selection tree, into base, producing a new
// Snapshot and the set of node ids it edited. The merge runs synchronously to completion: per the
// write path's concurrency model there is no internal suspension, so ctx is accepted for the usual
// Go calling convention (and threaded nowhere else) rather than consulted for cancellation.
//
// On success, cacheCtx.SetPreviousWrite is called exactly once with a diagnostic record of the old
// and new projected values for every edited node, the query and the payload, for bookkeeping by
// external layers; Write never reads it back. On error the base snapshot is untouched and
// SetPreviousWrite is not called.
func Write(ctx context.Context, cacheCtx Context, base Snapshot, doc *query.Document, payload value.Value) (WriteResult, error) {
	e := editor.New(cacheCtx, base)
	if err := e.MergePayload(doc, payload); err != nil {
		return WriteResult{}, err
	}

	snapshot, edited, err := e.Commit()
	if err != nil {
		return WriteResult{}, err
	}

	oldValues := make(map[NodeId]value.Value, len(edited))
	newValues := make(map[NodeId]value.Value, len(edited))
	for id := range edited {
		if old, ok := base.Get(id); ok {
			oldValues[id] = old
		}
		if updated, ok := snapshot.Get(id); ok {
			newValues[id] = updated
		}
	}
	cacheCtx.SetPreviousWrite(PreviousWrite{
		Query:     doc,
		Payload:   payload,
		OldValues: oldValues,
		NewValues: newValues,
	})

	return WriteResult{Snapshot: snapshot, EditedNodeIds: edited}, nil
}
