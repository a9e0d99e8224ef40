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

// Package cache is the public API of the normalized graph cache's write path: an immutable
// Snapshot, the Write operation that merges a payload into one, and the supporting NodeId/NodeSnapshot
// data model. The data model itself lives in cache/graph (split out to avoid a cache <-> editor
// import cycle, since Write delegates to editor); this file re-exports it under the names callers
// are expected to use.
package cache

import "github.com/relaygql/normalcache/cache/graph"

type (
	// NodeId is an opaque stable identifier for a node in the cache.
	NodeId = graph.NodeId

	// NodeType distinguishes entity nodes from parameterized value nodes.
	NodeType = graph.NodeType

	// Edge is one inbound or outbound reference between nodes.
	Edge = graph.Edge

	// NodeSnapshot is one node's immutable record.
	NodeSnapshot = graph.NodeSnapshot

	// Snapshot is an immutable mapping from NodeId to NodeSnapshot.
	Snapshot = graph.Snapshot
)

// Enumeration of NodeType.
const (
	EntityNodeSnapshot         = graph.EntityNodeSnapshot
	ParameterizedValueSnapshot = graph.ParameterizedValueSnapshot
)

// StaticNodeId, EntityNodeId and Empty are re-exported from cache/graph/cache/value.
var (
	StaticNodeId = graph.StaticNodeId
	EntityNodeId = graph.EntityNodeId
	Empty        = graph.Empty
)
