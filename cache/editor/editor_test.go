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

package editor_test

import (
	"github.com/relaygql/normalcache/cache/editor"
	"github.com/relaygql/normalcache/cache/graph"
	"github.com/relaygql/normalcache/cache/query"
	"github.com/relaygql/normalcache/cache/value"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var queryRoot = graph.StaticNodeId("Query")

var _ = Describe("Editor", func() {
	ctx := &fakeContext{}

	It("materializes a new parameterized field as its own node", func() {
		doc := &query.Document{
			RootId: queryRoot,
			RootSelection: &query.SelectionSet{Fields: []*query.Field{
				{
					Name:      "user",
					Arguments: []*query.ArgumentDef{{Name: "id", Supplied: true, Value: "1"}},
					Selection: &query.SelectionSet{Fields: []*query.Field{leaf("name")}},
				},
			}},
		}
		payload := value.Object{"user": value.Object{"name": "alice"}}

		e := editor.New(ctx, graph.Empty())
		Expect(e.MergePayload(doc, payload)).Should(Succeed())
		snapshot, edited, err := e.Commit()
		Expect(err).ShouldNot(HaveOccurred())

		paramId := value.ParameterizedId(queryRoot, value.Path{"user"}, value.Object{"id": "1"})
		Expect(edited).Should(HaveKey(queryRoot))
		Expect(edited).Should(HaveKey(paramId))

		root, _ := snapshot.GetNodeSnapshot(queryRoot)
		Expect(root.Outbound).Should(ConsistOf(graph.Edge{Id: paramId, Path: value.Path{"user"}}))

		param, ok := snapshot.GetNodeSnapshot(paramId)
		Expect(ok).Should(BeTrue())
		Expect(param.Type).Should(Equal(graph.ParameterizedValueSnapshot))
		Expect(param.Value).Should(Equal(value.Object{"name": "alice"}))
	})

	It("resolves a parameterized field whose selection declares identity to a direct entity reference", func() {
		doc := &query.Document{
			RootId: queryRoot,
			RootSelection: &query.SelectionSet{Fields: []*query.Field{
				{
					Name:      "user2",
					Arguments: []*query.ArgumentDef{{Name: "id", Supplied: true, Value: "1"}},
					Selection: &query.SelectionSet{
						IdentityField: "id",
						Fields:        []*query.Field{leaf("id"), leaf("name")},
					},
				},
			}},
		}
		payload := value.Object{"user2": value.Object{"id": "1", "name": "alice"}}

		e := editor.New(ctx, graph.Empty())
		Expect(e.MergePayload(doc, payload)).Should(Succeed())
		snapshot, edited, err := e.Commit()
		Expect(err).ShouldNot(HaveOccurred())

		paramId := value.ParameterizedId(queryRoot, value.Path{"user2"}, value.Object{"id": "1"})
		entityId := graph.EntityNodeId("", "1")

		Expect(edited).Should(HaveKey(paramId))
		Expect(edited).Should(HaveKey(entityId))

		param, _ := snapshot.GetNodeSnapshot(paramId)
		Expect(param.Type).Should(Equal(graph.ParameterizedValueSnapshot))
		Expect(param.Outbound).Should(ConsistOf(graph.Edge{Id: entityId, Path: value.Path{}}))
		Expect(value.IsUndefined(param.Value)).Should(BeTrue())

		entity, _ := snapshot.GetNodeSnapshot(entityId)
		Expect(entity.Type).Should(Equal(graph.EntityNodeSnapshot))
		Expect(entity.Value).Should(Equal(value.Object{"id": "1", "name": "alice"}))
		Expect(entity.Inbound).Should(ConsistOf(graph.Edge{Id: paramId, Path: value.Path{}}))

		paramProjected, _ := snapshot.Get(paramId)
		entityProjected, _ := snapshot.Get(entityId)
		Expect(paramProjected).Should(Equal(entityProjected))
	})

	It("updating a direct-reference entity only edits the entity, leaving the parameterized node's identity intact", func() {
		doc := &query.Document{
			RootId: queryRoot,
			RootSelection: &query.SelectionSet{Fields: []*query.Field{
				{
					Name:      "user2",
					Arguments: []*query.ArgumentDef{{Name: "id", Supplied: true, Value: "1"}},
					Selection: &query.SelectionSet{
						IdentityField: "id",
						Fields:        []*query.Field{leaf("id"), leaf("name")},
					},
				},
			}},
		}
		paramId := value.ParameterizedId(queryRoot, value.Path{"user2"}, value.Object{"id": "1"})
		entityId := graph.EntityNodeId("", "1")

		e1 := editor.New(ctx, graph.Empty())
		Expect(e1.MergePayload(doc, value.Object{"user2": value.Object{"id": "1", "name": "alice"}})).Should(Succeed())
		snapshot1, _, err := e1.Commit()
		Expect(err).ShouldNot(HaveOccurred())

		paramBefore, _ := snapshot1.GetNodeSnapshot(paramId)

		e2 := editor.New(ctx, snapshot1)
		Expect(e2.MergePayload(doc, value.Object{"user2": value.Object{"id": "1", "name": "alicia"}})).Should(Succeed())
		snapshot2, edited, err := e2.Commit()
		Expect(err).ShouldNot(HaveOccurred())

		Expect(edited).Should(HaveKey(entityId))
		Expect(edited).ShouldNot(HaveKey(paramId))
		Expect(edited).ShouldNot(HaveKey(queryRoot))

		paramAfter, _ := snapshot2.GetNodeSnapshot(paramId)
		Expect(paramAfter).Should(BeIdenticalTo(paramBefore))

		entity, _ := snapshot2.GetNodeSnapshot(entityId)
		Expect(entity.Value).Should(Equal(value.Object{"id": "1", "name": "alicia"}))
	})

	It("leaves a container's value hollow when every element's content lives entirely behind a parameterized edge", func() {
		doc := &query.Document{
			RootId: queryRoot,
			RootSelection: &query.SelectionSet{Fields: []*query.Field{
				{
					Name: "items",
					Selection: &query.SelectionSet{Fields: []*query.Field{
						{
							Name:      "detail",
							Arguments: []*query.ArgumentDef{{Name: "id", Supplied: true, Value: "99"}},
							Selection: &query.SelectionSet{Fields: []*query.Field{leaf("val")}},
						},
					}},
				},
			}},
		}
		payload := value.Object{"items": value.Array{value.Object{"detail": value.Object{"val": "x"}}}}

		e := editor.New(ctx, graph.Empty())
		Expect(e.MergePayload(doc, payload)).Should(Succeed())
		snapshot, _, err := e.Commit()
		Expect(err).ShouldNot(HaveOccurred())

		detailId := value.ParameterizedId(queryRoot, value.Path{"items", 0, "detail"}, value.Object{"id": "99"})

		root, _ := snapshot.GetNodeSnapshot(queryRoot)
		Expect(root.Value).Should(Equal(value.Object{"items": value.Array{value.Undefined}}))
		Expect(root.Outbound).Should(ConsistOf(graph.Edge{Id: detailId, Path: value.Path{"items", 0, "detail"}}))

		detail, _ := snapshot.GetNodeSnapshot(detailId)
		Expect(detail.Value).Should(Equal(value.Object{"val": "x"}))
	})

	It("reaching the same entity through a second, unparameterized write leaves the parameterized node's projection in sync", func() {
		userDoc := &query.Document{
			RootId: queryRoot,
			RootSelection: &query.SelectionSet{Fields: []*query.Field{
				{
					Name:      "user2",
					Arguments: []*query.ArgumentDef{{Name: "id", Supplied: true, Value: "1"}},
					Selection: &query.SelectionSet{
						IdentityField: "id",
						Fields:        []*query.Field{leaf("id"), leaf("name")},
					},
				},
			}},
		}
		paramId := value.ParameterizedId(queryRoot, value.Path{"user2"}, value.Object{"id": "1"})
		entityId := graph.EntityNodeId("", "1")

		e1 := editor.New(ctx, graph.Empty())
		Expect(e1.MergePayload(userDoc, value.Object{"user2": value.Object{"id": "1", "name": "alice"}})).Should(Succeed())
		snapshot1, _, err := e1.Commit()
		Expect(err).ShouldNot(HaveOccurred())

		directDoc := &query.Document{
			RootId:        entityId,
			RootSelection: &query.SelectionSet{Fields: []*query.Field{leaf("id"), leaf("name")}},
		}

		e2 := editor.New(ctx, snapshot1)
		Expect(e2.MergePayload(directDoc, value.Object{"id": "1", "name": "bob"})).Should(Succeed())
		snapshot2, edited, err := e2.Commit()
		Expect(err).ShouldNot(HaveOccurred())

		Expect(edited).Should(Equal(map[graph.NodeId]struct{}{entityId: {}}))

		paramProjected, _ := snapshot2.Get(paramId)
		entityProjected, _ := snapshot2.Get(entityId)
		Expect(paramProjected).Should(Equal(entityProjected))
		Expect(entityProjected).Should(Equal(value.Object{"id": "1", "name": "bob"}))
	})

	It("continues an existing array-element entity reference when a later write omits the identity field", func() {
		doc := &query.Document{
			RootId: queryRoot,
			RootSelection: &query.SelectionSet{Fields: []*query.Field{
				{
					Name: "items2",
					Selection: &query.SelectionSet{
						IdentityField: "id",
						Fields:        []*query.Field{leaf("id"), leaf("name")},
					},
				},
			}},
		}
		entityId := graph.EntityNodeId("", "5")

		e1 := editor.New(ctx, graph.Empty())
		payload1 := value.Object{"items2": value.Array{value.Object{"id": "5", "name": "bob"}}}
		Expect(e1.MergePayload(doc, payload1)).Should(Succeed())
		snapshot1, _, err := e1.Commit()
		Expect(err).ShouldNot(HaveOccurred())

		rootBefore, _ := snapshot1.GetNodeSnapshot(queryRoot)

		e2 := editor.New(ctx, snapshot1)
		payload2 := value.Object{"items2": value.Array{value.Object{"name": "bobby"}}}
		Expect(e2.MergePayload(doc, payload2)).Should(Succeed())
		snapshot2, edited, err := e2.Commit()
		Expect(err).ShouldNot(HaveOccurred())

		Expect(edited).Should(Equal(map[graph.NodeId]struct{}{entityId: {}}))

		rootAfter, _ := snapshot2.GetNodeSnapshot(queryRoot)
		Expect(rootAfter).Should(BeIdenticalTo(rootBefore))

		entity, _ := snapshot2.GetNodeSnapshot(entityId)
		Expect(entity.Value).Should(Equal(value.Object{"id": "5", "name": "bobby"}))
	})

	It("is idempotent: writing the same payload twice produces an empty edited set the second time", func() {
		doc := &query.Document{
			RootId: queryRoot,
			RootSelection: &query.SelectionSet{Fields: []*query.Field{
				{Name: "name"},
			}},
		}
		payload := value.Object{"name": "static"}

		e1 := editor.New(ctx, graph.Empty())
		Expect(e1.MergePayload(doc, payload)).Should(Succeed())
		snapshot1, _, err := e1.Commit()
		Expect(err).ShouldNot(HaveOccurred())

		e2 := editor.New(ctx, snapshot1)
		Expect(e2.MergePayload(doc, payload)).Should(Succeed())
		_, edited, err := e2.Commit()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(edited).Should(BeEmpty())
	})

	It("rejects a non-object root payload as malformed", func() {
		doc := &query.Document{RootId: queryRoot, RootSelection: &query.SelectionSet{}}
		e := editor.New(ctx, graph.Empty())
		err := e.MergePayload(doc, "not an object")
		Expect(err).Should(HaveOccurred())
	})

	It("errors when a required variable has no supplied value or default", func() {
		doc := &query.Document{
			RootId: queryRoot,
			RootSelection: &query.SelectionSet{Fields: []*query.Field{
				{
					Name: "user",
					Arguments: []*query.ArgumentDef{
						{Name: "id", IsVariable: true, VariableName: "userId", Required: true},
					},
					Selection: &query.SelectionSet{Fields: []*query.Field{leaf("name")}},
				},
			}},
		}
		payload := value.Object{"user": value.Object{"name": "alice"}}

		e := editor.New(&fakeContext{variables: map[string]value.Value{}}, graph.Empty())
		err := e.MergePayload(doc, payload)
		Expect(err).Should(HaveOccurred())

		_, _, commitErr := e.Commit()
		Expect(commitErr).Should(Equal(err))
	})
})
