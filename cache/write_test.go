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

package cache_test

import (
	"context"

	"github.com/relaygql/normalcache/cache"
	"github.com/relaygql/normalcache/cache/query"
	"github.com/relaygql/normalcache/cache/value"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var queryRoot = cache.StaticNodeId("Query")

var _ = Describe("Write", func() {
	It("merges a payload into an empty snapshot and returns the edited node ids", func() {
		doc := &query.Document{
			RootId:        queryRoot,
			RootSelection: &query.SelectionSet{Fields: []*query.Field{leaf("name")}},
		}
		ctx := &fakeContext{}
		result, err := cache.Write(context.Background(), ctx, cache.Empty(), doc, value.Object{"name": "alice"})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result.EditedNodeIds).Should(HaveKey(queryRoot))

		v, ok := result.Snapshot.Get(queryRoot)
		Expect(ok).Should(BeTrue())
		Expect(v).Should(Equal(value.Object{"name": "alice"}))
	})

	It("records a PreviousWrite diagnostic with the old and new projected values on success", func() {
		doc := &query.Document{
			RootId:        queryRoot,
			RootSelection: &query.SelectionSet{Fields: []*query.Field{leaf("name")}},
		}
		ctx := &fakeContext{}

		base := cache.Empty()
		result1, err := cache.Write(context.Background(), ctx, base, doc, value.Object{"name": "alice"})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(ctx.writeCount).Should(Equal(1))

		_, err = cache.Write(context.Background(), ctx, result1.Snapshot, doc, value.Object{"name": "bob"})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(ctx.writeCount).Should(Equal(2))

		pw := ctx.previousWrite
		Expect(pw.Query).Should(BeIdenticalTo(doc))
		Expect(pw.OldValues[queryRoot]).Should(Equal(value.Object{"name": "alice"}))
		Expect(pw.NewValues[queryRoot]).Should(Equal(value.Object{"name": "bob"}))
	})

	It("leaves the base snapshot untouched and does not call SetPreviousWrite on error", func() {
		doc := &query.Document{
			RootId:        queryRoot,
			RootSelection: &query.SelectionSet{Fields: []*query.Field{leaf("name")}},
		}
		ctx := &fakeContext{}
		base := cache.Empty()

		_, err := cache.Write(context.Background(), ctx, base, doc, "not an object")
		Expect(err).Should(HaveOccurred())
		Expect(ctx.writeCount).Should(Equal(0))

		_, ok := base.Get(queryRoot)
		Expect(ok).Should(BeFalse())

		var cacheErr *cache.Error
		Expect(err).Should(BeAssignableToTypeOf(cacheErr))
		Expect(err.(*cache.Error).Kind).Should(Equal(cache.ErrKindMalformedPayload))
	})

	It("surfaces an unresolved required variable as ErrKindUnresolvedVariable", func() {
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
		ctx := &fakeContext{variables: map[string]value.Value{}}
		_, err := cache.Write(context.Background(), ctx, cache.Empty(), doc, value.Object{"user": value.Object{"name": "alice"}})
		Expect(err).Should(HaveOccurred())
		Expect(err.(*cache.Error).Kind).Should(Equal(cache.ErrKindUnresolvedVariable))
	})
})
