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

package value_test

import (
	"github.com/relaygql/normalcache/cache/value"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParameterizedId", func() {
	It("is deterministic for equivalent inputs", func() {
		id1 := value.ParameterizedId("Query", value.Path{"foo"}, value.Object{"id": 1.0, "flag": true})
		id2 := value.ParameterizedId("Query", value.Path{"foo"}, value.Object{"flag": true, "id": 1.0})
		Expect(id1).Should(Equal(id2))
	})

	It("distinguishes different containers", func() {
		id1 := value.ParameterizedId("Query", value.Path{"foo"}, value.Object{"id": 1.0})
		id2 := value.ParameterizedId("Other", value.Path{"foo"}, value.Object{"id": 1.0})
		Expect(id1).ShouldNot(Equal(id2))
	})

	It("distinguishes different paths", func() {
		id1 := value.ParameterizedId("Query", value.Path{"foo"}, value.Object{"id": 1.0})
		id2 := value.ParameterizedId("Query", value.Path{0, "foo"}, value.Object{"id": 1.0})
		Expect(id1).ShouldNot(Equal(id2))
	})

	It("distinguishes int, string and float arguments of the same printed form", func() {
		ids := map[value.NodeId]bool{}
		for _, v := range []value.Value{1, "1", 1.0} {
			id := value.ParameterizedId("Query", value.Path{"foo"}, value.Object{"id": v})
			Expect(ids).ShouldNot(HaveKey(id))
			ids[id] = true
		}
	})

	It("normalizes equivalent float representations", func() {
		id1 := value.ParameterizedId("Query", value.Path{"foo"}, value.Object{"n": 1.0})
		id2 := value.ParameterizedId("Query", value.Path{"foo"}, value.Object{"n": float64(1)})
		Expect(id1).Should(Equal(id2))
	})

	It("distinguishes explicit null from a missing argument", func() {
		id1 := value.ParameterizedId("Query", value.Path{"foo"}, value.Object{"id": 1.0, "opt": nil})
		id2 := value.ParameterizedId("Query", value.Path{"foo"}, value.Object{"id": 1.0, "opt": value.Undefined})
		Expect(id1).ShouldNot(Equal(id2))
	})
})

var _ = Describe("EntityNodeId", func() {
	It("namespaces by type when given one", func() {
		Expect(value.EntityNodeId("User", "1")).Should(Equal(value.NodeId("User:1")))
	})

	It("falls back to the bare id when untyped", func() {
		Expect(value.EntityNodeId("", "1")).Should(Equal(value.NodeId("1")))
	})
})
