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
	"fmt"

	"github.com/relaygql/normalcache/cache"
	"github.com/relaygql/normalcache/cache/query"
	"github.com/relaygql/normalcache/cache/value"
)

// fakeContext is a minimal cache.Context: entities are identified by the value of their
// selection's IdentityField alone (untyped), variables come from a fixed map, and SetPreviousWrite
// just records its argument for the test to inspect.
type fakeContext struct {
	variables     map[string]value.Value
	previousWrite cache.PreviousWrite
	writeCount    int
}

func (c *fakeContext) ResolveEntityId(selection *query.SelectionSet, obj value.Object) (cache.NodeId, bool) {
	id, present := obj[selection.IdentityField]
	if !present || value.IsUndefined(id) || id == nil {
		return "", false
	}
	return cache.EntityNodeId("", fmt.Sprint(id)), true
}

func (c *fakeContext) ResolveVariable(name string) (value.Value, bool) {
	v, ok := c.variables[name]
	return v, ok
}

func (c *fakeContext) SetPreviousWrite(pw cache.PreviousWrite) {
	c.previousWrite = pw
	c.writeCount++
}

func leaf(name string) *query.Field {
	return &query.Field{Name: name}
}
