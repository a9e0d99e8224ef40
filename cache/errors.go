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

import "github.com/relaygql/normalcache/cache/errs"

// Op, ErrKind and Error are re-exported from cache/errs, the leaf package editor also builds its
// errors with (see errs' package doc for why the error type lives outside cache).
type (
	Op      = errs.Op
	ErrKind = errs.Kind
	Error   = errs.Error
)

// NewError constructs an *Error; see errs.New.
var NewError = errs.New

// Enumeration of ErrKind.
const (
	ErrKindOther              = errs.Other
	ErrKindMalformedPayload   = errs.MalformedPayload
	ErrKindUnresolvedVariable = errs.UnresolvedVariable
	ErrKindInvalidSelection   = errs.InvalidSelection
	ErrKindInternal           = errs.Internal
)
