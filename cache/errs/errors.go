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

// Package errs implements the write path's upspin-style error value. It is a leaf package (only
// depends on cache/value) so that both the root cache package and cache/editor can construct and
// inspect Errors without an import cycle: cache.Write delegates to editor.New/MergePayload/Commit,
// so editor cannot depend on cache itself. The root cache package re-exports these names as its
// public API.
package errs

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/relaygql/normalcache/cache/value"
)

// Op describes the operation that failed, usually "package.Method", such as "editor.MergePayload".
type Op string

// Kind classifies a write failure per the write path's error taxonomy.
type Kind uint8

// Enumeration of Kind.
const (
	// Other is an unclassified error. Not printed in the error message.
	Other Kind = iota

	// MalformedPayload: array where object expected, scalar where selection expected object, or vice
	// versa.
	MalformedPayload

	// UnresolvedVariable: query references a variable not supplied and lacking a default.
	UnresolvedVariable

	// InvalidSelection: selection references an unknown field shape.
	InvalidSelection

	// Internal: bug indicator; abort.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "other error"
	case MalformedPayload:
		return "malformed payload"
	case UnresolvedVariable:
		return "unresolved variable"
	case InvalidSelection:
		return "invalid selection"
	case Internal:
		return "internal error"
	}
	return "unknown error kind"
}

// Error describes a failure encountered while merging a payload into a snapshot. All write
// failures abort atomically; the caller is always handed a typed *Error describing the kind and
// the offending path rather than a partial result.
//
// Modeled on the teacher's upspin-style error value (Op/Kind/wrapped Err), without the
// source-location plumbing a parser would need: queries arrive already resolved, so there is no
// document position to blame, only a value.Path into the payload or the stored value.
type Error struct {
	// Op is the operation being performed, usually the name of the method being invoked.
	Op Op

	// Kind is the class of error.
	Kind Kind

	// Message describes the error for debugging purposes.
	Message string

	// Path locates the offending position within the payload or a node's value, if applicable.
	Path value.Path

	// Err is the underlying error that triggered this one, if any.
	Err error
}

var _ error = (*Error)(nil)

// New builds an Error value. args may contain any of Op, Kind, value.Path, or an underlying error
// to wrap; unrecognized argument types panic, mirroring the teacher's strict variadic constructor
// (a malformed call site is a programmer error, not a runtime condition to swallow).
func New(message string, args ...interface{}) *Error {
	e := &Error{Message: message}
	for _, arg := range args {
		switch arg := arg.(type) {
		case Op:
			e.Op = arg
		case Kind:
			e.Kind = arg
		case value.Path:
			e.Path = arg
		case error:
			e.Err = arg
		default:
			panic(fmt.Sprintf("errs.New: unsupported argument type %T", arg))
		}
	}

	// Propagate kind and path from an underlying *Error when this call didn't set its own, so a
	// low-level error (e.g. from query.ResolveArguments) keeps its classification as it's wrapped on
	// the way up.
	if prev, ok := e.Err.(*Error); ok {
		if e.Kind == Other {
			e.Kind = prev.Kind
		}
		if len(e.Path) == 0 {
			e.Path = prev.Path
		}
	}
	return e
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	msg := e.Message
	if len(e.Op) > 0 {
		msg = string(e.Op) + ": " + msg
	}
	if e.Kind != Other {
		msg += " (" + e.Kind.String() + ")"
	}
	if len(e.Path) > 0 {
		msg += " at " + e.Path.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// MarshalJSON implements json.Marshaler via jsoniter, matching the teacher's use of
// json-iterator/go as a drop-in encoding/json replacement for error payloads.
func (e *Error) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(struct {
		Message string `json:"message"`
		Kind    string `json:"kind,omitempty"`
		Path    string `json:"path,omitempty"`
	}{
		Message: e.Message,
		Kind:    e.Kind.String(),
		Path:    e.Path.String(),
	})
}
