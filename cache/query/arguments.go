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

package query

import (
	"fmt"

	"github.com/relaygql/normalcache/cache/value"
)

// VariableResolver looks up a variable's runtime value by name. It returns false if the variable
// was not supplied at all.
type VariableResolver func(name string) (value.Value, bool)

// UnresolvedVariableError reports a variable referenced by the query with no supplied value and no
// default, mirroring spec's UnresolvedVariable error kind. The editor wraps this in a cache.Error
// with KindUnresolvedVariable.
type UnresolvedVariableError struct {
	FieldName    string
	ArgumentName string
	VariableName string
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf(
		`argument %q of field %q references variable "$%s" which was not supplied and has no default`,
		e.ArgumentName, e.FieldName, e.VariableName)
}

// ResolveArguments builds a field's canonical argument map: variables substituted via resolveVar,
// declared defaults filled in for arguments the request omitted, and declared-but-omitted optional
// arguments materialized as explicit null (matching the node-id contract in the write-path spec).
//
// Grounded on the teacher's ArgumentValues (graphql/internal/value/argument_values.go): walk the
// argument definitions (not the supplied values) so that every declared argument, supplied or not,
// gets an entry in the result.
func ResolveArguments(field *Field, resolveVar VariableResolver) (value.Object, error) {
	args := field.Arguments
	if len(args) == 0 {
		return value.Object{}, nil
	}

	coerced := make(value.Object, len(args))
	for _, arg := range args {
		switch {
		case arg.IsVariable:
			v, ok := resolveVar(arg.VariableName)
			if !ok {
				if arg.HasDefault {
					coerced[arg.Name] = arg.Default
					continue
				}
				if arg.Required {
					return nil, &UnresolvedVariableError{
						FieldName:    field.Name,
						ArgumentName: arg.Name,
						VariableName: arg.VariableName,
					}
				}
				coerced[arg.Name] = nil
				continue
			}
			coerced[arg.Name] = v

		case arg.Supplied:
			coerced[arg.Name] = arg.Value

		case arg.HasDefault:
			coerced[arg.Name] = arg.Default

		default:
			// Declared but not supplied and no default: optional arguments are materialized as
			// explicit null so the canonical argument map always has an entry per declared
			// argument.
			coerced[arg.Name] = nil
		}
	}
	return coerced, nil
}
