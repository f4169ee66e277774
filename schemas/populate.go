// Copyright (c) 2024 The Metadata Wizard Project and its Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package schemas

import (
	"github.com/esciencelab/mdw/terms"
)

// Walks the given schema tree and, wherever a string node declares a
// controlled vocabulary, injects the vocabulary's term identifiers and
// display labels as the node's enumerated values, in catalog order. The
// node is mutated in place and returned; populating an already-populated
// node is a no-op with the same result. A node naming a vocabulary absent
// from the catalog is left without an enumeration and renders as free text.
func Populate(schema *Schema) *Schema {
	if schema == nil {
		return nil
	}
	switch schema.Type {
	case TypeObject:
		for _, definition := range schema.Definitions {
			Populate(definition)
		}
		for _, property := range schema.Properties {
			Populate(property)
		}
		// Each dependency is keyed on a discriminator property; the
		// discriminator itself must keep the branch-selecting values it
		// declares, so it is skipped.
		for discriminator, dependency := range schema.Dependencies {
			for _, branch := range dependency.OneOf {
				for name, property := range branch.Properties {
					if name != discriminator {
						Populate(property)
					}
				}
			}
		}
	case TypeArray:
		Populate(schema.Items)
	case TypeString:
		if schema.ControlledTerm != "" {
			termList := terms.Lookup(schema.ControlledTerm)
			if termList != nil {
				schema.Enum = make([]string, len(termList))
				schema.EnumNames = make([]string, len(termList))
				for i, term := range termList {
					schema.Enum[i] = term.Identifier
					schema.EnumNames[i] = term.Label
				}
			}
		}
	}
	return schema
}
