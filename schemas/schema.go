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

// This package holds the JSON-Schema-like form descriptions handed to the
// external form renderer: the schema tree type itself, the base templates
// for the dataset and specimen forms, the populator that injects controlled
// vocabulary terms, and the factory functions that derive step-specific
// schemas from the base templates.
package schemas

// the kind of a schema node
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
)

// A node in a schema tree. Marshals to the JSON-Schema-like wire form
// consumed by the form renderer.
type Schema struct {
	Type   Type   `json:"type,omitempty"`
	Title  string `json:"title,omitempty"`
	Format string `json:"format,omitempty"`
	// default value for the field described by this node
	Default any `json:"default,omitempty"`

	// object nodes
	Properties   map[string]*Schema     `json:"properties,omitempty"`
	Required     []string               `json:"required,omitempty"`
	Definitions  map[string]*Schema     `json:"definitions,omitempty"`
	Dependencies map[string]*Dependency `json:"dependencies,omitempty"`

	// array nodes
	Items    *Schema `json:"items,omitempty"`
	MinItems int     `json:"minItems,omitempty"`

	// string nodes; Enum holds term identifiers and EnumNames the parallel
	// display labels
	Enum      []string `json:"enum,omitempty"`
	EnumNames []string `json:"enumNames,omitempty"`
	// name of the controlled vocabulary whose terms populate Enum/EnumNames
	ControlledTerm string `json:"controlledTerm,omitempty"`
}

// A schema dependency: a set of alternative object shapes selected by the
// value of the property the dependency is keyed on.
type Dependency struct {
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Returns a deep copy of the schema tree rooted at this node. Every
// derivation in this package clones its base template first, so no two
// steps ever share (and accidentally co-mutate) a schema node.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	clone := &Schema{
		Type:           s.Type,
		Title:          s.Title,
		Format:         s.Format,
		Default:        s.Default,
		MinItems:       s.MinItems,
		ControlledTerm: s.ControlledTerm,
		Items:          s.Items.Clone(),
	}
	if s.Properties != nil {
		clone.Properties = make(map[string]*Schema, len(s.Properties))
		for name, prop := range s.Properties {
			clone.Properties[name] = prop.Clone()
		}
	}
	if s.Required != nil {
		clone.Required = append([]string{}, s.Required...)
	}
	if s.Definitions != nil {
		clone.Definitions = make(map[string]*Schema, len(s.Definitions))
		for name, def := range s.Definitions {
			clone.Definitions[name] = def.Clone()
		}
	}
	if s.Dependencies != nil {
		clone.Dependencies = make(map[string]*Dependency, len(s.Dependencies))
		for name, dep := range s.Dependencies {
			branches := make([]*Schema, len(dep.OneOf))
			for i, branch := range dep.OneOf {
				branches[i] = branch.Clone()
			}
			clone.Dependencies[name] = &Dependency{OneOf: branches}
		}
	}
	if s.Enum != nil {
		clone.Enum = append([]string{}, s.Enum...)
	}
	if s.EnumNames != nil {
		clone.EnumNames = append([]string{}, s.EnumNames...)
	}
	return clone
}
