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
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/esciencelab/mdw/terms"
)

// Derives the schema for a grouped-specimen step: an array of at least one
// group, each group being the given base item schema augmented with a
// numeric quantity field defaulting to the declared population size.
func GroupSchema(base *Schema, title, quantityTitle string, populationSize int) *Schema {
	items := base.Clone()
	items.Properties["quantity"] = &Schema{
		Type:    TypeNumber,
		Title:   quantityTitle,
		Default: populationSize,
	}
	return &Schema{
		Type:     TypeArray,
		Title:    title,
		MinItems: 1,
		Items:    items,
	}
}

// Derives the schema for a template step: the base item schema itself,
// retitled to indicate its role as the single representative answer.
func TemplateSchema(base *Schema, title string) *Schema {
	template := base.Clone()
	template.Title = title
	return template
}

// Derives the schema for a flat-collection step: an array of at least one
// item, with no quantity field. Used when per-item answers are collected
// individually rather than stamped from a template.
func CollectionSchema(base *Schema, title string) *Schema {
	return &Schema{
		Type:     TypeArray,
		Title:    title,
		MinItems: 1,
		Items:    base.Clone(),
	}
}

// A selectable reference to a previously entered specimen state.
type StateChoice struct {
	// freshly generated unique identifier for the choice
	Identifier string
	// human-readable label of the form
	// "<lookup label> [<age><age unit> - <weight><weight unit>]"
	Label string
	// the specimen the state belongs to
	Specimen map[string]any
	// the state answer itself
	State map[string]any
}

// Derives the schema for a specimen step that references previously entered
// subjects: the base item schema augmented with a "Subject state" selector
// inside each studied state, whose choices are the flattened studied states
// of every prior subject. The returned choices map choice identifiers back
// to the states they refer to, in enumeration order.
func DependentSchema(base *Schema, title string, subjects []map[string]any) (*Schema, []StateChoice) {
	choices := StateChoices(subjects)
	return DependentSchemaWithChoices(base, title, choices), choices
}

// Variant of DependentSchema reusing previously generated choices, so that
// a schema can be rederived (e.g. on backward navigation) without
// invalidating identifiers already recorded in answers.
func DependentSchemaWithChoices(base *Schema, title string, choices []StateChoice) *Schema {
	enum := make([]string, len(choices))
	enumNames := make([]string, len(choices))
	for i, choice := range choices {
		enum[i] = choice.Identifier
		enumNames[i] = choice.Label
	}

	schema := base.Clone()
	schema.Title = title
	states := schema.Properties["studiedStates"]
	states.Items.Properties["subjectGroupState"] = &Schema{
		Type:      TypeString,
		Title:     "Subject state",
		Enum:      enum,
		EnumNames: enumNames,
	}
	return schema
}

// Flattens, for every given specimen, every one of its recorded studied
// states into a labeled choice with a freshly generated identifier.
func StateChoices(specimens []map[string]any) []StateChoice {
	var choices []StateChoice
	for _, specimen := range specimens {
		states, _ := specimen["studiedStates"].([]any)
		for _, state := range states {
			stateMap, ok := state.(map[string]any)
			if !ok {
				continue
			}
			choices = append(choices, StateChoice{
				Identifier: uuid.NewString(),
				Label:      StateLabel(specimen, stateMap),
				Specimen:   specimen,
				State:      stateMap,
			})
		}
	}
	return choices
}

// Builds the human-readable label for a specimen state, resolving unit
// identifiers to display labels through the controlled-term catalog.
func StateLabel(specimen map[string]any, state map[string]any) string {
	lookupLabel, _ := specimen["lookupLabel"].(string)
	age, _ := state["age"].(map[string]any)
	weight, _ := state["weight"].(map[string]any)
	return fmt.Sprintf("%s [%s - %s]", lookupLabel,
		quantityLabel(age), quantityLabel(weight))
}

// formats a quantitative value as "<value><unit label>"
func quantityLabel(quantity map[string]any) string {
	if quantity == nil {
		return ""
	}
	value := quantity["value"]
	unit, _ := quantity["unit"].(string)
	unitLabel := terms.LabelFor("unitOfMeasurement", unit)
	if value == nil {
		return unitLabel
	}
	return fmt.Sprintf("%v%s", value, unitLabel)
}

// Coerces a population-size answer to a usable size. A missing,
// non-numeric, or negative value yields 0; this is policy, not an error.
func PopulationSize(value any) int {
	var size float64
	switch v := value.(type) {
	case float64:
		size = v
	case int:
		size = float64(v)
	case int64:
		size = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		size = parsed
	default:
		return 0
	}
	if math.IsNaN(size) || size < 0 {
		return 0
	}
	return int(size)
}
