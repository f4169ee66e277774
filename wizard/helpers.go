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

package wizard

import (
	"fmt"

	"github.com/esciencelab/mdw/schemas"
)

// Returns the study topic recorded in a dataset answer, or "" when absent.
func StudyTopic(dataset map[string]any) string {
	if dataset == nil {
		return ""
	}
	topic, _ := dataset["studyTopic"].(string)
	return topic
}

// Reports whether subjects are recorded as groups with quantities rather
// than stamped from a single template.
func SubjectsGrouped(dataset map[string]any) bool {
	return boolField(dataset, "individualSubjects")
}

// Reports whether tissue samples are recorded as collections with
// quantities rather than stamped from a single template.
func TissueSamplesGrouped(dataset map[string]any) bool {
	return boolField(dataset, "individualTissueSamples")
}

// Returns the declared subject population size, or 0 when it is missing,
// unparseable, or negative.
func NumberOfSubjects(dataset map[string]any) int {
	if dataset == nil {
		return 0
	}
	return schemas.PopulationSize(dataset["numberOfSubjects"])
}

// Returns the declared tissue sample population size, or 0 when it is
// missing, unparseable, or negative.
func NumberOfTissueSamples(dataset map[string]any) int {
	if dataset == nil {
		return 0
	}
	return schemas.PopulationSize(dataset["numberOfTissueSamples"])
}

// Stamps a template answer n times, appending a positional suffix
// (" 1", " 2", ...) to each copy's lookup label when the template carries
// a non-empty one. Each copy is a deep copy; the template is not aliased.
func GenerateItemsFromTemplate(template map[string]any, n int) []any {
	if template == nil || n <= 0 {
		return nil
	}
	items := make([]any, n)
	label, _ := template["lookupLabel"].(string)
	for i := 0; i < n; i++ {
		item := deepCopyMap(template)
		if label != "" {
			item["lookupLabel"] = fmt.Sprintf("%s %d", label, i+1)
		}
		items[i] = item
	}
	return items
}

func boolField(dataset map[string]any, name string) bool {
	if dataset == nil {
		return false
	}
	value, _ := dataset[name].(bool)
	return value
}

func asMap(data any) map[string]any {
	m, _ := data.(map[string]any)
	return m
}

func asList(data any) []any {
	switch value := data.(type) {
	case []any:
		return value
	case []map[string]any:
		list := make([]any, len(value))
		for i, item := range value {
			list[i] = item
		}
		return list
	default:
		return nil
	}
}

func asMapList(items []any) []map[string]any {
	maps := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			maps = append(maps, m)
		}
	}
	return maps
}

func deepCopyMap(source map[string]any) map[string]any {
	target := make(map[string]any, len(source))
	for name, value := range source {
		target[name] = deepCopyValue(value)
	}
	return target
}

func deepCopyValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return deepCopyMap(typed)
	case []any:
		copied := make([]any, len(typed))
		for i, item := range typed {
			copied[i] = deepCopyValue(item)
		}
		return copied
	default:
		return value
	}
}
