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
	"testing"

	"github.com/esciencelab/mdw/config"
	"github.com/esciencelab/mdw/mdwtest"
	"github.com/esciencelab/mdw/schemas"
	"github.com/esciencelab/mdw/translator"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	mdwtest.InitConfig()
	m.Run()
}

// returns the documents in the graph whose type is the given class name
func docsOfType(docs []translator.Document, docType string) []translator.Document {
	qualified := config.Vocabulary.Base + docType
	var matches []translator.Document
	for _, doc := range docs {
		types, _ := doc["@type"].([]string)
		for _, t := range types {
			if t == qualified {
				matches = append(matches, doc)
			}
		}
	}
	return matches
}

func subjectDataset(grouped bool, n float64) map[string]any {
	dataset := mdwtest.DatasetAnswer()
	dataset["studyTopic"] = schemas.StudyTopicSubject
	dataset["individualSubjects"] = grouped
	dataset["numberOfSubjects"] = n
	return dataset
}

func tissueSampleDataset(topic string, grouped bool, n float64) map[string]any {
	dataset := mdwtest.DatasetAnswer()
	dataset["studyTopic"] = topic
	dataset["individualTissueSamples"] = grouped
	dataset["numberOfTissueSamples"] = n
	return dataset
}

func TestNew(t *testing.T) {
	state := New()
	assert.Equal(t, StepDataset, state.Step)
	assert.NotNil(t, state.Schema)
	assert.Contains(t, state.Schema.Properties, "studyTopic")
	assert.Nil(t, state.Dataset)
	assert.Nil(t, state.Result)
}

func TestAdvanceWithoutStudyTopic(t *testing.T) {
	state := New().Advance(mdwtest.DatasetAnswer())
	assert.Equal(t, StepEnd, state.Step)
	assert.Nil(t, state.Schema)

	// a dataset-only translation produces a lone DatasetVersion document
	assert.Len(t, state.Result, 1)
	root := state.Result[0]
	assert.NotContains(t, root, config.Vocabulary.Base+"studiedSpecimen")
}

func TestAdvanceThroughSubjectTemplate(t *testing.T) {
	state := New().Advance(subjectDataset(false, 3))
	assert.Equal(t, StepSubjectTemplate, state.Step)
	assert.Equal(t, "Subject template", state.Schema.Title)

	state = state.Advance(mdwtest.SubjectAnswer("mouse"))
	assert.Equal(t, StepSubjects, state.Step)
	assert.Equal(t, "Subjects", state.Schema.Title)
	assert.Len(t, state.Subjects, 3)
	for i, item := range state.Subjects {
		subject := item.(map[string]any)
		assert.Equal(t, []string{"mouse 1", "mouse 2", "mouse 3"}[i],
			subject["lookupLabel"])
	}

	state = state.Advance(state.Subjects)
	assert.Equal(t, StepEnd, state.Step)
	assert.Len(t, docsOfType(state.Result, translator.TypeSubject), 3)
}

func TestTemplateChangeRegeneratesSubjects(t *testing.T) {
	state := New().
		Advance(subjectDataset(false, 2)).
		Advance(mdwtest.SubjectAnswer("mouse"))
	assert.Len(t, state.Subjects, 2)

	// an edit to a stamped copy survives resubmitting the same template
	state.Subjects[0].(map[string]any)["lookupLabel"] = "edited"
	state = state.Back().Advance(mdwtest.SubjectAnswer("mouse"))
	assert.Equal(t, "edited", state.Subjects[0].(map[string]any)["lookupLabel"])

	// a different template stamps a fresh collection
	state = state.Back().Advance(mdwtest.SubjectAnswer("rat"))
	assert.Equal(t, "rat 1", state.Subjects[0].(map[string]any)["lookupLabel"])
}

func TestAdvanceThroughSubjectGroups(t *testing.T) {
	state := New().Advance(subjectDataset(true, 10))
	assert.Equal(t, StepSubjectGroup, state.Step)
	assert.Equal(t, "Subject groups", state.Schema.Title)
	quantity := state.Schema.Items.Properties["quantity"]
	assert.NotNil(t, quantity)
	assert.Equal(t, 10, quantity.Default)

	group := mdwtest.SubjectAnswer("cohort")
	group["quantity"] = float64(10)
	state = state.Advance([]any{group})
	assert.Equal(t, StepEnd, state.Step)
	groups := docsOfType(state.Result, translator.TypeSubjectGroup)
	assert.Len(t, groups, 1)
	assert.Equal(t, float64(10), groups[0][config.Vocabulary.Base+"quantity"])
}

func TestAdvanceThroughTissueSamples(t *testing.T) {
	state := New().Advance(tissueSampleDataset(schemas.StudyTopicTissueSample, false, 2))

	// the subjects the samples were taken from are collected first
	assert.Equal(t, StepSubjectGroup, state.Step)
	assert.Equal(t, "Subject(s) of all your tissue samples", state.Schema.Title)

	state = state.Advance([]any{mdwtest.SubjectAnswer("mouse")})
	assert.Equal(t, StepTissueSampleTemplate, state.Step)
	assert.Len(t, state.StateChoices, 1)
	choice := state.StateChoices[0]
	assert.Equal(t, "mouse [4week - 20g]", choice.Label)

	selector := state.Schema.Properties["studiedStates"].Items.Properties["subjectGroupState"]
	assert.NotNil(t, selector)
	assert.Equal(t, []string{choice.Identifier}, selector.Enum)
	assert.Equal(t, []string{choice.Label}, selector.EnumNames)

	state = state.Advance(mdwtest.TissueSampleAnswer("slice", choice.Identifier))
	assert.Equal(t, StepTissueSamples, state.Step)
	assert.Len(t, state.TissueSamples, 2)

	state = state.Advance(state.TissueSamples)
	assert.Equal(t, StepEnd, state.Step)
	assert.Len(t, docsOfType(state.Result, translator.TypeTissueSample), 2)
	assert.Len(t, docsOfType(state.Result, translator.TypeSubjectGroupState), 1)
	assert.Len(t, docsOfType(state.Result, translator.TypeProtocolExecution), 2)
}

func TestAdvanceThroughTissueSampleCollections(t *testing.T) {
	state := New().
		Advance(tissueSampleDataset(schemas.StudyTopicTissueSample, true, 4)).
		Advance([]any{mdwtest.SubjectAnswer("mouse")})
	assert.Equal(t, StepTissueSampleGroup, state.Step)
	assert.Equal(t, "Tissue sample collections", state.Schema.Title)
	assert.Equal(t, 4, state.Schema.Items.Properties["quantity"].Default)

	choice := state.StateChoices[0]
	collection := mdwtest.TissueSampleAnswer("slices", choice.Identifier)
	collection["quantity"] = float64(4)
	state = state.Advance([]any{collection})
	assert.Equal(t, StepEnd, state.Step)
	assert.Len(t, docsOfType(state.Result, translator.TypeTissueSampleColl), 1)
	assert.Len(t, docsOfType(state.Result, translator.TypeProtocolExecution), 1)
}

func TestAdvanceThroughArtificialTissueSamples(t *testing.T) {
	state := New().Advance(tissueSampleDataset(schemas.StudyTopicArtificialTissueSample, false, 2))

	// artificial samples have no source subjects to collect
	assert.Equal(t, StepTissueSampleTemplate, state.Step)
	assert.Empty(t, state.StateChoices)

	state = state.Advance(mdwtest.TissueSampleAnswer("organoid", ""))
	assert.Equal(t, StepTissueSamples, state.Step)
	assert.Len(t, state.TissueSamples, 2)

	state = state.Advance(state.TissueSamples)
	assert.Equal(t, StepEnd, state.Step)
	assert.Len(t, docsOfType(state.Result, translator.TypeTissueSample), 2)
	assert.Empty(t, docsOfType(state.Result, translator.TypeProtocolExecution))
}

func TestAdvanceThroughArtificialTissueSampleCollections(t *testing.T) {
	state := New().Advance(tissueSampleDataset(schemas.StudyTopicArtificialTissueSample, true, 6))
	assert.Equal(t, StepTissueSampleGroup, state.Step)

	collection := mdwtest.TissueSampleAnswer("organoids", "")
	collection["quantity"] = float64(6)
	state = state.Advance([]any{collection})
	assert.Equal(t, StepEnd, state.Step)
	assert.Len(t, docsOfType(state.Result, translator.TypeTissueSampleColl), 1)
	assert.Empty(t, docsOfType(state.Result, translator.TypeProtocolExecution))
}

func TestBackRetracesSubjectTemplatePath(t *testing.T) {
	dataset := subjectDataset(false, 2)
	state := New().
		Advance(dataset).
		Advance(mdwtest.SubjectAnswer("mouse"))
	state = state.Advance(state.Subjects)
	assert.Equal(t, StepEnd, state.Step)

	state = state.Back()
	assert.Equal(t, StepSubjects, state.Step)
	assert.Nil(t, state.Result)
	assert.Equal(t, "Subjects", state.Schema.Title)
	assert.Len(t, state.Subjects, 2)

	state = state.Back()
	assert.Equal(t, StepSubjectTemplate, state.Step)

	state = state.Back()
	assert.Equal(t, StepDataset, state.Step)
	assert.Equal(t, dataset, state.Dataset)
}

func TestBackRetracesTissueSamplePath(t *testing.T) {
	state := New().
		Advance(tissueSampleDataset(schemas.StudyTopicTissueSample, true, 3)).
		Advance([]any{mdwtest.SubjectAnswer("mouse")})
	choice := state.StateChoices[0]
	collection := mdwtest.TissueSampleAnswer("slices", choice.Identifier)
	state = state.Advance([]any{collection})
	assert.Equal(t, StepEnd, state.Step)

	state = state.Back()
	assert.Equal(t, StepTissueSampleGroup, state.Step)
	// the rederived selector keeps the identifiers already recorded
	selector := state.Schema.Items.Properties["studiedStates"].Items.Properties["subjectGroupState"]
	assert.Equal(t, []string{choice.Identifier}, selector.Enum)

	state = state.Back()
	assert.Equal(t, StepSubjectGroup, state.Step)
	assert.Equal(t, "Subject(s) of all your tissue samples", state.Schema.Title)

	state = state.Back()
	assert.Equal(t, StepDataset, state.Step)
	assert.NotNil(t, state.Dataset)
}

func TestBackFromEndWithoutStudyTopic(t *testing.T) {
	state := New().Advance(mdwtest.DatasetAnswer()).Back()
	assert.Equal(t, StepDataset, state.Step)
	assert.Nil(t, state.Result)
	assert.NotNil(t, state.Schema)
}

func TestBackFromEndWithSubjectGroups(t *testing.T) {
	state := New().Advance(subjectDataset(true, 5))
	group := mdwtest.SubjectAnswer("cohort")
	state = state.Advance([]any{group}).Back()
	assert.Equal(t, StepSubjectGroup, state.Step)
	assert.Equal(t, 5, state.Schema.Items.Properties["quantity"].Default)
}

func TestReset(t *testing.T) {
	state := New().
		Advance(subjectDataset(false, 2)).
		Advance(mdwtest.SubjectAnswer("mouse")).
		Reset()
	assert.Equal(t, StepDataset, state.Step)
	assert.Nil(t, state.Dataset)
	assert.Nil(t, state.Subjects)
	assert.Nil(t, state.Result)
}

func TestStudyTopic(t *testing.T) {
	assert.Equal(t, "", StudyTopic(nil))
	assert.Equal(t, "", StudyTopic(map[string]any{}))
	assert.Equal(t, "", StudyTopic(map[string]any{"studyTopic": 12}))
	assert.Equal(t, "Subject", StudyTopic(map[string]any{"studyTopic": "Subject"}))
}

func TestGroupedFlags(t *testing.T) {
	assert.False(t, SubjectsGrouped(nil))
	assert.False(t, SubjectsGrouped(map[string]any{"individualSubjects": "yes"}))
	assert.True(t, SubjectsGrouped(map[string]any{"individualSubjects": true}))
	assert.False(t, TissueSamplesGrouped(map[string]any{}))
	assert.True(t, TissueSamplesGrouped(map[string]any{"individualTissueSamples": true}))
}

func TestPopulationSizes(t *testing.T) {
	assert.Equal(t, 0, NumberOfSubjects(nil))
	assert.Equal(t, 0, NumberOfSubjects(map[string]any{"numberOfSubjects": "many"}))
	assert.Equal(t, 3, NumberOfSubjects(map[string]any{"numberOfSubjects": float64(3)}))
	assert.Equal(t, 7, NumberOfTissueSamples(map[string]any{"numberOfTissueSamples": "7"}))
}

func TestGenerateItemsFromTemplate(t *testing.T) {
	assert.Nil(t, GenerateItemsFromTemplate(nil, 3))
	assert.Nil(t, GenerateItemsFromTemplate(map[string]any{"lookupLabel": "x"}, 0))

	template := mdwtest.SubjectAnswer("mouse")
	items := GenerateItemsFromTemplate(template, 2)
	assert.Len(t, items, 2)
	assert.Equal(t, "mouse 1", items[0].(map[string]any)["lookupLabel"])
	assert.Equal(t, "mouse 2", items[1].(map[string]any)["lookupLabel"])

	// copies are deep: mutating one copy's nested state leaves the others
	// and the template untouched
	state := items[0].(map[string]any)["studiedStates"].([]any)[0].(map[string]any)
	state["age"].(map[string]any)["value"] = float64(99)
	other := items[1].(map[string]any)["studiedStates"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(4), other["age"].(map[string]any)["value"])
	original := template["studiedStates"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(4), original["age"].(map[string]any)["value"])

	// a template without a lookup label is stamped without suffixes
	plain := GenerateItemsFromTemplate(map[string]any{"species": "musMusculus"}, 2)
	assert.NotContains(t, plain[0].(map[string]any), "lookupLabel")
}
