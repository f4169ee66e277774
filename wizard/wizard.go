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

// This package implements the wizard's step state machine: it decides which
// form to show next based on prior answers, carries accumulated data across
// steps, supports backward navigation by recomputing prior schemas, and
// invokes the document translator on the terminal branches. A State is a
// plain value; the schema it exposes is always a pure function of the
// answers it holds.
package wizard

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/esciencelab/mdw/schemas"
	"github.com/esciencelab/mdw/translator"
)

// a wizard step identifier
type Step string

const (
	StepDataset              Step = "DATASET"
	StepSubjectGroup         Step = "SUBJECT_GROUP"
	StepSubjectTemplate      Step = "SUBJECT_TEMPLATE"
	StepSubjects             Step = "SUBJECTS"
	StepTissueSampleGroup    Step = "TISSUE_SAMPLE_GROUP"
	StepTissueSampleTemplate Step = "TISSUE_SAMPLE_TEMPLATE"
	StepTissueSamples        Step = "TISSUE_SAMPLES"
	StepEnd                  Step = "END"
)

// titles of the derived step schemas
const (
	titleSubjectGroups           = "Subject groups"
	titleSubjectTemplate         = "Subject template"
	titleSubjects                = "Subjects"
	titleSubjectsForTissueSample = "Subject(s) of all your tissue samples"
	titleTissueSampleGroups      = "Tissue sample collections"
	titleTissueSampleTemplate    = "Tissue sample template"
	titleTissueSamples           = "Tissue samples"
	quantityOfSubjects           = "Number of subjects"
	quantityOfTissueSamples      = "Number of tissue samples"
)

// The complete state of one wizard session. The zero value is not useful;
// start from New.
type State struct {
	// the current step and the schema the form renderer should present
	Step   Step
	Schema *schemas.Schema

	// accumulated answers
	Dataset              map[string]any
	SubjectGroups        []any
	SubjectTemplate      map[string]any
	Subjects             []any
	TissueSampleTemplate map[string]any
	TissueSamples        []any

	// choices generated for the tissue-sample "subject state" selector,
	// kept so that backward navigation rederives the same identifiers
	StateChoices []schemas.StateChoice

	// the translated document graph, present only at the END step
	Result []translator.Document
}

// Returns the initial wizard state: the dataset step with the populated
// base dataset schema and no accumulated answers.
func New() State {
	return State{
		Step:   StepDataset,
		Schema: schemas.Dataset(),
	}
}

// Advances the state machine with the data submitted for the current step,
// returning the successor state. Malformed answers never fail a session:
// an unrecognized study topic ends the wizard with a dataset-only result,
// and an unusable population size reads as zero.
func (s State) Advance(data any) State {
	from := s.Step
	switch s.Step {
	case StepDataset:
		s = s.advanceFromDataset(asMap(data))
	case StepSubjectGroup:
		s = s.advanceFromSubjectGroup(asList(data))
	case StepSubjectTemplate:
		s = s.advanceFromSubjectTemplate(asMap(data))
	case StepSubjects:
		s.Subjects = asList(data)
		s = s.finish(translator.FromDatasetAndSubjects(s.Dataset, s.Subjects))
	case StepTissueSampleGroup:
		s.TissueSamples = asList(data)
		if StudyTopic(s.Dataset) == schemas.StudyTopicArtificialTissueSample {
			s = s.finish(translator.FromDatasetAndArtificialTissueSampleCollections(
				s.Dataset, s.TissueSamples))
		} else {
			s = s.finish(translator.FromDatasetAndTissueSampleCollections(
				s.Dataset, s.subjectStateRefs(), s.TissueSamples))
		}
	case StepTissueSampleTemplate:
		s = s.advanceFromTissueSampleTemplate(asMap(data))
	case StepTissueSamples:
		s.TissueSamples = asList(data)
		if StudyTopic(s.Dataset) == schemas.StudyTopicArtificialTissueSample {
			s = s.finish(translator.FromDatasetAndArtificialTissueSamples(
				s.Dataset, s.TissueSamples))
		} else {
			s = s.finish(translator.FromDatasetAndTissueSamples(
				s.Dataset, s.subjectStateRefs(), s.TissueSamples))
		}
	case StepEnd:
		// terminal; nothing advances automatically
	}
	slog.Debug(fmt.Sprintf("Wizard step %s -> %s", from, s.Step))
	return s
}

func (s State) advanceFromDataset(dataset map[string]any) State {
	s.Dataset = dataset
	switch StudyTopic(dataset) {
	case schemas.StudyTopicSubject:
		if SubjectsGrouped(dataset) {
			s.Schema = schemas.GroupSchema(schemas.Subject(), titleSubjectGroups,
				quantityOfSubjects, NumberOfSubjects(dataset))
			s.Step = StepSubjectGroup
		} else {
			s.Schema = schemas.TemplateSchema(schemas.Subject(), titleSubjectTemplate)
			s.Step = StepSubjectTemplate
		}
	case schemas.StudyTopicTissueSample:
		// the tissue samples reference pre-existing subjects, so those are
		// collected first
		s.Schema = schemas.CollectionSchema(schemas.Subject(), titleSubjectsForTissueSample)
		s.Step = StepSubjectGroup
	case schemas.StudyTopicArtificialTissueSample:
		if TissueSamplesGrouped(dataset) {
			s.Schema = schemas.GroupSchema(schemas.TissueSample(), titleTissueSampleGroups,
				quantityOfTissueSamples, NumberOfTissueSamples(dataset))
			s.Step = StepTissueSampleGroup
		} else {
			s.Schema = schemas.TemplateSchema(schemas.TissueSample(), titleTissueSampleTemplate)
			s.Step = StepTissueSampleTemplate
		}
	default:
		s = s.finish(translator.FromDataset(dataset))
	}
	return s
}

func (s State) advanceFromSubjectGroup(groups []any) State {
	s.SubjectGroups = groups
	if StudyTopic(s.Dataset) == schemas.StudyTopicTissueSample {
		s.StateChoices = schemas.StateChoices(asMapList(groups))
		item := schemas.DependentSchemaWithChoices(schemas.TissueSample(),
			titleTissueSampleTemplate, s.StateChoices)
		if TissueSamplesGrouped(s.Dataset) {
			s.Schema = schemas.GroupSchema(item, titleTissueSampleGroups,
				quantityOfTissueSamples, NumberOfTissueSamples(s.Dataset))
			s.Step = StepTissueSampleGroup
		} else {
			s.Schema = item
			s.Step = StepTissueSampleTemplate
		}
	} else {
		s = s.finish(translator.FromDatasetAndSubjectGroups(s.Dataset, groups))
	}
	return s
}

func (s State) advanceFromSubjectTemplate(template map[string]any) State {
	// only re-stamp the collection when the template actually changed, so
	// that edits made later to individual subjects survive a pass back
	// through this step
	if !reflect.DeepEqual(template, s.SubjectTemplate) {
		s.SubjectTemplate = template
		s.Subjects = GenerateItemsFromTemplate(template, NumberOfSubjects(s.Dataset))
	}
	s.Schema = schemas.CollectionSchema(schemas.Subject(), titleSubjects)
	s.Step = StepSubjects
	return s
}

func (s State) advanceFromTissueSampleTemplate(template map[string]any) State {
	if !reflect.DeepEqual(template, s.TissueSampleTemplate) {
		s.TissueSampleTemplate = template
		s.TissueSamples = GenerateItemsFromTemplate(template, NumberOfTissueSamples(s.Dataset))
	}
	if StudyTopic(s.Dataset) == schemas.StudyTopicArtificialTissueSample {
		s.Schema = schemas.CollectionSchema(schemas.TissueSample(), titleTissueSamples)
	} else {
		item := schemas.DependentSchemaWithChoices(schemas.TissueSample(),
			titleTissueSampleTemplate, s.StateChoices)
		s.Schema = schemas.CollectionSchema(item, titleTissueSamples)
	}
	s.Step = StepTissueSamples
	return s
}

// Navigates to the immediate predecessor of the current step, recomputing
// its schema from the accumulated answers rather than replaying a history
// stack. Backward navigation never discards answers; only the translated
// result is cleared.
func (s State) Back() State {
	from := s.Step
	s.Result = nil
	switch s.Step {
	case StepSubjectGroup, StepSubjectTemplate:
		s = s.backToDataset()
	case StepTissueSampleGroup, StepTissueSampleTemplate:
		if StudyTopic(s.Dataset) == schemas.StudyTopicTissueSample {
			s = s.backToSubjectGroup()
		} else {
			s = s.backToDataset()
		}
	case StepSubjects:
		s.Schema = schemas.TemplateSchema(schemas.Subject(), titleSubjectTemplate)
		s.Step = StepSubjectTemplate
	case StepTissueSamples:
		s = s.backToTissueSampleTemplate()
	case StepEnd:
		s = s.backFromEnd()
	default:
		s = s.backToDataset()
	}
	slog.Debug(fmt.Sprintf("Wizard step %s -> %s (back)", from, s.Step))
	return s
}

func (s State) backToDataset() State {
	s.Schema = schemas.Dataset()
	s.Step = StepDataset
	return s
}

func (s State) backToSubjectGroup() State {
	if StudyTopic(s.Dataset) == schemas.StudyTopicTissueSample {
		s.Schema = schemas.CollectionSchema(schemas.Subject(), titleSubjectsForTissueSample)
	} else {
		s.Schema = schemas.GroupSchema(schemas.Subject(), titleSubjectGroups,
			quantityOfSubjects, NumberOfSubjects(s.Dataset))
	}
	s.Step = StepSubjectGroup
	return s
}

func (s State) backToTissueSampleTemplate() State {
	if StudyTopic(s.Dataset) == schemas.StudyTopicArtificialTissueSample {
		s.Schema = schemas.TemplateSchema(schemas.TissueSample(), titleTissueSampleTemplate)
	} else {
		s.Schema = schemas.DependentSchemaWithChoices(schemas.TissueSample(),
			titleTissueSampleTemplate, s.StateChoices)
	}
	s.Step = StepTissueSampleTemplate
	return s
}

func (s State) backFromEnd() State {
	switch StudyTopic(s.Dataset) {
	case schemas.StudyTopicSubject:
		if SubjectsGrouped(s.Dataset) {
			return s.backToSubjectGroup()
		}
		s.Schema = schemas.CollectionSchema(schemas.Subject(), titleSubjects)
		s.Step = StepSubjects
		return s
	case schemas.StudyTopicTissueSample, schemas.StudyTopicArtificialTissueSample:
		if TissueSamplesGrouped(s.Dataset) {
			return s.backToTissueSampleGroup()
		}
		return s.backToTissueSamples()
	default:
		return s.backToDataset()
	}
}

func (s State) backToTissueSampleGroup() State {
	if StudyTopic(s.Dataset) == schemas.StudyTopicArtificialTissueSample {
		s.Schema = schemas.GroupSchema(schemas.TissueSample(), titleTissueSampleGroups,
			quantityOfTissueSamples, NumberOfTissueSamples(s.Dataset))
	} else {
		item := schemas.DependentSchemaWithChoices(schemas.TissueSample(),
			titleTissueSampleTemplate, s.StateChoices)
		s.Schema = schemas.GroupSchema(item, titleTissueSampleGroups,
			quantityOfTissueSamples, NumberOfTissueSamples(s.Dataset))
	}
	s.Step = StepTissueSampleGroup
	return s
}

func (s State) backToTissueSamples() State {
	if StudyTopic(s.Dataset) == schemas.StudyTopicArtificialTissueSample {
		s.Schema = schemas.CollectionSchema(schemas.TissueSample(), titleTissueSamples)
	} else {
		item := schemas.DependentSchemaWithChoices(schemas.TissueSample(),
			titleTissueSampleTemplate, s.StateChoices)
		s.Schema = schemas.CollectionSchema(item, titleTissueSamples)
	}
	s.Step = StepTissueSamples
	return s
}

// Discards all accumulated answers and returns to the dataset step.
func (s State) Reset() State {
	return New()
}

// records the translated result and moves to the terminal step
func (s State) finish(result []translator.Document) State {
	s.Result = result
	s.Schema = nil
	s.Step = StepEnd
	return s
}

// builds the reference map handed to the translator for cross-linking
// tissue states to subject states
func (s State) subjectStateRefs() map[string]translator.SubjectStateRef {
	refs := make(map[string]translator.SubjectStateRef, len(s.StateChoices))
	for _, choice := range s.StateChoices {
		refs[choice.Identifier] = translator.SubjectStateRef{
			Specimen: choice.Specimen,
			State:    choice.State,
			Label:    choice.Label,
		}
	}
	return refs
}
