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

package translator

// A SubjectStateRef pairs a subject-state choice identifier (the value a
// tissue sample's "subject state" selector submits) with the subject group
// answer and recorded state it refers to. The wizard builds this mapping
// from the choices it generated for the dependent schema.
type SubjectStateRef struct {
	// the subject or subject group the state belongs to
	Specimen map[string]any
	// the recorded state answer itself
	State map[string]any
	// the human-readable choice label shown to the user
	Label string
}

// Translates a dataset with no studied specimens: the output graph holds
// the dataset version document and its direct metadata children only.
func FromDataset(dataset map[string]any) []Document {
	requireAnswer("dataset", dataset)
	g := newGraphBuilder()
	g.datasetDocument(dataset)
	return g.documents
}

// Translates a dataset whose specimens were recorded as subject groups.
func FromDatasetAndSubjectGroups(dataset map[string]any, groups []any) []Document {
	return translateWith(dataset, groups, func(b *graphBuilder) func(any) string {
		return b.subjectGroupDocument
	})
}

// Translates a dataset whose specimens were recorded as individual subjects.
func FromDatasetAndSubjects(dataset map[string]any, subjects []any) []Document {
	return translateWith(dataset, subjects, func(b *graphBuilder) func(any) string {
		return b.subjectDocument
	})
}

// Translates a dataset whose specimens were recorded as tissue sample
// collections extracted from previously entered subjects. The subjectStates
// mapping resolves each collection state's subject-state reference for
// cross-linking.
func FromDatasetAndTissueSampleCollections(dataset map[string]any,
	subjectStates map[string]SubjectStateRef, collections []any) []Document {
	return translateWith(dataset, collections, func(b *graphBuilder) func(any) string {
		return b.tissueSampleCollectionDocument(subjectStates)
	})
}

// Translates a dataset whose specimens were recorded as artificial tissue
// sample collections (no subject linkage).
func FromDatasetAndArtificialTissueSampleCollections(dataset map[string]any,
	collections []any) []Document {
	return translateWith(dataset, collections, func(b *graphBuilder) func(any) string {
		return b.tissueSampleCollectionDocument(nil)
	})
}

// Translates a dataset whose specimens were recorded as individual tissue
// samples extracted from previously entered subjects.
func FromDatasetAndTissueSamples(dataset map[string]any,
	subjectStates map[string]SubjectStateRef, samples []any) []Document {
	return translateWith(dataset, samples, func(b *graphBuilder) func(any) string {
		return b.tissueSampleDocument(subjectStates)
	})
}

// Translates a dataset whose specimens were recorded as individual
// artificial tissue samples.
func FromDatasetAndArtificialTissueSamples(dataset map[string]any,
	samples []any) []Document {
	return translateWith(dataset, samples, func(b *graphBuilder) func(any) string {
		return b.tissueSampleDocument(nil)
	})
}

// shared core of the specimen-bearing entry points: builds the root dataset
// version document, links the specimen collection under studiedSpecimen
// with the given per-specimen builder, and returns every document created
// during the call, in creation order
func translateWith(dataset map[string]any, specimens []any,
	builder func(*graphBuilder) func(any) string) []Document {

	requireAnswer("dataset", dataset)
	g := newGraphBuilder()
	doc := g.datasetDocument(dataset)
	g.linkMany(doc, "studiedSpecimen", specimens, builder(g))
	return g.documents
}
