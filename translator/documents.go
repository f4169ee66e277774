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

import (
	"fmt"
)

// vocabulary class names of the documents this translator emits
const (
	TypeAccessibility         = "Accessibility"
	TypeBiologicalSex         = "BiologicalSex"
	TypeContributionType      = "ContributionType"
	TypeCopyright             = "Copyright"
	TypeDatasetVersion        = "DatasetVersion"
	TypeDigitalIdentifier     = "DigitalIdentifier"
	TypeDOI                   = "DOI"
	TypeEthicsAssessment      = "EthicsAssessment"
	TypeExperimentalApproach  = "ExperimentalApproach"
	TypeFileRepository        = "FileRepository"
	TypeFullDocumentation     = "FullDocumentation"
	TypeFunding               = "Funding"
	TypeInputData             = "InputData"
	TypeLicense               = "License"
	TypeOtherContribution     = "OtherContribution"
	TypePerson                = "Person"
	TypePhenotype             = "Phenotype"
	TypeProtocol              = "Protocol"
	TypeProtocolExecution     = "ProtocolExecution"
	TypeQuantitativeValue     = "QuantitativeValue"
	TypeSemanticDataType      = "SemanticDataType"
	TypeSpecies               = "Species"
	TypeStrain                = "Strain"
	TypeSubject               = "Subject"
	TypeSubjectGroup          = "SubjectGroup"
	TypeSubjectGroupState     = "SubjectGroupState"
	TypeSubjectState          = "SubjectState"
	TypeTissueSample          = "TissueSample"
	TypeTissueSampleColl      = "TissueSampleCollection"
	TypeTissueSampleCollState = "TissueSampleCollectionState"
	TypeTissueSampleState     = "TissueSampleState"
	TypeTissueSampleType      = "TissueSampleType"
	TypeCellType              = "CellType"
)

// tolerant answer accessors: form data is untrusted, so a missing or
// mis-typed field reads as its zero value

func stringField(answer map[string]any, name string) string {
	if answer == nil {
		return ""
	}
	value, _ := answer[name].(string)
	return value
}

func mapField(answer map[string]any, name string) map[string]any {
	if answer == nil {
		return nil
	}
	value, _ := answer[name].(map[string]any)
	return value
}

func asMap(item any) map[string]any {
	value, _ := item.(map[string]any)
	return value
}

// Returns a builder that creates a document of the given type holding a
// single string value under the given property. When keyed, the raw string
// value itself is the de-duplication key.
func (g *graphBuilder) stringDocument(docType, property string, keyed bool) func(any) string {
	return func(item any) string {
		value, _ := item.(string)
		key := ""
		if keyed {
			key = value
		}
		id := g.intern(docType, key)
		setProperty(g.document(id), property, value)
		return id
	}
}

// creates a Person document, de-duplicated by "<familyName>-<givenName>"
func (g *graphBuilder) personDocument(item any) string {
	person := asMap(item)
	familyName := stringField(person, "familyName")
	givenName := stringField(person, "givenName")
	id := g.intern(TypePerson, familyName+"-"+givenName)
	doc := g.document(id)
	setProperty(doc, "familyName", familyName)
	setProperty(doc, "givenName", givenName)
	return id
}

// creates a Copyright document, de-duplicated by "<year>-<holder>"
func (g *graphBuilder) copyrightDocument(item any) string {
	copyright := asMap(item)
	year := stringField(copyright, "year")
	holder := stringField(copyright, "holder")
	id := g.intern(TypeCopyright, year+"-"+holder)
	doc := g.document(id)
	setProperty(doc, "year", year)
	setProperty(doc, "holder", holder)
	return id
}

// creates an OtherContribution wrapper document; never de-duplicated
func (g *graphBuilder) otherContributionDocument(item any) string {
	contribution := asMap(item)
	id := g.intern(TypeOtherContribution, "")
	doc := g.document(id)
	g.linkMany(doc, "contributionType", contribution["contributionType"],
		g.stringDocument(TypeContributionType, "name", true))
	g.linkMany(doc, "contributor", contribution["contributor"], g.personDocument)
	return id
}

// creates an anonymous QuantitativeValue document from a {value, unit}
// answer, or returns "" when the answer carries no value
func (g *graphBuilder) quantitativeValueDocument(quantity map[string]any) string {
	if quantity == nil || quantity["value"] == nil {
		return ""
	}
	id := g.intern(TypeQuantitativeValue, "")
	doc := g.document(id)
	setProperty(doc, "value", quantity["value"])
	setProperty(doc, "unit", stringField(quantity, "unit"))
	return id
}

// attaches age and weight quantitative values to a specimen state document
func (g *graphBuilder) setStateQuantities(doc Document, state map[string]any) {
	if id := g.quantitativeValueDocument(mapField(state, "age")); id != "" {
		setProperty(doc, "age", []Reference{{Id: id}})
	}
	if id := g.quantitativeValueDocument(mapField(state, "weight")); id != "" {
		setProperty(doc, "weight", []Reference{{Id: id}})
	}
}

// Returns a builder that creates an anonymous specimen state document of
// the given type. When the state declares a reference to a subject group
// state, a ProtocolExecution document is synthesized as a side effect,
// linking the referenced subject-side state (input) to this state (output).
func (g *graphBuilder) stateDocument(docType string,
	subjectStates map[string]SubjectStateRef) func(any) string {

	return func(item any) string {
		state := asMap(item)
		id := g.intern(docType, "")
		doc := g.document(id)
		g.setStateQuantities(doc, state)

		if reference := stringField(state, "subjectGroupState"); reference != "" {
			subjectStateId := g.subjectGroupStateDocument(reference, subjectStates)
			execution := g.document(g.intern(TypeProtocolExecution, ""))
			setProperty(execution, "input", []Reference{{Id: subjectStateId}})
			setProperty(execution, "output", []Reference{{Id: id}})
		}
		return id
	}
}

// Returns the SubjectGroupState document registered under the given
// reference key, creating it on first use. The document is a side effect of
// cross-linking and is not reachable from the dataset version document.
func (g *graphBuilder) subjectGroupStateDocument(reference string,
	subjectStates map[string]SubjectStateRef) string {

	if id, found := g.interned[TypeSubjectGroupState][reference]; found {
		return id
	}
	id := g.intern(TypeSubjectGroupState, reference)
	doc := g.document(id)
	if ref, found := subjectStates[reference]; found {
		setProperty(doc, "lookupLabel", ref.Label)
		g.setStateQuantities(doc, ref.State)
	} else {
		setProperty(doc, "lookupLabel", reference)
	}
	return id
}

// shared portion of the four specimen document builders
func (g *graphBuilder) specimenDocument(docType string, specimen map[string]any) Document {
	id := g.intern(docType, stringField(specimen, "lookupLabel"))
	doc := g.document(id)
	setProperty(doc, "lookupLabel", stringField(specimen, "lookupLabel"))
	return doc
}

// creates a Subject document, de-duplicated by lookup label
func (g *graphBuilder) subjectDocument(item any) string {
	subject := asMap(item)
	doc := g.specimenDocument(TypeSubject, subject)
	g.linkSubjectProperties(doc, subject)
	g.linkMany(doc, "studiedState", subject["studiedStates"],
		g.stateDocument(TypeSubjectState, nil))
	return doc["@id"].(string)
}

// creates a SubjectGroup document, de-duplicated by lookup label
func (g *graphBuilder) subjectGroupDocument(item any) string {
	group := asMap(item)
	doc := g.specimenDocument(TypeSubjectGroup, group)
	setProperty(doc, "quantity", group["quantity"])
	g.linkSubjectProperties(doc, group)
	g.linkMany(doc, "studiedState", group["studiedStates"],
		g.stateDocument(TypeSubjectGroupState, nil))
	return doc["@id"].(string)
}

// links the scalar metadata shared by subjects and subject groups
func (g *graphBuilder) linkSubjectProperties(doc Document, subject map[string]any) {
	g.linkMany(doc, "species", subject["species"],
		g.stringDocument(TypeSpecies, "name", true))
	g.linkMany(doc, "strain", subject["strains"],
		g.stringDocument(TypeStrain, "name", true))
	g.linkMany(doc, "biologicalSex", subject["biologicalSex"],
		g.stringDocument(TypeBiologicalSex, "name", true))
	g.linkMany(doc, "phenotype", subject["phenotype"],
		g.stringDocument(TypePhenotype, "name", true))
}

// returns a builder creating TissueSample documents, de-duplicated by
// lookup label
func (g *graphBuilder) tissueSampleDocument(subjectStates map[string]SubjectStateRef) func(any) string {
	return func(item any) string {
		sample := asMap(item)
		doc := g.specimenDocument(TypeTissueSample, sample)
		g.linkTissueSampleProperties(doc, sample)
		g.linkMany(doc, "studiedState", sample["studiedStates"],
			g.stateDocument(TypeTissueSampleState, subjectStates))
		return doc["@id"].(string)
	}
}

// returns a builder creating TissueSampleCollection documents,
// de-duplicated by lookup label
func (g *graphBuilder) tissueSampleCollectionDocument(subjectStates map[string]SubjectStateRef) func(any) string {
	return func(item any) string {
		collection := asMap(item)
		doc := g.specimenDocument(TypeTissueSampleColl, collection)
		setProperty(doc, "quantity", collection["quantity"])
		g.linkTissueSampleProperties(doc, collection)
		g.linkMany(doc, "studiedState", collection["studiedStates"],
			g.stateDocument(TypeTissueSampleCollState, subjectStates))
		return doc["@id"].(string)
	}
}

// links the scalar metadata shared by tissue samples and collections
func (g *graphBuilder) linkTissueSampleProperties(doc Document, sample map[string]any) {
	g.linkMany(doc, "tissueType", sample["tissueSampleType"],
		g.stringDocument(TypeTissueSampleType, "name", true))
	g.linkMany(doc, "origin", sample["origin"],
		g.stringDocument(TypeCellType, "name", true))
}

// creates the root DatasetVersion document and all of its direct children
func (g *graphBuilder) datasetDocument(dataset map[string]any) Document {
	id := g.intern(TypeDatasetVersion, stringField(dataset, "name"))
	doc := g.document(id)

	setProperty(doc, "name", stringField(dataset, "name"))
	setProperty(doc, "description", stringField(dataset, "description"))
	setProperty(doc, "keyword", dataset["keyword"])
	setProperty(doc, "homepage", stringField(dataset, "homepage"))
	setProperty(doc, "releasedDate", stringField(dataset, "releasedDate"))
	setProperty(doc, "versionIdentifier", stringField(dataset, "versionNumber"))
	setProperty(doc, "supportChannel", dataset["supportChannel"])

	g.linkMany(doc, "accessibility", dataset["accessibility"],
		g.stringDocument(TypeAccessibility, "name", true))
	g.linkMany(doc, "author", dataset["authors"], g.personDocument)
	g.linkMany(doc, "custodian", dataset["custodian"], g.personDocument)
	g.linkMany(doc, "copyright", dataset["copyrightHolderAndYear"], g.copyrightDocument)
	g.linkMany(doc, "ethicsAssessment", dataset["ethicsAssessment"],
		g.stringDocument(TypeEthicsAssessment, "name", true))
	g.linkMany(doc, "digitalIdentifier", dataset["doi"],
		g.stringDocument(TypeDigitalIdentifier, "identifier", true))
	g.linkMany(doc, "modality", dataset["experimentalApproach"],
		g.stringDocument(TypeExperimentalApproach, "name", true))
	g.linkMany(doc, "fullDocumentation", dataset["fullDocumentation"],
		g.stringDocument(TypeFullDocumentation, "name", true))
	g.linkMany(doc, "funding", dataset["funding"],
		g.stringDocument(TypeFunding, "awardTitle", true))
	g.linkMany(doc, "license", dataset["license"],
		g.stringDocument(TypeLicense, "shortName", true))
	g.linkMany(doc, "repository", dataset["repositoryUrl"],
		g.stringDocument(TypeFileRepository, "IRI", true))
	g.linkMany(doc, "relatedPublication", dataset["relatedPublication"],
		g.stringDocument(TypeDOI, "identifier", true))
	g.linkMany(doc, "type", dataset["type"],
		g.stringDocument(TypeSemanticDataType, "name", true))
	g.linkMany(doc, "otherContribution", dataset["otherContribution"],
		g.otherContributionDocument)
	g.linkMany(doc, "inputData", dataset["inputData"],
		g.stringDocument(TypeInputData, "name", true))
	g.linkMany(doc, "protocol", dataset["protocol"],
		g.stringDocument(TypeProtocol, "name", false))

	return doc
}

// guards against a keyed document kind receiving no key material at all;
// such a call indicates a broken caller, not bad user input
func requireAnswer(kind string, answer map[string]any) {
	if answer == nil {
		panic(fmt.Sprintf("translator: %s answer must not be nil", kind))
	}
}
