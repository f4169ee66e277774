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

// values of the dataset answer's studyTopic discriminator
const (
	StudyTopicSubject                = "Subject"
	StudyTopicTissueSample           = "Tissue sample"
	StudyTopicArtificialTissueSample = "Artificial tissue sample"
)

// a person's name, as collected for authors, custodians and contributors
func personSchema(title string) *Schema {
	return &Schema{
		Type:  TypeObject,
		Title: title,
		Properties: map[string]*Schema{
			"familyName": {Type: TypeString, Title: "Family name"},
			"givenName":  {Type: TypeString, Title: "Given name"},
		},
	}
}

// a quantitative value (magnitude plus unit of measurement)
func quantitativeValueSchema(title, unitVocabulary string) *Schema {
	return &Schema{
		Type:  TypeObject,
		Title: title,
		Properties: map[string]*Schema{
			"value": {Type: TypeNumber, Title: "Value"},
			"unit":  {Type: TypeString, Title: "Unit", ControlledTerm: unitVocabulary},
		},
	}
}

// a specimen's studied states: snapshots of its condition (age, weight)
// referenced by downstream tissue extraction
func studiedStatesSchema() *Schema {
	return &Schema{
		Type:  TypeArray,
		Title: "Studied states",
		Items: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"age":    quantitativeValueSchema("Age", "unitOfMeasurement"),
				"weight": quantitativeValueSchema("Weight", "unitOfMeasurement"),
			},
		},
	}
}

// the base dataset form
var datasetTemplate = &Schema{
	Type:  TypeObject,
	Title: "Dataset",
	Properties: map[string]*Schema{
		"name":          {Type: TypeString, Title: "Name"},
		"description":   {Type: TypeString, Title: "Description"},
		"doi":           {Type: TypeString, Title: "DOI"},
		"homepage":      {Type: TypeString, Title: "Homepage"},
		"versionNumber": {Type: TypeString, Title: "Version number"},
		"authors": {
			Type:  TypeArray,
			Title: "Authors",
			Items: personSchema(""),
		},
		"custodian": {
			Type:  TypeArray,
			Title: "Custodian",
			Items: personSchema(""),
		},
		"otherContribution": {
			Type:  TypeArray,
			Title: "Other contributions",
			Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"contributionType": {
						Type:           TypeString,
						Title:          "Contribution type",
						ControlledTerm: "contributionType",
					},
					"contributor": personSchema("Contributor"),
				},
			},
		},
		"accessibility": {
			Type:           TypeString,
			Title:          "Accessibility",
			ControlledTerm: "productAccessibility",
		},
		"repositoryUrl": {Type: TypeString, Title: "Repository URL"},
		"type": {
			Type:           TypeString,
			Title:          "Type",
			ControlledTerm: "semanticDataType",
		},
		"license": {
			Type:           TypeString,
			Title:          "License",
			ControlledTerm: "license",
		},
		"fullDocumentation": {Type: TypeString, Title: "Full documentation"},
		"keyword": {
			Type:  TypeArray,
			Title: "Keyword",
			Items: &Schema{Type: TypeString},
		},
		"copyrightHolderAndYear": {
			Type:  TypeObject,
			Title: "Copyright holder & year",
			Properties: map[string]*Schema{
				"year":   {Type: TypeString, Title: "Year"},
				"holder": {Type: TypeString, Title: "Holder"},
			},
		},
		"releasedDate": {Type: TypeString, Format: "date", Title: "Released date"},
		"ethicsAssessment": {
			Type:           TypeString,
			Title:          "Ethics assessment",
			ControlledTerm: "ethicsAssessment",
		},
		"experimentalApproach": {
			Type:           TypeString,
			Title:          "Experimental approach",
			ControlledTerm: "experimentalApproach",
		},
		"funding": {
			Type:  TypeArray,
			Title: "Funding",
			Items: &Schema{Type: TypeString},
		},
		"relatedPublication": {
			Type:  TypeArray,
			Title: "Related publication",
			Items: &Schema{Type: TypeString},
		},
		"supportChannel": {
			Type:  TypeArray,
			Title: "Support channel",
			Items: &Schema{Type: TypeString},
		},
		"inputData": {Type: TypeString, Title: "Input data"},
		"protocol": {
			Type:  TypeArray,
			Title: "Protocol",
			Items: &Schema{Type: TypeString},
		},
		"studyTopic": {
			Type:  TypeString,
			Title: "Study topic",
			Enum: []string{
				StudyTopicSubject,
				StudyTopicTissueSample,
				StudyTopicArtificialTissueSample,
			},
		},
		"individualSubjects": {
			Type:  TypeBoolean,
			Title: "Enter subjects as groups",
		},
		"numberOfSubjects": {
			Type:  TypeNumber,
			Title: "Number of subjects",
		},
		"individualTissueSamples": {
			Type:  TypeBoolean,
			Title: "Enter tissue samples as groups",
		},
		"numberOfTissueSamples": {
			Type:  TypeNumber,
			Title: "Number of tissue samples",
		},
	},
	Required: []string{"name"},
}

// the base subject form
var subjectTemplate = &Schema{
	Type:  TypeObject,
	Title: "Subject",
	Properties: map[string]*Schema{
		"lookupLabel": {Type: TypeString, Title: "Lookup label"},
		"species": {
			Type:           TypeString,
			Title:          "Species",
			ControlledTerm: "species",
		},
		"strains": {
			Type:  TypeArray,
			Title: "Strains",
			Items: &Schema{Type: TypeString, ControlledTerm: "strain"},
		},
		"biologicalSex": {
			Type:           TypeString,
			Title:          "Biological sex",
			ControlledTerm: "biologicalSex",
		},
		"phenotype": {
			Type:           TypeString,
			Title:          "Phenotype",
			ControlledTerm: "phenotype",
		},
		"studiedStates": studiedStatesSchema(),
	},
}

// the base tissue sample form
var tissueSampleTemplate = &Schema{
	Type:  TypeObject,
	Title: "Tissue sample",
	Properties: map[string]*Schema{
		"lookupLabel": {Type: TypeString, Title: "Lookup label"},
		"tissueSampleType": {
			Type:           TypeString,
			Title:          "Tissue sample type",
			ControlledTerm: "tissueSampleType",
		},
		"origin": {
			Type:           TypeString,
			Title:          "Origin",
			ControlledTerm: "cellType",
		},
		"studiedStates": studiedStatesSchema(),
	},
}

// Returns a populated copy of the base dataset schema.
func Dataset() *Schema {
	return Populate(datasetTemplate.Clone())
}

// Returns a populated copy of the base subject schema.
func Subject() *Schema {
	return Populate(subjectTemplate.Clone())
}

// Returns a populated copy of the base tissue sample schema.
func TissueSample() *Schema {
	return Populate(tissueSampleTemplate.Clone())
}
