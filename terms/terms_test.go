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

package terms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// tests that the embedded vocabularies are all present in the catalog
func TestCatalogHoldsAllVocabularies(t *testing.T) {
	for _, name := range []string{"biologicalSex", "cellType", "ethicsAssessment",
		"experimentalApproach", "license", "phenotype", "productAccessibility",
		"semanticDataType", "species", "strain", "tissueSampleType",
		"unitOfMeasurement"} {
		assert.NotNil(t, Lookup(name), "Vocabulary %s not found in the catalog.", name)
	}
	assert.Equal(t, 12, len(Vocabularies()))
}

// tests that term order within a vocabulary matches file order
func TestLookupPreservesOrder(t *testing.T) {
	accessibility := Lookup("productAccessibility")
	assert.Equal(t, 4, len(accessibility))
	assert.Equal(t, "controlledAccess", accessibility[0].Identifier)
	assert.Equal(t, "controlled access", accessibility[0].Label)
	assert.Equal(t, "underEmbargo", accessibility[3].Identifier)
	assert.Equal(t, "under embargo", accessibility[3].Label)
}

// tests that looking up an unknown vocabulary yields nil, not an error
func TestLookupUnknownVocabulary(t *testing.T) {
	assert.Nil(t, Lookup("colorOfTheWind"))
}

// tests identifier -> label resolution within a vocabulary
func TestLabelFor(t *testing.T) {
	assert.Equal(t, "kg", LabelFor("unitOfMeasurement", "kilogram"))
	assert.Equal(t, "MIT License", LabelFor("license", "MIT"))
	assert.Equal(t, "", LabelFor("unitOfMeasurement", "parsec"))
	assert.Equal(t, "", LabelFor("colorOfTheWind", "kilogram"))
}
