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

// This package contains testing utilities for the metadata wizard.
package mdwtest

import (
	"log"
	"log/slog"
	"os"

	"github.com/esciencelab/mdw/config"
)

// Enables DEBUG log messages for the wizard's structured log (slog).
func EnableDebugLogging() {
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelDebug)
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
}

// Initializes the configuration with its default values. Tests that need
// specific settings pass their own YAML to config.Init instead.
func InitConfig() {
	if err := config.Init([]byte("")); err != nil {
		log.Panicf("Couldn't initialize the default configuration: %s", err)
	}
}

// Returns a dataset answer with every simple field filled in, a recognized
// license, and two custodians who are the same person. The study topic is
// left empty; tests that walk a specimen branch overwrite studyTopic and
// the population fields.
func DatasetAnswer() map[string]any {
	return map[string]any{
		"name":          "Dendritic spines of CA1 pyramidal neurons",
		"description":   "Two-photon imaging of dendritic spine turnover.",
		"doi":           "10.1000/182",
		"homepage":      "https://example.org/datasets/ca1-spines",
		"versionNumber": "v2.0.1",
		"authors": []any{
			map[string]any{"familyName": "Ramon", "givenName": "Santiago"},
			map[string]any{"familyName": "Golgi", "givenName": "Camillo"},
		},
		"custodian": []any{
			map[string]any{"familyName": "Ramon", "givenName": "Santiago"},
			map[string]any{"familyName": "Ramon", "givenName": "Santiago"},
		},
		"accessibility": "freeAccess",
		"repositoryUrl": "https://example.org/repo/ca1-spines",
		"type":          "experimentalData",
		"license":       "MIT",
		"keyword":       []any{"dendritic spine", "CA1"},
		"copyrightHolderAndYear": map[string]any{
			"year":   "2023",
			"holder": "Example University",
		},
		"releasedDate":         "2023-09-01",
		"ethicsAssessment":     "EUCompliantNonSensitive",
		"experimentalApproach": "microscopy",
		"funding":              []any{"Example Grant 42"},
		"relatedPublication":   []any{"10.1000/183"},
		"supportChannel":       []any{"support@example.org"},
		"studyTopic":           "",
	}
}

// Returns a subject answer with the given lookup label and one studied
// state (4 weeks old, 20 grams).
func SubjectAnswer(lookupLabel string) map[string]any {
	return map[string]any{
		"lookupLabel":   lookupLabel,
		"species":       "musMusculus",
		"strains":       []any{"C57BL6J"},
		"biologicalSex": "female",
		"phenotype":     "wildType",
		"studiedStates": []any{
			map[string]any{
				"age":    map[string]any{"value": float64(4), "unit": "week"},
				"weight": map[string]any{"value": float64(20), "unit": "gram"},
			},
		},
	}
}

// Returns a tissue sample answer with the given lookup label and one
// studied state. When subjectGroupState is not empty, the state references
// that subject-state choice.
func TissueSampleAnswer(lookupLabel, subjectGroupState string) map[string]any {
	state := map[string]any{
		"age":    map[string]any{"value": float64(12), "unit": "week"},
		"weight": map[string]any{"value": float64(30), "unit": "gram"},
	}
	if subjectGroupState != "" {
		state["subjectGroupState"] = subjectGroupState
	}
	return map[string]any{
		"lookupLabel":      lookupLabel,
		"tissueSampleType": "tissueSlice",
		"origin":           "pyramidalNeuron",
		"studiedStates":    []any{state},
	}
}
