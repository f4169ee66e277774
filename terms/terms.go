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

// This package holds the read-only catalog of controlled vocabulary terms
// consumed by the schema populator. Each vocabulary is a YAML file embedded
// in the binary, parsed once at startup. The order of terms within a file
// is preserved, since it drives the presentation order of choices.
package terms

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var vocabularyFiles embed.FS

// A single controlled term: a stable identifier paired with a display label.
type Term struct {
	Identifier string `yaml:"identifier" json:"identifier"`
	Label      string `yaml:"label" json:"label"`
}

// the catalog, keyed by vocabulary name (the YAML file's base name)
var catalog map[string][]Term

func init() {
	catalog = make(map[string][]Term)
	entries, err := fs.Glob(vocabularyFiles, "data/*.yaml")
	if err != nil {
		panic(fmt.Sprintf("Couldn't enumerate vocabulary files: %s", err.Error()))
	}
	for _, entry := range entries {
		data, err := vocabularyFiles.ReadFile(entry)
		if err != nil {
			panic(fmt.Sprintf("Couldn't read vocabulary file %s: %s", entry, err.Error()))
		}
		var termList []Term
		if err := yaml.Unmarshal(data, &termList); err != nil {
			panic(fmt.Sprintf("Couldn't parse vocabulary file %s: %s", entry, err.Error()))
		}
		name := strings.TrimSuffix(filepath.Base(entry), ".yaml")
		catalog[name] = termList
	}
}

// Returns the ordered list of terms for the vocabulary with the given name,
// or nil if no such vocabulary exists. An unknown vocabulary is not an
// error: callers treat it as "no terms".
func Lookup(vocabulary string) []Term {
	return catalog[vocabulary]
}

// Returns the display label for the term with the given identifier within
// the named vocabulary, or an empty string if either the vocabulary or the
// identifier is unknown.
func LabelFor(vocabulary, identifier string) string {
	for _, term := range catalog[vocabulary] {
		if term.Identifier == identifier {
			return term.Label
		}
	}
	return ""
}

// Returns the names of all vocabularies in the catalog.
func Vocabularies() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	return names
}
