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

// This package translates the answers accumulated by the wizard into a flat
// collection of normalized, interlinked metadata documents: a JSON-LD-like
// graph rooted at a dataset version document. A graph is built fresh per
// translation call and never persists past it.
package translator

import (
	"github.com/google/uuid"

	"github.com/esciencelab/mdw/config"
)

// A single metadata document: an "@id", one or more "@type" class names,
// scalar properties, and link properties (arrays of references to other
// documents in the same graph). Property names are prefixed with the
// vocabulary base IRI; this exact shape is the exported form of the graph.
type Document map[string]any

// a link property element, marshalling to {"@id": "..."}
type Reference struct {
	Id string `json:"@id"`
}

// A graphBuilder accumulates the documents created during one translation
// call, in creation order, together with the de-duplication table that
// collapses repeated keyed requests into a single shared document.
type graphBuilder struct {
	documents []Document
	byId      map[string]Document
	// nested map keyed by (document type, dedupe key)
	interned map[string]map[string]string
}

func newGraphBuilder() *graphBuilder {
	return &graphBuilder{
		byId:     make(map[string]Document),
		interned: make(map[string]map[string]string),
	}
}

// Returns the identifier of the document of the given type registered under
// the given de-duplication key, creating the document if no such
// registration exists. An empty key requests an anonymous document: a fresh
// document is created on every call and never registered for reuse.
func (g *graphBuilder) intern(docType, key string) string {
	if key != "" {
		if id, found := g.interned[docType][key]; found {
			return id
		}
	}
	id := config.Vocabulary.Instances + uuid.NewString()
	doc := Document{
		"@id":   id,
		"@type": []string{config.Vocabulary.Base + docType},
	}
	g.documents = append(g.documents, doc)
	g.byId[id] = doc
	if key != "" {
		if g.interned[docType] == nil {
			g.interned[docType] = make(map[string]string)
		}
		g.interned[docType][key] = id
	}
	return id
}

// returns the document with the given identifier
func (g *graphBuilder) document(id string) Document {
	return g.byId[id]
}

// Assigns value to the vocabulary-prefixed property unless the value is
// nil, an empty string, or an empty array: such properties are omitted from
// the document entirely.
func setProperty(doc Document, name string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if v == "" {
			return
		}
	case []string:
		if len(v) == 0 {
			return
		}
	case []any:
		if len(v) == 0 {
			return
		}
	case []Reference:
		if len(v) == 0 {
			return
		}
	}
	doc[config.Vocabulary.Base+name] = value
}

// Builds one child document per non-nil element of source (a scalar source
// is treated as a one-element list) and sets the resulting references as a
// link property on doc. The property is omitted entirely when no references
// result.
func (g *graphBuilder) linkMany(doc Document, name string, source any,
	build func(item any) string) {

	if source == nil {
		return
	}
	list, ok := source.([]any)
	if !ok {
		list = []any{source}
	}
	references := make([]Reference, 0, len(list))
	for _, item := range list {
		if item == nil {
			continue
		}
		references = append(references, Reference{Id: build(item)})
	}
	setProperty(doc, name, references)
}
