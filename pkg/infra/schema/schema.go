// Package schema validates API request bodies against the embedded OpenAPI
// document before they are decoded into domain types.
package schema

import (
	"context"
	_ "embed"
	"encoding/json"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

//go:embed openapi.yaml
var document []byte

// Validator checks JSON payloads against named component schemas
type Validator struct {
	doc *openapi3.T
}

// New loads and validates the embedded OpenAPI document
func New(ctx context.Context) (*Validator, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load OpenAPI document")
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, goerr.Wrap(err, "invalid OpenAPI document")
	}
	return &Validator{doc: doc}, nil
}

// Document returns the raw embedded OpenAPI document
func Document() []byte {
	return document
}

// Validate checks that raw is JSON matching the component schema name
func (v *Validator) Validate(name string, raw []byte) error {
	ref, ok := v.doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return goerr.New("unknown schema", goerr.V("schema", name))
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return goerr.Wrap(model.ErrInvalidInput, "malformed JSON",
			goerr.V("schema", name),
			goerr.V("error", err.Error()),
		)
	}
	if err := ref.Value.VisitJSON(value); err != nil {
		return goerr.Wrap(model.ErrInvalidInput, "request does not match schema",
			goerr.V("schema", name),
			goerr.V("error", err.Error()),
		)
	}
	return nil
}

// HasOperation reports whether the document describes method on path.
// path uses the same {param} template syntax as the router.
func (v *Validator) HasOperation(method, path string) bool {
	item := v.doc.Paths.Value(path)
	if item == nil {
		return false
	}
	return item.GetOperation(method) != nil
}
