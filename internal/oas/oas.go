// Package oas embeds and validates the service's OpenAPI description.
package oas

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed api/openapi.json
var document []byte

var (
	once   sync.Once
	doc    *openapi3.T
	docErr error
)

// Document parses and validates the embedded description. The result is
// cached after the first call.
func Document(ctx context.Context) (*openapi3.T, error) {
	once.Do(func() {
		loader := openapi3.NewLoader()
		loader.Context = ctx

		parsed, err := loader.LoadFromData(document)
		if err != nil {
			docErr = fmt.Errorf("oas: parse document: %w", err)
			return
		}
		if err := parsed.Validate(ctx); err != nil {
			docErr = fmt.Errorf("oas: validate document: %w", err)
			return
		}
		doc = parsed
	})
	return doc, docErr
}

// Raw returns the embedded JSON bytes for serving.
func Raw() []byte {
	return document
}

// Version returns the API version declared in the document.
func Version(ctx context.Context) (string, error) {
	parsed, err := Document(ctx)
	if err != nil {
		return "", err
	}
	return parsed.Info.Version, nil
}
