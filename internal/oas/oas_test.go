package oas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_ParsesAndValidates(t *testing.T) {
	doc, err := Document(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "Data Catalog API", doc.Info.Title)

	for _, path := range []string{
		"/api/login",
		"/api/user",
		"/api/filters",
		"/api/products",
		"/api/products/{id}",
		"/api/column-options",
		"/api/column-options/delete",
		"/api/users",
		"/api/users/{id}",
	} {
		assert.NotNil(t, doc.Paths.Find(path), "missing path %s", path)
	}
}

func TestVersion(t *testing.T) {
	version, err := Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", version)
}
