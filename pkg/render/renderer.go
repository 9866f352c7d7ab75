// Package render defines the seam between the catalog core and its record
// renderers. Views register by name so front ends can address them without
// importing the concrete implementation.
package render

import (
	"context"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
)

// Renderer converts a record into a byte representation (HTML card, detail
// page, plain text). Role gates which fields the output may contain.
type Renderer interface {
	Name() string
	ContentType() string
	RenderRecord(ctx context.Context, rec catalog.Record, role catalog.Role) ([]byte, error)
}
