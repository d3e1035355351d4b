package interfaces

import (
	"context"

	"github.com/mindcorps/psyrisk/pkg/domain/model"
)

// Exporter writes a report document to an external destination and returns the
// location it was written to
type Exporter interface {
	Export(ctx context.Context, name string, doc *model.ReportDocument) (string, error)
}
