// Package analytics contiene los casos de uso de lectura: tablero de stock y reportes exportables.
package analytics

import (
	"context"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
)

// DashboardCache caché versionado del tablero. Un cambio de stock incrementa la versión
// y deja obsoletas todas las claves anteriores.
type DashboardCache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error
}

// ReportRenderer convierte un reporte tabular en un documento (PDF o XLSX).
type ReportRenderer interface {
	Render(ctx context.Context, report dto.Report) ([]byte, error)
}
