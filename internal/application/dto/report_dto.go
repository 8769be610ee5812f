package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formatos de exportación de reportes.
const (
	ReportFormatJSON  = "json"
	ReportFormatPDF   = "pdf"
	ReportFormatExcel = "excel"
)

// ReportQuery parámetros de GET /api/reports/*. Start/End en YYYY-MM-DD.
type ReportQuery struct {
	Start  string `query:"start"`
	End    string `query:"end"`
	Format string `query:"format" validate:"omitempty,oneof=json pdf excel"`
}

// StockReportRow fila del reporte de stock.
type StockReportRow struct {
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	Unit            string          `json:"unit"`
	MinStock        decimal.Decimal `json:"min_stock"`
	MainSupplier    string          `json:"main_supplier"`
	StorageLocation string          `json:"storage_location"`
}

// PurchaseReportRow fila del reporte de compras.
type PurchaseReportRow struct {
	Date             time.Time       `json:"date"`
	ReceivingNumber  string          `json:"receiving_number"`
	SupplierName     string          `json:"supplier_name"`
	MaterialName     string          `json:"material_name"`
	Category         string          `json:"category"`
	QuantityAccepted decimal.Decimal `json:"quantity_accepted"`
	Unit             string          `json:"unit"`
}

// WasteReportRow fila del reporte de mermas.
type WasteReportRow struct {
	Date         time.Time       `json:"date"`
	MaterialName string          `json:"material_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Officer      string          `json:"officer"`
}

// Report tabla genérica lista para renderizar (PDF/Excel).
type Report struct {
	Title   string
	Period  string
	Headers []string
	Rows    [][]string
}

// ReportFile archivo generado.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
