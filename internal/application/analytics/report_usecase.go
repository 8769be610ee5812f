package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportResult filas para JSON o archivo generado (File != nil para pdf/excel).
type ReportResult struct {
	Rows interface{}
	File *dto.ReportFile
}

// ReportUseCase arma los reportes de stock, compras y mermas.
type ReportUseCase struct {
	queries   repository.StockQueryRepository
	materials repository.MaterialRepository
	pdf       ReportRenderer
	excel     ReportRenderer
	clock     func() time.Time
}

// NewReportUseCase construye el caso de uso con los generadores de PDF y Excel.
func NewReportUseCase(queries repository.StockQueryRepository, materials repository.MaterialRepository, pdf, excel ReportRenderer) *ReportUseCase {
	return &ReportUseCase{queries: queries, materials: materials, pdf: pdf, excel: excel, clock: time.Now}
}

// Stock reporte del stock actual de materiales activos.
func (uc *ReportUseCase) Stock(ctx context.Context, q dto.ReportQuery) (*ReportResult, error) {
	list, err := uc.materials.List(ctx, repository.MaterialFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	rows := make([]dto.StockReportRow, 0, len(list))
	table := make([][]string, 0, len(list))
	for _, m := range list {
		r := dto.StockReportRow{
			Name:            m.Name,
			Category:        m.Category,
			CurrentStock:    m.CurrentStock,
			Unit:            m.Unit,
			MinStock:        m.MinStock,
			MainSupplier:    deref(m.MainSupplier),
			StorageLocation: deref(m.StorageLocation),
		}
		rows = append(rows, r)
		table = append(table, []string{
			r.Name, titleCase(r.Category), r.CurrentStock.String(), r.Unit, r.MinStock.String(),
			dash(r.MainSupplier), dash(r.StorageLocation),
		})
	}
	now := uc.clock()
	report := dto.Report{
		Title:   "Reporte de stock",
		Period:  "Al " + now.Format("02/01/2006 15:04"),
		Headers: []string{"Material", "Categoría", "Stock", "Unidad", "Mínimo", "Proveedor", "Ubicación"},
		Rows:    table,
	}
	return uc.output(ctx, q.Format, "stock", now, rows, report)
}

// Purchases líneas aceptadas de recepciones en el rango.
func (uc *ReportUseCase) Purchases(ctx context.Context, q dto.ReportQuery) (*ReportResult, error) {
	start, end, err := uc.period(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.queries.PurchaseRows(ctx, start, end)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.PurchaseReportRow, 0, len(list))
	table := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, dto.PurchaseReportRow{
			Date:             p.ReceivedAt,
			ReceivingNumber:  p.ReceivingNumber,
			SupplierName:     p.SupplierName,
			MaterialName:     p.MaterialName,
			Category:         p.Category,
			QuantityAccepted: p.QuantityAccepted,
			Unit:             p.Unit,
		})
		table = append(table, []string{
			p.ReceivedAt.Format("02/01/2006"), p.ReceivingNumber, p.SupplierName, p.MaterialName,
			titleCase(p.Category), p.QuantityAccepted.String(), p.Unit,
		})
	}
	report := dto.Report{
		Title:   "Reporte de compras",
		Period:  periodLabel(start, end),
		Headers: []string{"Fecha", "Recepción", "Proveedor", "Material", "Categoría", "Cantidad", "Unidad"},
		Rows:    table,
	}
	return uc.output(ctx, q.Format, "purchases", end, rows, report)
}

// Waste transacciones WASTE en el rango con el responsable.
func (uc *ReportUseCase) Waste(ctx context.Context, q dto.ReportQuery) (*ReportResult, error) {
	start, end, err := uc.period(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.queries.WasteRows(ctx, start, end)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.WasteReportRow, 0, len(list))
	table := make([][]string, 0, len(list))
	for _, w := range list {
		rows = append(rows, dto.WasteReportRow{
			Date:         w.CreatedAt,
			MaterialName: w.MaterialName,
			Quantity:     w.Quantity,
			Unit:         w.Unit,
			Officer:      w.UserName,
		})
		table = append(table, []string{
			w.CreatedAt.Format("02/01/2006 15:04"), w.MaterialName, w.Quantity.String(), w.Unit, dash(w.UserName),
		})
	}
	report := dto.Report{
		Title:   "Reporte de mermas",
		Period:  periodLabel(start, end),
		Headers: []string{"Fecha", "Material", "Cantidad", "Unidad", "Responsable"},
		Rows:    table,
	}
	return uc.output(ctx, q.Format, "waste", end, rows, report)
}

func (uc *ReportUseCase) output(ctx context.Context, format, name string, at time.Time, rows interface{}, report dto.Report) (*ReportResult, error) {
	base := fmt.Sprintf("%s-report-%s", name, at.Format("20060102"))
	switch strings.ToLower(format) {
	case "", dto.ReportFormatJSON:
		return &ReportResult{Rows: rows}, nil
	case dto.ReportFormatPDF:
		data, err := uc.pdf.Render(ctx, report)
		if err != nil {
			return nil, fmt.Errorf("reporte %s pdf: %w", name, err)
		}
		return &ReportResult{File: &dto.ReportFile{Filename: base + ".pdf", ContentType: contentTypePDF, Data: data}}, nil
	case dto.ReportFormatExcel:
		data, err := uc.excel.Render(ctx, report)
		if err != nil {
			return nil, fmt.Errorf("reporte %s excel: %w", name, err)
		}
		return &ReportResult{File: &dto.ReportFile{Filename: base + ".xlsx", ContentType: contentTypeXLSX, Data: data}}, nil
	default:
		return nil, domain.NewValidationError("format", "formato inválido: use json, pdf o excel")
	}
}

// period interpreta start/end; por defecto desde el primer día del mes hasta ahora.
// Un end con solo fecha incluye el día completo.
func (uc *ReportUseCase) period(q dto.ReportQuery) (time.Time, time.Time, error) {
	now := uc.clock()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := now
	if q.Start != "" {
		t, err := dto.ParseDate(q.Start)
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("start", err.Error())
		}
		start = t
	}
	if q.End != "" {
		t, err := dto.ParseDate(q.End)
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("end", err.Error())
		}
		if len(q.End) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		end = t
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, domain.NewValidationError("end", "el fin del período es anterior al inicio")
	}
	return start, end, nil
}

func periodLabel(start, end time.Time) string {
	return start.Format("02/01/2006") + " - " + end.Format("02/01/2006")
}

func titleCase(s string) string {
	return cases.Title(language.Und).String(strings.ToLower(s))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
