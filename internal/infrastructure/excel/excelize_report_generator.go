// Package excel genera los reportes tabulares del almacén en XLSX.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/analytics"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
)

var _ analytics.ReportRenderer = (*ExcelizeReportGenerator)(nil)

const (
	defaultSheet = "Sheet1"
	sheetName    = "Reporte"
	headerLine   = 4 // título en 1, período en 2, cabecera en 4
)

// ExcelizeReportGenerator implementa analytics.ReportRenderer con excelize.
type ExcelizeReportGenerator struct{}

// NewExcelizeReportGenerator construye el generador.
func NewExcelizeReportGenerator() *ExcelizeReportGenerator { return &ExcelizeReportGenerator{} }

// Render escribe título, período, cabecera y una fila por registro en una hoja.
func (g *ExcelizeReportGenerator) Render(ctx context.Context, report dto.Report) ([]byte, error) {
	if len(report.Headers) == 0 {
		return nil, fmt.Errorf("excel: reporte sin columnas")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("excel: hoja: %w", err)
	}

	if err := f.SetCellValue(sheetName, "A1", report.Title); err != nil {
		return nil, fmt.Errorf("excel: título: %w", err)
	}
	if err := f.SetCellValue(sheetName, "A2", report.Period); err != nil {
		return nil, fmt.Errorf("excel: período: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14, Color: "00467F"}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", titleStyle); err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	headers := make([]interface{}, len(report.Headers))
	for i, h := range report.Headers {
		headers[i] = h
	}
	first, err := excelize.CoordinatesToCellName(1, headerLine)
	if err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(report.Headers), headerLine)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheetName, first, &headers); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}
	if err := f.SetCellStyle(sheetName, first, last, headerStyle); err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	for i, values := range report.Rows {
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, headerLine+1+i)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+1, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(report.Headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
		return nil, fmt.Errorf("excel: ancho: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
