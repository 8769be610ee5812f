package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/analytics"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/pkg/logger"
)

// ReportHandler reportes exportables (json, pdf, excel).
type ReportHandler struct {
	uc  *analytics.ReportUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Stock godoc
// @Summary      Reporte de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        format  query  string  false  "json | pdf | excel"
// @Success      200  {array}   dto.StockReportRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	return h.serve(c, h.uc.Stock)
}

// Purchases godoc
// @Summary      Reporte de compras
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start   query  string  false  "YYYY-MM-DD (por defecto inicio de mes)"
// @Param        end     query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Param        format  query  string  false  "json | pdf | excel"
// @Success      200  {array}   dto.PurchaseReportRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/purchases [get]
func (h *ReportHandler) Purchases(c *fiber.Ctx) error {
	return h.serve(c, h.uc.Purchases)
}

// Waste godoc
// @Summary      Reporte de mermas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start   query  string  false  "YYYY-MM-DD"
// @Param        end     query  string  false  "YYYY-MM-DD"
// @Param        format  query  string  false  "json | pdf | excel"
// @Success      200  {array}   dto.WasteReportRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/waste [get]
func (h *ReportHandler) Waste(c *fiber.Ctx) error {
	return h.serve(c, h.uc.Waste)
}

func (h *ReportHandler) serve(c *fiber.Ctx, build func(context.Context, dto.ReportQuery) (*analytics.ReportResult, error)) error {
	var q dto.ReportQuery
	if err := bindQuery(c, &q); err != nil {
		return respondError(c, h.log, err)
	}
	res, err := build(c.Context(), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if res.File == nil {
		return c.JSON(res.Rows)
	}
	c.Set(fiber.HeaderContentType, res.File.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, res.File.Filename))
	return c.Send(res.File.Data)
}
