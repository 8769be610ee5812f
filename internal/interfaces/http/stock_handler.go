package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/analytics"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory-api/pkg/logger"
)

// StockHandler consulta de stock: niveles, movimientos y tablero.
type StockHandler struct {
	stock     *inventory.StockUseCase
	dashboard *analytics.DashboardUseCase
	log       *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *inventory.StockUseCase, dashboard *analytics.DashboardUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{stock: stock, dashboard: dashboard, log: log}
}

// ListMaterials godoc
// @Summary      Stock por material
// @Description  Materiales activos con nivel GREEN | YELLOW | RED.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "DRY | WET"
// @Success      200  {array}  dto.StockMaterialResponse
// @Router       /api/stock/materials [get]
func (h *StockHandler) ListMaterials(c *fiber.Ctx) error {
	list, err := h.stock.ListLevels(c.Context(), c.Query("category"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}

// Movements godoc
// @Summary      Movimientos de un material
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.MovementsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/materials/{id}/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	out, err := h.stock.GetMaterialMovements(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Overview godoc
// @Summary      Tablero de stock
// @Description  Totales por categoría, stock bajo, próximos a vencer y resúmenes de 30 días.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/stock/overview [get]
func (h *StockHandler) Overview(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSummary(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
