package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory-api/pkg/logger"
)

// AdjustmentHandler ajustes, mermas y devoluciones.
type AdjustmentHandler struct {
	uc  *inventory.AdjustmentUseCase
	log *logger.Logger
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *inventory.AdjustmentUseCase, log *logger.Logger) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Ajustar stock
// @Description  type: ADJUSTMENT | WASTE | RETURN; direction: IN | OUT. WASTE y RETURN solo admiten OUT.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                 false  "clave de reintento"
// @Param        body             body    dto.AdjustmentRequest  true   "material, cantidad, motivo"
// @Success      201  {object}  dto.AdjustmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Adjust(c.Context(), GetUserID(c), c.Get(HeaderIdempotencyKey), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(createdOrOK(out.Replayed)).JSON(out)
}
