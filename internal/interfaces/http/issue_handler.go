package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory-api/pkg/logger"
)

// IssueHandler salidas hacia cocina.
type IssueHandler struct {
	uc  *inventory.IssueUseCase
	log *logger.Logger
}

// NewIssueHandler construye el handler.
func NewIssueHandler(uc *inventory.IssueUseCase, log *logger.Logger) *IssueHandler {
	return &IssueHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar salida de materiales
// @Description  Descuenta lotes en orden FEFO. Si algún ítem no alcanza, no se aplica nada.
// @Tags         issues
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                  false  "clave de reintento"
// @Param        body             body    dto.CreateIssueRequest  true   "departamento e ítems"
// @Success      201  {object}  dto.IssueResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/issues [post]
func (h *IssueHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIssueRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Issue(c.Context(), GetUserID(c), c.Get(HeaderIdempotencyKey), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(createdOrOK(out.Replayed)).JSON(out)
}
