package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory-api/pkg/logger"
)

// OpnameHandler conteos físicos.
type OpnameHandler struct {
	uc  *inventory.OpnameUseCase
	log *logger.Logger
}

// NewOpnameHandler construye el handler.
func NewOpnameHandler(uc *inventory.OpnameUseCase, log *logger.Logger) *OpnameHandler {
	return &OpnameHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar stock opname
// @Description  Reemplaza el stock del sistema por el conteo físico. Toda diferencia exige motivo.
// @Tags         opname
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                   false  "clave de reintento"
// @Param        body             body    dto.CreateOpnameRequest  true   "fecha e ítems contados"
// @Success      201  {object}  dto.OpnameResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/opname [post]
func (h *OpnameHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOpnameRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Submit(c.Context(), GetUserID(c), c.Get(HeaderIdempotencyKey), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(createdOrOK(out.Replayed)).JSON(out)
}

// List godoc
// @Summary      Listar stock opname
// @Tags         opname
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.OpnameResponse
// @Router       /api/opname [get]
func (h *OpnameHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return respondError(c, h.log, err)
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"items": list,
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// GetByID godoc
// @Summary      Obtener stock opname
// @Tags         opname
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del conteo"
// @Success      200  {object}  dto.OpnameResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/opname/{id} [get]
func (h *OpnameHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
