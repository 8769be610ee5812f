package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory-api/pkg/logger"
)

// HeaderIdempotencyKey clave opcional para reintentos seguros de escrituras.
const HeaderIdempotencyKey = "Idempotency-Key"

// ReceivingHandler recepciones de proveedor.
type ReceivingHandler struct {
	uc  *inventory.ReceivingUseCase
	log *logger.Logger
}

// NewReceivingHandler construye el handler.
func NewReceivingHandler(uc *inventory.ReceivingUseCase, log *logger.Logger) *ReceivingHandler {
	return &ReceivingHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar recepción
// @Description  Crea la recepción con inspección por línea; cada línea aceptada crea un lote y un movimiento IN.
// @Tags         receivings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                      false  "clave de reintento"
// @Param        body             body    dto.CreateReceivingRequest  true   "cabecera e ítems"
// @Success      201  {object}  dto.ReceivingResponse
// @Success      200  {object}  dto.ReceivingResponse  "reintento con la misma clave"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/receivings [post]
func (h *ReceivingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReceivingRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), c.Get(HeaderIdempotencyKey), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(createdOrOK(out.Replayed)).JSON(out)
}

// List godoc
// @Summary      Listar recepciones
// @Tags         receivings
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.ReceivingResponse
// @Router       /api/receivings [get]
func (h *ReceivingHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener recepción
// @Tags         receivings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.ReceivingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receivings/{id} [get]
func (h *ReceivingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func createdOrOK(replayed bool) int {
	if replayed {
		return fiber.StatusOK
	}
	return fiber.StatusCreated
}
