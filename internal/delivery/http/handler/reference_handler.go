package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/proforma-service/internal/pkg/utils"
	"github.com/proforma-service/internal/usecase"
)

// ReferenceHandler - read-only views of the precomputed tables and parameter set
type ReferenceHandler struct {
	feasibilityUC *usecase.FeasibilityUseCase
	logger        *zap.Logger
}

func NewReferenceHandler(feasibilityUC *usecase.FeasibilityUseCase, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		feasibilityUC: feasibilityUC,
		logger:        logger,
	}
}

// GetReference godoc
// @Summary Reference table
// @Description Hypothetical building on the reference parcel at every far of the grid. Invalid values are null.
// @Tags Reference
// @Produce json
// @Param form path string true "Building form"
// @Param parking path string true "Parking configuration (surface, deck, underground)"
// @Success 200 {object} utils.SuccessResponse{data=dto.ReferenceResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/reference/{form}/{parking} [get]
func (h *ReferenceHandler) GetReference(c *fiber.Ctx) error {
	ref, err := h.feasibilityUC.Reference(c.Params("form"), c.Params("parking"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, ref, &utils.Meta{Total: len(ref.Entries)})
}

// GetBreakEven godoc
// @Summary Break-even costs
// @Description Rent per area needed to cover construction and parking at each far.
// @Tags Reference
// @Produce json
// @Param form path string true "Building form"
// @Param parking path string true "Parking configuration (surface, deck, underground)"
// @Success 200 {object} utils.SuccessResponse{data=dto.BreakEvenResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/reference/{form}/{parking}/break-even [get]
func (h *ReferenceHandler) GetBreakEven(c *fiber.Ctx) error {
	resp, err := h.feasibilityUC.BreakEven(c.Params("form"), c.Params("parking"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// GetConfig godoc
// @Summary Active parameter set
// @Description The parameter set in its YAML form, loadable by the CLI and the services.
// @Tags Reference
// @Produce application/x-yaml
// @Success 200 {string} string "YAML document"
// @Router /api/v1/config [get]
func (h *ReferenceHandler) GetConfig(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/x-yaml; charset=utf-8")
	return c.Send(h.feasibilityUC.ConfigYAML())
}
