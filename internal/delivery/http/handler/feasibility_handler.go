package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/proforma-service/internal/pkg/utils"
	"github.com/proforma-service/internal/pkg/validator"
	"github.com/proforma-service/internal/usecase"
	"github.com/proforma-service/internal/usecase/dto"
)

// FeasibilityHandler - synchronous feasibility lookups
type FeasibilityHandler struct {
	feasibilityUC *usecase.FeasibilityUseCase
	logger        *zap.Logger
}

// NewFeasibilityHandler - creates a FeasibilityHandler
func NewFeasibilityHandler(feasibilityUC *usecase.FeasibilityUseCase, logger *zap.Logger) *FeasibilityHandler {
	return &FeasibilityHandler{
		feasibilityUC: feasibilityUC,
		logger:        logger,
	}
}

// Lookup godoc
// @Summary Evaluate sites for one building form
// @Description Runs the pro forma over the submitted sites and returns the feasible ones with their most profitable far and parking configuration.
// @Tags Feasibility
// @Accept json
// @Produce json
// @Param form path string true "Building form, e.g. residential"
// @Param request body dto.FeasibilityRequest true "Sites to evaluate"
// @Success 200 {object} utils.SuccessResponse{data=dto.FeasibilityResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/feasibility/{form} [post]
func (h *FeasibilityHandler) Lookup(c *fiber.Ctx) error {
	form := c.Params("form")

	var req dto.FeasibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	start := time.Now()
	results, cached, err := h.feasibilityUC.Lookup(c.Context(), form, req.DomainSites())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.FeasibilityResponse{
		Form:    form,
		Results: results,
		Total:   len(results),
		Cached:  cached,
	}, &utils.Meta{
		Total:    len(results),
		Cached:   cached,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

// LookupForms godoc
// @Summary Evaluate sites for several building forms
// @Description Evaluates every requested form concurrently. An empty forms list evaluates forms_to_test.
// @Tags Feasibility
// @Accept json
// @Produce json
// @Param request body dto.FeasibilityRequest true "Sites and optional forms"
// @Success 200 {object} utils.SuccessResponse{data=dto.MultiFormResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/feasibility [post]
func (h *FeasibilityHandler) LookupForms(c *fiber.Ctx) error {
	var req dto.FeasibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	start := time.Now()
	byForm, err := h.feasibilityUC.LookupForms(c.Context(), req.Forms, req.DomainSites())
	if err != nil {
		return utils.SendError(c, err)
	}

	total := 0
	for _, results := range byForm {
		total += len(results)
	}
	return utils.SendSuccess(c, dto.MultiFormResponse{Forms: byForm}, &utils.Meta{
		Total:    total,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}
