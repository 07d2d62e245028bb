package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/proforma-service/internal/pkg/utils"
	"github.com/proforma-service/internal/pkg/validator"
	"github.com/proforma-service/internal/usecase"
	"github.com/proforma-service/internal/usecase/dto"
)

// RunHandler - asynchronous runs over the stored sites
type RunHandler struct {
	runUC  *usecase.RunUseCase
	logger *zap.Logger
}

func NewRunHandler(runUC *usecase.RunUseCase, logger *zap.Logger) *RunHandler {
	return &RunHandler{
		runUC:  runUC,
		logger: logger,
	}
}

// StartRun godoc
// @Summary Queue a feasibility run
// @Description Publishes a run request; a worker evaluates every stored site and saves the results under the returned run id.
// @Tags Runs
// @Accept json
// @Produce json
// @Param request body dto.RunRequest false "Forms to evaluate, empty means forms_to_test"
// @Success 202 {object} utils.SuccessResponse{data=dto.RunResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/runs [post]
func (h *RunHandler) StartRun(c *fiber.Ctx) error {
	var req dto.RunRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, invalidRequest(err))
		}
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	resp, err := h.runUC.StartRun(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, resp, nil)
}

// GetResults godoc
// @Summary Results of a run
// @Tags Runs
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} utils.SuccessResponse{data=dto.RunResultsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/runs/{id}/results [get]
func (h *RunHandler) GetResults(c *fiber.Ctx) error {
	resp, err := h.runUC.Results(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}
