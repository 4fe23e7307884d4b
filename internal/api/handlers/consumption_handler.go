package handlers

import (
	"errors"

	"brewstock/domain"
	"brewstock/internal/api/presenters"
	"brewstock/pkg/consumption"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ConsumptionHandler interface {
		Compute(c *fiber.Ctx) error
	}

	consumptionHandler struct {
		consumptionService consumption.ConsumptionService
		validator          *validator.Validate
	}
)

func NewConsumptionHandler(consumptionService consumption.ConsumptionService, validator *validator.Validate) ConsumptionHandler {
	return &consumptionHandler{
		consumptionService: consumptionService,
		validator:          validator,
	}
}

// Compute previews the ingredient deductions for a hypothetical sale line
// without touching stock. Strict mode turns unresolved lines into an error.
func (h *consumptionHandler) Compute(c *fiber.Ctx) error {
	req := new(domain.ComputeConsumptionRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedComputeConsumption, err)
	}

	res, err := h.consumptionService.Compute(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrMissingIngredients) {
			return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, domain.MessageFailedComputeConsumption, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedComputeConsumption, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessComputeConsumption)
}
