package handlers

import (
	"errors"
	"strconv"

	"brewstock/domain"
	"brewstock/internal/api/presenters"
	"brewstock/pkg/orders"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	OrderHandler interface {
		CreateOrder(c *fiber.Ctx) error
		GetOrder(c *fiber.Ctx) error
		GetOrders(c *fiber.Ctx) error
		PaymentWebhook(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService orders.OrderService
		validator    *validator.Validate
	}
)

func NewOrderHandler(orderService orders.OrderService, validator *validator.Validate) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		validator:    validator,
	}
}

func (h *orderHandler) CreateOrder(c *fiber.Ctx) error {
	req := new(domain.CreateOrderRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	res, err := h.orderService.CreateOrder(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateOrder)
}

func (h *orderHandler) GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	res, err := h.orderService.GetOrder(c.Context(), orderID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrder)
}

func (h *orderHandler) GetOrders(c *fiber.Ctx) error {
	status := c.Query("status", "all")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	list, count, err := h.orderService.GetOrders(c.Context(), status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrder, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"orders": list,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetOrder)
}

func (h *orderHandler) PaymentWebhook(c *fiber.Ctx) error {
	notification := new(domain.PaymentNotification)

	if err := c.BodyParser(notification); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.orderService.HandleNotification(c.Context(), *notification); err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedWebhook, err)
		}
		if errors.Is(err, domain.ErrOrderAlreadyFinal) {
			return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessWebhook)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedWebhook, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessWebhook)
}
