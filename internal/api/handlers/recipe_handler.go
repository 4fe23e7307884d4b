package handlers

import (
	"errors"
	"strconv"

	"brewstock/domain"
	"brewstock/internal/api/presenters"
	"brewstock/pkg/recipes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetCurrentRecipe(c *fiber.Ctx) error
		CreateVersion(c *fiber.Ctx) error
		GetHistory(c *fiber.Ctx) error
		GetSellables(c *fiber.Ctx) error
		UploadSellableImage(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipes.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipes.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetCurrentRecipe(c *fiber.Ctx) error {
	sellableID := c.Params("sellableId")

	res, err := h.recipeService.ResolveCurrent(c.Context(), sellableID)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRecipe, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipe)
}

func (h *recipeHandler) CreateVersion(c *fiber.Ctx) error {
	req := new(domain.CreateRecipeVersionRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipeVersion, err)
	}

	res, err := h.recipeService.CreateVersion(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeVersionConflict) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCreateRecipeVersion, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipeVersion, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipeVersion)
}

func (h *recipeHandler) GetHistory(c *fiber.Ctx) error {
	sellableID := c.Params("sellableId")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	versions, count, err := h.recipeService.GetHistory(c.Context(), sellableID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"versions": versions,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetRecipeHistory)
}

func (h *recipeHandler) GetSellables(c *fiber.Ctx) error {
	kind := c.Query("kind", "all")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	sellables, count, err := h.recipeService.GetSellables(c.Context(), kind, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSellables, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"sellables": sellables,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetSellables)
}

func (h *recipeHandler) UploadSellableImage(c *fiber.Ctx) error {
	sellableID := c.Params("sellableId")

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	imageURL, err := h.recipeService.UploadSellableImage(c.Context(), sellableID, file)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"image_url": imageURL}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
