package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodnest/internal/usecase/food"
	"foodnest/pkg/utils"
)

type FoodHandler struct {
	service *food.Service
}

func NewFoodHandler(service *food.Service) *FoodHandler {
	return &FoodHandler{service: service}
}

func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	foodsGroup := router.Group("/foods")
	{
		foodsGroup.GET("", h.List)
		foodsGroup.POST("", h.Create)
		foodsGroup.GET("/:food_id", h.Get)
		foodsGroup.PATCH("/:food_id", h.Update)
		foodsGroup.DELETE("/:food_id", h.Delete)
	}
}

// imageFromForm returns the optional "image" file of a multipart request.
func imageFromForm(c *gin.Context) (*multipart.FileHeader, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return fh, nil
}

func (h *FoodHandler) Create(c *gin.Context) {
	var req food.CreateFoodRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	image, err := imageFromForm(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid image upload")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req, image)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Food item created successfully", created)
}

func (h *FoodHandler) Get(c *gin.Context) {
	foodID, ok := parseIDParam(c, "food_id")
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), foodID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Food item retrieved successfully", item)
}

func (h *FoodHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Food items retrieved successfully", items)
}

func (h *FoodHandler) Update(c *gin.Context) {
	foodID, ok := parseIDParam(c, "food_id")
	if !ok {
		return
	}

	var req food.UpdateFoodRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	image, err := imageFromForm(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid image upload")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), foodID, &req, image)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Food item updated successfully", updated)
}

func (h *FoodHandler) Delete(c *gin.Context) {
	foodID, ok := parseIDParam(c, "food_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), foodID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Food item deleted successfully", nil)
}
