package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodnest/internal/usecase/combo"
	"foodnest/pkg/utils"
)

type ComboHandler struct {
	service *combo.Service
}

func NewComboHandler(service *combo.Service) *ComboHandler {
	return &ComboHandler{service: service}
}

func (h *ComboHandler) RegisterRoutes(router *gin.RouterGroup) {
	combosGroup := router.Group("/combos")
	{
		combosGroup.GET("", h.List)
		combosGroup.POST("", h.Create)
		combosGroup.GET("/:combo_id", h.Get)
		combosGroup.PATCH("/:combo_id", h.Update)
		combosGroup.DELETE("/:combo_id", h.Delete)
	}
}

func (h *ComboHandler) Create(c *gin.Context) {
	var req combo.CreateComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Combo created successfully", created)
}

func (h *ComboHandler) Get(c *gin.Context) {
	comboID, ok := parseIDParam(c, "combo_id")
	if !ok {
		return
	}

	found, err := h.service.Get(c.Request.Context(), comboID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Combo retrieved successfully", found)
}

func (h *ComboHandler) List(c *gin.Context) {
	combos, err := h.service.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Combos retrieved successfully", combos)
}

func (h *ComboHandler) Update(c *gin.Context) {
	comboID, ok := parseIDParam(c, "combo_id")
	if !ok {
		return
	}

	var req combo.UpdateComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), comboID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Combo updated successfully", updated)
}

func (h *ComboHandler) Delete(c *gin.Context) {
	comboID, ok := parseIDParam(c, "combo_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), comboID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Combo deleted successfully", nil)
}
