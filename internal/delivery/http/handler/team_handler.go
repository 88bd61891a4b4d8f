package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodnest/internal/usecase/team"
	"foodnest/pkg/utils"
)

type TeamHandler struct {
	service *team.Service
}

func NewTeamHandler(service *team.Service) *TeamHandler {
	return &TeamHandler{service: service}
}

func (h *TeamHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	teamsGroup := router.Group("/teams")
	{
		teamsGroup.GET("", h.List)
		teamsGroup.POST("", h.Create)
		teamsGroup.GET("/:team_id", h.Get)
		teamsGroup.PATCH("/:team_id", h.Update)
		teamsGroup.DELETE("/:team_id", h.Delete)
	}
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req team.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Team created successfully", created)
}

func (h *TeamHandler) Get(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	found, err := h.service.Get(c.Request.Context(), teamID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Team retrieved successfully", found)
}

func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.service.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Teams retrieved successfully", teams)
}

func (h *TeamHandler) Update(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	var req team.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), teamID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Team updated successfully", updated)
}

func (h *TeamHandler) Delete(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), teamID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Team deleted successfully", nil)
}
