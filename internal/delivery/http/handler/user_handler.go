package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodnest/internal/usecase/user"
	"foodnest/pkg/utils"
)

type UserHandler struct {
	service *user.Service
}

func NewUserHandler(service *user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes mounts the authenticated role-filtered listing used by
// picker UIs (assigning cooks, building teams).
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users", h.ListByRole)
}

func (h *UserHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	usersGroup := router.Group("/users")
	{
		usersGroup.GET("", h.ListUsers)
		usersGroup.POST("", h.CreateUser)
		usersGroup.GET("/:user_id", h.GetUser)
		usersGroup.PATCH("/:user_id", h.UpdateUser)
		usersGroup.DELETE("/:user_id", h.DeleteUser)
		usersGroup.GET("/:user_id/payroll", h.GetPayroll)
		usersGroup.PUT("/:user_id/payroll", h.UpdatePayroll)
	}

	requestsGroup := router.Group("/requests")
	{
		requestsGroup.GET("", h.ListRegistrationRequests)
		requestsGroup.POST("/:request_id/approve", h.ApproveRegistration)
		requestsGroup.POST("/:request_id/decline", h.DeclineRegistration)
	}
}

func (h *UserHandler) ListByRole(c *gin.Context) {
	users, err := h.service.ListByRole(c.Request.Context(), c.Query("role"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req user.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "User created successfully", created)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	found, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User retrieved successfully", found)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User updated successfully", updated)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), userID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User deleted successfully", nil)
}

func (h *UserHandler) GetPayroll(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	payroll, err := h.service.GetPayroll(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payroll retrieved successfully", payroll)
}

func (h *UserHandler) UpdatePayroll(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req user.UpdatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	payroll, err := h.service.UpdatePayroll(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payroll updated successfully", payroll)
}

func (h *UserHandler) ListRegistrationRequests(c *gin.Context) {
	requests, err := h.service.ListRegistrationRequests(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Requests retrieved successfully", requests)
}

func (h *UserHandler) ApproveRegistration(c *gin.Context) {
	requestID, ok := parseIDParam(c, "request_id")
	if !ok {
		return
	}

	created, err := h.service.ApproveRegistration(c.Request.Context(), requestID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Request approved", created)
}

func (h *UserHandler) DeclineRegistration(c *gin.Context) {
	requestID, ok := parseIDParam(c, "request_id")
	if !ok {
		return
	}

	if err := h.service.DeclineRegistration(c.Request.Context(), requestID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Request declined", nil)
}
